package headlessterm

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger receives rare, genuinely-exceptional diagnostics: a panicking
// provider callback recovered by guardProvider, the only caller. It is
// never used on the per-byte write path - the core performs
// no I/O of its own, matching the data-path "never propagate" rule.
type Logger interface {
	Warn(msg string, err error, fields map[string]any)
}

// NoopLogger discards everything. The package default.
type NoopLogger struct{}

func (NoopLogger) Warn(msg string, err error, fields map[string]any) {}

var _ Logger = NoopLogger{}

// ZerologLogger backs Logger with github.com/rs/zerolog, for callers that
// want the recovered-panic warnings surfaced as
// structured log lines rather than silently dropped.
type ZerologLogger struct {
	logger zerolog.Logger
}

// NewZerologLogger builds a ZerologLogger writing to w (os.Stderr if nil).
func NewZerologLogger(w *os.File) *ZerologLogger {
	if w == nil {
		w = os.Stderr
	}
	return &ZerologLogger{logger: zerolog.New(w).With().Timestamp().Logger()}
}

func (l *ZerologLogger) Warn(msg string, err error, fields map[string]any) {
	ev := l.logger.Warn()
	if err != nil {
		ev = ev.Err(err)
	}
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(msg)
}

var _ Logger = (*ZerologLogger)(nil)

// WithLogger sets the logger used for recovered provider panics and other
// rare exceptional conditions. Defaults to NoopLogger.
func WithLogger(l Logger) Option {
	return func(t *Terminal) {
		t.logger = l
	}
}

// guardProvider runs fn, recovering and logging any panic rather than
// letting a misbehaving provider corrupt the caller's stack or leave the
// terminal's own state half-mutated. name identifies the provider call
// site in the resulting log line.
func (t *Terminal) guardProvider(name string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger := t.logger
			if logger == nil {
				logger = NoopLogger{}
			}
			logger.Warn("provider panicked, treating as no-op", nil, map[string]any{
				"provider": name,
				"panic":    r,
			})
		}
	}()
	fn()
}
