package headlessterm

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds the terminal limits and protocol toggles that a caller may
// want to load from a file rather than wire through individual Option
// values one at a time. It is immutable once validated; construct it with
// DefaultConfig and override fields, or load one from disk with LoadConfig.
type Config struct {
	// Rows and Cols are the initial terminal size. Zero means "use the
	// package default" rather than an error.
	Rows int `toml:"rows"`
	Cols int `toml:"cols"`

	// MaxScrollback caps the number of lines retained by the primary
	// buffer's scrollback storage. 0 means unlimited.
	MaxScrollback int `toml:"max_scrollback"`

	// ImageMaxMemory caps the total bytes the image manager retains across
	// all Sixel/Kitty images before evicting the oldest. 0 means unlimited.
	ImageMaxMemory int64 `toml:"image_max_memory"`

	// ImageMaxCount caps the number of Sixel/Kitty images retained
	// regardless of their combined byte size, evicting the
	// least-recently-accessed image first. 0 means unlimited.
	ImageMaxCount int `toml:"image_max_count"`

	// SixelEnabled and KittyEnabled gate the two graphics protocols.
	SixelEnabled bool `toml:"sixel_enabled"`
	KittyEnabled bool `toml:"kitty_enabled"`

	// ClipboardMaxBytes caps an OSC 52 clipboard write. 0 means unbounded.
	ClipboardMaxBytes int `toml:"clipboard_max_bytes"`

	// AllowInsecureSequences, when true, lets OSC 10/11/12 reassign the
	// live default foreground, default background, and cursor colors.
	AllowInsecureSequences bool `toml:"allow_insecure_sequences"`
}

// DefaultConfig returns the package's default Config: default size,
// unlimited scrollback, no image memory budget (ImageMaxMemory 0, unlike
// the 320MB budget New applies when no Option sets one), both graphics
// protocols enabled.
func DefaultConfig() Config {
	return Config{
		Rows:                   DEFAULT_ROWS,
		Cols:                   DEFAULT_COLS,
		MaxScrollback:          0,
		ImageMaxMemory:         0,
		ImageMaxCount:          DefaultMaxImageCount,
		SixelEnabled:           true,
		KittyEnabled:           true,
		ClipboardMaxBytes:      DefaultClipboardMaxBytes,
		AllowInsecureSequences: false,
	}
}

// Validate checks Config for internally inconsistent values. Called
// automatically by LoadConfig; callers building a Config by hand should
// call it before passing the result to WithConfig.
func (c Config) Validate() error {
	if c.Rows < 0 {
		return errors.Errorf("config: rows must be >= 0, got %d", c.Rows)
	}
	if c.Cols < 0 {
		return errors.Errorf("config: cols must be >= 0, got %d", c.Cols)
	}
	if c.MaxScrollback < 0 {
		return errors.Errorf("config: max_scrollback must be >= 0, got %d", c.MaxScrollback)
	}
	if c.ImageMaxMemory < 0 {
		return errors.Errorf("config: image_max_memory must be >= 0, got %d", c.ImageMaxMemory)
	}
	if c.ImageMaxCount < 0 {
		return errors.Errorf("config: image_max_count must be >= 0, got %d", c.ImageMaxCount)
	}
	if c.ClipboardMaxBytes < 0 {
		return errors.Errorf("config: clipboard_max_bytes must be >= 0, got %d", c.ClipboardMaxBytes)
	}
	return nil
}

// LoadConfig reads a TOML file at path into a Config seeded with
// DefaultConfig, so fields absent from the file keep their package
// defaults, and validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: opening %s", path)
	}
	defer f.Close()

	if _, err := toml.NewDecoder(f).Decode(&cfg); err != nil {
		return Config{}, errors.Wrapf(err, "config: decoding %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "config: validating %s", path)
	}

	return cfg, nil
}
