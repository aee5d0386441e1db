package headlessterm

import (
	"image/color"
	"testing"
)

func TestSetColorRejectsInsecureSlotsByDefault(t *testing.T) {
	term := New(WithSize(5, 20))

	term.SetColor(NamedColorForeground, color.RGBA{1, 2, 3, 255})

	if _, ok := term.colors[NamedColorForeground]; ok {
		t.Fatal("expected default foreground reassignment to be rejected without WithInsecureSequences")
	}
}

func TestSetColorAllowsInsecureSlotsWhenEnabled(t *testing.T) {
	term := New(WithSize(5, 20), WithInsecureSequences(true))

	want := color.RGBA{1, 2, 3, 255}
	term.SetColor(NamedColorCursor, want)

	got, ok := term.colors[NamedColorCursor]
	if !ok || got != color.Color(want) {
		t.Fatalf("expected cursor color override to apply, got %v, ok=%v", got, ok)
	}
}

func TestSetColorAllowsOrdinaryPaletteSlotsRegardless(t *testing.T) {
	term := New(WithSize(5, 20))

	term.SetColor(1, color.RGBA{9, 9, 9, 255})

	if _, ok := term.colors[1]; !ok {
		t.Fatal("expected an ordinary ANSI palette entry (OSC 4) to be settable without the insecure flag")
	}
}

func TestPushPopColorsRoundTrips(t *testing.T) {
	term := New(WithSize(5, 20), WithInsecureSequences(true))

	orig := color.RGBA{10, 20, 30, 255}
	term.SetColor(NamedColorForeground, orig)

	term.PushColors()

	changed := color.RGBA{40, 50, 60, 255}
	term.SetColor(NamedColorForeground, changed)
	if got := term.colors[NamedColorForeground]; got != color.Color(changed) {
		t.Fatalf("expected foreground changed before pop, got %v", got)
	}

	term.PopColors()
	if got := term.colors[NamedColorForeground]; got != color.Color(orig) {
		t.Fatalf("expected foreground restored after pop, got %v", got)
	}
}

func TestPopColorsOnEmptyStackIsNoOp(t *testing.T) {
	term := New(WithSize(5, 20))
	term.PopColors() // must not panic
}

func TestColorStackBoundedDepth(t *testing.T) {
	term := New(WithSize(5, 20), WithInsecureSequences(true))

	for i := 0; i < colorStackDepth+5; i++ {
		term.SetColor(NamedColorForeground, color.RGBA{uint8(i), 0, 0, 255})
		term.PushColors()
	}

	if len(term.colorStack.entries) != colorStackDepth {
		t.Fatalf("expected stack capped at %d entries, got %d", colorStackDepth, len(term.colorStack.entries))
	}
}

func TestClipboardStoreTruncatesToMaxBytes(t *testing.T) {
	var stored []byte
	term := New(WithSize(5, 20), WithClipboardMaxBytes(4), WithClipboard(clipboardRecorder{&stored}))

	term.ClipboardStore('c', []byte("hello world"))

	if len(stored) != 4 {
		t.Fatalf("expected clipboard write capped at 4 bytes, got %d (%q)", len(stored), stored)
	}
}

func TestClipboardStoreUnboundedWhenZero(t *testing.T) {
	var stored []byte
	term := New(WithSize(5, 20), WithClipboardMaxBytes(0), WithClipboard(clipboardRecorder{&stored}))

	term.ClipboardStore('c', []byte("hello world"))

	if string(stored) != "hello world" {
		t.Fatalf("expected unbounded clipboard write to pass through unmodified, got %q", stored)
	}
}

type clipboardRecorder struct {
	dst *[]byte
}

func (c clipboardRecorder) Read(clipboard byte) string { return "" }
func (c clipboardRecorder) Write(clipboard byte, data []byte) {
	*c.dst = append([]byte(nil), data...)
}
