package headlessterm

import "testing"

func TestTranslateLineDrawingFullSet(t *testing.T) {
	term := New(WithSize(5, 20))

	want := map[rune]rune{
		'`': '◆', 'a': '▒', 'q': '─', 'x': '│', '~': '·',
	}
	for in, out := range want {
		if got := term.translateLineDrawing(in); got != out {
			t.Errorf("translateLineDrawing(%q) = %q, want %q", in, got, out)
		}
	}
}

func TestTranslateLineDrawingPassesThroughUnknown(t *testing.T) {
	term := New(WithSize(5, 20))
	if got := term.translateLineDrawing('Z'); got != 'Z' {
		t.Errorf("expected unmapped rune to pass through unchanged, got %q", got)
	}
}

func TestFoldWidthVariantFullwidthLetter(t *testing.T) {
	// Fullwidth 'Ａ' (U+FF21) should fold to ASCII 'A'.
	if got := foldWidthVariant('Ａ'); got != 'A' {
		t.Errorf("expected fullwidth A to fold to ASCII A, got %q", got)
	}
	if got := foldWidthVariant('x'); got != 'x' {
		t.Errorf("expected ordinary rune unchanged, got %q", got)
	}
}
