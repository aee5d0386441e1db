package headlessterm

import (
	"testing"
)

func TestNewCell(t *testing.T) {
	cell := NewCell()

	if cell.Char != ' ' {
		t.Errorf("expected space, got '%c'", cell.Char)
	}
	fg, ok := cell.Fg.(*NamedColor)
	if !ok || fg.Name != NamedColorForeground {
		t.Errorf("expected default foreground NamedColor, got %#v", cell.Fg)
	}
	bg, ok := cell.Bg.(*NamedColor)
	if !ok || bg.Name != NamedColorBackground {
		t.Errorf("expected default background NamedColor, got %#v", cell.Bg)
	}
	if cell.Flags != 0 {
		t.Error("expected no flags")
	}
	if cell.HyperlinkID != 0 {
		t.Error("expected zero hyperlink id")
	}
	if len(cell.Combining) != 0 {
		t.Error("expected no combining marks")
	}
}

func TestCellReset(t *testing.T) {
	cell := NewCell()
	cell.Char = 'A'
	cell.SetFlag(CellFlagBold)
	cell.HyperlinkID = 7
	cell.Combining = []rune{'́'}

	cell.Reset()

	if cell.Char != ' ' {
		t.Errorf("expected space after reset, got '%c'", cell.Char)
	}
	if cell.HasFlag(CellFlagBold) {
		t.Error("expected no flags after reset")
	}
	if cell.HyperlinkID != 0 {
		t.Error("expected hyperlink id cleared after reset")
	}
	if len(cell.Combining) != 0 {
		t.Error("expected combining marks cleared after reset")
	}
}

func TestCellResetClearsGuardedFlag(t *testing.T) {
	// Reset itself clears every flag including Guarded; callers that honor
	// DECSCA protection are expected to check HasFlag(CellFlagGuarded)
	// themselves before calling Reset on a cell.
	cell := NewCell()
	cell.SetFlag(CellFlagGuarded)

	if !cell.HasFlag(CellFlagGuarded) {
		t.Fatal("expected guarded flag to be set before reset")
	}

	cell.Reset()

	if cell.HasFlag(CellFlagGuarded) {
		t.Error("expected Reset to clear the guarded flag like any other flag")
	}
}

func TestCellFlags(t *testing.T) {
	cell := NewCell()

	cell.SetFlag(CellFlagBold)
	if !cell.HasFlag(CellFlagBold) {
		t.Error("expected bold flag")
	}

	cell.SetFlag(CellFlagItalic)
	if !cell.HasFlag(CellFlagBold) || !cell.HasFlag(CellFlagItalic) {
		t.Error("expected both flags")
	}

	cell.ClearFlag(CellFlagBold)
	if cell.HasFlag(CellFlagBold) {
		t.Error("expected bold flag to be cleared")
	}
	if !cell.HasFlag(CellFlagItalic) {
		t.Error("expected italic flag to remain")
	}
}

func TestCellDirty(t *testing.T) {
	cell := NewCell()

	if cell.IsDirty() {
		t.Error("expected cell not dirty initially")
	}

	cell.MarkDirty()
	if !cell.IsDirty() {
		t.Error("expected cell to be dirty")
	}

	cell.ClearDirty()
	if cell.IsDirty() {
		t.Error("expected cell not dirty after clear")
	}
}

func TestCellWide(t *testing.T) {
	cell := NewCell()

	cell.SetFlag(CellFlagWideChar)
	if !cell.IsWide() {
		t.Error("expected cell to be wide")
	}

	spacer := NewCell()
	spacer.SetFlag(CellFlagWideCharSpacer)
	if !spacer.IsWideSpacer() {
		t.Error("expected cell to be spacer")
	}
}

func TestCellCopy(t *testing.T) {
	cell := NewCell()
	cell.Char = 'X'
	cell.SetFlag(CellFlagBold | CellFlagItalic)
	cell.HyperlinkID = 3
	cell.Combining = []rune{'́'}

	copied := cell.Copy()

	if copied.Char != 'X' {
		t.Errorf("expected 'X', got '%c'", copied.Char)
	}
	if !copied.HasFlag(CellFlagBold) || !copied.HasFlag(CellFlagItalic) {
		t.Error("expected flags to be copied")
	}
	if copied.HyperlinkID != 3 {
		t.Errorf("expected hyperlink id 3, got %d", copied.HyperlinkID)
	}

	// Modify original, copy should be unchanged
	cell.Char = 'Y'
	cell.Combining[0] = '̀'
	if copied.Char != 'X' {
		t.Error("copy should be independent")
	}
	if copied.Combining[0] != '́' {
		t.Error("copy should hold its own combining-mark slice, not alias the original")
	}
}

// TestCellGrapheme exercises base-plus-combining-mark cluster assembly,
// which replaced the teacher's one-rune-per-cell model.
func TestCellGrapheme(t *testing.T) {
	cell := NewCell()
	cell.Char = 'e'

	if got := cell.Grapheme(); got != "e" {
		t.Errorf("expected bare grapheme %q, got %q", "e", got)
	}

	cell.Combining = []rune{'́'} // combining acute accent
	want := "é"
	if got := cell.Grapheme(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	cell.Combining = append(cell.Combining, '̂')
	want = "é̂"
	if got := cell.Grapheme(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCellHasImage(t *testing.T) {
	cell := NewCell()
	if cell.HasImage() {
		t.Error("expected no image initially")
	}

	cell.Image = &CellImage{ImageID: 1}
	if !cell.HasImage() {
		t.Error("expected HasImage to be true once an image is attached")
	}
}
