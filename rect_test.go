package headlessterm

import "testing"

func TestFillRectangle(t *testing.T) {
	b := NewBuffer(10, 10)
	b.FillRectangle('X', 1, 1, 3, 3)

	for row := 1; row <= 3; row++ {
		for col := 1; col <= 3; col++ {
			if c := b.Cell(row, col); c.Char != 'X' {
				t.Fatalf("expected 'X' at (%d,%d), got %q", row, col, c.Char)
			}
		}
	}
	if c := b.Cell(0, 0); c.Char == 'X' {
		t.Fatal("expected cell outside rectangle to be untouched")
	}
}

func TestFillRectangleInvertedIsNoOp(t *testing.T) {
	b := NewBuffer(10, 10)
	b.FillRectangle('X', 5, 5, 2, 2)

	if c := b.Cell(5, 5); c.Char == 'X' {
		t.Fatal("expected inverted rectangle to be a no-op")
	}
}

func TestCopyRectangle(t *testing.T) {
	src := NewBuffer(10, 10)
	src.FillRectangle('S', 0, 0, 1, 1)

	dst := NewBuffer(10, 10)
	src.CopyRectangle(0, 0, 1, 1, dst, 5, 5)

	for row := 5; row <= 6; row++ {
		for col := 5; col <= 6; col++ {
			if c := dst.Cell(row, col); c.Char != 'S' {
				t.Fatalf("expected copied 'S' at (%d,%d), got %q", row, col, c.Char)
			}
		}
	}
}

func TestCopyRectangleOverlappingSameBuffer(t *testing.T) {
	b := NewBuffer(10, 10)
	for col := 0; col < 4; col++ {
		b.Cell(0, col).Char = rune('A' + col)
	}

	// Shift the row right by one, overlapping source and destination.
	b.CopyRectangle(0, 0, 0, 3, b, 0, 1)

	want := "AABC"
	for i, ch := range want {
		if got := b.Cell(0, i).Char; got != ch {
			t.Fatalf("col %d: expected %q, got %q", i, ch, got)
		}
	}
}

func TestEraseRectangleSkipsGuarded(t *testing.T) {
	b := NewBuffer(10, 10)
	b.FillRectangle('X', 0, 0, 2, 2)
	b.Cell(1, 1).SetFlag(CellFlagGuarded)

	b.EraseRectangle(0, 0, 2, 2)

	if c := b.Cell(1, 1); c.Char != 'X' {
		t.Fatalf("expected guarded cell preserved, got %q", c.Char)
	}
	if c := b.Cell(0, 0); c.Char == 'X' {
		t.Fatal("expected unguarded cell erased")
	}
}

func TestEraseRectangleUnconditionalIgnoresGuarded(t *testing.T) {
	b := NewBuffer(10, 10)
	b.FillRectangle('X', 0, 0, 2, 2)
	b.Cell(1, 1).SetFlag(CellFlagGuarded)

	b.EraseRectangleUnconditional(0, 0, 2, 2)

	if c := b.Cell(1, 1); c.Char == 'X' {
		t.Fatal("expected guarded cell erased by the unconditional variant")
	}
}

func TestChangeAttributesInRectangle(t *testing.T) {
	b := NewBuffer(10, 10)
	b.ChangeAttributesInRectangle(0, 0, 1, 1, []int{1, 4})

	c := b.Cell(0, 0)
	if !c.HasFlag(CellFlagBold) || !c.HasFlag(CellFlagUnderline) {
		t.Fatalf("expected bold+underline set, got flags %v", c.Flags)
	}
}

func TestChangeAttributesZeroCodeResets(t *testing.T) {
	b := NewBuffer(10, 10)
	b.Cell(0, 0).SetFlag(CellFlagBold | CellFlagItalic)

	b.ChangeAttributesInRectangle(0, 0, 0, 0, []int{0})

	if c := b.Cell(0, 0); c.HasFlag(CellFlagBold) || c.HasFlag(CellFlagItalic) {
		t.Fatalf("expected all attributes cleared by code 0, got flags %v", c.Flags)
	}
}

func TestReverseAttributesInRectangleToggles(t *testing.T) {
	b := NewBuffer(10, 10)
	b.Cell(0, 0).SetFlag(CellFlagBold)

	b.ReverseAttributesInRectangle(0, 0, 0, 0, []int{1})
	if c := b.Cell(0, 0); c.HasFlag(CellFlagBold) {
		t.Fatal("expected bold toggled off")
	}

	b.ReverseAttributesInRectangle(0, 0, 0, 0, []int{1})
	if c := b.Cell(0, 0); !c.HasFlag(CellFlagBold) {
		t.Fatal("expected bold toggled back on")
	}
}
