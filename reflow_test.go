package headlessterm

import "testing"

func cellsToRunes(cells []Cell) string {
	runes := make([]rune, 0, len(cells))
	for _, c := range cells {
		if c.Char == 0 {
			runes = append(runes, ' ')
		} else {
			runes = append(runes, c.Char)
		}
	}
	return string(runes)
}

func writeRow(b *Buffer, row int, s string) {
	for i, r := range s {
		b.Cell(row, i).Char = r
	}
}

func TestResizeRowsOnlyPreservesContent(t *testing.T) {
	b := NewBuffer(3, 10)
	writeRow(b, 0, "hello")

	b.Resize(5, 10)

	if b.Rows() != 5 || b.Cols() != 10 {
		t.Fatalf("expected 5x10, got %dx%d", b.Rows(), b.Cols())
	}
	if got := cellsToRunes(b.cells[0]); got[:5] != "hello" {
		t.Fatalf("expected row 0 preserved, got %q", got)
	}
}

func TestReflowNarrowsWrapsLogicalLine(t *testing.T) {
	b := NewBuffer(3, 10)
	writeRow(b, 0, "helloworld")
	b.wrapped[0] = true
	writeRow(b, 1, "!!!!")

	b.Resize(3, 5)

	if b.Cols() != 5 {
		t.Fatalf("expected 5 cols, got %d", b.Cols())
	}
	// "helloworld!!!!" rewrapped at width 5 should produce "hello", "world",
	// "!!!!" as consecutive physical rows.
	row0 := cellsToRunes(b.cells[0])
	row1 := cellsToRunes(b.cells[1])
	if row0 != "hello" {
		t.Fatalf("expected row 0 %q, got %q", "hello", row0)
	}
	if row1 != "world" {
		t.Fatalf("expected row 1 %q, got %q", "world", row1)
	}
}

func TestReflowNeverSplitsWideCharAcrossBoundary(t *testing.T) {
	b := NewBuffer(2, 10)
	cells := make([]Cell, 4)
	for i := range cells {
		cells[i] = NewCell()
	}
	cells[0].Char = 'a'
	cells[1].Char = '中'
	cells[1].SetFlag(CellFlagWideChar)
	cells[2].SetFlag(CellFlagWideCharSpacer)
	cells[3].Char = 'b'

	rows, wrapFlags := rewrap(cells, 2)

	// Width 2 with a wide char starting at column 1 must wrap before it
	// rather than split the spacer onto the next row.
	if rows[0][1].IsWide() {
		t.Fatal("did not expect the wide char to land split at the boundary")
	}
	if len(wrapFlags) == 0 || !wrapFlags[0] {
		t.Fatal("expected first row to be marked wrapped")
	}
}

func TestReflowPadsShortContentToFillScreen(t *testing.T) {
	b := NewBuffer(5, 10)
	writeRow(b, 0, "hi")

	b.Resize(5, 20)

	if b.Rows() != 5 {
		t.Fatalf("expected rows preserved at 5, got %d", b.Rows())
	}
}
