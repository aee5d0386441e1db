package headlessterm

// Rectangular region operations (DECFRA, DECCRA, DECSERA, DECCARA, DECRARA).
// All four bounds are inclusive row/column indices (0-based). Out-of-range
// or inverted rectangles are clamped or treated as a no-op rather than
// erroring, matching the rest of the buffer's failure-tolerant style.

func clampRect(rows, cols, top, left, bottom, right int) (int, int, int, int, bool) {
	if top >= rows || left >= cols {
		return 0, 0, 0, 0, false
	}
	if top < 0 {
		top = 0
	}
	if left < 0 {
		left = 0
	}
	if bottom < 0 || bottom >= rows {
		bottom = rows - 1
	}
	if right < 0 || right >= cols {
		right = cols - 1
	}
	if top > bottom || left > right {
		return 0, 0, 0, 0, false
	}
	return top, left, bottom, right, true
}

// FillRectangle fills the rectangle with ch, preserving each cell's
// existing attributes (DECFRA).
func (b *Buffer) FillRectangle(ch rune, top, left, bottom, right int) {
	top, left, bottom, right, ok := clampRect(b.rows, b.cols, top, left, bottom, right)
	if !ok {
		return
	}
	for row := top; row <= bottom; row++ {
		for col := left; col <= right; col++ {
			cell := &b.cells[row][col]
			cell.Char = ch
			cell.Combining = nil
			cell.ClearFlag(CellFlagWideChar | CellFlagWideCharSpacer)
			cell.MarkDirty()
		}
	}
	b.hasDirty = true
}

// CopyRectangle copies a rectangle from this buffer to dst at (dstTop,
// dstLeft). The source is staged into a temporary slice first so that
// overlapping source/destination rectangles on the same buffer copy
// correctly regardless of row order (DECCRA).
func (b *Buffer) CopyRectangle(top, left, bottom, right int, dst *Buffer, dstTop, dstLeft int) {
	top, left, bottom, right, ok := clampRect(b.rows, b.cols, top, left, bottom, right)
	if !ok {
		return
	}
	height := bottom - top + 1
	width := right - left + 1

	staged := make([][]Cell, height)
	for i := 0; i < height; i++ {
		staged[i] = make([]Cell, width)
		for j := 0; j < width; j++ {
			staged[i][j] = b.cells[top+i][left+j].Copy()
		}
	}

	for i := 0; i < height; i++ {
		dstRow := dstTop + i
		if dstRow < 0 || dstRow >= dst.rows {
			continue
		}
		for j := 0; j < width; j++ {
			dstCol := dstLeft + j
			if dstCol < 0 || dstCol >= dst.cols {
				continue
			}
			dst.cells[dstRow][dstCol] = staged[i][j]
			dst.cells[dstRow][dstCol].MarkDirty()
		}
	}
	dst.hasDirty = true
}

// EraseRectangle resets cells to blank, skipping cells marked guarded
// (DECSERA).
func (b *Buffer) EraseRectangle(top, left, bottom, right int) {
	top, left, bottom, right, ok := clampRect(b.rows, b.cols, top, left, bottom, right)
	if !ok {
		return
	}
	for row := top; row <= bottom; row++ {
		for col := left; col <= right; col++ {
			cell := &b.cells[row][col]
			if cell.HasFlag(CellFlagGuarded) {
				continue
			}
			cell.Reset()
			cell.MarkDirty()
		}
	}
	b.hasDirty = true
}

// EraseRectangleUnconditional resets cells to blank regardless of the
// guarded flag (DECERA).
func (b *Buffer) EraseRectangleUnconditional(top, left, bottom, right int) {
	top, left, bottom, right, ok := clampRect(b.rows, b.cols, top, left, bottom, right)
	if !ok {
		return
	}
	for row := top; row <= bottom; row++ {
		for col := left; col <= right; col++ {
			cell := &b.cells[row][col]
			cell.Reset()
			cell.MarkDirty()
		}
	}
	b.hasDirty = true
}

// applyAttributeCode mutates flags per a single SGR-style code used by
// DECCARA/DECRARA: 0 resets the attribute set entirely, the rest toggle or
// set one flag. Unknown codes are ignored.
func applyAttributeCode(flags CellFlags, code int, reverse bool) CellFlags {
	var bit CellFlags
	switch code {
	case 0:
		if reverse {
			return flags
		}
		return flags &^ (CellFlagBold | CellFlagDim | CellFlagItalic | CellFlagUnderline |
			CellFlagBlinkSlow | CellFlagReverse | CellFlagHidden | CellFlagStrike)
	case 1:
		bit = CellFlagBold
	case 2:
		bit = CellFlagDim
	case 3:
		bit = CellFlagItalic
	case 4:
		bit = CellFlagUnderline
	case 5:
		bit = CellFlagBlinkSlow
	case 7:
		bit = CellFlagReverse
	case 8:
		bit = CellFlagHidden
	case 9:
		bit = CellFlagStrike
	default:
		return flags
	}
	if reverse {
		return flags ^ bit
	}
	return flags | bit
}

// ChangeAttributesInRectangle sets the given SGR-style attribute codes on
// every cell in the rectangle without touching the cells' characters or
// colors (DECCARA).
func (b *Buffer) ChangeAttributesInRectangle(top, left, bottom, right int, codes []int) {
	top, left, bottom, right, ok := clampRect(b.rows, b.cols, top, left, bottom, right)
	if !ok {
		return
	}
	for row := top; row <= bottom; row++ {
		for col := left; col <= right; col++ {
			cell := &b.cells[row][col]
			for _, code := range codes {
				cell.Flags = applyAttributeCode(cell.Flags, code, false)
			}
			cell.MarkDirty()
		}
	}
	b.hasDirty = true
}

// ReverseAttributesInRectangle toggles the given SGR-style attribute codes
// on every cell in the rectangle (DECRARA).
func (b *Buffer) ReverseAttributesInRectangle(top, left, bottom, right int, codes []int) {
	top, left, bottom, right, ok := clampRect(b.rows, b.cols, top, left, bottom, right)
	if !ok {
		return
	}
	for row := top; row <= bottom; row++ {
		for col := left; col <= right; col++ {
			cell := &b.cells[row][col]
			for _, code := range codes {
				cell.Flags = applyAttributeCode(cell.Flags, code, true)
			}
			cell.MarkDirty()
		}
	}
	b.hasDirty = true
}
