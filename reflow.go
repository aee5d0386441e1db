package headlessterm

// Resize changes the buffer's dimensions. When the column count is
// unchanged, rows are added/removed at the bottom and existing content is
// otherwise left alone (the fast path in the original resize). When the
// column count changes, the buffer reflows: logical lines (runs of
// physical rows joined by the soft-wrap flag) are rebuilt from scrollback
// through the screen and re-wrapped at the new width, so text that fit on
// one line before continues to read naturally at the new width instead of
// being truncated or leaving ragged breaks.
//
// Wide characters are never split across a wrap boundary: if a wide
// character would land with only one column left on a line, the wrap
// happens one column early instead.
func (b *Buffer) Resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return
	}
	if cols == b.cols {
		b.resizeRowsOnly(rows)
		return
	}
	b.reflow(rows, cols)
}

// resizeRowsOnly is the simple top-left-preserving resize used when the
// column count does not change.
func (b *Buffer) resizeRowsOnly(rows int) {
	newCells := make([][]Cell, rows)
	for i := range newCells {
		if i < b.rows {
			newCells[i] = b.cells[i]
		} else {
			newCells[i] = make([]Cell, b.cols)
			for j := range newCells[i] {
				newCells[i][j] = NewCell()
			}
		}
		for j := range newCells[i] {
			newCells[i][j].MarkDirty()
		}
	}
	newWrapped := make([]bool, rows)
	copy(newWrapped, b.wrapped)

	b.cells = newCells
	b.wrapped = newWrapped
	b.rows = rows
	b.hasDirty = true
}

// logicalLine is a run of physical rows joined by soft wraps, flattened
// into one slice of cells.
type logicalLine struct {
	cells []Cell
}

// collectLogicalLines walks scrollback then the screen, joining
// consecutively wrapped physical rows into logical lines.
func (b *Buffer) collectLogicalLines() []logicalLine {
	var physical [][]Cell
	var wrapped []bool

	n := b.ScrollbackLen()
	for i := 0; i < n; i++ {
		line := b.ScrollbackLine(i)
		physical = append(physical, line)
		// Scrollback lines are always treated as hard newlines, including
		// the last one; it never joins the screen's first row.
		wrapped = append(wrapped, false)
	}
	for i := 0; i < b.rows; i++ {
		physical = append(physical, b.cells[i])
		w := false
		if i < b.rows {
			w = b.wrapped[i]
		}
		wrapped = append(wrapped, w)
	}

	var logical []logicalLine
	var current []Cell
	for i, row := range physical {
		current = append(current, row...)
		isLast := i == len(physical)-1
		if !wrapped[i] || isLast {
			logical = append(logical, logicalLine{cells: current})
			current = nil
		}
	}
	if len(current) > 0 {
		logical = append(logical, logicalLine{cells: current})
	}
	return logical
}

// rewrap splits a logical line's cells into physical rows of width cols,
// never splitting a wide character across a boundary, and returns the rows
// plus a parallel wrapped-flag slice (true for every row but the last).
func rewrap(cells []Cell, cols int) ([][]Cell, []bool) {
	var rows [][]Cell
	var wrapFlags []bool

	for len(cells) > 0 {
		limit := cols
		if limit > len(cells) {
			limit = len(cells)
		}
		// Don't split a wide char's spacer from its base at the boundary.
		if limit < len(cells) && limit > 0 && cells[limit-1].IsWide() {
			limit--
		}
		row := make([]Cell, cols)
		for i := 0; i < cols; i++ {
			if i < limit {
				row[i] = cells[i]
			} else {
				row[i] = NewCell()
			}
			row[i].MarkDirty()
		}
		rows = append(rows, row)
		cells = cells[limit:]
		wrapFlags = append(wrapFlags, len(cells) > 0)
	}
	if len(rows) == 0 {
		row := make([]Cell, cols)
		for i := range row {
			row[i] = NewCell()
		}
		rows = append(rows, row)
		wrapFlags = append(wrapFlags, false)
	}
	return rows, wrapFlags
}

// reflow rebuilds the buffer's physical rows (screen plus scrollback) at a
// new column width.
func (b *Buffer) reflow(rows, cols int) {
	logical := b.collectLogicalLines()

	var allRows [][]Cell
	var allWrapped []bool
	for _, line := range logical {
		physRows, flags := rewrap(line.cells, cols)
		allRows = append(allRows, physRows...)
		allWrapped = append(allWrapped, flags...)
	}

	// The bottom `rows` physical lines become the new screen; anything
	// above that is scrollback. If there aren't enough lines to fill the
	// screen, pad with blank rows at the bottom.
	if len(allRows) < rows {
		for len(allRows) < rows {
			blank := make([]Cell, cols)
			for i := range blank {
				blank[i] = NewCell()
			}
			allRows = append(allRows, blank)
			allWrapped = append(allWrapped, false)
		}
	}

	screenStart := len(allRows) - rows
	scrollbackRows := allRows[:screenStart]
	screenRows := allRows[screenStart:]
	screenWrapped := allWrapped[screenStart:]

	if b.scrollback != nil {
		b.scrollback.Clear()
		if b.zones != nil {
			b.zones.ClearZones()
		}
		maxLines := b.scrollback.MaxLines()
		start := 0
		if maxLines > 0 && len(scrollbackRows) > maxLines {
			start = len(scrollbackRows) - maxLines
		}
		pushed := 0
		for i := start; i < len(scrollbackRows); i++ {
			b.scrollback.Push(scrollbackRows[i])
			pushed++
		}
		b.totalLinesScrolled += int64(len(scrollbackRows))
	}

	newCells := make([][]Cell, rows)
	newWrapped := make([]bool, rows)
	for i := 0; i < rows; i++ {
		newCells[i] = screenRows[i]
		newWrapped[i] = screenWrapped[i]
		for j := range newCells[i] {
			newCells[i][j].MarkDirty()
		}
	}

	b.cells = newCells
	b.wrapped = newWrapped
	b.rows = rows
	b.cols = cols
	b.hasDirty = true

	newTabStop := make([]bool, cols)
	for i := 0; i < cols; i += 8 {
		newTabStop[i] = true
	}
	b.tabStop = newTabStop
}
