package headlessterm

// GridSnapshot is a byte-identical capture of a Buffer's visible grid,
// cursor and scroll-region state. Unlike Snapshot (which renders to JSON
// for external consumers), GridSnapshot exists purely to let the terminal
// save and restore internal state verbatim, e.g. around alternate-screen
// transitions or testing sequences that need an exact rollback.
type GridSnapshot struct {
	rows, cols int
	cells      [][]Cell
	wrapped    []bool
	tabStop    []bool

	cursor       Cursor
	scrollTop    int
	scrollBottom int
	marginLeft   int
	marginRight  int
}

// CaptureGrid copies the active buffer's cells, cursor and margins into a
// GridSnapshot. The returned snapshot shares no memory with the terminal.
func (t *Terminal) CaptureGrid() *GridSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.captureGridLocked(t.activeBuffer)
}

func (t *Terminal) captureGridLocked(b *Buffer) *GridSnapshot {
	snap := &GridSnapshot{
		rows:         b.rows,
		cols:         b.cols,
		cells:        make([][]Cell, b.rows),
		wrapped:      make([]bool, b.rows),
		tabStop:      make([]bool, b.cols),
		cursor:       t.cursor,
		scrollTop:    t.scrollTop,
		scrollBottom: t.scrollBottom,
		marginLeft:   t.marginLeft,
		marginRight:  t.marginRight,
	}

	copy(snap.wrapped, b.wrapped)
	copy(snap.tabStop, b.tabStop)
	for i := range b.cells {
		row := make([]Cell, b.cols)
		for j := range b.cells[i] {
			row[j] = b.cells[i][j].Copy()
		}
		snap.cells[i] = row
	}

	return snap
}

// RestoreGrid overwrites the active buffer's cells, cursor and margins with
// a previously captured GridSnapshot. Does nothing if the snapshot's
// dimensions no longer match the active buffer.
func (t *Terminal) RestoreGrid(snap *GridSnapshot) {
	if snap == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	b := t.activeBuffer
	if snap.rows != b.rows || snap.cols != b.cols {
		return
	}

	copy(b.wrapped, snap.wrapped)
	copy(b.tabStop, snap.tabStop)
	for i := range b.cells {
		for j := range b.cells[i] {
			b.cells[i][j] = snap.cells[i][j].Copy()
		}
		b.hasDirty = true
	}

	t.cursor = snap.cursor
	t.scrollTop = snap.scrollTop
	t.scrollBottom = snap.scrollBottom
	t.marginLeft = snap.marginLeft
	t.marginRight = snap.marginRight
}
