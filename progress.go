package headlessterm

// ProgressState is the state of a progress indicator (OSC 9;4 or OSC 934).
type ProgressState string

const (
	ProgressNone          ProgressState = "none"
	ProgressNormal        ProgressState = "normal"
	ProgressError         ProgressState = "error"
	ProgressIndeterminate ProgressState = "indeterminate"
	ProgressPaused        ProgressState = "paused"
)

// progressStateFromParam maps the OSC 9;4 state digit to a ProgressState,
// following the ConEmu/Windows-Terminal convention this sequence originates
// from: 0 remove, 1 normal, 2 error, 3 indeterminate, 4 paused.
func progressStateFromParam(n int) ProgressState {
	switch n {
	case 0:
		return ProgressNone
	case 1:
		return ProgressNormal
	case 2:
		return ProgressError
	case 3:
		return ProgressIndeterminate
	case 4:
		return ProgressPaused
	default:
		return ProgressNone
	}
}

// requiresProgress reports whether state carries a meaningful percent value.
func (s ProgressState) requiresProgress() bool {
	return s == ProgressNormal || s == ProgressError || s == ProgressPaused
}

// NamedProgressBar is one entry in the OSC 934 named progress bar table.
type NamedProgressBar struct {
	ID      string
	State   ProgressState
	Percent int
	Label   string
}

// setUnnamedProgress applies an OSC 9;4 progress update (the single,
// unnamed taskbar-style progress bar).
func (t *Terminal) setUnnamedProgress(state ProgressState, percent int) {
	t.mu.Lock()
	t.progressState = state
	t.progressPercent = percent
	t.mu.Unlock()

	t.events.Push(Event{Kind: EventProgressBarChanged, Progress: percent, ProgressState: string(state)})
}

// SetNamedProgressBar creates or updates a named progress bar (OSC 934 set).
func (t *Terminal) SetNamedProgressBar(bar NamedProgressBar) {
	t.mu.Lock()
	if t.namedProgress == nil {
		t.namedProgress = make(map[string]NamedProgressBar)
	}
	t.namedProgress[bar.ID] = bar
	t.mu.Unlock()

	t.events.Push(Event{
		Kind:          EventProgressBarChanged,
		BarID:         bar.ID,
		BarLabel:      bar.Label,
		Progress:      bar.Percent,
		ProgressState: string(bar.State),
	})
}

// RemoveNamedProgressBar removes a single named progress bar (OSC 934 remove).
func (t *Terminal) RemoveNamedProgressBar(id string) {
	t.mu.Lock()
	delete(t.namedProgress, id)
	t.mu.Unlock()

	t.events.Push(Event{Kind: EventProgressBarChanged, BarID: id, BarRemoved: true})
}

// RemoveAllNamedProgressBars clears every named progress bar (OSC 934 remove-all).
func (t *Terminal) RemoveAllNamedProgressBars() {
	t.mu.Lock()
	t.namedProgress = make(map[string]NamedProgressBar)
	t.mu.Unlock()

	t.events.Push(Event{Kind: EventProgressBarChanged, BarRemoved: true})
}

// NamedProgressBars returns a copy of all named progress bars.
func (t *Terminal) NamedProgressBars() map[string]NamedProgressBar {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make(map[string]NamedProgressBar, len(t.namedProgress))
	for k, v := range t.namedProgress {
		out[k] = v
	}
	return out
}

// Progress returns the current unnamed (OSC 9;4) progress state and percent.
func (t *Terminal) Progress() (ProgressState, int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.progressState, t.progressPercent
}
