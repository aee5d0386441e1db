package headlessterm

// ZoneType classifies a semantic region of terminal output, as reported by
// shell integration (OSC 133).
type ZoneType int

const (
	// ZonePrompt covers the shell prompt text (OSC 133;A through the next B/D).
	ZonePrompt ZoneType = iota
	// ZoneCommand covers the typed command line (OSC 133;B through C).
	ZoneCommand
	// ZoneOutput covers command output (OSC 133;C through the next A/D).
	ZoneOutput
)

func (z ZoneType) String() string {
	switch z {
	case ZonePrompt:
		return "prompt"
	case ZoneCommand:
		return "command"
	case ZoneOutput:
		return "output"
	default:
		return "unknown"
	}
}

// Zone is a closed-open interval of absolute rows tagged with a semantic
// type, plus bookkeeping shell integration attaches (exit code for output
// zones). AbsRowEnd is exclusive, matching the ring buffer's absolute row
// addressing.
type Zone struct {
	ID         int
	Type       ZoneType
	AbsRowStart int64
	AbsRowEnd   int64
	ExitCode    *int
}

// ContainsRow reports whether the absolute row falls within the zone.
func (z Zone) ContainsRow(absRow int64) bool {
	return absRow >= z.AbsRowStart && absRow < z.AbsRowEnd
}

// ZoneTracker maintains the set of open/closed zones for a buffer and the
// evicted-but-retained history needed to answer "what zone did this
// scrolled-off row belong to" after it leaves the ring buffer.
//
// At most one zone is open at a time; opening a new zone implicitly closes
// whatever was open, mirroring the OSC 133 A/B/C/D state machine.
type ZoneTracker struct {
	zones        []Zone
	evicted      []Zone
	nextID       int
	current      int // index into zones of open zone, or -1
}

// NewZoneTracker creates an empty tracker.
func NewZoneTracker() *ZoneTracker {
	return &ZoneTracker{current: -1}
}

// PushZone closes any open zone at absRow, then opens a new zone of the
// given type starting at absRow. It returns the new zone's id.
func (zt *ZoneTracker) PushZone(zoneType ZoneType, absRow int64) int {
	zt.CloseCurrentZone(absRow)
	zt.nextID++
	z := Zone{
		ID:          zt.nextID,
		Type:        zoneType,
		AbsRowStart: absRow,
		AbsRowEnd:   absRow,
	}
	zt.zones = append(zt.zones, z)
	zt.current = len(zt.zones) - 1
	return z.ID
}

// CloseCurrentZone closes the open zone (if any) at absRow.
func (zt *ZoneTracker) CloseCurrentZone(absRow int64) {
	if zt.current < 0 || zt.current >= len(zt.zones) {
		return
	}
	zt.zones[zt.current].AbsRowEnd = absRow
	zt.current = -1
}

// SetExitCode attaches an exit code to the currently open zone, or the most
// recently closed one if none is open (handles OSC 133;D arriving after the
// output zone has already been implicitly closed by a following A).
func (zt *ZoneTracker) SetExitCode(code int) {
	idx := zt.current
	if idx < 0 {
		idx = len(zt.zones) - 1
	}
	if idx < 0 || idx >= len(zt.zones) {
		return
	}
	c := code
	zt.zones[idx].ExitCode = &c
}

// CurrentZone returns the currently open zone, if any.
func (zt *ZoneTracker) CurrentZone() (Zone, bool) {
	if zt.current < 0 || zt.current >= len(zt.zones) {
		return Zone{}, false
	}
	return zt.zones[zt.current], true
}

// ZoneAt returns the zone containing absRow, if any.
func (zt *ZoneTracker) ZoneAt(absRow int64) (Zone, bool) {
	for i := range zt.zones {
		z := zt.zones[i]
		end := z.AbsRowEnd
		if i == zt.current {
			// Open zone: its end is not known yet, so it covers its
			// recorded range inclusively (only its start row until closed).
			end = z.AbsRowEnd + 1
		}
		if absRow >= z.AbsRowStart && absRow < end {
			return z, true
		}
	}
	return Zone{}, false
}

// EvictZones removes zones entirely below floor from the live set, moving
// them to the evicted history, and clamps the start of any zone that
// straddles the floor. Call this whenever scrollback eviction advances the
// ring buffer's floor.
func (zt *ZoneTracker) EvictZones(floor int64) {
	var remaining []Zone
	newCurrent := -1
	for i, z := range zt.zones {
		effectiveEnd := z.AbsRowEnd
		if i == zt.current {
			effectiveEnd = floor // open zones never get evicted outright
		}
		if effectiveEnd < floor && i != zt.current {
			zt.evicted = append(zt.evicted, z)
			continue
		}
		if z.AbsRowStart < floor {
			z.AbsRowStart = floor
		}
		remaining = append(remaining, z)
		if i == zt.current {
			newCurrent = len(remaining) - 1
		}
	}
	zt.zones = remaining
	zt.current = newCurrent
}

// ClearZones discards all zone state, open and evicted. Used by RIS.
func (zt *ZoneTracker) ClearZones() {
	zt.zones = nil
	zt.evicted = nil
	zt.current = -1
	zt.nextID = 0
}

// DrainEvictedZones returns and clears the zones evicted since the last
// drain, for clients that want to persist history lazily rather than on
// every eviction.
func (zt *ZoneTracker) DrainEvictedZones() []Zone {
	out := zt.evicted
	zt.evicted = nil
	return out
}

// Zones returns the live (non-evicted) zones in row order.
func (zt *ZoneTracker) Zones() []Zone {
	return zt.zones
}
