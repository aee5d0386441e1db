package headlessterm

import "github.com/google/uuid"

// Hyperlink associates a cell with a clickable link (OSC 8).
// ID is the user-supplied "id" parameter from the OSC 8 sequence (used by
// clients to group multiple spans under one logical link); when the
// sequence omits it, one is minted so distinct OSC 8 opens never collide.
type Hyperlink struct {
	ID  string
	URI string
}

// HyperlinkID references an entry in a Terminal's hyperlink table.
// Zero means "no hyperlink".
type HyperlinkID uint64

// HyperlinkTable stores the set of hyperlinks referenced by cells on screen
// or in scrollback. Entries are never removed individually - closing a link
// with OSC 8 only stops new cells from referencing it; existing cells keep
// their HyperlinkID valid until the table itself is cleared (RIS) so
// scrollback text retains working links after the live span closes.
type HyperlinkTable struct {
	entries map[HyperlinkID]Hyperlink
	byURI   map[string]HyperlinkID
	nextID  HyperlinkID
}

// NewHyperlinkTable creates an empty hyperlink table.
func NewHyperlinkTable() *HyperlinkTable {
	return &HyperlinkTable{
		entries: make(map[HyperlinkID]Hyperlink),
		byURI:   make(map[string]HyperlinkID),
	}
}

// Open allocates (or reuses) an id for the given hyperlink and returns it.
// Hyperlinks with the same URI and user id are deduplicated so long runs of
// text under one OSC 8 span share a single table entry.
func (h *HyperlinkTable) Open(link Hyperlink) HyperlinkID {
	if link.ID == "" {
		link.ID = uuid.NewString()
	}
	key := link.ID + "\x00" + link.URI
	if id, ok := h.byURI[key]; ok {
		return id
	}
	h.nextID++
	id := h.nextID
	h.entries[id] = link
	h.byURI[key] = id
	return id
}

// Lookup returns the hyperlink for id, and whether it exists.
func (h *HyperlinkTable) Lookup(id HyperlinkID) (Hyperlink, bool) {
	if id == 0 {
		return Hyperlink{}, false
	}
	l, ok := h.entries[id]
	return l, ok
}

// Clear empties the table. Used by RIS (full reset).
func (h *HyperlinkTable) Clear() {
	h.entries = make(map[HyperlinkID]Hyperlink)
	h.byURI = make(map[string]HyperlinkID)
	h.nextID = 0
}

// Len reports how many distinct hyperlinks are tracked.
func (h *HyperlinkTable) Len() int {
	return len(h.entries)
}
