package headlessterm

import "image/color"

// CellFlags is a bitmask of cell rendering attributes.
type CellFlags uint32

const (
	CellFlagBold CellFlags = 1 << iota
	CellFlagDim
	CellFlagItalic
	CellFlagUnderline
	CellFlagDoubleUnderline
	CellFlagCurlyUnderline
	CellFlagDottedUnderline
	CellFlagDashedUnderline
	CellFlagBlinkSlow
	CellFlagBlinkFast
	CellFlagReverse
	CellFlagHidden
	CellFlagStrike
	CellFlagWideChar
	CellFlagWideCharSpacer
	CellFlagGuarded
	CellFlagDirty
)

// Cell stores the character, colors, and formatting attributes for one grid position.
// Wide characters (2 columns) use a spacer cell in the second position.
// Combining marks that compose with Char (accents, ZWJ sequences, ...) are
// appended to Combining rather than given their own cell.
type Cell struct {
	Char           rune
	Combining      []rune
	Fg             color.Color
	Bg             color.Color
	UnderlineColor color.Color
	Flags          CellFlags
	HyperlinkID    HyperlinkID
	Image          *CellImage // Image reference, nil if no image
}

// NewCell creates a cell initialized with space character and default colors.
func NewCell() Cell {
	return Cell{
		Char: ' ',
		Fg:   &NamedColor{Name: NamedColorForeground},
		Bg:   &NamedColor{Name: NamedColorBackground},
	}
}

// Reset clears all attributes and sets the cell to default state (space character, default colors).
// The guarded flag (DECSCA) is preserved across ordinary writes but erase
// operations that honor protection should check HasFlag(CellFlagGuarded)
// before calling Reset.
func (c *Cell) Reset() {
	c.Char = ' '
	c.Combining = nil
	c.Fg = &NamedColor{Name: NamedColorForeground}
	c.Bg = &NamedColor{Name: NamedColorBackground}
	c.UnderlineColor = nil
	c.Flags = 0
	c.HyperlinkID = 0
	c.Image = nil
}

// Grapheme returns the full cluster represented by this cell: the base
// character followed by any combining marks attached to it.
func (c *Cell) Grapheme() string {
	if len(c.Combining) == 0 {
		return string(c.Char)
	}
	runes := make([]rune, 0, 1+len(c.Combining))
	runes = append(runes, c.Char)
	runes = append(runes, c.Combining...)
	return string(runes)
}

// HasFlag returns true if the specified flag is set.
func (c *Cell) HasFlag(flag CellFlags) bool {
	return c.Flags&flag != 0
}

// SetFlag enables the specified flag without affecting others.
func (c *Cell) SetFlag(flag CellFlags) {
	c.Flags |= flag
}

// ClearFlag disables the specified flag without affecting others.
func (c *Cell) ClearFlag(flag CellFlags) {
	c.Flags &^= flag
}

// IsDirty returns true if the cell was modified since the last ClearDirty call.
func (c *Cell) IsDirty() bool {
	return c.HasFlag(CellFlagDirty)
}

// MarkDirty marks the cell as modified for dirty tracking.
func (c *Cell) MarkDirty() {
	c.SetFlag(CellFlagDirty)
}

// ClearDirty resets the dirty tracking flag.
func (c *Cell) ClearDirty() {
	c.ClearFlag(CellFlagDirty)
}

// IsWide returns true if this cell contains a wide character (CJK, emoji, etc.) that occupies 2 columns.
func (c *Cell) IsWide() bool {
	return c.HasFlag(CellFlagWideChar)
}

// IsWideSpacer returns true if this is the second cell of a wide character (should be skipped during rendering).
func (c *Cell) IsWideSpacer() bool {
	return c.HasFlag(CellFlagWideCharSpacer)
}

// Copy returns a deep copy of the cell, including the combining-mark slice
// and image pointer.
func (c *Cell) Copy() Cell {
	var combining []rune
	if len(c.Combining) > 0 {
		combining = make([]rune, len(c.Combining))
		copy(combining, c.Combining)
	}
	return Cell{
		Char:           c.Char,
		Combining:      combining,
		Fg:             c.Fg,
		Bg:             c.Bg,
		UnderlineColor: c.UnderlineColor,
		Flags:          c.Flags,
		HyperlinkID:    c.HyperlinkID,
		Image:          c.Image,
	}
}

// HasImage returns true if this cell has an image reference.
func (c *Cell) HasImage() bool {
	return c.Image != nil
}
