package headlessterm

import (
	"fmt"

	"github.com/danielgatis/go-ansicode"
)

// RequestMode answers a DECRQM mode query (CSI ? Ps $p or CSI Ps $p) with
// the mode's current state: 1 (set), 2 (reset), or 0 (not recognized).
// This mirrors SetMode/UnsetMode's translation table rather than going
// through TerminalMode side effects, since a query must never itself
// change state.
func (t *Terminal) RequestMode(mode ansicode.TerminalMode, private bool) {
	if t.middleware != nil && t.middleware.RequestMode != nil {
		t.middleware.RequestMode(mode, private, t.requestModeInternal)
		return
	}
	t.requestModeInternal(mode, private)
}

func (t *Terminal) requestModeInternal(mode ansicode.TerminalMode, private bool) {
	t.mu.RLock()
	state := t.modeQueryState(mode)
	t.mu.RUnlock()

	prefix := ""
	if private {
		prefix = "?"
	}
	t.writeResponseString(fmt.Sprintf("\x1b[%s%d;%d$y", prefix, int(mode), state))
}

// modeQueryState reports a DECRQM state code for mode without mutating
// anything (caller must hold at least a read lock).
func (t *Terminal) modeQueryState(mode ansicode.TerminalMode) int {
	var m TerminalMode
	switch mode {
	case ansicode.TerminalModeCursorKeys:
		m = ModeCursorKeys
	case ansicode.TerminalModeColumnMode:
		m = ModeColumnMode
	case ansicode.TerminalModeInsert:
		m = ModeInsert
	case ansicode.TerminalModeOrigin:
		m = ModeOrigin
	case ansicode.TerminalModeLineWrap:
		m = ModeLineWrap
	case ansicode.TerminalModeBlinkingCursor:
		m = ModeBlinkingCursor
	case ansicode.TerminalModeLineFeedNewLine:
		m = ModeLineFeedNewLine
	case ansicode.TerminalModeShowCursor:
		m = ModeShowCursor
	case ansicode.TerminalModeReportMouseClicks:
		m = ModeReportMouseClicks
	case ansicode.TerminalModeReportCellMouseMotion:
		m = ModeReportCellMouseMotion
	case ansicode.TerminalModeReportAllMouseMotion:
		m = ModeReportAllMouseMotion
	case ansicode.TerminalModeReportFocusInOut:
		m = ModeReportFocusInOut
	case ansicode.TerminalModeUTF8Mouse:
		m = ModeUTF8Mouse
	case ansicode.TerminalModeSGRMouse:
		m = ModeSGRMouse
	case ansicode.TerminalModeAlternateScroll:
		m = ModeAlternateScroll
	case ansicode.TerminalModeUrgencyHints:
		m = ModeUrgencyHints
	case ansicode.TerminalModeSwapScreenAndSetRestoreCursor:
		m = ModeSwapScreenAndSetRestoreCursor
	case ansicode.TerminalModeBracketedPaste:
		m = ModeBracketedPaste
	case ansicode.TerminalMode(69): // DECLRMM
		m = ModeLeftRightMargin
	default:
		return 0 // not recognized
	}
	if t.modes&m != 0 {
		return 1
	}
	return 2
}

// SetLeftRightMargins sets the left/right scroll margins (DECSLRM), 1-based
// on the wire and converted to 0-based internally. A no-op unless DECLRMM
// (ModeLeftRightMargin) has been enabled first, per the VT spec.
func (t *Terminal) SetLeftRightMargins(left, right int) {
	if t.middleware != nil && t.middleware.SetLeftRightMargins != nil {
		t.middleware.SetLeftRightMargins(left, right, t.setLeftRightMarginsInternal)
		return
	}
	t.setLeftRightMarginsInternal(left, right)
}

func (t *Terminal) setLeftRightMarginsInternal(left, right int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.modes&ModeLeftRightMargin == 0 {
		return
	}

	left--
	right--
	if left < 0 {
		left = 0
	}
	if right <= 0 || right >= t.cols {
		right = t.cols - 1
	}
	if left >= right {
		return
	}
	t.marginLeft = left
	t.marginRight = right
	t.cursor.Row = t.scrollTop
	t.cursor.Col = t.marginLeft
	t.cursor.PendingWrap = false
}

// FillRectangularArea fills a rectangle with ch, preserving attributes
// (DECFRA). Coordinates are 1-based on the wire.
func (t *Terminal) FillRectangularArea(ch rune, top, left, bottom, right int) {
	if t.middleware != nil && t.middleware.FillRectangularArea != nil {
		t.middleware.FillRectangularArea(ch, top, left, bottom, right, t.fillRectangularAreaInternal)
		return
	}
	t.fillRectangularAreaInternal(ch, top, left, bottom, right)
}

func (t *Terminal) fillRectangularAreaInternal(ch rune, top, left, bottom, right int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeBuffer.FillRectangle(ch, top-1, left-1, bottom-1, right-1)
}

// CopyRectangularArea copies a rectangle within the active screen (DECCRA).
// Page parameters are accepted by the wire protocol but ignored: this
// implementation has a single page per screen buffer.
func (t *Terminal) CopyRectangularArea(top, left, bottom, right, dstTop, dstLeft int) {
	if t.middleware != nil && t.middleware.CopyRectangularArea != nil {
		t.middleware.CopyRectangularArea(top, left, bottom, right, dstTop, dstLeft, t.copyRectangularAreaInternal)
		return
	}
	t.copyRectangularAreaInternal(top, left, bottom, right, dstTop, dstLeft)
}

func (t *Terminal) copyRectangularAreaInternal(top, left, bottom, right, dstTop, dstLeft int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeBuffer.CopyRectangle(top-1, left-1, bottom-1, right-1, t.activeBuffer, dstTop-1, dstLeft-1)
}

// SelectiveEraseRectangularArea erases a rectangle, honoring the guarded
// attribute (DECSERA).
func (t *Terminal) SelectiveEraseRectangularArea(top, left, bottom, right int) {
	if t.middleware != nil && t.middleware.SelectiveEraseRectangularArea != nil {
		t.middleware.SelectiveEraseRectangularArea(top, left, bottom, right, t.selectiveEraseRectangularAreaInternal)
		return
	}
	t.selectiveEraseRectangularAreaInternal(top, left, bottom, right)
}

func (t *Terminal) selectiveEraseRectangularAreaInternal(top, left, bottom, right int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeBuffer.EraseRectangle(top-1, left-1, bottom-1, right-1)
}

// EraseRectangularArea erases a rectangle unconditionally (DECERA).
func (t *Terminal) EraseRectangularArea(top, left, bottom, right int) {
	if t.middleware != nil && t.middleware.EraseRectangularArea != nil {
		t.middleware.EraseRectangularArea(top, left, bottom, right, t.eraseRectangularAreaInternal)
		return
	}
	t.eraseRectangularAreaInternal(top, left, bottom, right)
}

func (t *Terminal) eraseRectangularAreaInternal(top, left, bottom, right int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeBuffer.EraseRectangleUnconditional(top-1, left-1, bottom-1, right-1)
}

// ChangeAttributesRectangularArea sets SGR-style attribute codes on a
// rectangle without touching character or color data (DECCARA).
func (t *Terminal) ChangeAttributesRectangularArea(codes []int, top, left, bottom, right int) {
	if t.middleware != nil && t.middleware.ChangeAttributesRectangularArea != nil {
		t.middleware.ChangeAttributesRectangularArea(codes, top, left, bottom, right, t.changeAttributesRectangularAreaInternal)
		return
	}
	t.changeAttributesRectangularAreaInternal(codes, top, left, bottom, right)
}

func (t *Terminal) changeAttributesRectangularAreaInternal(codes []int, top, left, bottom, right int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeBuffer.ChangeAttributesInRectangle(top-1, left-1, bottom-1, right-1, codes)
}

// ReverseAttributesRectangularArea toggles SGR-style attribute codes on a
// rectangle (DECRARA).
func (t *Terminal) ReverseAttributesRectangularArea(codes []int, top, left, bottom, right int) {
	if t.middleware != nil && t.middleware.ReverseAttributesRectangularArea != nil {
		t.middleware.ReverseAttributesRectangularArea(codes, top, left, bottom, right, t.reverseAttributesRectangularAreaInternal)
		return
	}
	t.reverseAttributesRectangularAreaInternal(codes, top, left, bottom, right)
}

func (t *Terminal) reverseAttributesRectangularAreaInternal(codes []int, top, left, bottom, right int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.activeBuffer.ReverseAttributesInRectangle(top-1, left-1, bottom-1, right-1, codes)
}
