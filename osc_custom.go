package headlessterm

import (
	"bytes"
	"encoding/base64"
	"strconv"
	"strings"
)

// customOSCPrefixes are OSC families go-ansicode's decoder has no built-in
// dispatch for: iTerm2/ConEmu/Windows-Terminal notification and progress
// extensions, and iTerm2's user-variable extension. Each is scanned for
// directly in the raw byte stream ahead of the decoder, the same way
// synchronized-update markers are, and stripped once consumed.
var customOSCPrefixes = [][]byte{
	[]byte("\x1b]9;"),
	[]byte("\x1b]777;"),
	[]byte("\x1b]934;"),
	[]byte("\x1b]1337;"),
}

// extractCustomOSC scans data for the custom OSC families above, applies
// each one's side effect immediately, and returns data with those
// sequences removed so the decoder never sees them.
func (t *Terminal) extractCustomOSC(data []byte) []byte {
	var out []byte
	for {
		idx, prefix := indexAnyPrefix(data, customOSCPrefixes)
		if idx < 0 {
			out = append(out, data...)
			break
		}
		out = append(out, data[:idx]...)
		rest := data[idx+len(prefix):]

		end, term := indexOSCTerminator(rest)
		if end < 0 {
			// Incomplete sequence trailing off this chunk; preserve it for
			// the caller rather than losing or misinterpreting partial data.
			out = append(out, data[idx:]...)
			data = nil
			break
		}

		body := string(rest[:end])
		t.dispatchCustomOSC(string(prefix), body)
		data = rest[end+term:]
	}
	return out
}

func indexAnyPrefix(data []byte, prefixes [][]byte) (int, []byte) {
	best := -1
	var bestPrefix []byte
	for _, p := range prefixes {
		if idx := bytes.Index(data, p); idx >= 0 && (best < 0 || idx < best) {
			best = idx
			bestPrefix = p
		}
	}
	return best, bestPrefix
}

// indexOSCTerminator finds the BEL or ST terminator ending an OSC body,
// returning its offset and byte length (1 for BEL, 2 for ESC \).
func indexOSCTerminator(data []byte) (int, int) {
	for i := 0; i < len(data); i++ {
		if data[i] == '\x07' {
			return i, 1
		}
		if data[i] == '\x1b' && i+1 < len(data) && data[i+1] == '\\' {
			return i, 2
		}
	}
	return -1, 0
}

func (t *Terminal) dispatchCustomOSC(prefix, body string) {
	switch prefix {
	case "\x1b]9;":
		t.handleOSC9(body)
	case "\x1b]777;":
		t.handleOSC777(body)
	case "\x1b]934;":
		t.handleOSC934(body)
	case "\x1b]1337;":
		t.handleOSC1337(body)
	}
}

// handleOSC9 implements "OSC 9 ; message" (iTerm2 notification) and
// "OSC 9 ; 4 ; state [ ; percent ]" (ConEmu/Windows Terminal progress bar).
func (t *Terminal) handleOSC9(body string) {
	if rest, ok := strings.CutPrefix(body, "4;"); ok {
		parts := strings.SplitN(rest, ";", 2)
		n, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return
		}
		state := progressStateFromParam(n)

		percent := 0
		if state.requiresProgress() && len(parts) > 1 {
			if p, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
				percent = clamp(p, 0, 100)
			}
		}
		t.setUnnamedProgress(state, percent)
		return
	}

	t.DesktopNotification(&NotificationPayload{PayloadType: "body", Data: []byte(body)})
}

// handleOSC777 implements "OSC 777 ; notify ; title ; message".
func (t *Terminal) handleOSC777(body string) {
	parts := strings.SplitN(body, ";", 3)
	if len(parts) < 3 || parts[0] != "notify" {
		return
	}
	t.DesktopNotification(&NotificationPayload{
		AppName:     parts[1],
		PayloadType: "body",
		Data:        []byte(parts[2]),
	})
}

// handleOSC934 implements the named progress bar protocol:
// "set;id;state;percent[;label]", "remove;id", "remove-all".
func (t *Terminal) handleOSC934(body string) {
	parts := strings.Split(body, ";")
	if len(parts) == 0 {
		return
	}

	switch parts[0] {
	case "set":
		if len(parts) < 4 {
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return
		}
		percent, _ := strconv.Atoi(strings.TrimSpace(parts[3]))
		label := ""
		if len(parts) > 4 {
			label = strings.Join(parts[4:], ";")
		}
		t.SetNamedProgressBar(NamedProgressBar{
			ID:      parts[1],
			State:   progressStateFromParam(n),
			Percent: clamp(percent, 0, 100),
			Label:   label,
		})
	case "remove":
		if len(parts) < 2 {
			return
		}
		t.RemoveNamedProgressBar(parts[1])
	case "remove-all":
		t.RemoveAllNamedProgressBars()
	}
}

// handleOSC1337 implements iTerm2's "SetUserVar=NAME=BASE64VALUE" extension.
func (t *Terminal) handleOSC1337(body string) {
	rest, ok := strings.CutPrefix(body, "SetUserVar=")
	if !ok {
		return
	}
	eq := strings.IndexByte(rest, '=')
	if eq < 0 {
		return
	}
	name := rest[:eq]
	decoded, err := base64.StdEncoding.DecodeString(rest[eq+1:])
	if err != nil {
		return
	}
	t.SetUserVar(name, string(decoded))
}
