package headlessterm

import "bytes"

var syncUpdateBegin = []byte("\x1b[?2026h")
var syncUpdateEnd = []byte("\x1b[?2026l")

// writeSynchronized feeds data through the decoder, honoring synchronized
// update mode (DEC private mode 2026): once the literal begin sequence is
// seen, bytes are held in syncUpdateBuf - completely unparsed, so a client
// reading the live grid never observes a half-drawn frame - until the
// literal end sequence appears, at which point everything buffered since
// the begin marker (plus the end marker itself) is parsed in one shot.
//
// Unlike every other mode, this scan runs over raw bytes rather than
// through the decoder's own mode dispatch: synchronized update is a
// promise about how input is *consumed*, so it has to intercept consumption
// itself rather than react to a callback fired after the decoder already
// parsed the toggle.
func (t *Terminal) writeSynchronized(data []byte) (int, error) {
	total := len(data)
	for len(data) > 0 {
		if !t.syncUpdateActive {
			idx := bytes.Index(data, syncUpdateBegin)
			if idx < 0 {
				if _, err := t.decoder.Write(data); err != nil {
					return total, err
				}
				data = nil
				break
			}
			head := data[:idx+len(syncUpdateBegin)]
			if _, err := t.decoder.Write(head); err != nil {
				return total, err
			}
			t.syncUpdateActive = true
			t.events.Push(Event{Kind: EventModeChanged, Mode: "synchronized-update", Enabled: true})
			data = data[idx+len(syncUpdateBegin):]
			continue
		}

		t.syncUpdateBuf = append(t.syncUpdateBuf, data...)
		idx := bytes.Index(t.syncUpdateBuf, syncUpdateEnd)
		if idx < 0 {
			// Still buffering; nothing more to consume from this call.
			data = nil
			break
		}
		flush := t.syncUpdateBuf[:idx+len(syncUpdateEnd)]
		rest := t.syncUpdateBuf[idx+len(syncUpdateEnd):]
		t.syncUpdateBuf = nil
		t.syncUpdateActive = false
		t.events.Push(Event{Kind: EventModeChanged, Mode: "synchronized-update", Enabled: false})

		if _, err := t.decoder.Write(flush); err != nil {
			return total, err
		}
		data = rest
	}
	return total, nil
}
