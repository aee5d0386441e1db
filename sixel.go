package headlessterm

import "bytes"

// SixelRecord is an opaque Sixel graphic record. The core does not
// rasterize Sixel data to pixels; it extracts only the geometry needed to
// place and size the record, and keeps the encoded DCS payload untouched
// as the data a higher-level renderer would decode later.
type SixelRecord struct {
	Width       uint32
	Height      uint32
	Data        []byte // raw Sixel-encoded payload, stored verbatim
	Transparent bool
}

// ParseSixelRecord scans a Sixel DCS payload far enough to determine pixel
// geometry without rasterizing any pixel data. Geometry comes from the
// raster-attributes header ("Pan;Pad;Ph;Pv) when the sender provides one,
// falling back to walking sixel/newline tokens to find the drawn extent.
// params carries the DCS parameters (P1;P2;P3); P2==1 requests a
// transparent background.
func ParseSixelRecord(params []int64, data []byte) (*SixelRecord, error) {
	rec := &SixelRecord{
		Data: append([]byte(nil), data...),
	}
	if len(params) >= 2 && params[1] == 1 {
		rec.Transparent = true
	}

	if w, h, ok := sixelRasterGeometry(data); ok {
		rec.Width, rec.Height = w, h
		return rec, nil
	}

	rec.Width, rec.Height = sixelScannedGeometry(data)
	return rec, nil
}

// sixelRasterGeometry reads the optional raster-attributes introducer
// "Pan;Pad;Ph;Pv and reports the declared Ph x Pv size in pixels.
func sixelRasterGeometry(data []byte) (width, height uint32, ok bool) {
	idx := bytes.IndexByte(data, '"')
	if idx < 0 {
		return 0, 0, false
	}
	i := idx + 1

	skipField := func() {
		for i < len(data) && data[i] >= '0' && data[i] <= '9' {
			i++
		}
	}
	skipSeparator := func() bool {
		if i < len(data) && data[i] == ';' {
			i++
			return true
		}
		return false
	}

	// Pan
	skipField()
	if !skipSeparator() {
		return 0, 0, false
	}
	// Pad
	skipField()
	if !skipSeparator() {
		return 0, 0, false
	}
	// Ph
	phStart := i
	skipField()
	if phStart == i || !skipSeparator() {
		return 0, 0, false
	}
	ph := sixelParseNumber(data[phStart : i-1])
	// Pv
	pvStart := i
	skipField()
	if pvStart == i {
		return 0, 0, false
	}
	pv := sixelParseNumber(data[pvStart:i])

	if ph <= 0 || pv <= 0 {
		return 0, 0, false
	}
	return uint32(ph), uint32(pv), true
}

// sixelScannedGeometry walks the sixel byte stream tracking cursor position
// only, to find the maximum extent drawn. It never decodes color data or
// materializes pixels.
func sixelScannedGeometry(data []byte) (width, height uint32) {
	x, y := 0, 0
	maxX, maxY := -1, -1
	i := 0
	for i < len(data) {
		b := data[i]
		i++

		switch {
		case b == '$':
			x = 0

		case b == '-':
			x = 0
			y += 6

		case b == '!':
			count, newI := sixelParseNumberAt(data, i)
			i = newI
			if i < len(data) {
				sixel := data[i]
				i++
				if sixel >= '?' && sixel <= '~' && count > 0 {
					x += int(count)
					if x-1 > maxX {
						maxX = x - 1
					}
					if y+5 > maxY {
						maxY = y + 5
					}
				}
			}

		case b == '#':
			// Color introducer/definition: skip past any numeric fields,
			// geometry doesn't depend on the color values themselves.
			for i < len(data) && (data[i] == ';' || (data[i] >= '0' && data[i] <= '9')) {
				i++
			}

		case b == '"':
			for i < len(data) && data[i] != '$' && data[i] != '-' &&
				data[i] != '#' && data[i] != '!' &&
				!(data[i] >= '?' && data[i] <= '~') {
				i++
			}

		case b >= '?' && b <= '~':
			if x > maxX {
				maxX = x
			}
			if y+5 > maxY {
				maxY = y + 5
			}
			x++
		}
	}

	if maxX < 0 || maxY < 0 {
		return 0, 0
	}
	return uint32(maxX + 1), uint32(maxY + 1)
}

func sixelParseNumberAt(data []byte, i int) (int64, int) {
	var n int64
	for i < len(data) && data[i] >= '0' && data[i] <= '9' {
		n = n*10 + int64(data[i]-'0')
		i++
	}
	return n, i
}

func sixelParseNumber(b []byte) int64 {
	n, _ := sixelParseNumberAt(b, 0)
	return n
}
