package jpeg

// Segment is a marker together with its payload. The payload excludes the
// marker and the two length bytes; it is empty for markers without a length.
type Segment struct {
	Marker   Marker
	Payload  []byte
	Required bool // needed to decode the scan; never dropped by the rewriter
}

// NewSegment creates a segment and classifies it.
func NewSegment(m Marker, payload []byte) Segment {
	return Segment{
		Marker:   m,
		Payload:  payload,
		Required: IsRequired(m),
	}
}

// IsRequired reports whether a segment with marker m is needed to decode the
// image. Frame headers, coding tables and restart intervals are required, and
// so are the stand-alone markers. Application data, comments and unknown
// markers are informational.
func IsRequired(m Marker) bool {
	switch {
	case m.IsSOF():
		return true
	case !m.HasLength():
		return true
	}
	switch m {
	case DQT, DHT, DRI, SOS:
		return true
	// 산술 부호화/계층 모드 테이블
	case DAC, DNL, DHP, EXP:
		return true
	}
	return false
}

// Len returns the value of the segment's length field, or 0 for markers
// without one.
func (s Segment) Len() int {
	if !s.Marker.HasLength() {
		return 0
	}
	return len(s.Payload) + 2
}

// Size returns the number of bytes the segment occupies in a stream,
// including the marker.
func (s Segment) Size() int {
	if !s.Marker.HasLength() {
		return 2
	}
	return 4 + len(s.Payload)
}
