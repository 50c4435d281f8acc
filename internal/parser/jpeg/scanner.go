package jpeg

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// Scanner walks the segments of a JPEG stream up to and including the first
// start-of-scan segment. It does not restart and never looks at entropy-coded
// data.
type Scanner struct {
	r      *bufio.Reader
	offset int64 // bytes consumed so far
	done   bool  // SOS has been returned
}

// NewScanner creates a Scanner and checks that the stream starts with SOI.
func NewScanner(r io.Reader) (*Scanner, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	s := &Scanner{r: br}

	var head [2]byte
	n, err := io.ReadFull(br, head[:])
	s.offset += int64(n)
	if err != nil && !isEOF(err) {
		return nil, err
	}
	if err != nil || head[0] != markerPrefix || Marker(head[1]) != SOI {
		return nil, fmt.Errorf("%w: stream does not start with SOI", ErrMalformedStructure)
	}
	return s, nil
}

// Next returns the next segment. After the SOS segment has been returned it
// reports io.EOF, and Remaining yields the scan data that follows.
func (s *Scanner) Next() (Segment, error) {
	if s.done {
		return Segment{}, io.EOF
	}

	start := s.offset
	m, err := s.readMarker()
	if err != nil {
		return Segment{}, err
	}

	switch m {
	case SOI:
		return Segment{}, fmt.Errorf("%w: repeated SOI at offset %d", ErrMalformedStructure, start)
	case EOI:
		return Segment{}, fmt.Errorf("%w: EOI at offset %d before any scan", ErrMalformedStructure, start)
	}

	if !m.HasLength() {
		return NewSegment(m, nil), nil
	}

	payload, err := s.readPayload(m)
	if err != nil {
		return Segment{}, err
	}
	if m == SOS {
		s.done = true
	}
	return NewSegment(m, payload), nil
}

// Remaining returns the reader positioned on the first byte after the SOS
// segment. It is only meaningful once Next has returned the SOS segment.
func (s *Scanner) Remaining() io.Reader {
	return s.r
}

// Offset returns the number of bytes consumed from the stream.
func (s *Scanner) Offset() int64 {
	return s.offset
}

// readMarker reads a marker, skipping any run of 0xFF fill bytes.
func (s *Scanner) readMarker() (Marker, error) {
	b, err := s.readByte()
	if err != nil {
		return 0, s.truncated(err, "expected marker at offset %d", s.offset)
	}
	if b != markerPrefix {
		return 0, fmt.Errorf("%w: expected marker at offset %d, found 0x%02X",
			ErrMalformedStructure, s.offset-1, b)
	}

	// 채움 바이트(0xFF) 건너뛰기
	for b == markerPrefix {
		if b, err = s.readByte(); err != nil {
			return 0, s.truncated(err, "marker truncated at offset %d", s.offset)
		}
	}
	if b == 0x00 {
		return 0, fmt.Errorf("%w: stuffed 0xFF00 at offset %d outside scan data",
			ErrMalformedStructure, s.offset-2)
	}
	return Marker(b), nil
}

// readPayload reads the length field and the payload that follows it.
func (s *Scanner) readPayload(m Marker) ([]byte, error) {
	var lenbuf [2]byte
	n, err := io.ReadFull(s.r, lenbuf[:])
	s.offset += int64(n)
	if err != nil {
		return nil, s.truncated(err, "%s length", m.Name())
	}

	// 길이 필드는 자기 자신 2바이트를 포함한다
	length := int(lenbuf[0])<<8 | int(lenbuf[1])
	if length < 2 {
		return nil, fmt.Errorf("%w: %s length %d at offset %d is less than 2",
			ErrMalformedStructure, m.Name(), length, s.offset-2)
	}

	payload := make([]byte, length-2)
	n, err = io.ReadFull(s.r, payload)
	s.offset += int64(n)
	if err != nil {
		return nil, s.truncated(err, "%s declares %d payload bytes, %d available",
			m.Name(), length-2, n)
	}
	return payload, nil
}

func (s *Scanner) readByte() (byte, error) {
	b, err := s.r.ReadByte()
	if err != nil {
		return 0, err
	}
	s.offset++
	return b, nil
}

// truncated maps end-of-stream errors to ErrUnexpectedEOF and passes other
// read errors through.
func (s *Scanner) truncated(err error, format string, args ...any) error {
	if !isEOF(err) {
		return err
	}
	return fmt.Errorf("%w: %s", ErrUnexpectedEOF, fmt.Sprintf(format, args...))
}

func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
