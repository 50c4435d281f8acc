package jpeg

import "errors"

// 파싱 오류 분류
var (
	// ErrMalformedStructure reports a broken marker sequence: a missing SOI,
	// a non-marker byte where a marker is expected, or an impossible length.
	ErrMalformedStructure = errors.New("malformed JPEG structure")

	// ErrUnexpectedEOF reports a stream that ends inside a segment.
	ErrUnexpectedEOF = errors.New("unexpected end of JPEG data")

	// ErrMissingSegment reports that no start-of-frame segment precedes the scan.
	ErrMissingSegment = errors.New("missing required JPEG segment")

	// ErrUnsupported reports a well-formed image that cannot be embedded as is.
	ErrUnsupported = errors.New("unsupported JPEG feature")
)

// IsStructural reports whether err is a parse failure of the container
// structure, as opposed to an unsupported but well-formed image.
func IsStructural(err error) bool {
	return errors.Is(err, ErrMalformedStructure) ||
		errors.Is(err, ErrUnexpectedEOF) ||
		errors.Is(err, ErrMissingSegment)
}
