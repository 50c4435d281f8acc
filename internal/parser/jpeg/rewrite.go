package jpeg

import (
	"bytes"
	"fmt"
	"io"
)

// maxPayload is the largest payload a 16-bit length field can describe.
const maxPayload = 0xFFFF - 2

// Write serializes img to w: SOI, the leading segments and the scan data.
// With dropOptional set, segments that are not required are skipped. Only
// header bytes differ between the two modes; the scan data is written as is.
func Write(w io.Writer, img *Image, dropOptional bool) (int64, error) {
	var buf []byte
	buf = append(buf, markerPrefix, byte(SOI))
	for _, seg := range img.LeadingSegments {
		if dropOptional && !seg.Required {
			continue
		}
		if len(seg.Payload) > maxPayload {
			return 0, fmt.Errorf("%s payload of %d bytes exceeds %d", seg.Marker.Name(), len(seg.Payload), maxPayload)
		}
		buf = appendSegment(buf, seg)
	}

	n, err := w.Write(buf)
	written := int64(n)
	if err != nil {
		return written, err
	}
	n, err = w.Write(img.ScanData)
	written += int64(n)
	return written, err
}

// Bytes returns the serialized image.
func (img *Image) Bytes(dropOptional bool) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(len(img.ScanData) + 4096)
	if _, err := Write(&buf, img, dropOptional); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// appendSegment appends the marker, the recomputed length field and the
// payload of seg to dst.
func appendSegment(dst []byte, seg Segment) []byte {
	dst = append(dst, markerPrefix, byte(seg.Marker))
	if !seg.Marker.HasLength() {
		return dst
	}
	length := seg.Len()
	dst = append(dst, byte(length>>8), byte(length))
	return append(dst, seg.Payload...)
}
