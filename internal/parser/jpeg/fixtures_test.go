package jpeg

import (
	"bytes"
	"image"
	"image/color"
	stdjpeg "image/jpeg"
	"testing"
)

// testScan is entropy-coded data with a stuffed 0xFF00, a restart marker and
// the closing EOI.
var testScan = []byte{0x12, 0xFF, 0x00, 0x34, 0xFF, 0xD0, 0x56, 0x78, 0xFF, 0xD9}

func rawSegment(m Marker, payload []byte) []byte {
	out := []byte{0xFF, byte(m)}
	if !m.HasLength() {
		return out
	}
	n := len(payload) + 2
	out = append(out, byte(n>>8), byte(n))
	return append(out, payload...)
}

func jfifPayload(unit byte, x, y uint16) []byte {
	p := []byte("JFIF\x00")
	p = append(p, 1, 2, unit, byte(x>>8), byte(x), byte(y>>8), byte(y), 0, 0)
	return p
}

func adobePayload(transform byte) []byte {
	p := []byte("Adobe")
	return append(p, 0, 100, 0, 0, 0, 0, transform)
}

func framePayload(precision byte, height, width uint16, components int) []byte {
	p := []byte{precision, byte(height >> 8), byte(height), byte(width >> 8), byte(width), byte(components)}
	for i := 0; i < components; i++ {
		p = append(p, byte(i+1), 0x11, 0)
	}
	return p
}

func dqtPayload() []byte {
	p := make([]byte, 65)
	for i := 1; i < len(p); i++ {
		p[i] = 1
	}
	return p
}

func dhtPayload() []byte {
	p := make([]byte, 17)
	p[1] = 1
	return append(p, 0)
}

func sosPayload() []byte {
	return []byte{1, 1, 0x00, 0, 63, 0}
}

// jpegFile assembles SOI, the given header segments, an SOS segment and
// testScan.
func jpegFile(headers ...[]byte) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xD8})
	for _, h := range headers {
		buf.Write(h)
	}
	buf.Write(rawSegment(SOS, sosPayload()))
	buf.Write(testScan)
	return buf.Bytes()
}

// sampleJPEG returns a small 8-bit grayscale JPEG with a 72 dpi JFIF header,
// a comment and an Exif-like APP1 segment.
func sampleJPEG() []byte {
	return jpegFile(
		rawSegment(APP0, jfifPayload(1, 72, 72)),
		rawSegment(APP1, []byte("Exif\x00\x00MM\x00\x2A\x00\x00\x00\x08")),
		rawSegment(DQT, dqtPayload()),
		rawSegment(SOF0, framePayload(8, 1, 1, 1)),
		rawSegment(DHT, dhtPayload()),
		rawSegment(COM, []byte("created for tests")),
	)
}

// encodedJPEG returns the output of the standard library encoder for an
// RGB gradient, which has no JFIF segment of its own.
func encodedJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	m := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y, color.RGBA{R: uint8(x * 8), G: uint8(y * 8), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := stdjpeg.Encode(&buf, m, &stdjpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

// withJFIF inserts an APP0 JFIF segment directly after SOI.
func withJFIF(data []byte, unit byte, x, y uint16) []byte {
	out := append([]byte{}, data[:2]...)
	out = append(out, rawSegment(APP0, jfifPayload(unit, x, y))...)
	return append(out, data[2:]...)
}
