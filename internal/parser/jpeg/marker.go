// Package jpeg reads the marker-segment structure of JPEG files and writes it
// back, optionally without the informational segments.
//
// Only the header segments in front of the first start-of-scan marker are
// interpreted. Everything from the start-of-scan segment onwards is carried as
// an opaque byte slice and copied verbatim.
package jpeg

import "fmt"

// Marker is the second byte of a JPEG marker; the 0xFF prefix is implied.
type Marker uint8

// 마커 코드 (ITU T.81 Table B.1)
const (
	TEM   Marker = 0x01
	SOF0  Marker = 0xC0 // SOFn = SOF0+n, n = 0-15 excluding 4, 8 and 12
	SOF1  Marker = 0xC1
	SOF2  Marker = 0xC2
	SOF3  Marker = 0xC3
	DHT   Marker = 0xC4
	JPG   Marker = 0xC8
	DAC   Marker = 0xCC
	RST0  Marker = 0xD0 // RSTn = RST0+n, n = 0-7
	RST7  Marker = 0xD7
	SOI   Marker = 0xD8
	EOI   Marker = 0xD9
	SOS   Marker = 0xDA
	DQT   Marker = 0xDB
	DNL   Marker = 0xDC
	DRI   Marker = 0xDD
	DHP   Marker = 0xDE
	EXP   Marker = 0xDF
	APP0  Marker = 0xE0 // APPn = APP0+n, n = 0-15
	APP1  Marker = 0xE1
	APP2  Marker = 0xE2
	APP14 Marker = 0xEE
	APP15 Marker = 0xEF
	JPG0  Marker = 0xF0 // JPGn = JPG0+n, n = 0-13
	JPG13 Marker = 0xFD
	COM   Marker = 0xFE
)

// markerPrefix is the byte in front of every marker code.
const markerPrefix = 0xFF

// IsSOF reports whether m is one of the start-of-frame variants.
func (m Marker) IsSOF() bool {
	if m < SOF0 || m > SOF0+0xF {
		return false
	}
	return m != DHT && m != JPG && m != DAC
}

// IsAPP reports whether m is an application segment marker.
func (m Marker) IsAPP() bool {
	return m >= APP0 && m <= APP15
}

// IsRST reports whether m is a restart marker.
func (m Marker) IsRST() bool {
	return m >= RST0 && m <= RST7
}

// HasLength reports whether m is followed by a two-byte length field.
// SOI, EOI, RSTn and TEM stand alone.
func (m Marker) HasLength() bool {
	switch {
	case m == SOI, m == EOI, m == TEM, m.IsRST():
		return false
	}
	return true
}

// Name returns the mnemonic of m, e.g. "SOF2" or "APP1".
func (m Marker) Name() string {
	switch {
	case m.IsSOF():
		return fmt.Sprintf("SOF%d", m-SOF0)
	case m.IsRST():
		return fmt.Sprintf("RST%d", m-RST0)
	case m.IsAPP():
		return fmt.Sprintf("APP%d", m-APP0)
	case m >= JPG0 && m <= JPG13:
		return fmt.Sprintf("JPG%d", m-JPG0)
	}
	if name, ok := markerNames[m]; ok {
		return name
	}
	return fmt.Sprintf("RES%02X", uint8(m))
}

// String implements fmt.Stringer.
func (m Marker) String() string {
	return fmt.Sprintf("%s(0xFF%02X)", m.Name(), uint8(m))
}

var markerNames = map[Marker]string{
	TEM: "TEM",
	DHT: "DHT",
	JPG: "JPG",
	DAC: "DAC",
	SOI: "SOI",
	EOI: "EOI",
	SOS: "SOS",
	DQT: "DQT",
	DNL: "DNL",
	DRI: "DRI",
	DHP: "DHP",
	EXP: "EXP",
	COM: "COM",
}
