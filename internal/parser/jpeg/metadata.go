package jpeg

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

var (
	jfifSignature  = []byte("JFIF\x00")
	adobeSignature = []byte("Adobe")
)

const (
	// SOF: P(1) Y(2) X(2) Nf(1), then Nf * (C, HV, Tq)
	frameHeaderSize    = 6
	frameComponentSize = 3

	// APP0 JFIF: signature(5) version(2) units(1) Xdensity(2) Ydensity(2) ...
	jfifMinSize = 12

	// APP14 Adobe: signature(5) version(2) flags0(2) flags1(2) transform(1)
	adobeMinSize = 12
)

// AdobeInfo holds the fields of an APP14 "Adobe" segment.
type AdobeInfo struct {
	Version   uint16
	Transform uint8 // 0: none (RGB or CMYK), 1: YCbCr, 2: YCCK
}

// classifier fills an Image from the leading segments. The first frame
// header and the first JFIF and Adobe segments win.
type classifier struct {
	img   *Image
	frame bool
	jfif  bool
}

func (c *classifier) classify(seg Segment) error {
	switch {
	case seg.Marker.IsSOF():
		if c.frame {
			return nil
		}
		c.frame = true
		return c.img.parseFrame(seg)

	case seg.Marker == APP0:
		if c.jfif || !bytes.HasPrefix(seg.Payload, jfifSignature) {
			return nil
		}
		c.jfif = true
		return c.img.parseJFIF(seg.Payload)

	case seg.Marker == APP14:
		if c.img.Adobe == nil && bytes.HasPrefix(seg.Payload, adobeSignature) &&
			len(seg.Payload) >= adobeMinSize {
			c.img.Adobe = &AdobeInfo{
				Version:   binary.BigEndian.Uint16(seg.Payload[5:7]),
				Transform: seg.Payload[11],
			}
		}
	}
	return nil
}

// parseFrame reads precision, dimensions and component count from a
// start-of-frame payload.
func (img *Image) parseFrame(seg Segment) error {
	p := seg.Payload
	if len(p) < frameHeaderSize {
		return fmt.Errorf("%w: %s payload is %d bytes, need at least %d",
			ErrMalformedStructure, seg.Marker.Name(), len(p), frameHeaderSize)
	}

	img.BitDepth = p[0]
	img.Height = uint32(binary.BigEndian.Uint16(p[1:3]))
	img.Width = uint32(binary.BigEndian.Uint16(p[3:5]))
	img.Components = p[5]

	if need := frameHeaderSize + frameComponentSize*int(img.Components); len(p) < need {
		return fmt.Errorf("%w: %s with %d components needs %d payload bytes, has %d",
			ErrMalformedStructure, seg.Marker.Name(), img.Components, need, len(p))
	}
	if img.Width == 0 {
		return fmt.Errorf("%w: %s declares zero width", ErrMalformedStructure, seg.Marker.Name())
	}

	img.ColorSpace = ColorSpaceFromComponents(img.Components)
	return nil
}

// parseJFIF reads the density fields of an APP0 JFIF payload.
func (img *Image) parseJFIF(p []byte) error {
	if len(p) < jfifMinSize {
		return fmt.Errorf("%w: JFIF payload is %d bytes, need at least %d",
			ErrMalformedStructure, len(p), jfifMinSize)
	}
	img.DensityUnit = DensityUnit(p[7])
	img.DensityX = binary.BigEndian.Uint16(p[8:10])
	img.DensityY = binary.BigEndian.Uint16(p[10:12])
	return nil
}
