package jpeg

import (
	"fmt"
	"io"
)

// ColorSpace is the color space implied by the frame header.
type ColorSpace int

const (
	ColorSpaceOther ColorSpace = iota
	ColorSpaceGrayscale
	ColorSpaceRGB
	ColorSpaceCMYK
)

// ColorSpaceFromComponents maps a frame component count to a color space.
// Three-component images may be stored as YCbCr or RGB and four-component
// images as CMYK or YCCK; either way the decoded result is RGB or CMYK.
func ColorSpaceFromComponents(n uint8) ColorSpace {
	switch n {
	case 1:
		return ColorSpaceGrayscale
	case 3:
		return ColorSpaceRGB
	case 4:
		return ColorSpaceCMYK
	default:
		return ColorSpaceOther
	}
}

// String returns the name of the color space.
func (c ColorSpace) String() string {
	switch c {
	case ColorSpaceGrayscale:
		return "Grayscale"
	case ColorSpaceRGB:
		return "RGB"
	case ColorSpaceCMYK:
		return "CMYK"
	default:
		return "Other"
	}
}

// DensityUnit is the JFIF density unit code. Codes other than the three
// defined ones are preserved as is.
type DensityUnit uint8

const (
	DensityNone              DensityUnit = 0 // aspect ratio only
	DensityDotsPerInch       DensityUnit = 1
	DensityDotsPerCentimeter DensityUnit = 2
)

// Known reports whether u is one of the defined unit codes.
func (u DensityUnit) Known() bool {
	return u <= DensityDotsPerCentimeter
}

// String returns a short name for the unit.
func (u DensityUnit) String() string {
	switch u {
	case DensityNone:
		return "none"
	case DensityDotsPerInch:
		return "dpi"
	case DensityDotsPerCentimeter:
		return "dpcm"
	default:
		return fmt.Sprintf("other(%d)", uint8(u))
	}
}

// Image describes a parsed JPEG file: the metadata needed to place it on a
// page, the header segments in file order and the untouched scan data.
//
// An Image is produced once by Read. The only mutation callers should make is
// RemoveOptional.
type Image struct {
	Width      uint32
	Height     uint32
	BitDepth   uint8 // sample precision from the frame header
	Components uint8
	ColorSpace ColorSpace

	DensityUnit DensityUnit
	DensityX    uint16
	DensityY    uint16

	// Adobe is set when an APP14 "Adobe" segment was found.
	Adobe *AdobeInfo

	// LeadingSegments are the segments between SOI and the first SOS, in
	// file order. SOI, EOI and SOS itself are not included.
	LeadingSegments []Segment

	// ScanData starts with the first SOS segment and runs to the end of the
	// input, including EOI and anything after it. It is never interpreted.
	ScanData []byte
}

// Read parses a JPEG stream into an Image. The reader is consumed to the end.
func Read(r io.Reader) (*Image, error) {
	s, err := NewScanner(r)
	if err != nil {
		return nil, err
	}

	c := &classifier{img: &Image{DensityUnit: DensityNone}}
	var sos Segment
	for {
		seg, err := s.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if seg.Marker == SOS {
			sos = seg
			continue
		}
		if err := c.classify(seg); err != nil {
			return nil, err
		}
		c.img.LeadingSegments = append(c.img.LeadingSegments, seg)
	}

	if !c.frame {
		return nil, fmt.Errorf("%w: no start-of-frame segment before SOS", ErrMissingSegment)
	}

	rest, err := io.ReadAll(s.Remaining())
	if err != nil {
		return nil, fmt.Errorf("failed to read scan data: %w", err)
	}
	scan := make([]byte, 0, sos.Size()+len(rest))
	scan = appendSegment(scan, sos)
	c.img.ScanData = append(scan, rest...)

	return c.img, nil
}

// Validate checks that the image can be embedded without transcoding: 8-bit
// samples, a height declared in the frame header and a grayscale, RGB or CMYK
// color space.
func (img *Image) Validate() error {
	if img.BitDepth != 8 {
		return fmt.Errorf("%w: sample precision %d bits, only 8 is supported",
			ErrUnsupported, img.BitDepth)
	}
	if img.Height == 0 {
		// 높이가 DNL 세그먼트로 지연된 경우
		return fmt.Errorf("%w: image height deferred to a DNL segment", ErrUnsupported)
	}
	if img.ColorSpace == ColorSpaceOther {
		return fmt.Errorf("%w: %d color components, only 1 (Grayscale), 3 (RGB) and 4 (CMYK) are supported",
			ErrUnsupported, img.Components)
	}
	return nil
}

// RemoveOptional drops every leading segment that is not required for
// decoding. The slice is filtered in place.
func (img *Image) RemoveOptional() {
	kept := img.LeadingSegments[:0]
	for _, seg := range img.LeadingSegments {
		if seg.Required {
			kept = append(kept, seg)
		}
	}
	img.LeadingSegments = kept
}

// Segment returns the first leading segment with marker m.
func (img *Image) Segment(m Marker) (Segment, bool) {
	for _, seg := range img.LeadingSegments {
		if seg.Marker == m {
			return seg, true
		}
	}
	return Segment{}, false
}
