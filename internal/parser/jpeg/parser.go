package jpeg

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/roboco-io/jpeg2pdf/internal/ir"
	"github.com/roboco-io/jpeg2pdf/internal/parser"
	"golang.org/x/text/unicode/norm"
)

// ImageID is the resource name of the image on its page.
const ImageID = "Im0"

// Parser parses a JPEG file into an IR document with a single image page.
type Parser struct {
	path    string
	file    *os.File
	options parser.Options

	// Parsed data
	image *Image
}

var _ parser.Parser = (*Parser)(nil)

func init() {
	if err := parser.Register(parser.FormatJPEG, open); err != nil {
		panic(err)
	}
}

func open(path string, opts parser.Options) (parser.Parser, error) {
	p, err := New(path, opts)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// New creates a new JPEG parser for the given file path.
func New(path string, opts parser.Options) (*Parser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open JPEG file: %w", err)
	}

	return &Parser{
		path:    path,
		file:    f,
		options: opts,
	}, nil
}

// Parse implements the Parser interface. The input file is closed as soon as
// it has been read, whether or not parsing succeeds.
func (p *Parser) Parse() (*ir.Document, error) {
	if p.file == nil {
		return nil, fmt.Errorf("parser for %s is closed", p.path)
	}

	img, err := Read(bufio.NewReader(p.file))
	p.Close()
	if err != nil {
		return nil, err
	}
	if err := img.Validate(); err != nil {
		return nil, err
	}

	if p.options.RemoveOptionalMetadata {
		img.RemoveOptional()
	}
	p.image = img

	data, err := img.Bytes(false)
	if err != nil {
		return nil, fmt.Errorf("failed to rewrite JPEG stream: %w", err)
	}

	doc := ir.NewDocument()
	doc.Metadata.Title = titleFromPath(p.path)
	doc.AddImagePage(img.ImageBlock(data))

	return doc, nil
}

// titleFromPath derives the document title from the input file name. macOS
// stores file names decomposed (NFD); the title is composed to NFC.
func titleFromPath(path string) string {
	base := filepath.Base(path)
	return norm.NFC.String(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Image returns the descriptor produced by the last successful Parse.
func (p *Parser) Image() *Image {
	return p.image
}

// Close releases the input file. It is safe to call more than once.
func (p *Parser) Close() error {
	if p.file == nil {
		return nil
	}
	err := p.file.Close()
	p.file = nil
	return err
}

// ImageBlock describes img as an IR image holding the given stream data.
func (img *Image) ImageBlock(data []byte) *ir.ImageBlock {
	block := ir.NewImage(ImageID)
	block.SetDimensions(img.Width, img.Height)
	block.BitsPerComponent = img.BitDepth
	block.Format = "jpeg"
	block.SetData(data)

	switch img.ColorSpace {
	case ColorSpaceGrayscale:
		block.ColorSpace = ir.ColorSpaceGray
	case ColorSpaceRGB:
		block.ColorSpace = ir.ColorSpaceRGB
	case ColorSpaceCMYK:
		block.ColorSpace = ir.ColorSpaceCMYK
	}

	block.Density = ir.Density{
		Unit:     densityUnit(img.DensityUnit),
		UnitCode: uint8(img.DensityUnit),
		X:        img.DensityX,
		Y:        img.DensityY,
	}

	// APP14 Adobe 세그먼트가 있으면 색 변환을 명시한다
	if img.Adobe != nil && img.Components >= 3 {
		transform := 0
		if img.Adobe.Transform != 0 {
			transform = 1
		}
		block.ColorTransform = &transform
		block.InvertCMYK = img.ColorSpace == ColorSpaceCMYK
	}

	return block
}

func densityUnit(u DensityUnit) ir.DensityUnit {
	switch u {
	case DensityNone:
		return ir.DensityNone
	case DensityDotsPerInch:
		return ir.DensityDPI
	case DensityDotsPerCentimeter:
		return ir.DensityDPCM
	default:
		return ir.DensityOther
	}
}
