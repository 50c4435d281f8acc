package pdf

import (
	"crypto/md5"
	"fmt"

	pdflib "seehuhn.de/go/pdf"

	"github.com/roboco-io/jpeg2pdf/internal/ir"
)

// DefaultProducer is written to the Info dictionary when no producer is set.
const DefaultProducer = "jpeg2pdf"

// FilterDCTDecode marks image data that is stored as JPEG.
const FilterDCTDecode = "DCTDecode"

// Options controls document generation.
type Options struct {
	Version     string // PDF header version; DefaultVersion when empty
	Producer    string // Info /Producer unless the document names one
	Interpolate bool   // ask viewers to smooth the image when scaling
}

// DefaultOptions returns the default emitter options.
func DefaultOptions() Options {
	return Options{
		Version:  DefaultVersion,
		Producer: DefaultProducer,
	}
}

// Build creates a single-page document that paints the image of doc scaled
// to fill a page sized from the image density. The image data is embedded as
// is behind a DCTDecode filter.
func Build(doc *ir.Document, opts Options) (*Document, error) {
	if opts.Version == "" {
		opts.Version = DefaultVersion
	}
	if !ValidVersion(opts.Version) {
		return nil, fmt.Errorf("unsupported PDF version %q", opts.Version)
	}

	images := doc.Images()
	if len(doc.Pages) != 1 || len(images) != 1 {
		return nil, fmt.Errorf("expected exactly one image page, got %d pages", len(doc.Pages))
	}
	img := images[0]
	if !img.HasData() {
		return nil, fmt.Errorf("image %s has no data", img.ID)
	}
	if img.ColorSpace == "" {
		return nil, fmt.Errorf("image %s has no device color space", img.ID)
	}

	width, height, err := PageSize(img)
	if err != nil {
		return nil, err
	}

	producer := doc.Metadata.Producer
	if producer == "" {
		producer = opts.Producer
	}

	h := md5.New()
	h.Write(img.Data)
	h.Write([]byte(doc.Metadata.Title))

	return &Document{
		Version:     opts.Version,
		FileID:      h.Sum(nil),
		Width:       width,
		Height:      height,
		Image:       img,
		Interpolate: opts.Interpolate,
		Info: Info{
			Title:    doc.Metadata.Title,
			Author:   doc.Metadata.Author,
			Subject:  doc.Metadata.Subject,
			Creator:  doc.Metadata.Creator,
			Producer: producer,
			Created:  doc.Metadata.Created,
		},
	}, nil
}

// imageDict describes img as an image XObject whose data stays DCT encoded.
func imageDict(img *ir.ImageBlock, interpolate bool) pdflib.Dict {
	dict := pdflib.Dict{
		"Type":             pdflib.Name("XObject"),
		"Subtype":          pdflib.Name("Image"),
		"Width":            pdflib.Integer(img.Width),
		"Height":           pdflib.Integer(img.Height),
		"ColorSpace":       pdflib.Name(img.ColorSpace),
		"BitsPerComponent": pdflib.Integer(img.BitsPerComponent),
		"Filter":           pdflib.Name(FilterDCTDecode),
	}
	if interpolate {
		dict["Interpolate"] = pdflib.Boolean(true)
	}
	if img.ColorTransform != nil {
		dict["DecodeParms"] = pdflib.Dict{"ColorTransform": pdflib.Integer(*img.ColorTransform)}
	}
	if img.InvertCMYK {
		// Adobe CMYK JPEG는 반전된 값으로 저장된다
		decode := make(pdflib.Array, 0, 8)
		for range 4 {
			decode = append(decode, pdflib.Integer(1), pdflib.Integer(0))
		}
		dict["Decode"] = decode
	}
	return dict
}
