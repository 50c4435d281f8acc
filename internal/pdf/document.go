// Package pdf builds minimal PDF documents that show one pass-through image
// per page. Objects, cross-reference data and the trailer are written by
// seehuhn.de/go/pdf.
package pdf

import (
	"fmt"
	"io"
	"time"

	pdflib "seehuhn.de/go/pdf"

	"github.com/roboco-io/jpeg2pdf/internal/ir"
)

// DefaultVersion is the PDF header version written when none is configured.
const DefaultVersion = "1.5"

// SupportedVersions lists the header versions the writer accepts.
var SupportedVersions = []string{"1.3", "1.4", "1.5", "1.6", "1.7", "2.0"}

var versions = map[string]pdflib.Version{
	"1.3": pdflib.V1_3,
	"1.4": pdflib.V1_4,
	"1.5": pdflib.V1_5,
	"1.6": pdflib.V1_6,
	"1.7": pdflib.V1_7,
	"2.0": pdflib.V2_0,
}

// ValidVersion reports whether v is a supported PDF header version.
func ValidVersion(v string) bool {
	_, ok := versions[v]
	return ok
}

func versionString(v pdflib.Version) string {
	for s, lv := range versions {
		if lv == v {
			return s
		}
	}
	return ""
}

// Info holds the document information entries. Empty fields are omitted.
type Info struct {
	Title    string
	Author   string
	Subject  string
	Creator  string
	Producer string
	Created  time.Time
}

func (in Info) dict() *pdflib.Info {
	return &pdflib.Info{
		Title:        in.Title,
		Author:       in.Author,
		Subject:      in.Subject,
		Creator:      in.Creator,
		Producer:     in.Producer,
		CreationDate: pdflib.Date(in.Created),
	}
}

// Document is a single page that paints one image over its whole area.
type Document struct {
	Version     string
	FileID      []byte // first and second /ID entry; omitted when empty
	Width       int64  // page size in default user-space units
	Height      int64
	Image       *ir.ImageBlock
	Interpolate bool
	Info        Info
}

// WriteTo serializes the document: catalog, page tree, page, resources,
// content stream, image XObject and the Info dictionary.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	v, ok := versions[d.Version]
	if !ok {
		return 0, fmt.Errorf("unsupported PDF version %q", d.Version)
	}
	if d.Image == nil || !d.Image.HasData() {
		return 0, fmt.Errorf("document has no image data")
	}

	cw := &countingWriter{w: w}
	opt := &pdflib.WriterOptions{}
	if len(d.FileID) > 0 {
		opt.ID = [][]byte{d.FileID, d.FileID}
	}

	out, err := pdflib.NewWriter(cw, v, opt)
	if err != nil {
		return cw.n, cw.cause(err)
	}
	if err := d.writeObjects(out); err != nil {
		return cw.n, cw.cause(err)
	}
	// 카탈로그, Info, 상호 참조, 트레일러는 Close에서 기록된다
	if err := out.Close(); err != nil {
		return cw.n, cw.cause(fmt.Errorf("failed to finish PDF: %w", err))
	}
	return cw.n, cw.err
}

func (d *Document) writeObjects(out *pdflib.Writer) error {
	img := d.Image

	pagesRef := out.Alloc()
	pageRef := out.Alloc()
	resourcesRef := out.Alloc()
	contentsRef := out.Alloc()
	imageRef := out.Alloc()

	if err := writeStream(out, imageRef, imageDict(img, d.Interpolate), img.Data); err != nil {
		return fmt.Errorf("failed to write image %s: %w", img.ID, err)
	}

	contents := fmt.Sprintf("q %d 0 0 %d 0 0 cm /%s Do Q", d.Width, d.Height, img.ID)
	if err := writeStream(out, contentsRef, pdflib.Dict{}, []byte(contents)); err != nil {
		return fmt.Errorf("failed to write content stream: %w", err)
	}

	err := out.Put(resourcesRef, pdflib.Dict{
		"ProcSet": pdflib.Array{
			pdflib.Name("PDF"), pdflib.Name("Text"),
			pdflib.Name("ImageB"), pdflib.Name("ImageC"), pdflib.Name("ImageI"),
		},
		"XObject": pdflib.Dict{pdflib.Name(img.ID): imageRef},
	})
	if err != nil {
		return fmt.Errorf("failed to write resources: %w", err)
	}

	err = out.Put(pageRef, pdflib.Dict{
		"Type":      pdflib.Name("Page"),
		"Parent":    pagesRef,
		"Resources": resourcesRef,
		"MediaBox": pdflib.Array{
			pdflib.Integer(0), pdflib.Integer(0),
			pdflib.Integer(d.Width), pdflib.Integer(d.Height),
		},
		"Contents": contentsRef,
	})
	if err != nil {
		return fmt.Errorf("failed to write page: %w", err)
	}

	err = out.Put(pagesRef, pdflib.Dict{
		"Type":  pdflib.Name("Pages"),
		"Kids":  pdflib.Array{pageRef},
		"Count": pdflib.Integer(1),
	})
	if err != nil {
		return fmt.Errorf("failed to write page tree: %w", err)
	}

	meta := out.GetMeta()
	if meta.Catalog == nil {
		meta.Catalog = &pdflib.Catalog{}
	}
	meta.Catalog.Pages = pagesRef
	meta.Info = d.Info.dict()
	return nil
}

// writeStream writes data unchanged as the body of the stream object ref.
// Any /Filter entry in dict describes data as it already is.
func writeStream(out *pdflib.Writer, ref pdflib.Reference, dict pdflib.Dict, data []byte) error {
	stm, err := out.OpenStream(ref, dict)
	if err != nil {
		return err
	}
	if _, err := stm.Write(data); err != nil {
		stm.Close()
		return err
	}
	return stm.Close()
}

// countingWriter counts bytes and remembers the first write error so callers
// see it unwrapped.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (w *countingWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.n += int64(n)
	if err != nil && w.err == nil {
		w.err = err
	}
	return n, err
}

func (w *countingWriter) cause(err error) error {
	if w.err != nil {
		return w.err
	}
	return err
}
