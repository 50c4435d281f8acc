package pdf

import (
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"time"

	pdflib "seehuhn.de/go/pdf"
)

// Summary describes the first page of a PDF file and the image it paints.
type Summary struct {
	Version string
	FileID  []byte
	Pages   int64
	Width   int64 // MediaBox of the first page
	Height  int64
	Image   ImageSummary
	Info    Info
}

// ImageSummary holds the image XObject entries this package writes, and the
// stream data as stored in the file.
type ImageSummary struct {
	Name             string
	Width            int64
	Height           int64
	ColorSpace       string
	BitsPerComponent int64
	Filter           string
	ColorTransform   *int64
	Decode           []int64
	Interpolate      bool
	Data             []byte
}

// ReadFile reads the PDF file at path. See Read.
func ReadFile(path string) (*Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read locates the first page through the cross-reference data of r and
// returns its size together with the first image XObject in its resources.
func Read(r io.ReadSeeker) (*Summary, error) {
	in, err := pdflib.NewReader(r, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer in.Close()

	meta := in.GetMeta()
	s := &Summary{Version: versionString(meta.Version)}
	if len(meta.ID) > 0 {
		s.FileID = meta.ID[0]
	}
	if meta.Info != nil {
		s.Info = Info{
			Title:    meta.Info.Title,
			Author:   meta.Info.Author,
			Subject:  meta.Info.Subject,
			Creator:  meta.Info.Creator,
			Producer: meta.Info.Producer,
			Created:  time.Time(meta.Info.CreationDate),
		}
	}
	if meta.Catalog == nil {
		return nil, fmt.Errorf("PDF has no catalog")
	}

	pages, err := pdflib.GetDict(in, meta.Catalog.Pages)
	if err != nil {
		return nil, fmt.Errorf("failed to read page tree: %w", err)
	}
	count, err := pdflib.GetInteger(in, pages["Count"])
	if err != nil {
		return nil, fmt.Errorf("failed to read page count: %w", err)
	}
	s.Pages = int64(count)

	kids, err := pdflib.GetArray(in, pages["Kids"])
	if err != nil {
		return nil, fmt.Errorf("failed to read page tree: %w", err)
	}
	if len(kids) == 0 {
		return nil, fmt.Errorf("PDF has no pages")
	}
	page, err := pdflib.GetDict(in, kids[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read page: %w", err)
	}

	box, err := integers(in, page["MediaBox"])
	if err != nil || len(box) != 4 {
		return nil, fmt.Errorf("invalid MediaBox %v: %v", page["MediaBox"], err)
	}
	s.Width, s.Height = box[2]-box[0], box[3]-box[1]

	resources, err := pdflib.GetDict(in, page["Resources"])
	if err != nil {
		return nil, fmt.Errorf("failed to read resources: %w", err)
	}
	xobjects, err := pdflib.GetDict(in, resources["XObject"])
	if err != nil {
		return nil, fmt.Errorf("failed to read XObjects: %w", err)
	}
	if len(xobjects) == 0 {
		return nil, fmt.Errorf("page has no image")
	}
	name := slices.Sorted(maps.Keys(xobjects))[0]

	s.Image, err = readImage(in, xobjects[name])
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", name, err)
	}
	s.Image.Name = string(name)

	return s, nil
}

func readImage(in *pdflib.Reader, obj pdflib.Object) (ImageSummary, error) {
	var img ImageSummary

	stm, err := pdflib.GetStream(in, obj)
	if err != nil {
		return img, err
	}
	if stm == nil {
		return img, fmt.Errorf("not a stream")
	}
	dict := stm.Dict

	width, err := pdflib.GetInteger(in, dict["Width"])
	if err != nil {
		return img, err
	}
	height, err := pdflib.GetInteger(in, dict["Height"])
	if err != nil {
		return img, err
	}
	bpc, err := pdflib.GetInteger(in, dict["BitsPerComponent"])
	if err != nil {
		return img, err
	}
	cs, err := pdflib.GetName(in, dict["ColorSpace"])
	if err != nil {
		return img, err
	}
	img.Width, img.Height = int64(width), int64(height)
	img.BitsPerComponent = int64(bpc)
	img.ColorSpace = string(cs)

	if err := img.readFilter(in, dict); err != nil {
		return img, err
	}
	if dict["Decode"] != nil {
		if img.Decode, err = integers(in, dict["Decode"]); err != nil {
			return img, err
		}
	}
	if b, ok := dict["Interpolate"].(pdflib.Boolean); ok {
		img.Interpolate = bool(b)
	}

	img.Data, err = io.ReadAll(stm.R)
	if err != nil {
		return img, fmt.Errorf("failed to read stream data: %w", err)
	}
	return img, nil
}

// readFilter reads a single filter, given as a name or a one-element array,
// and its ColorTransform parameter.
func (img *ImageSummary) readFilter(in *pdflib.Reader, dict pdflib.Dict) error {
	filter, err := pdflib.Resolve(in, dict["Filter"])
	if err != nil {
		return err
	}
	parms, err := pdflib.Resolve(in, dict["DecodeParms"])
	if err != nil {
		return err
	}
	if a, ok := filter.(pdflib.Array); ok && len(a) == 1 {
		filter = a[0]
		if p, ok := parms.(pdflib.Array); ok && len(p) == 1 {
			parms = p[0]
		}
	}
	if name, ok := filter.(pdflib.Name); ok {
		img.Filter = string(name)
	}

	p, err := pdflib.GetDict(in, parms)
	if err != nil {
		return err
	}
	if p["ColorTransform"] != nil {
		ct, err := pdflib.GetInteger(in, p["ColorTransform"])
		if err != nil {
			return err
		}
		v := int64(ct)
		img.ColorTransform = &v
	}
	return nil
}

func integers(in *pdflib.Reader, obj pdflib.Object) ([]int64, error) {
	a, err := pdflib.GetArray(in, obj)
	if err != nil {
		return nil, err
	}
	out := make([]int64, 0, len(a))
	for _, o := range a {
		v, err := pdflib.GetInteger(in, o)
		if err != nil {
			return nil, err
		}
		out = append(out, int64(v))
	}
	return out, nil
}
