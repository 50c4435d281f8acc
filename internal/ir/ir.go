// Package ir defines the Intermediate Representation between the JPEG parser
// and the PDF emitter. The parser fills it in; the emitter only reads it.
package ir

import "time"

// Document represents the intermediate representation of a converted image.
type Document struct {
	Version  string   `json:"version"`
	Metadata Metadata `json:"metadata"`
	Pages    []Page   `json:"pages"`
}

// Metadata contains document metadata.
type Metadata struct {
	Title    string    `json:"title,omitempty"`
	Author   string    `json:"author,omitempty"`
	Subject  string    `json:"subject,omitempty"`
	Creator  string    `json:"creator,omitempty"`
	Producer string    `json:"producer,omitempty"`
	Created  time.Time `json:"created,omitzero"`
}

// Page is a single page showing one image scaled to fill it.
type Page struct {
	Image *ImageBlock `json:"image,omitempty"`
}

// NewDocument creates a new IR document with the current version.
func NewDocument() *Document {
	return &Document{
		Version: "1.0",
		Pages:   make([]Page, 0, 1),
	}
}

// AddImagePage appends a page showing img.
func (d *Document) AddImagePage(img *ImageBlock) {
	d.Pages = append(d.Pages, Page{Image: img})
}

// Images returns the images of all pages in page order.
func (d *Document) Images() []*ImageBlock {
	images := make([]*ImageBlock, 0, len(d.Pages))
	for _, p := range d.Pages {
		if p.Image != nil {
			images = append(images, p.Image)
		}
	}
	return images
}
