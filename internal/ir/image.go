package ir

// ColorSpace is the device color space an image is declared in.
type ColorSpace string

const (
	ColorSpaceGray ColorSpace = "DeviceGray"
	ColorSpaceRGB  ColorSpace = "DeviceRGB"
	ColorSpaceCMYK ColorSpace = "DeviceCMYK"
)

// DensityUnit is the unit of an image's pixel density.
type DensityUnit string

const (
	DensityNone  DensityUnit = "none"
	DensityDPI   DensityUnit = "dpi"
	DensityDPCM  DensityUnit = "dpcm"
	DensityOther DensityUnit = "other"
)

// Density is the pixel density recorded in the image file.
type Density struct {
	Unit     DensityUnit `json:"unit"`
	UnitCode uint8       `json:"unit_code"` // raw code from the file
	X        uint16      `json:"x"`
	Y        uint16      `json:"y"`
}

// ImageBlock is an image embedded in its original compressed form.
type ImageBlock struct {
	ID               string     `json:"id"`                         // resource name, e.g. "Im0"
	Width            uint32     `json:"width"`                      // width in pixels
	Height           uint32     `json:"height"`                     // height in pixels
	BitsPerComponent uint8      `json:"bits_per_component"`
	ColorSpace       ColorSpace `json:"color_space"`
	Density          Density    `json:"density"`
	ColorTransform   *int       `json:"color_transform,omitempty"` // explicit DCT color transform, if known
	InvertCMYK       bool       `json:"invert_cmyk,omitempty"`     // Adobe-style inverted CMYK samples
	Format           string     `json:"format"`                    // jpeg
	Size             int        `json:"size"`                      // len(Data)
	Data             []byte     `json:"-"`                         // compressed image data (not serialized)
}

// NewImage creates a new image block with the given ID.
func NewImage(id string) *ImageBlock {
	return &ImageBlock{
		ID: id,
	}
}

// SetDimensions sets the width and height of the image.
func (img *ImageBlock) SetDimensions(width, height uint32) {
	img.Width = width
	img.Height = height
}

// SetData stores the compressed data and records its size.
func (img *ImageBlock) SetData(data []byte) {
	img.Data = data
	img.Size = len(data)
}

// HasData returns true if the image has raw data loaded.
func (img *ImageBlock) HasData() bool {
	return len(img.Data) > 0
}
