package pdf

import (
	"errors"
	"fmt"

	"github.com/roboco-io/jpeg2pdf/internal/ir"
)

// ErrUnsupportedDensity reports image density metadata that cannot be used
// to size a page.
var ErrUnsupportedDensity = errors.New("unsupported image density")

// PageSize computes the page size in default user-space units (1/72 inch)
// from the pixel dimensions and density of img. Results are rounded down.
// There is no fallback resolution: images without a usable density unit are
// rejected.
func PageSize(img *ir.ImageBlock) (width, height int64, err error) {
	d := img.Density
	w, h := uint64(img.Width), uint64(img.Height)
	dx, dy := uint64(d.X), uint64(d.Y)

	switch d.Unit {
	case ir.DensityDPI, ir.DensityDPCM:
		if dx == 0 || dy == 0 {
			return 0, 0, fmt.Errorf("%w: zero density %dx%d", ErrUnsupportedDensity, d.X, d.Y)
		}
	case ir.DensityNone:
		return 0, 0, fmt.Errorf("%w: no density unit specified, cannot size page", ErrUnsupportedDensity)
	default:
		return 0, 0, fmt.Errorf("%w: unknown density unit %d", ErrUnsupportedDensity, d.UnitCode)
	}

	var wpt, hpt uint64
	if d.Unit == ir.DensityDPI {
		wpt = w * 72 / dx
		hpt = h * 72 / dy
	} else {
		// 1 inch = 2.54 cm
		wpt = w * 7200 / (dx * 254)
		hpt = h * 7200 / (dy * 254)
	}

	if wpt == 0 || hpt == 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d pixels at %dx%d %s gives an empty %dx%d pt page",
			ErrUnsupportedDensity, w, h, dx, dy, d.Unit, wpt, hpt)
	}
	return int64(wpt), int64(hpt), nil
}
