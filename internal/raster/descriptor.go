package raster

import "math"

// TransformTolerance is the per-coefficient tolerance used when comparing
// geotransforms. Tile grids coming out of different processing baselines
// agree to well below a micrometre, so exact float comparison would only
// produce spurious reprojections.
const TransformTolerance = 1e-6

// Descriptor is the geometric identity of a raster: its pixel dimensions,
// the affine transform from pixel (col,row) to geographic coordinates, and
// the projection as an opaque WKT string.
type Descriptor struct {
	Width      int
	Height     int
	Transform  [6]float64
	Projection string
}

// Equal reports whether two descriptors identify the same pixel grid.
// Dimensions and projection must match exactly, the transform within
// TransformTolerance.
func (d Descriptor) Equal(other Descriptor) bool {
	if d.Width != other.Width || d.Height != other.Height {
		return false
	}
	if d.Projection != other.Projection {
		return false
	}
	for i := range d.Transform {
		if math.Abs(d.Transform[i]-other.Transform[i]) > TransformTolerance {
			return false
		}
	}
	return true
}

// PixelSize returns the absolute x and y pixel spacing in transform units.
func (d Descriptor) PixelSize() (float64, float64) {
	return math.Abs(d.Transform[1]), math.Abs(d.Transform[5])
}

// Bounds returns the geographic extent (xMin, yMin, xMax, yMax) covered by
// the grid. Assumes an axis-aligned transform, which is what every Sentinel-2
// product carries.
func (d Descriptor) Bounds() (float64, float64, float64, float64) {
	xMin := d.Transform[0]
	yMax := d.Transform[3]
	xMax := xMin + d.Transform[1]*float64(d.Width)
	yMin := yMax + d.Transform[5]*float64(d.Height)
	if yMin > yMax {
		yMin, yMax = yMax, yMin
	}
	if xMin > xMax {
		xMin, xMax = xMax, xMin
	}
	return xMin, yMin, xMax, yMax
}
