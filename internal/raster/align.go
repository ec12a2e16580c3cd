package raster

import (
	"fmt"
	"math"
	"strconv"

	"github.com/airbusgeo/godal"
)

// Align resamples src onto the grid described by target using bilinear
// interpolation and returns the result as a new band. Pixels falling outside
// the source extent come back as NaN. When the source already lives on the
// target grid the source band is returned unchanged. Inputs are never
// mutated.
func Align(src *Band, target Descriptor) (*Band, error) {
	if src.Desc.Equal(target) {
		return src, nil
	}
	if src.Desc.Projection == "" || target.Projection == "" {
		return nil, fmt.Errorf("%w: missing CRS metadata", ErrReprojection)
	}

	srcDS, err := toMemDataset(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReprojection, err)
	}
	defer srcDS.Close()

	xMin, yMin, xMax, yMax := target.Bounds()
	switches := []string{
		"-of", "MEM",
		"-t_srs", target.Projection,
		"-te", formatFloat(xMin), formatFloat(yMin), formatFloat(xMax), formatFloat(yMax),
		"-ts", strconv.Itoa(target.Width), strconv.Itoa(target.Height),
		"-r", "bilinear",
		"-srcnodata", "nan",
		"-dstnodata", "nan",
	}

	warped, err := godal.Warp("", []*godal.Dataset{srcDS}, switches)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReprojection, err)
	}
	defer warped.Close()

	out, err := readDataset(warped, "warped grid")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReprojection, err)
	}

	// gdalwarp derives the output transform from -te/-ts; snap the
	// descriptor to the requested target so downstream equality holds
	// bit-for-bit.
	out.Desc = target
	return out, nil
}

// toMemDataset materializes an in-memory band as a single-band MEM dataset
// so GDAL's warper can consume it.
func toMemDataset(b *Band) (*godal.Dataset, error) {
	ds, err := godal.Create(godal.Memory, "", 1, godal.Float64, b.Desc.Width, b.Desc.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to create MEM dataset: %v", err)
	}
	if err := ds.SetGeoTransform(b.Desc.Transform); err != nil {
		ds.Close()
		return nil, fmt.Errorf("failed to set geotransform: %v", err)
	}
	if b.Desc.Projection != "" {
		if err := ds.SetProjection(b.Desc.Projection); err != nil {
			ds.Close()
			return nil, fmt.Errorf("failed to set projection: %v", err)
		}
	}
	band := ds.Bands()[0]
	if err := band.SetNoData(math.NaN()); err != nil {
		ds.Close()
		return nil, fmt.Errorf("failed to set nodata: %v", err)
	}
	if err := band.Write(0, 0, flatten(b.Data), b.Desc.Width, b.Desc.Height); err != nil {
		ds.Close()
		return nil, fmt.Errorf("failed to write raster data: %v", err)
	}
	return ds, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
