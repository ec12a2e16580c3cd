package raster

import (
	"fmt"
	"math"
	"os"

	"github.com/airbusgeo/godal"
)

// LoadBand reads the first band of the raster at path into memory at native
// resolution, together with its grid descriptor. Source no-data values are
// rewritten to NaN.
func LoadBand(path string) (*Band, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	ds, err := godal.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableFormat, path, err)
	}
	defer ds.Close()

	return readDataset(ds, path)
}

func readDataset(ds *godal.Dataset, path string) (*Band, error) {
	structure := ds.Structure()
	width, height := structure.SizeX, structure.SizeY
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %s has empty extent", ErrUnreadableFormat, path)
	}
	if structure.NBands < 1 {
		return nil, fmt.Errorf("%w: %s has no raster bands", ErrUnreadableFormat, path)
	}

	transform, err := ds.GeoTransform()
	if err != nil {
		return nil, fmt.Errorf("%w: %s has no geotransform: %v", ErrUnreadableFormat, path, err)
	}

	band := ds.Bands()[0]
	buf := make([]float64, width*height)
	if err := band.Read(0, 0, buf, width, height); err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrUnreadableFormat, path, err)
	}

	if noData, ok := band.NoData(); ok && !math.IsNaN(noData) {
		for i, v := range buf {
			if v == noData {
				buf[i] = math.NaN()
			}
		}
	}

	return &Band{
		Data: gridFromBuffer(buf, height, width),
		Desc: Descriptor{
			Width:      width,
			Height:     height,
			Transform:  transform,
			Projection: ds.Projection(),
		},
	}, nil
}
