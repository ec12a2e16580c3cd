package raster

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/airbusgeo/godal"
)

// WriteGTiff persists a band as a single Float32 GeoTIFF with NaN no-data,
// carrying the descriptor's transform and projection.
func WriteGTiff(b *Band, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %v", err)
	}

	ds, err := godal.Create(godal.GTiff, path, 1, godal.Float32, b.Desc.Width, b.Desc.Height,
		godal.CreationOption("COMPRESS=DEFLATE"))
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", path, err)
	}

	if err := ds.SetGeoTransform(b.Desc.Transform); err != nil {
		ds.Close()
		return fmt.Errorf("failed to set geotransform on %s: %v", path, err)
	}
	if b.Desc.Projection != "" {
		if err := ds.SetProjection(b.Desc.Projection); err != nil {
			ds.Close()
			return fmt.Errorf("failed to set projection on %s: %v", path, err)
		}
	}

	band := ds.Bands()[0]
	if err := band.SetNoData(math.NaN()); err != nil {
		ds.Close()
		return fmt.Errorf("failed to set nodata on %s: %v", path, err)
	}
	if err := band.Write(0, 0, flatten(b.Data), b.Desc.Width, b.Desc.Height); err != nil {
		ds.Close()
		return fmt.Errorf("failed to write raster data to %s: %v", path, err)
	}

	if err := ds.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %v", path, err)
	}
	return nil
}
