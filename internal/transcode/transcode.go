package transcode

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/airbusgeo/godal"
	"github.com/forest-sentry/deforestation-cli/internal/aoi"
	"github.com/forest-sentry/deforestation-cli/internal/raster"
)

// Needed reports whether a source band file still has to be converted before
// the loader can treat it as a plain GeoTIFF grid. A crop request forces the
// conversion even for files already in GeoTIFF form.
func Needed(path string, cut *aoi.AOI) bool {
	return cut != nil || strings.EqualFold(filepath.Ext(path), ".jp2")
}

// ToGTiff converts the raster at srcPath into a GeoTIFF at dstPath,
// preserving the source grid. When cut is non-nil the output is cropped to
// the AOI cutline instead.
func ToGTiff(srcPath, dstPath string, cut *aoi.AOI) error {
	if _, err := os.Stat(srcPath); err != nil {
		return fmt.Errorf("%w: %s", raster.ErrNotFound, srcPath)
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %v", err)
	}

	src, err := godal.Open(srcPath)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", raster.ErrUnreadableFormat, srcPath, err)
	}
	defer src.Close()

	var out *godal.Dataset
	if cut != nil {
		out, err = godal.Warp(dstPath, []*godal.Dataset{src}, []string{
			"-of", "GTiff",
			"-cutline", cut.Path,
			"-crop_to_cutline",
		})
		if err != nil {
			return fmt.Errorf("%w: failed to crop %s to AOI: %v", raster.ErrReprojection, srcPath, err)
		}
	} else {
		out, err = src.Translate(dstPath, []string{"-of", "GTiff"})
		if err != nil {
			return fmt.Errorf("%w: failed to convert %s: %v", raster.ErrUnreadableFormat, srcPath, err)
		}
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %v", dstPath, err)
	}
	return nil
}
