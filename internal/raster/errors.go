package raster

import "errors"

var (
	// ErrNotFound means the referenced band file does not resolve to any
	// openable raster.
	ErrNotFound = errors.New("raster not found")

	// ErrUnreadableFormat means the file exists but GDAL cannot decode it.
	ErrUnreadableFormat = errors.New("unreadable raster format")

	// ErrReprojection means the source and target grids cannot be related,
	// usually because one of them carries no CRS.
	ErrReprojection = errors.New("reprojection failed")
)
