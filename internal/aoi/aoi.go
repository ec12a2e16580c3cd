package aoi

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"
)

// AOI is an area-of-interest polygon loaded from a GeoJSON file. The file
// path is kept so it can be handed to GDAL as a cutline source.
type AOI struct {
	Path       string
	Geometries []orb.Geometry
}

// Load reads a GeoJSON file holding a FeatureCollection, a single Feature or
// a bare geometry and returns its polygonal geometries. Degenerate
// (zero-area) AOIs are rejected so a bad polygon fails the run up front
// instead of producing an empty crop.
func Load(path string) (*AOI, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read AOI file %s: %v", path, err)
	}

	geometries, err := parseGeometries(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse AOI file %s: %v", path, err)
	}
	if len(geometries) == 0 {
		return nil, fmt.Errorf("AOI file %s contains no geometries", path)
	}

	totalArea := 0.0
	for _, g := range geometries {
		_, area := planar.CentroidArea(g)
		totalArea += area
	}
	if totalArea <= 0 {
		return nil, fmt.Errorf("AOI file %s has zero area", path)
	}

	return &AOI{Path: path, Geometries: geometries}, nil
}

func parseGeometries(data []byte) ([]orb.Geometry, error) {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	switch probe.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, err
		}
		geometries := make([]orb.Geometry, 0, len(fc.Features))
		for _, feat := range fc.Features {
			geometries = append(geometries, feat.Geometry)
		}
		return geometries, nil
	case "Feature":
		feat, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, err
		}
		return []orb.Geometry{feat.Geometry}, nil
	case "":
		return nil, errors.New("missing geojson type")
	default:
		geom, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, err
		}
		return []orb.Geometry{geom.Geometry()}, nil
	}
}
