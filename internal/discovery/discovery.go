package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"sort"
	"strings"
)

// ErrMissingBand means a mandatory band file could not be located under the
// scene directory.
var ErrMissingBand = errors.New("mandatory band not found")

// ScenePaths are the band files located for one dated scene. SceneClass is
// optional; Red and NIR are mandatory.
type ScenePaths struct {
	Red        string
	NIR        string
	SceneClass string
}

// Pattern ladders, most specific first. Sentinel-2 L2A products name their
// 10m band files *_B04_10m.jp2; older L1C products drop the resolution
// suffix, and pre-transcoded scenes arrive as GeoTIFFs.
var (
	redPatterns = []string{"*B04*10m.jp2", "*B04*.jp2", "*B04*.tif"}
	nirPatterns = []string{"*B08*10m.jp2", "*B08*.jp2", "*B08*.tif"}
	sclPatterns = []string{"*SCL*20m.jp2", "*SCL*.jp2", "*SCL*.tif"}
	qaPatterns  = []string{"*QA60*60m.jp2", "*QA60*.jp2", "*QA60*.tif"}
)

// FindBands walks dir recursively and resolves the red and near-infrared
// band files plus, when present, a scene-classification band. SCL is
// preferred over QA60; when neither exists the scene is still usable and a
// warning is logged.
func FindBands(dir string) (ScenePaths, error) {
	red, err := findOne(dir, redPatterns)
	if err != nil {
		return ScenePaths{}, err
	}
	if red == "" {
		return ScenePaths{}, fmt.Errorf("%w: no red (B04) file under %s", ErrMissingBand, dir)
	}

	nir, err := findOne(dir, nirPatterns)
	if err != nil {
		return ScenePaths{}, err
	}
	if nir == "" {
		return ScenePaths{}, fmt.Errorf("%w: no near-infrared (B08) file under %s", ErrMissingBand, dir)
	}

	scl, err := findOne(dir, sclPatterns)
	if err != nil {
		return ScenePaths{}, err
	}
	if scl == "" {
		scl, err = findOne(dir, qaPatterns)
		if err != nil {
			return ScenePaths{}, err
		}
	}
	if scl == "" {
		log.Printf("Warning: no SCL or QA60 band under %s, continuing with B04/B08 only", dir)
	}

	return ScenePaths{Red: red, NIR: nir, SceneClass: scl}, nil
}

// findOne tries each pattern in order against every file name under dir and
// returns the lexicographically first hit of the first pattern that matches
// anything.
func findOne(dir string, patterns []string) (string, error) {
	for _, pattern := range patterns {
		var hits []string
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			ok, matchErr := filepath.Match(strings.ToLower(pattern), strings.ToLower(d.Name()))
			if matchErr != nil {
				return matchErr
			}
			if ok {
				hits = append(hits, path)
			}
			return nil
		})
		if err != nil {
			return "", fmt.Errorf("failed to scan %s: %v", dir, err)
		}
		if len(hits) > 0 {
			sort.Strings(hits)
			return hits[0], nil
		}
	}
	return "", nil
}
