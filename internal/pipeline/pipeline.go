package pipeline

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/forest-sentry/deforestation-cli/internal/aoi"
	"github.com/forest-sentry/deforestation-cli/internal/discovery"
	"github.com/forest-sentry/deforestation-cli/internal/ndvi"
	"github.com/forest-sentry/deforestation-cli/internal/properties"
	"github.com/forest-sentry/deforestation-cli/internal/raster"
	"github.com/forest-sentry/deforestation-cli/internal/render"
	"github.com/forest-sentry/deforestation-cli/internal/report"
	"github.com/forest-sentry/deforestation-cli/internal/transcode"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultThreshold is the NDVI drop below which a pixel counts as likely
// vegetation loss.
const DefaultThreshold = -0.2

// Config are the explicit inputs of one change-detection run.
type Config struct {
	EarlierDir   string
	LaterDir     string
	EarlierLabel string
	LaterLabel   string
	AOIPath      string
	Threshold    float64
	OutputDir    string
	Quicklook    bool
}

// Scene is one processed acquisition date.
type Scene struct {
	Label     string
	Bands     discovery.ScenePaths
	Index     *raster.Band
	IndexPath string
}

// Result collects everything a presentation layer may want to show.
type Result struct {
	Earlier                Scene
	Later                  Scene
	ReprojectedEarlierPath string
	DiffPath               string
	MaskPath               string
	QuicklookPath          string
	Summary                ndvi.Summary
	Change                 *ndvi.Change
}

// Run executes the full change-detection pipeline: locate and load the two
// dates' bands, compute NDVI per date, bring both dates onto the later
// date's grid, difference and threshold them, and account the flagged area.
func Run(cfg Config) (*Result, error) {
	if cfg.OutputDir == "" {
		cfg.OutputDir = properties.OutputPath()
	}
	if cfg.EarlierLabel == "" {
		cfg.EarlierLabel = "earlier"
	}
	if cfg.LaterLabel == "" {
		cfg.LaterLabel = "later"
	}

	var cut *aoi.AOI
	if cfg.AOIPath != "" {
		loaded, err := aoi.Load(cfg.AOIPath)
		if err != nil {
			return nil, err
		}
		cut = loaded
		fmt.Println("AOI loaded, scenes will be cropped to the polygon")
	}

	bar := progressbar.Default(6, "Detecting vegetation change")

	// The two dates are independent until differencing; process them
	// concurrently.
	var earlier, later Scene
	var group errgroup.Group
	group.Go(func() error {
		scene, err := processScene(cfg.EarlierDir, cfg.EarlierLabel, cfg.OutputDir, cut)
		if err != nil {
			return err
		}
		earlier = scene
		bar.Add(1)
		return nil
	})
	group.Go(func() error {
		scene, err := processScene(cfg.LaterDir, cfg.LaterLabel, cfg.OutputDir, cut)
		if err != nil {
			return err
		}
		later = scene
		bar.Add(1)
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Earlier: earlier, Later: later}

	// Bring the earlier index onto the later date's grid before
	// differencing. Keep the resampled copy on disk next to the other
	// products when alignment was needed.
	alignedEarlier := earlier.Index
	if !earlier.Index.Desc.Equal(later.Index.Desc) {
		resampled, err := raster.Align(earlier.Index, later.Index.Desc)
		if err != nil {
			return nil, fmt.Errorf("failed to align %s onto %s grid: %w", earlier.Label, later.Label, err)
		}
		alignedEarlier = resampled
		result.ReprojectedEarlierPath = filepath.Join(cfg.OutputDir,
			fmt.Sprintf("NDVI_%s_on_%s_grid.tif", earlier.Label, later.Label))
		if err := raster.WriteGTiff(resampled, result.ReprojectedEarlierPath); err != nil {
			return nil, err
		}
	}
	bar.Add(1)

	change, err := ndvi.Detect(alignedEarlier, later.Index, cfg.Threshold)
	if err != nil {
		return nil, err
	}
	result.Change = change
	bar.Add(1)

	result.DiffPath = filepath.Join(cfg.OutputDir,
		fmt.Sprintf("NDVI_diff_%s_minus_%s.tif", later.Label, earlier.Label))
	if err := raster.WriteGTiff(change.Diff, result.DiffPath); err != nil {
		return nil, err
	}
	result.MaskPath = filepath.Join(cfg.OutputDir,
		fmt.Sprintf("change_mask_%s_minus_%s.tif", later.Label, earlier.Label))
	maskBand := &raster.Band{Data: raster.BoolsToGrid(change.Mask), Desc: later.Index.Desc}
	if err := raster.WriteGTiff(maskBand, result.MaskPath); err != nil {
		return nil, err
	}
	bar.Add(1)

	result.Summary = ndvi.AccountArea(change, later.Index.Desc)

	if err := report.Append(filepath.Join(cfg.OutputDir, "runs.csv"), report.Record{
		RanAt:        time.Now().UTC(),
		EarlierLabel: earlier.Label,
		LaterLabel:   later.Label,
		Threshold:    cfg.Threshold,
		Summary:      result.Summary,
	}); err != nil {
		return nil, err
	}

	if cfg.Quicklook {
		result.QuicklookPath = filepath.Join(cfg.OutputDir,
			fmt.Sprintf("quicklook_%s_minus_%s.png", later.Label, earlier.Label))
		if err := render.Quicklook(change, later.Index.Data, result.QuicklookPath); err != nil {
			return nil, err
		}
	}
	bar.Add(1)

	return result, nil
}

// processScene resolves one date's band files, converts them to GeoTIFF when
// necessary, loads them, reconciles their grids and computes the NDVI
// raster.
func processScene(dir, label, outputDir string, cut *aoi.AOI) (Scene, error) {
	bands, err := discovery.FindBands(dir)
	if err != nil {
		return Scene{}, err
	}
	fmt.Printf("[%s] red band: %s\n", label, bands.Red)
	fmt.Printf("[%s] nir band: %s\n", label, bands.NIR)
	if bands.SceneClass != "" {
		fmt.Printf("[%s] scene classification: %s\n", label, bands.SceneClass)
	}

	redPath, err := prepareBand(bands.Red, "B04", label, outputDir, cut)
	if err != nil {
		return Scene{}, err
	}
	nirPath, err := prepareBand(bands.NIR, "B08", label, outputDir, cut)
	if err != nil {
		return Scene{}, err
	}

	red, err := raster.LoadBand(redPath)
	if err != nil {
		return Scene{}, err
	}
	nir, err := raster.LoadBand(nirPath)
	if err != nil {
		return Scene{}, err
	}

	// The red band's grid is the reference for the date; B08 is natively
	// 10m like B04, but mixed-resolution inputs show up as soon as a scene
	// was assembled from different product levels.
	if !nir.Desc.Equal(red.Desc) {
		nir, err = raster.Align(nir, red.Desc)
		if err != nil {
			return Scene{}, fmt.Errorf("failed to align %s nir band onto red grid: %w", label, err)
		}
	}

	index := &raster.Band{Data: ndvi.Calculate(nir.Data, red.Data), Desc: red.Desc}
	indexPath := filepath.Join(outputDir, fmt.Sprintf("NDVI_%s.tif", label))
	if err := raster.WriteGTiff(index, indexPath); err != nil {
		return Scene{}, err
	}

	return Scene{Label: label, Bands: bands, Index: index, IndexPath: indexPath}, nil
}

// prepareBand returns a loadable GeoTIFF path for a discovered band file,
// transcoding JP2 sources (and cropping to the AOI) into the output
// directory first.
func prepareBand(srcPath, bandName, label, outputDir string, cut *aoi.AOI) (string, error) {
	if !transcode.Needed(srcPath, cut) {
		return srcPath, nil
	}
	dstPath := filepath.Join(outputDir, fmt.Sprintf("%s_%s.tif", bandName, label))
	if err := transcode.ToGTiff(srcPath, dstPath, cut); err != nil {
		return "", err
	}
	return dstPath, nil
}

// FormattedSummary renders the area accounting for terminal output, with
// thousands separators and two decimal places.
func (r *Result) FormattedSummary() string {
	p := message.NewPrinter(language.English)
	var sb strings.Builder
	p.Fprintf(&sb, "Total valid area: %.2f ha\n", r.Summary.ValidHa)
	p.Fprintf(&sb, "Likely vegetation loss: %.2f ha\n", r.Summary.FlaggedHa)
	if math.IsNaN(r.Summary.FlaggedPct) {
		sb.WriteString("Loss percentage: undefined (no valid pixels)\n")
	} else {
		p.Fprintf(&sb, "Loss percentage: %.2f%%\n", r.Summary.FlaggedPct)
	}
	return sb.String()
}
