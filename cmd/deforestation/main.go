package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/airbusgeo/godal"
	"github.com/forest-sentry/deforestation-cli/internal/discovery"
	"github.com/forest-sentry/deforestation-cli/internal/notification"
	"github.com/forest-sentry/deforestation-cli/internal/pipeline"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: error loading .env file: %v", err)
	}

	earlierDir := flag.String("before", "", "directory with the earlier date's band files (required)")
	laterDir := flag.String("after", "", "directory with the later date's band files (required)")
	earlierLabel := flag.String("before-label", "before", "label for the earlier date, used in output names")
	laterLabel := flag.String("after-label", "after", "label for the later date, used in output names")
	threshold := flag.Float64("threshold", pipeline.DefaultThreshold, "NDVI drop below which a pixel is flagged")
	aoiPath := flag.String("aoi", "", "GeoJSON area of interest to crop the scenes to (optional)")
	outputDir := flag.String("out", "", "output directory (default $OUTPUT_PATH or ./outputs)")
	quicklook := flag.Bool("quicklook", false, "also render a PNG quicklook of the change mask")
	flag.Parse()

	if *earlierDir == "" || *laterDir == "" {
		fmt.Fprintln(os.Stderr, "both -before and -after are required")
		flag.Usage()
		os.Exit(2)
	}

	godal.RegisterAll()

	result, err := pipeline.Run(pipeline.Config{
		EarlierDir:   *earlierDir,
		LaterDir:     *laterDir,
		EarlierLabel: *earlierLabel,
		LaterLabel:   *laterLabel,
		AOIPath:      *aoiPath,
		Threshold:    *threshold,
		OutputDir:    *outputDir,
		Quicklook:    *quicklook,
	})
	if err != nil {
		if notifyErr := notification.SendRunFailure(err.Error()); notifyErr != nil {
			log.Printf("Warning: failed to send failure notification: %v", notifyErr)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, discovery.ErrMissingBand) {
			os.Exit(2)
		}
		os.Exit(1)
	}

	summary := result.FormattedSummary()
	fmt.Println()
	fmt.Print(summary)
	fmt.Printf("Derived rasters written next to %s\n", result.MaskPath)

	if notifyErr := notification.SendRunSummary(summary); notifyErr != nil {
		log.Printf("Warning: failed to send summary notification: %v", notifyErr)
	}
}
