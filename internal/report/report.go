package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/forest-sentry/deforestation-cli/internal/ndvi"
	"github.com/gocarina/gocsv"
)

// Record is one completed run in the summary CSV.
type Record struct {
	RanAt        time.Time `csv:"ran_at"`
	EarlierLabel string    `csv:"earlier"`
	LaterLabel   string    `csv:"later"`
	Threshold    float64   `csv:"threshold"`
	ndvi.Summary
}

// Append adds a record to the run-history CSV at path, creating the file
// with a header row on first use.
func Append(path string, record Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %v", err)
	}

	var records []Record
	if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
		if err := gocsv.UnmarshalBytes(data, &records); err != nil {
			return fmt.Errorf("failed to parse existing report %s: %v", path, err)
		}
	}
	records = append(records, record)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %v", path, err)
	}
	defer file.Close()

	if err := gocsv.MarshalFile(&records, file); err != nil {
		return fmt.Errorf("failed to write report %s: %v", path, err)
	}
	return nil
}
