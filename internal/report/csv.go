package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jszwec/csvutil"

	"flight-arrival-regrouper/internal/buffer"
)

// Row is one destination line of the summary report.
type Row struct {
	Destination string `csv:"destination"`
	Records     int    `csv:"records"`
	Duplicates  int    `csv:"duplicates"`
	File        string `csv:"file"`
}

// Rows pairs per-destination stats with the files written for them.
// pathFor maps a destination code to its output file.
func Rows(stats []buffer.GroupStats, pathFor func(code string) string) []Row {
	rows := make([]Row, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, Row{
			Destination: s.Destination,
			Records:     s.Records,
			Duplicates:  s.Duplicates,
			File:        filepath.Base(pathFor(s.Destination)),
		})
	}
	return rows
}

// WriteCSV writes rows to path, creating parent directories.
func WriteCSV(path string, rows []Row) error {
	data, err := csvutil.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}
