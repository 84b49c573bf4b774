package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"flight-arrival-regrouper/internal/buffer"
	"flight-arrival-regrouper/internal/metrics"
	"flight-arrival-regrouper/internal/report"
	"flight-arrival-regrouper/internal/sink"
	"flight-arrival-regrouper/internal/source"
	"flight-arrival-regrouper/pkg/logger"
)

// Options configures a regrouping run.
type Options struct {
	InputDir     string
	InputSuffix  string
	OutputDir    string
	OutputSuffix string
	Indent       int

	// Workers > 1 flattens input files concurrently. Output is identical
	// to a sequential run.
	Workers        int
	FilesPerSecond float64
	Burst          int

	// ReportPath, when set, receives a per-destination CSV summary.
	ReportPath string
}

// Summary is the outcome of a run.
type Summary struct {
	metrics.Snapshot

	RunID        string
	Destinations []buffer.GroupStats
	OutputPaths  []string
	FileErrors   []error
	EntryErrors  []error
}

// Regrouper reads flight search results and rewrites them grouped by
// destination airport.
type Regrouper struct {
	opts     Options
	logger   *logger.Logger
	throttle *Throttle
}

// NewRegrouper creates a regrouper. A nil logger falls back to an INFO
// console logger.
func NewRegrouper(opts Options, log *logger.Logger) *Regrouper {
	if log == nil {
		log = logger.New("info")
	}
	if opts.InputSuffix == "" {
		opts.InputSuffix = ".json"
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	return &Regrouper{
		opts:     opts,
		logger:   log,
		throttle: NewThrottle(opts.FilesPerSecond, opts.Burst),
	}
}

type flattenResult struct {
	res *source.FileResult
	err error
}

// Run discovers, flattens, deduplicates and writes. Only an invalid input
// directory, a cancelled context or a failed write end the run early;
// unreadable files and bad entries are reported and skipped. Every error
// returned has already been logged.
func (r *Regrouper) Run(ctx context.Context) (*Summary, error) {
	runID := uuid.NewString()
	log := r.logger.With("run", runID)

	summary, err := r.run(ctx, log, runID)
	if err != nil && !errors.Is(err, source.ErrInvalidInputDirectory) {
		log.Error("Run failed: %v", err)
	}
	return summary, err
}

func (r *Regrouper) run(ctx context.Context, log *logger.Logger, runID string) (*Summary, error) {
	m := metrics.NewMetrics()

	files, err := source.Discover(r.opts.InputDir, r.opts.InputSuffix)
	if err != nil {
		log.Error("Input directory '%s' does not exist or is not a directory.", r.opts.InputDir)
		return nil, err
	}
	m.SetFilesDiscovered(len(files))
	log.Info("Found %d files in %s.", len(files), r.opts.InputDir)
	if r.throttle.Enabled() {
		log.Info("Throttling input to %g files per second (burst %d)", r.opts.FilesPerSecond, r.opts.Burst)
	}

	results, err := r.flattenAll(ctx, files)
	if err != nil {
		return nil, err
	}

	summary := &Summary{RunID: runID}
	buf := buffer.NewDestinationBuffer()
	for _, fr := range results {
		if fr.err != nil {
			r.reportFileError(log, fr.err)
			summary.FileErrors = append(summary.FileErrors, fr.err)
			m.IncrementFilesSkipped()
			continue
		}

		for _, skipped := range fr.res.Skipped {
			r.reportEntryError(log, skipped)
			summary.EntryErrors = append(summary.EntryErrors, skipped)
		}
		m.AddEntriesSkipped(len(fr.res.Skipped))
		m.AddRecordsRead(len(fr.res.Records))
		m.IncrementFilesProcessed()

		for _, rec := range fr.res.Records {
			if _, err := buf.Push(rec); err != nil {
				return nil, err
			}
		}
		log.Debug("Processed %s: %d flights, %d entries skipped", fr.res.Path, len(fr.res.Records), len(fr.res.Skipped))
	}

	if buf.IsEmpty() {
		log.Warn("No flights found in %s; no arrival files will be written.", r.opts.InputDir)
	}
	m.SetRecordsWritten(buf.Count())
	m.SetDuplicatesRemoved(buf.Duplicates())

	writer := sink.NewArrivalWriter(r.opts.OutputDir, r.opts.OutputSuffix, r.opts.Indent)
	if err := writer.Prepare(); err != nil {
		return nil, err
	}

	for _, code := range buf.Destinations() {
		records := buf.Records(code)
		if len(records) == 0 {
			continue
		}

		path, err := writer.Write(code, records)
		if err != nil {
			return nil, err
		}
		m.IncrementOutputFiles()
		summary.OutputPaths = append(summary.OutputPaths, path)
		log.Debug("Wrote %d flights to %s", len(records), path)
	}

	summary.Destinations = buf.Stats()
	if r.opts.ReportPath != "" {
		if err := report.WriteCSV(r.opts.ReportPath, report.Rows(summary.Destinations, writer.Path)); err != nil {
			return nil, err
		}
		log.Info("Wrote summary report to %s", r.opts.ReportPath)
	}

	summary.Snapshot = m.GetSnapshot()
	r.reportTotals(log, summary.Snapshot)

	return summary, nil
}

// flattenAll flattens every file, keeping results in input order so the
// merge below does not depend on worker scheduling.
func (r *Regrouper) flattenAll(ctx context.Context, files []string) ([]flattenResult, error) {
	results := make([]flattenResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for i, path := range files {
		g.Go(func() error {
			if err := r.throttle.Wait(ctx); err != nil {
				return err
			}

			res, err := source.FlattenFile(path)
			results[i] = flattenResult{res: res, err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("run cancelled: %w", err)
	}

	return results, nil
}

func (r *Regrouper) reportFileError(log *logger.Logger, err error) {
	var fe *source.FileError
	if !errors.As(err, &fe) {
		log.Error("Error processing file: %v", err)
		return
	}

	switch {
	case errors.Is(err, source.ErrMalformedInput):
		log.Error("Failed to parse JSON in file %s. Skipping...", fe.Path)
	case errors.Is(err, source.ErrMissingField):
		log.Warn("'flights_data' key not found in file %s. Skipping...", fe.Path)
	default:
		log.Error("Error processing file %s: %v", fe.Path, fe.Err)
	}
}

func (r *Regrouper) reportEntryError(log *logger.Logger, err *source.EntryError) {
	if errors.Is(err, source.ErrMissingDestination) {
		log.Warn("Missing 'destination_iota' in file %s (entry %d). Skipping entry...", err.Path, err.Index)
		return
	}
	log.Warn("Invalid 'destination_iota' in file %s (entry %d): %v. Skipping entry...", err.Path, err.Index, err.Kind)
}

func (r *Regrouper) reportTotals(log *logger.Logger, s metrics.Snapshot) {
	log.Info("Total flights read: %d", s.RecordsRead)
	log.Info("Total flights written: %d", s.RecordsWritten)
	if s.AllTransferred() {
		log.Info("All flights successfully transferred.")
		return
	}
	log.Info("Processed %d unique flights out of %d read flights (%.1f%%, %d duplicates removed).",
		s.RecordsWritten, s.RecordsRead, s.WrittenRatio()*100, s.DuplicatesRemoved)
}
