package metrics

import (
	"sync/atomic"
	"time"
)

// Metrics collects the counters of a single regrouping run. Counters are
// safe to update from concurrent flatten workers.
type Metrics struct {
	// File metrics
	filesDiscovered atomic.Int64
	filesProcessed  atomic.Int64
	filesSkipped    atomic.Int64

	// Entry metrics
	entriesSkipped atomic.Int64

	// Record metrics
	recordsRead       atomic.Int64
	recordsWritten    atomic.Int64
	duplicatesRemoved atomic.Int64

	// Output metrics
	outputFiles atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	return &Metrics{
		startTime: time.Now(),
	}
}

// File metrics methods

func (m *Metrics) SetFilesDiscovered(n int) {
	m.filesDiscovered.Store(int64(n))
}

func (m *Metrics) IncrementFilesProcessed() {
	m.filesProcessed.Add(1)
}

func (m *Metrics) IncrementFilesSkipped() {
	m.filesSkipped.Add(1)
}

func (m *Metrics) GetFilesDiscovered() int64 {
	return m.filesDiscovered.Load()
}

func (m *Metrics) GetFilesProcessed() int64 {
	return m.filesProcessed.Load()
}

func (m *Metrics) GetFilesSkipped() int64 {
	return m.filesSkipped.Load()
}

// Entry metrics methods

func (m *Metrics) AddEntriesSkipped(n int) {
	m.entriesSkipped.Add(int64(n))
}

func (m *Metrics) GetEntriesSkipped() int64 {
	return m.entriesSkipped.Load()
}

// Record metrics methods

func (m *Metrics) AddRecordsRead(n int) {
	m.recordsRead.Add(int64(n))
}

func (m *Metrics) SetRecordsWritten(n int) {
	m.recordsWritten.Store(int64(n))
}

func (m *Metrics) SetDuplicatesRemoved(n int) {
	m.duplicatesRemoved.Store(int64(n))
}

func (m *Metrics) GetRecordsRead() int64 {
	return m.recordsRead.Load()
}

func (m *Metrics) GetRecordsWritten() int64 {
	return m.recordsWritten.Load()
}

func (m *Metrics) GetDuplicatesRemoved() int64 {
	return m.duplicatesRemoved.Load()
}

// Output metrics methods

func (m *Metrics) IncrementOutputFiles() {
	m.outputFiles.Add(1)
}

func (m *Metrics) GetOutputFiles() int64 {
	return m.outputFiles.Load()
}

func (m *Metrics) GetElapsed() time.Duration {
	return time.Since(m.startTime)
}

// Snapshot represents a point-in-time snapshot of all metrics
type Snapshot struct {
	FilesDiscovered int64 `json:"files_discovered"`
	FilesProcessed  int64 `json:"files_processed"`
	FilesSkipped    int64 `json:"files_skipped"`

	EntriesSkipped int64 `json:"entries_skipped"`

	RecordsRead       int64 `json:"records_read"`
	RecordsWritten    int64 `json:"records_written"`
	DuplicatesRemoved int64 `json:"duplicates_removed"`

	OutputFiles int64         `json:"output_files"`
	Elapsed     time.Duration `json:"elapsed"`
}

// GetSnapshot returns a snapshot of all current metrics
func (m *Metrics) GetSnapshot() Snapshot {
	return Snapshot{
		FilesDiscovered:   m.GetFilesDiscovered(),
		FilesProcessed:    m.GetFilesProcessed(),
		FilesSkipped:      m.GetFilesSkipped(),
		EntriesSkipped:    m.GetEntriesSkipped(),
		RecordsRead:       m.GetRecordsRead(),
		RecordsWritten:    m.GetRecordsWritten(),
		DuplicatesRemoved: m.GetDuplicatesRemoved(),
		OutputFiles:       m.GetOutputFiles(),
		Elapsed:           m.GetElapsed(),
	}
}

// AllTransferred reports whether every record read was written.
func (s Snapshot) AllTransferred() bool {
	return s.RecordsRead == s.RecordsWritten
}

// WrittenRatio returns written/read, or 1 when nothing was read.
func (s Snapshot) WrittenRatio() float64 {
	if s.RecordsRead == 0 {
		return 1
	}
	return float64(s.RecordsWritten) / float64(s.RecordsRead)
}
