package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_ConcurrentCounters(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				m.AddRecordsRead(2)
				m.IncrementFilesProcessed()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1600), m.GetRecordsRead())
	assert.Equal(t, int64(800), m.GetFilesProcessed())
}

func TestSnapshot_Transfer(t *testing.T) {
	m := NewMetrics()
	m.SetFilesDiscovered(3)
	m.AddRecordsRead(4)
	m.SetRecordsWritten(3)
	m.SetDuplicatesRemoved(1)

	s := m.GetSnapshot()
	assert.Equal(t, int64(3), s.FilesDiscovered)
	assert.False(t, s.AllTransferred())
	assert.InDelta(t, 0.75, s.WrittenRatio(), 1e-9)
	assert.Equal(t, s.RecordsRead, s.RecordsWritten+s.DuplicatesRemoved)
}

func TestSnapshot_NothingRead(t *testing.T) {
	s := NewMetrics().GetSnapshot()

	assert.True(t, s.AllTransferred())
	assert.Equal(t, 1.0, s.WrittenRatio())
}
