package buffer

import (
	"crypto/sha256"
	"fmt"
	"sort"

	"flight-arrival-regrouper/internal/model"
)

// DestinationBuffer groups flattened records by destination code, keeping
// the first occurrence of each record within a destination.
type DestinationBuffer struct {
	groups map[string]*group
}

type group struct {
	records    []model.FlattenedRecord
	seen       map[[sha256.Size]byte]struct{}
	duplicates int
}

// GroupStats describes one destination after deduplication.
type GroupStats struct {
	Destination string
	Records     int
	Duplicates  int
}

// NewDestinationBuffer creates an empty buffer.
func NewDestinationBuffer() *DestinationBuffer {
	return &DestinationBuffer{
		groups: make(map[string]*group),
	}
}

// Push adds rec to its destination group. It returns false if an identical
// record was already present in that group.
func (b *DestinationBuffer) Push(rec model.ArrivalRecord) (bool, error) {
	canonical, err := rec.Record.Canonical()
	if err != nil {
		return false, fmt.Errorf("failed to encode record for %s: %w", rec.Destination, err)
	}
	key := sha256.Sum256(canonical)

	g, ok := b.groups[rec.Destination]
	if !ok {
		g = &group{seen: make(map[[sha256.Size]byte]struct{})}
		b.groups[rec.Destination] = g
	}

	if _, dup := g.seen[key]; dup {
		g.duplicates++
		return false, nil
	}

	g.seen[key] = struct{}{}
	g.records = append(g.records, rec.Record)
	return true, nil
}

// Destinations returns the destination codes in sorted order.
func (b *DestinationBuffer) Destinations() []string {
	codes := make([]string, 0, len(b.groups))
	for code := range b.groups {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Records returns the unique records for code in first-seen order.
func (b *DestinationBuffer) Records(code string) []model.FlattenedRecord {
	g, ok := b.groups[code]
	if !ok {
		return nil
	}
	return g.records
}

// Count returns the number of unique records across all destinations.
func (b *DestinationBuffer) Count() int {
	n := 0
	for _, g := range b.groups {
		n += len(g.records)
	}
	return n
}

// Duplicates returns the number of records dropped as duplicates.
func (b *DestinationBuffer) Duplicates() int {
	n := 0
	for _, g := range b.groups {
		n += g.duplicates
	}
	return n
}

// Stats returns per-destination counts sorted by destination code.
func (b *DestinationBuffer) Stats() []GroupStats {
	codes := b.Destinations()
	stats := make([]GroupStats, 0, len(codes))
	for _, code := range codes {
		g := b.groups[code]
		stats = append(stats, GroupStats{
			Destination: code,
			Records:     len(g.records),
			Duplicates:  g.duplicates,
		})
	}
	return stats
}

// IsEmpty returns true if no record has been buffered.
func (b *DestinationBuffer) IsEmpty() bool {
	return len(b.groups) == 0
}
