package usecase

import (
	"sync"
	"time"

	"StockPulse/internal/domain/models"
)

// Snapshot is the in-memory copy of the most recent completed run, served by
// the HTTP layer. Writers replace it wholesale; readers get a consistent view.
type Snapshot struct {
	mu      sync.RWMutex
	runID   string
	asOf    time.Time
	records []*models.StockRecord
}

// NewSnapshot creates an empty snapshot store.
func NewSnapshot() *Snapshot { return &Snapshot{} }

// Replace installs the records of a completed run.
func (s *Snapshot) Replace(runID string, records []*models.StockRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runID = runID
	s.asOf = time.Now().UTC()
	s.records = records
}

// Records returns up to max records of the latest run together with the
// run id, total count, and completion time. max <= 0 means all.
func (s *Snapshot) Records(max int) (string, time.Time, []*models.StockRecord, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := len(s.records)
	n := total
	if max > 0 && max < n {
		n = max
	}
	out := make([]*models.StockRecord, n)
	copy(out, s.records[:n])
	return s.runID, s.asOf, out, total
}

// Empty reports whether no run has completed yet.
func (s *Snapshot) Empty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records) == 0
}
