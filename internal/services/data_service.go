// Package services holds the thin application services between the
// pipeline and its outward surfaces.
package services

import (
	"sync"

	"salespipe/internal/operations"
)

// DataService hands the latest completed run to read-only consumers.
// Results are stored and served by reference; they are immutable once
// a run completes.
type DataService struct {
	mu     sync.RWMutex
	latest *operations.RunResult
}

// NewDataService creates an empty data service.
func NewDataService() *DataService {
	return &DataService{}
}

// SetResult publishes a completed run.
func (s *DataService) SetResult(result *operations.RunResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = result
}

// Latest returns the most recent run, or ok=false when no run has
// completed yet.
func (s *DataService) Latest() (*operations.RunResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.latest != nil
}
