package repository

import (
	"context"
	"sync"
)

// memoryReportStore keeps counts in process memory.
// It is only safe for single-process deployments.
type memoryReportStore struct {
	mu     sync.Mutex
	counts map[string]int64
}

// NewMemoryReportStore creates an empty in-memory ReportStore
func NewMemoryReportStore() ReportStore {
	return &memoryReportStore{counts: make(map[string]int64)}
}

func (s *memoryReportStore) Increment(_ context.Context, phone string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[phone]++
	return s.counts[phone], nil
}

func (s *memoryReportStore) Get(_ context.Context, phone string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts[phone], nil
}
