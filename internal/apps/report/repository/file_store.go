package repository

import (
	"context"
	"sync"
	"time"

	"spam-shield/internal/apps/report/models"
	"spam-shield/pkg/yamlfile"
)

type reportFile struct {
	Reports map[string]models.SpamReport `yaml:"reports"`
}

// fileReportStore persists counts to a YAML file, rewriting it on every report.
// Mutual exclusion is per process only.
type fileReportStore struct {
	mu   sync.Mutex
	path string
	doc  reportFile
}

// NewFileReportStore loads (or starts) the ledger file at path
func NewFileReportStore(path string) (ReportStore, error) {
	s := &fileReportStore{path: path}
	if err := yamlfile.Load(path, &s.doc); err != nil {
		return nil, err
	}
	if s.doc.Reports == nil {
		s.doc.Reports = make(map[string]models.SpamReport)
	}
	return s, nil
}

func (s *fileReportStore) Increment(_ context.Context, phone string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	prev, existed := s.doc.Reports[phone]
	next := prev
	if !existed {
		next = models.SpamReport{Phone: phone, CreatedAt: now}
	}
	next.ReportCount++
	next.UpdatedAt = now

	s.doc.Reports[phone] = next
	if err := yamlfile.Save(s.path, s.doc); err != nil {
		if existed {
			s.doc.Reports[phone] = prev
		} else {
			delete(s.doc.Reports, phone)
		}
		return 0, err
	}
	return next.ReportCount, nil
}

func (s *fileReportStore) Get(_ context.Context, phone string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Reports[phone].ReportCount, nil
}
