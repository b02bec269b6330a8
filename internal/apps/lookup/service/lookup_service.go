package service

import (
	"context"

	"spam-shield/internal/apps/lookup/models"
	"spam-shield/internal/common/apperr"
	"spam-shield/pkg/phone"

	"golang.org/x/sync/errgroup"
)

// ReportCounter reads the spam report count of a normalized number
type ReportCounter interface {
	LookupReportCount(ctx context.Context, e164 string) (int64, error)
}

// LookupService answers "who is this number" questions
type LookupService interface {
	LookupNumber(ctx context.Context, rawPhone string) (*models.LookupResponse, error)
}

// lookupService implements LookupService
type lookupService struct {
	normalizer phone.Normalizer
	metadata   MetadataLookup
	reports    ReportCounter
}

// NewLookupService creates a new instance of LookupService
func NewLookupService(normalizer phone.Normalizer, metadata MetadataLookup, reports ReportCounter) LookupService {
	return &lookupService{
		normalizer: normalizer,
		metadata:   metadata,
		reports:    reports,
	}
}

// LookupNumber normalizes the number, then fetches remote metadata and the
// report count concurrently. Only a report store failure is an error.
func (s *lookupService) LookupNumber(ctx context.Context, rawPhone string) (*models.LookupResponse, error) {
	info, err := s.normalizer.Parse(rawPhone)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidPhoneNumber, err)
	}

	var (
		md    models.Metadata
		count int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		md = s.metadata.Lookup(gctx, info.E164)
		return nil
	})
	g.Go(func() error {
		n, err := s.reports.LookupReportCount(gctx, info.E164)
		if err != nil {
			return err
		}
		count = n
		return nil
	})
	if err := g.Wait(); err != nil {
		if apperr.CodeOf(err) == "" {
			err = apperr.Wrap(apperr.CodeStorage, err)
		}
		return nil, err
	}

	return &models.LookupResponse{
		Phone:          info.E164,
		Carrier:        info.Carrier,
		Region:         info.Region,
		TimeZone:       info.TimeZone,
		Metadata:       md,
		ReportCount:    count,
		ReportedAsSpam: count > 0,
	}, nil
}
