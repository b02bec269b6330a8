package service

import (
	"context"
	"errors"

	"spam-shield/internal/apps/report/models"
	"spam-shield/internal/apps/report/repository"
	"spam-shield/internal/common/apperr"
	"spam-shield/internal/common/logger"
	"spam-shield/internal/common/metrics"
	"spam-shield/pkg/phone"
	"spam-shield/pkg/secure"
)

// ReportService defines business logic for the spam report ledger
type ReportService interface {
	ReportNumber(ctx context.Context, rawPhone string) (*models.ReportResponse, error)
	GetReportCount(ctx context.Context, rawPhone string) (*models.ReportCountResponse, error)
	LookupReportCount(ctx context.Context, e164 string) (int64, error)
}

// reportService implements ReportService
type reportService struct {
	store      repository.ReportStore
	normalizer phone.Normalizer
}

// NewReportService creates a new instance of ReportService
func NewReportService(store repository.ReportStore, normalizer phone.Normalizer) ReportService {
	return &reportService{
		store:      store,
		normalizer: normalizer,
	}
}

// ReportNumber normalizes the number and atomically adds one report to it.
// On a storage error the count must be assumed unchanged.
func (s *reportService) ReportNumber(ctx context.Context, rawPhone string) (*models.ReportResponse, error) {
	info, err := s.normalizer.Parse(rawPhone)
	if err != nil {
		metrics.RecordSpamReport("invalid")
		return nil, apperr.Wrap(apperr.CodeInvalidPhoneNumber, err)
	}

	count, err := s.store.Increment(ctx, info.E164)
	if err != nil {
		metrics.RecordSpamReport("storage_error")
		logger.Logger.Error().Err(err).Str("phone", secure.MaskPhone(info.E164)).Msg("spam report increment failed")
		return nil, apperr.Wrap(apperr.CodeStorage, err)
	}

	metrics.RecordSpamReport("ok")
	logger.Logger.Info().Str("phone", secure.MaskPhone(info.E164)).Int64("report_count", count).Msg("number reported as spam")
	return &models.ReportResponse{
		Phone:       info.E164,
		ReportCount: count,
	}, nil
}

// GetReportCount normalizes the number and reads its count (0 when never reported)
func (s *reportService) GetReportCount(ctx context.Context, rawPhone string) (*models.ReportCountResponse, error) {
	info, err := s.normalizer.Parse(rawPhone)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidPhoneNumber, err)
	}

	count, err := s.LookupReportCount(ctx, info.E164)
	if err != nil {
		return nil, err
	}
	return &models.ReportCountResponse{
		Phone:       info.E164,
		ReportCount: count,
	}, nil
}

// LookupReportCount reads the count of an already normalized number
func (s *reportService) LookupReportCount(ctx context.Context, e164 string) (int64, error) {
	count, err := s.store.Get(ctx, e164)
	if err != nil {
		var appErr *apperr.Error
		if errors.As(err, &appErr) {
			return 0, err
		}
		return 0, apperr.Wrap(apperr.CodeStorage, err)
	}
	return count, nil
}
