package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"spam-shield/internal/apps/feedback/models"
	"spam-shield/internal/apps/feedback/repository"
	"spam-shield/internal/common/apperr"
	"spam-shield/internal/common/logger"
)

// FeedbackService defines business logic for feedback
type FeedbackService interface {
	SubmitFeedback(ctx context.Context, req models.CreateFeedbackRequest) (*models.FeedbackResponse, error)
}

// feedbackService implements FeedbackService
type feedbackService struct {
	store repository.FeedbackStore
}

// NewFeedbackService creates a new instance of FeedbackService
func NewFeedbackService(store repository.FeedbackStore) FeedbackService {
	return &feedbackService{store: store}
}

// SubmitFeedback stores a trimmed, non-empty entry
func (s *feedbackService) SubmitFeedback(ctx context.Context, req models.CreateFeedbackRequest) (*models.FeedbackResponse, error) {
	entry := strings.TrimSpace(req.Entry)
	if entry == "" {
		return nil, apperr.Newf(apperr.CodeInvalidInput, "Feedback cannot be empty.")
	}
	if utf8.RuneCountInString(entry) > models.MaxEntryLength {
		return nil, apperr.Newf(apperr.CodeInvalidInput, "Feedback must be at most %d characters.", models.MaxEntryLength)
	}

	f := &models.Feedback{Entry: entry}
	if err := s.store.Create(ctx, f); err != nil {
		logger.Logger.Error().Err(err).Msg("failed to store feedback")
		return nil, apperr.Wrap(apperr.CodeStorage, err)
	}

	logger.Logger.Info().Str("feedback_id", f.ID.String()).Msg("feedback received")
	resp := f.ToResponse()
	return &resp, nil
}
