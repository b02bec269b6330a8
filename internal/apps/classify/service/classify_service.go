package service

import (
	"context"
	"strings"

	"spam-shield/internal/apps/classify/models"
	"spam-shield/internal/common/apperr"
	"spam-shield/internal/common/logger"
	"spam-shield/internal/common/metrics"
)

// ClassifyService classifies text messages
type ClassifyService interface {
	Classify(ctx context.Context, message string) (*models.ClassifyResponse, error)
}

// classifyService implements ClassifyService
type classifyService struct {
	classifier     Classifier
	trustedMarkers []string
	spamKeywords   []string
}

// NewClassifyService creates a new instance of ClassifyService. classifier may be nil.
func NewClassifyService(classifier Classifier, trustedMarkers, spamKeywords []string) ClassifyService {
	return &classifyService{
		classifier:     classifier,
		trustedMarkers: trustedMarkers,
		spamKeywords:   spamKeywords,
	}
}

// Classify applies the keyword rules, consulting the classifier when one is configured.
// A failing classifier is logged and ignored.
func (s *classifyService) Classify(ctx context.Context, message string) (*models.ClassifyResponse, error) {
	if strings.TrimSpace(message) == "" {
		return nil, apperr.Newf(apperr.CodeInvalidInput, "Message cannot be empty.")
	}

	var prediction *int
	if s.classifier != nil {
		label, err := s.classifier.Predict(ctx, message)
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("classifier unavailable, using keyword rules only")
		} else {
			prediction = &label
		}
	}

	result := ClassifyMessage(message, s.trustedMarkers, s.spamKeywords, prediction)
	metrics.RecordClassification(result.IsSpam)

	return &models.ClassifyResponse{
		Classification:  result,
		Trusted:         IsTrusted(message, s.trustedMarkers),
		ClassifierUsed:  prediction != nil,
		ClassifierLabel: prediction,
	}, nil
}
