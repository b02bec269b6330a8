package service

import (
	"testing"

	"spam-shield/internal/common/config"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestClassifyMessage(t *testing.T) {
	keywords := config.DefaultSpamKeywords

	tests := []struct {
		name       string
		text       string
		trusted    []string
		prediction *int
		wantSpam   bool
		wantCount  int
	}{
		{
			name:      "several keywords",
			text:      "WIN a FREE prize, click now",
			wantSpam:  true,
			wantCount: 4,
		},
		{
			name:      "word containing a keyword counts once",
			text:      "Congratulations to the winner of our chess club",
			wantSpam:  false,
			wantCount: 1,
		},
		{
			name:      "trusted sender with one keyword",
			text:      "Your OTP from -SBI is 482910",
			trusted:   []string{"-SBI"},
			wantSpam:  false,
			wantCount: 0,
		},
		{
			name:       "trusted sender overrides classifier",
			text:       "-HDFC: claim your statement",
			trusted:    config.DefaultTrustedMarkers,
			prediction: intPtr(1),
			wantSpam:   false,
			wantCount:  1,
		},
		{
			name:      "trusted sender with many keywords",
			text:      "-SBI urgent: click link to claim reward",
			trusted:   config.DefaultTrustedMarkers,
			wantSpam:  true,
			wantCount: 5,
		},
		{
			name:      "single keyword without classifier",
			text:      "Free parking today",
			wantSpam:  false,
			wantCount: 1,
		},
		{
			name:       "classifier flags spam",
			text:       "Meet me at the station",
			prediction: intPtr(1),
			wantSpam:   true,
		},
		{
			name:       "classifier says ham but keywords win",
			text:       "win cash now",
			prediction: intPtr(0),
			wantSpam:   true,
			wantCount:  2,
		},
		{
			name:      "trusted marker is case sensitive",
			text:      "your otp from -sbi, click the link",
			trusted:   []string{"-SBI"},
			wantSpam:  true,
			wantCount: 2,
		},
		{
			name:      "repeated keyword counts once",
			text:      "free free free",
			wantSpam:  false,
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyMessage(tt.text, tt.trusted, keywords, tt.prediction)
			assert.Equal(t, tt.wantSpam, got.IsSpam)
			assert.Equal(t, tt.wantCount, got.MatchedKeywordCount)
		})
	}
}

func TestCountKeywords_IgnoresBlankAndDuplicateKeywords(t *testing.T) {
	assert.Equal(t, 1, CountKeywords("WIN", []string{"win", "Win", " ", ""}))
}

func TestDefaultSpamKeywordsDoNotOverlap(t *testing.T) {
	for _, a := range config.DefaultSpamKeywords {
		for _, b := range config.DefaultSpamKeywords {
			if a != b {
				assert.NotContains(t, a, b, "%q would be counted again inside %q", b, a)
			}
		}
	}
}
