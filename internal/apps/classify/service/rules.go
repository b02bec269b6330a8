package service

import (
	"strings"

	"spam-shield/internal/apps/classify/models"
)

// SpamKeywordThreshold is the number of distinct keywords that marks a message as spam
const SpamKeywordThreshold = 2

// ClassifyMessage decides whether text is spam.
//
// Keywords are matched as case-insensitive substrings and counted once each.
// Trusted markers are matched case-sensitively. A trusted message with at most
// one keyword is never spam; otherwise the message is spam when it reaches the
// keyword threshold or when prediction is 1. A nil prediction means no
// classifier was available.
func ClassifyMessage(text string, trustedMarkers, spamKeywords []string, prediction *int) models.Classification {
	count := CountKeywords(text, spamKeywords)

	if IsTrusted(text, trustedMarkers) && count <= 1 {
		return models.Classification{IsSpam: false, MatchedKeywordCount: count}
	}

	spam := count >= SpamKeywordThreshold
	if prediction != nil && *prediction == 1 {
		spam = true
	}
	return models.Classification{IsSpam: spam, MatchedKeywordCount: count}
}

// CountKeywords counts distinct keywords contained in the lowercased text
func CountKeywords(text string, keywords []string) int {
	lower := strings.ToLower(text)
	seen := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		if strings.Contains(lower, kw) {
			seen[kw] = struct{}{}
		}
	}
	return len(seen)
}

// IsTrusted reports whether any marker occurs literally in text
func IsTrusted(text string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(text, m) {
			return true
		}
	}
	return false
}
