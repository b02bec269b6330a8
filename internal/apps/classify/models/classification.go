package models

// Classification is the outcome of ClassifyMessage
type Classification struct {
	IsSpam              bool `json:"is_spam"`
	MatchedKeywordCount int  `json:"matched_keyword_count"`
}

// ClassifyRequest payload to classify a text message
type ClassifyRequest struct {
	Message string `json:"message" binding:"required"`
}

// ClassifyResponse is returned by the classify endpoint
type ClassifyResponse struct {
	Classification
	Trusted         bool `json:"trusted"`
	ClassifierUsed  bool `json:"classifier_used"`
	ClassifierLabel *int `json:"classifier_label,omitempty"`
}
