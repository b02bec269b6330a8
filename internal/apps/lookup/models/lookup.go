package models

// Unknown is used for every metadata field that could not be determined
const Unknown = "Unknown"

// Metadata is the result of a best effort number lookup.
// Degraded is set when any field fell back to Unknown because the lookup failed.
type Metadata struct {
	Carrier  string `json:"carrier"`
	Location string `json:"location"`
	LineType string `json:"line_type"`
	Country  string `json:"country"`
	Degraded bool   `json:"degraded"`
	Reason   string `json:"reason,omitempty"`
}

// UnknownMetadata returns degraded metadata carrying reason
func UnknownMetadata(reason string) Metadata {
	return Metadata{
		Carrier:  Unknown,
		Location: Unknown,
		LineType: Unknown,
		Country:  Unknown,
		Degraded: true,
		Reason:   reason,
	}
}

// LookupResponse combines offline parsing, remote metadata and the spam ledger
type LookupResponse struct {
	Phone          string   `json:"phone"`
	Carrier        string   `json:"carrier"`
	Region         string   `json:"region"`
	TimeZone       string   `json:"time_zone"`
	Metadata       Metadata `json:"metadata"`
	ReportCount    int64    `json:"report_count"`
	ReportedAsSpam bool     `json:"reported_as_spam"`
}
