package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	otpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spam_shield_otp_requests_total",
			Help: "Total number of OTP issue attempts (request and resend)",
		},
		[]string{"kind", "result"},
	)

	otpVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spam_shield_otp_verifications_total",
			Help: "Total number of OTP verification attempts",
		},
		[]string{"result"},
	)

	smsSendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "spam_shield_sms_send_duration_seconds",
			Help:    "SMS dispatch duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 12},
		},
		[]string{"provider", "result"},
	)

	spamReportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spam_shield_reports_total",
			Help: "Total number of spam report submissions",
		},
		[]string{"result"},
	)

	classificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spam_shield_message_classifications_total",
			Help: "Total number of classified messages",
		},
		[]string{"verdict"},
	)

	numberLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spam_shield_number_lookups_total",
			Help: "Total number of metadata lookups",
		},
		[]string{"source"},
	)
)

// RecordOTPIssue records an OTP request or resend outcome
func RecordOTPIssue(kind, result string) {
	otpRequestsTotal.WithLabelValues(kind, result).Inc()
}

// RecordOTPVerification records a verification outcome
func RecordOTPVerification(result string) {
	otpVerificationsTotal.WithLabelValues(result).Inc()
}

// RecordSMSSend records a dispatch to an SMS vendor
func RecordSMSSend(provider, result string, duration time.Duration) {
	smsSendDuration.WithLabelValues(provider, result).Observe(duration.Seconds())
}

// RecordSpamReport records a report submission outcome
func RecordSpamReport(result string) {
	spamReportsTotal.WithLabelValues(result).Inc()
}

// RecordClassification records a classification verdict
func RecordClassification(spam bool) {
	verdict := "ham"
	if spam {
		verdict = "spam"
	}
	classificationsTotal.WithLabelValues(verdict).Inc()
}

// RecordNumberLookup records where metadata came from (api, cache, degraded)
func RecordNumberLookup(source string) {
	numberLookupsTotal.WithLabelValues(source).Inc()
}

// Handler returns the Prometheus metrics handler
func Handler() http.Handler {
	return promhttp.Handler()
}
