package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Counter metrics
var (
	LoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hawkcards_login_total",
			Help: "Total number of login attempts",
		},
	)

	SignupCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hawkcards_signup_total",
			Help: "Total number of signups",
		},
	)

	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hawkcards_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"}, // user_not_found, role_mismatch, invalid_token, ...
	)

	CardResolutionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hawkcards_card_resolutions_total",
			Help: "Public card resolutions by source",
		},
		[]string{"source"}, // local, portable, not_found
	)

	CardSaveCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hawkcards_card_saves_total",
			Help: "vCard downloads from public cards",
		},
		[]string{"source"},
	)

	ShareLinkCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "hawkcards_share_links_total",
			Help: "Share links generated for cards",
		},
	)

	AnalysisCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hawkcards_log_analyses_total",
			Help: "AI log analyses by outcome",
		},
		[]string{"outcome"}, // ok, empty, missing_key, error
	)

	CardStatusCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hawkcards_card_status_changes_total",
			Help: "Card issue and revoke operations",
		},
		[]string{"status"},
	)
)

// Histogram metrics
var (
	StoreOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hawkcards_store_operation_duration_seconds",
			Help:    "Duration of store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

func init() {
	prometheus.MustRegister(LoginCounter)
	prometheus.MustRegister(SignupCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(CardResolutionCounter)
	prometheus.MustRegister(CardSaveCounter)
	prometheus.MustRegister(ShareLinkCounter)
	prometheus.MustRegister(AnalysisCounter)
	prometheus.MustRegister(CardStatusCounter)

	prometheus.MustRegister(StoreOperationDuration)
}

// TrackStoreOperation measures store operation durations.
// Use as: defer prometheus.TrackStoreOperation("add_user")(time.Now())
func TrackStoreOperation(operation string) func(time.Time) {
	return func(start time.Time) {
		StoreOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(time.Since(start).Seconds())
	}
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordResolution records how a public card request was answered
func RecordResolution(source string) {
	CardResolutionCounter.With(prometheus.Labels{"source": source}).Inc()
}

// RecordCardSave records a vCard download
func RecordCardSave(source string) {
	CardSaveCounter.With(prometheus.Labels{"source": source}).Inc()
}

// RecordAnalysis records the outcome of a log analysis request
func RecordAnalysis(outcome string) {
	AnalysisCounter.With(prometheus.Labels{"outcome": outcome}).Inc()
}

// RecordCardStatus records an issue/revoke transition
func RecordCardStatus(status string) {
	CardStatusCounter.With(prometheus.Labels{"status": status}).Inc()
}
