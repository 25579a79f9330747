package constants

import "time"

const (
	// AcuityAPIBase is the upstream scheduling provider's REST base URL.
	AcuityAPIBase = "https://acuityscheduling.com/api/v1"

	// CalendarCacheTTL bounds how long an account's calendar listing may be
	// served without a refetch.
	CalendarCacheTTL = 5 * time.Minute

	// MaxAvailabilityDays is the provider's per-request date-range cap.
	MaxAvailabilityDays = 7

	// MaxConcurrentUpstreamCalls bounds in-flight availability fetches for a
	// single aggregation.
	MaxConcurrentUpstreamCalls = 6

	UpstreamTimeout = 30 * time.Second
)
