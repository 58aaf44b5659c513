package constants

import "time"

const (
	// Local hour at which a publication day rolls over
	PublicationHour = 6

	// Length of a publication window in local calendar days
	PublicationDays = 1

	// Nominal window length, only exact when no DST transition is crossed
	NominalWindowDuration = 24 * time.Hour
)

const (
	// Maximum page size accepted by the home timeline endpoint
	MaxTimelineCount = 200

	// Number of most recent items the home timeline endpoint will ever serve
	HomeTimelineDepth = 800

	// API error code returned when the rate limit is exceeded
	RateLimitExceededCode = 88
)
