package provider

import (
	"fmt"
	"strings"
	"time"
)

// ProviderDateFormat is the created_at layout used by the timeline API,
// e.g. "Wed Aug 27 13:08:45 +0000 2008".
const ProviderDateFormat = "Mon Jan 02 15:04:05 -0700 2006"

// parsing accepts single digit days as well
const providerDateParseLayout = "Mon Jan 2 15:04:05 -0700 2006"

// ParseProviderDate parses an API created_at value into UTC.
func ParseProviderDate(value string) (time.Time, error) {
	t, err := time.Parse(providerDateParseLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid provider date %q: %w", value, err)
	}
	return t.UTC(), nil
}

// FormatProviderDate renders t in the API created_at layout, in UTC.
func FormatProviderDate(t time.Time) string {
	return t.UTC().Format(ProviderDateFormat)
}

// ParseTimestamp accepts RFC 3339 or the API layout.
func ParseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t.UTC(), nil
	}
	return ParseProviderDate(value)
}
