package publication

import (
	"fmt"
	"time"

	"github.com/penwyp/go-feed-digest/internal/core/constants"
	"github.com/penwyp/go-feed-digest/internal/core/model"
)

// ComputeWindow returns the most recent complete publication window for loc
// as seen at now. The window ends at the latest local 06:00 not after now and
// starts one calendar day earlier at the same local hour.
func ComputeWindow(now time.Time, loc *time.Location) model.Window {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)

	end := publicationCutover(local.Year(), local.Month(), local.Day(), loc)
	if now.Before(end) {
		end = publicationCutover(local.Year(), local.Month(), local.Day()-1, loc)
	}

	// Calendar subtraction keeps the local hour fixed, so the real duration
	// is 23h or 25h when a DST transition falls inside the window.
	endLocal := end.In(loc)
	start := publicationCutover(endLocal.Year(), endLocal.Month(), endLocal.Day()-constants.PublicationDays, loc)

	return model.Window{Start: start.UTC(), End: end.UTC()}
}

// ComputeWindowForZone resolves an IANA timezone name and computes the window.
func ComputeWindowForZone(now time.Time, timezone string) (model.Window, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return model.Window{}, fmt.Errorf("invalid timezone '%s': %w", timezone, err)
	}
	return ComputeWindow(now, loc), nil
}

func publicationCutover(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, constants.PublicationHour, 0, 0, 0, loc)
}
