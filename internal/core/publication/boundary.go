package publication

import "github.com/penwyp/go-feed-digest/internal/core/model"

// AnalyzeBoundary inspects the oldest fetched item to tell whether the walk
// may have missed part of the window because the provider ran out of pages.
// items must be the deduplicated list before window filtering.
func AnalyzeBoundary(items []model.TimelineItem, window model.Window) model.Warning {
	if len(items) == 0 {
		return model.WarningNone
	}
	oldest := items[len(items)-1].CreatedAt

	switch {
	case window.After(oldest):
		return model.StartPotentiallyUnreachable
	case window.Contains(oldest):
		return model.EndPotentiallyUnreachable
	default:
		return model.WarningNone
	}
}
