package model

// Warning is an advisory note about boundaries that may not have been
// observed. WarningNone means no warning.
type Warning int

const (
	WarningNone Warning = iota
	StartPotentiallyUnreachable
	EndPotentiallyUnreachable
)

func (w Warning) String() string {
	switch w {
	case StartPotentiallyUnreachable:
		return "RangeStartPotentiallyUnreachable"
	case EndPotentiallyUnreachable:
		return "RangeEndPotentiallyUnreachable"
	default:
		return ""
	}
}

// Message is the human readable form of the warning.
func (w Warning) Message() string {
	switch w {
	case StartPotentiallyUnreachable:
		return "Range start potentially unreachable: the feed ran out before reaching the publication window"
	case EndPotentiallyUnreachable:
		return "Range end potentially unreachable: the feed ran out inside the publication window, older items may be missing"
	default:
		return ""
	}
}

// MarshalText lets the warning render as its name in JSON output.
func (w Warning) MarshalText() ([]byte, error) {
	return []byte(w.String()), nil
}

// Result is a successful publication: window-filtered items plus an
// optional warning.
type Result struct {
	Window  Window         `json:"window"`
	Items   []TimelineItem `json:"items"`
	Warning Warning        `json:"warning,omitempty"`
	Fetches int            `json:"fetches"`
}
