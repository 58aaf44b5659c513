package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Terminal control sequences
const (
	ColorReset  = "\033[0m"
	ColorCyan   = "\033[36m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
	ColorBold   = "\033[1m"
)

// GetDisplayWidth calculates the display width of a string, accounting for
// wide runes and emojis
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// TruncateDisplay cuts text to at most width display cells, ending with an
// ellipsis when shortened.
func TruncateDisplay(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(text, width, "…")
}

// PadDisplay pads text with spaces to width display cells
func PadDisplay(text string, width int, leftAlign bool) string {
	actual := runewidth.StringWidth(text)
	if actual >= width {
		return text
	}
	padding := strings.Repeat(" ", width-actual)
	if leftAlign {
		return text + padding
	}
	return padding + text
}

// SingleLine collapses newlines and tabs so text fits in a table cell
func SingleLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// FormatWarningTitle formats a warning banner (Yellow + Bold)
func FormatWarningTitle(title string) string {
	return ColorBold + ColorYellow + title + ColorReset
}

// FormatErrorTitle formats an error banner (Red + Bold)
func FormatErrorTitle(title string) string {
	return ColorBold + ColorRed + title + ColorReset
}

// FormatHeaderTitle formats section titles (Cyan + Bold)
func FormatHeaderTitle(title string) string {
	return ColorBold + ColorCyan + title + ColorReset
}
