package formatter

import (
	"fmt"
	"io"
	"sort"
)

// SummaryFormatter prints the window, counts and warning without items.
type SummaryFormatter struct{}

func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{}
}

func (f *SummaryFormatter) Format(w io.Writer, pub Publication) error {
	authors := make(map[string]int)
	for _, item := range pub.Items {
		if item.Author != "" {
			authors[item.Author]++
		}
	}

	lines := []string{
		fmt.Sprintf("Publication window: %s → %s (%s)", pub.Start.Format(displayTimeLayout), pub.End.Format(displayTimeLayout), pub.Timezone),
		fmt.Sprintf("Window length:      %s", pub.End.Sub(pub.Start)),
		fmt.Sprintf("Pages fetched:      %d", pub.Fetches),
		fmt.Sprintf("Items:              %d", len(pub.Items)),
		fmt.Sprintf("Authors:            %d", len(authors)),
	}
	if len(pub.Items) > 0 {
		newest := pub.Items[0].CreatedAt
		oldest := pub.Items[len(pub.Items)-1].CreatedAt
		lines = append(lines, fmt.Sprintf("Span:               %s → %s", oldest.Format(displayTimeLayout), newest.Format(displayTimeLayout)))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if len(authors) > 0 {
		if _, err := fmt.Fprintln(w, "Top authors:"); err != nil {
			return err
		}
		for _, a := range topAuthors(authors, 5) {
			if _, err := fmt.Fprintf(w, "  @%-20s %d\n", a, authors[a]); err != nil {
				return err
			}
		}
	}

	return writeWarning(w, pub)
}

func topAuthors(counts map[string]int, n int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}

func writeWarning(w io.Writer, pub Publication) error {
	if pub.Message == "" {
		return nil
	}
	_, err := fmt.Fprintf(w, "Warning: %s\n", pub.Message)
	return err
}
