package formatter

import (
	"encoding/csv"
	"io"
	"time"
)

type CSVFormatter struct{}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{}
}

func (f *CSVFormatter) Format(w io.Writer, pub Publication) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"ID", "Created At", "Author", "Text"}); err != nil {
		return err
	}

	for _, item := range pub.Items {
		record := []string{
			item.ID,
			item.CreatedAt.Format(time.RFC3339),
			item.Author,
			item.Text,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
