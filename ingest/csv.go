package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ChunksFromCSV turns a CSV document into one chunk per row, with each value
// labelled by its column header:
//
//	Day: Monday | Breakfast: Idli, Sambar | Lunch: Veg Meals
//
// Labelled rows keep tabular facts self-contained, so a single retrieved
// chunk answers "what's for lunch on Monday" without the rest of the table.
func ChunksFromCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmptyDocument
	}
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var chunks []string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row: %w", err)
		}

		fields := make([]string, 0, len(row))
		for i, value := range row {
			value = strings.TrimSpace(value)
			if value == "" || i >= len(header) || header[i] == "" {
				continue
			}
			fields = append(fields, header[i]+": "+value)
		}
		if len(fields) == 0 {
			continue
		}
		chunks = append(chunks, strings.Join(fields, " | "))
	}

	if len(chunks) == 0 {
		return nil, ErrEmptyDocument
	}
	return chunks, nil
}
