package rows

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// CSVSource loads records from a single CSV file. All records share one
// group label derived from the file name.
type CSVSource struct {
	Path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (s *CSVSource) Load() ([]Record, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	allRows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(allRows) < 2 {
		return nil, nil
	}

	sheet := strings.TrimSuffix(filepath.Base(s.Path), filepath.Ext(s.Path))
	headers := allRows[0]

	var records []Record
	for _, cells := range allRows[1:] {
		if isBlank(cells) {
			continue
		}
		records = append(records, newRecord(sheet, headers, cells))
	}
	return records, nil
}
