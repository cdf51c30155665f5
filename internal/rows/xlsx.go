package rows

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXSource loads records from every sheet of a spreadsheet. The first row
// of each sheet is treated as the header row and the sheet name becomes the
// record's group label.
type XLSXSource struct {
	Path string
}

func NewXLSXSource(path string) *XLSXSource {
	return &XLSXSource{Path: path}
}

func (s *XLSXSource) Load() ([]Record, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	var records []Record
	for _, sheet := range f.GetSheetList() {
		sheetRows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
		}
		if len(sheetRows) < 2 {
			continue
		}

		headers := sheetRows[0]
		for _, cells := range sheetRows[1:] {
			if isBlank(cells) {
				continue
			}
			records = append(records, newRecord(sheet, headers, cells))
		}
	}
	return records, nil
}
