package rows_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/KVidyashree/Chatbot/internal/rows"
)

func writeWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Courses"))
	require.NoError(t, f.SetCellValue("Courses", "A1", "Title"))
	require.NoError(t, f.SetCellValue("Courses", "B1", "Link"))
	require.NoError(t, f.SetCellValue("Courses", "A2", "Computer Science"))
	require.NoError(t, f.SetCellValue("Courses", "B2", "https://example.edu/cse"))
	require.NoError(t, f.SetCellValue("Courses", "A3", "Mechanical"))

	_, err := f.NewSheet("Admissions")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Admissions", "A1", "Topic"))
	require.NoError(t, f.SetCellValue("Admissions", "A2", "Eligibility"))

	_, err = f.NewSheet("EmptySheet")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "kb.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestXLSXSourceLoadsEverySheet(t *testing.T) {
	path := writeWorkbook(t)

	records, err := rows.NewXLSXSource(path).Load()
	require.NoError(t, err)
	require.Len(t, records, 3, "header-only and empty sheets yield no records")

	assert.Equal(t, "Courses", records[0].Sheet)
	assert.Equal(t, "Computer Science", records[0].Get("title"))
	assert.Equal(t, "https://example.edu/cse", records[0].Link())

	assert.Equal(t, "Mechanical", records[1].Get("title"))
	assert.Empty(t, records[1].Link())

	assert.Equal(t, "Admissions", records[2].Sheet)
	assert.Equal(t, "Eligibility", records[2].Get("topic"))
}

func TestXLSXSourceMissingFile(t *testing.T) {
	_, err := rows.NewXLSXSource("/nonexistent/kb.xlsx").Load()
	assert.Error(t, err)
}
