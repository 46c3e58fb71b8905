package spreadsheet

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteProducesReadableWorkbook(t *testing.T) {
	w := &ExcelWriter{now: func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }}
	out, err := w.Write(context.Background(), Sheet{
		Name:    "Invoices",
		Title:   "Invoice export",
		Columns: []Column{{Header: "PI No"}, {Header: "Total", Width: 12}, {Header: "Remarks"}},
		Rows: [][]any{
			{"PI-001", 6200.0, nil},
			{"PI-002", 10.5, "urgent"},
		},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Invoices"}, f.GetSheetList())
	title, err := f.GetCellValue("Invoices", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Invoice export", title)
	generated, err := f.GetCellValue("Invoices", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Generated: 2025-06-01 12:00:00", generated)

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"PI No", "Total", "Remarks"}, rows[2])
	assert.Equal(t, []string{"PI-001", "6200"}, rows[3])
	assert.Equal(t, []string{"PI-002", "10.5", "urgent"}, rows[4])
}

func TestWriteRequiresColumns(t *testing.T) {
	_, err := New().Write(context.Background(), Sheet{Name: "Empty"})
	assert.Error(t, err)
}
