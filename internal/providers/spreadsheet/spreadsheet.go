// Package spreadsheet writes list exports as xlsx workbooks.
package spreadsheet

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/fx"
)

var Module = fx.Module("spreadsheet.provider",
	fx.Provide(New),
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Sheet is a titled table. Cell values may be string, float64, int, bool,
// time.Time or nil.
type Sheet struct {
	Name    string
	Title   string
	Columns []Column
	Rows    [][]any
}

type Column struct {
	Header string
	Width  float64
}

type Writer interface {
	Write(ctx context.Context, sheet Sheet) ([]byte, error)
}

type ExcelWriter struct {
	now func() time.Time
}

func New() Writer {
	return &ExcelWriter{now: time.Now}
}

const (
	titleRow  = 1
	headerRow = 3
	firstData = 4
)

func (w *ExcelWriter) Write(ctx context.Context, sheet Sheet) ([]byte, error) {
	if len(sheet.Columns) == 0 {
		return nil, errors.New("spreadsheet needs at least one column")
	}
	name := sheet.Name
	if name == "" {
		name = "Export"
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(name)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if name != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, err
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, err
	}
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		return nil, err
	}

	title := sheet.Title
	if title == "" {
		title = name
	}
	if err := f.SetCellValue(name, "A1", title); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(name, "A1", "A1", titleStyle); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(name, "A2", "Generated: "+w.now().UTC().Format("2006-01-02 15:04:05")); err != nil {
		return nil, err
	}

	for i, column := range sheet.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := f.SetCellValue(name, cell, column.Header); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(name, cell, cell, headerStyle); err != nil {
			return nil, err
		}
		width := column.Width
		if width <= 0 {
			width = 18
		}
		letter, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(name, letter, letter, width); err != nil {
			return nil, err
		}
	}

	for r, row := range sheet.Rows {
		if r%500 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, firstData+r)
			if value == nil {
				continue
			}
			if err := f.SetCellValue(name, cell, value); err != nil {
				return nil, err
			}
			if _, ok := value.(time.Time); ok {
				if err := f.SetCellStyle(name, cell, cell, dateStyle); err != nil {
					return nil, err
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
