package analytics

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	minerPerformanceSheet = "Miner Performance"

	MinerPerformanceFilename = "miner-performance.xlsx"
)

var minerPerformanceHeader = []string{
	"Employee ID", "Name", "Department", "Hours Worked", "Alerts", "Critical Alerts", "Safety Score",
}

var minerPerformanceWidths = []float64{24, 24, 18, 14, 10, 16, 14}

// MinerPerformanceXLSX renders the ranking as a single sheet workbook.
func MinerPerformanceXLSX(rows []MinerPerformance) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(minerPerformanceSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#FFF2CC"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range minerPerformanceHeader {
		if err := setCell(f, i+1, 1, header); err != nil {
			return nil, err
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(minerPerformanceSheet, col, col, minerPerformanceWidths[i]); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(minerPerformanceHeader), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(minerPerformanceSheet, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	for i, r := range rows {
		row := i + 2
		values := []any{r.EmployeeID, r.Name, r.Department, r.HoursWorked, r.TotalAlerts, r.CriticalAlerts, r.SafetyScore}
		for col, v := range values {
			if err := setCell(f, col+1, row, v); err != nil {
				return nil, fmt.Errorf("failed to set cell at row %d: %w", row, err)
			}
		}
	}

	if err := f.SetPanes(minerPerformanceSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(minerPerformanceSheet, cell, value)
}
