package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/guillocut/internal/instance"
	"github.com/piwi3910/guillocut/internal/solution"
)

// WriteXLSX writes a summary workbook: one "Bin N" sheet per opened bin
// with one row per placement, plus a leading "Summary" sheet with the
// solution's aggregate figures.
func WriteXLSX(path string, inst *instance.Instance, sol solution.Solution) error {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	f.SetSheetName("Sheet1", summarySheet)
	writeSummarySheet(f, summarySheet, sol)

	for i, bin := range sol.Bins {
		sheetName := fmt.Sprintf("Bin %d", i+1)
		if _, err := f.NewSheet(sheetName); err != nil {
			return fmt.Errorf("report: create sheet %s: %w", sheetName, err)
		}
		writeBinSheet(f, sheetName, inst, bin)
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("report: save %s: %w", path, err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sheet string, sol solution.Solution) {
	rows := [][]any{
		{"Objective", sol.Objective.String()},
		{"Bins used", len(sol.Bins)},
		{"Items placed", sol.TotalItems},
		{"Total profit", float64(sol.TotalProfit)},
		{"Total cost", float64(sol.TotalCost)},
		{"Total waste", int64(sol.TotalWaste)},
		{"Fully packed", sol.FullyPacked},
		{"Certificate digest", sol.Digest()},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		f.SetCellValue(sheet, cell, row[0])
		cell, _ = excelize.CoordinatesToCellName(2, i+1)
		f.SetCellValue(sheet, cell, row[1])
	}
}

func writeBinSheet(f *excelize.File, sheet string, inst *instance.Instance, bin solution.BinSolution) {
	header := []string{"ITEM_ID", "LABEL", "ROTATED", "X", "Y", "WIDTH", "HEIGHT"}
	for col, h := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, p := range bin.Placements {
		it := inst.ItemType(p.ItemTypeID)
		row := rowIdx + 2
		values := []any{
			int(p.ItemTypeID), it.Label, p.Rotated,
			int64(p.Pos.X), int64(p.Pos.Y), int64(p.Rect.Width), int64(p.Rect.Height),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}
}
