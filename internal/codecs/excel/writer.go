package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook materialises the tables as an XLSX file at path.
// Every table becomes a worksheet with an autofiltered Excel table over
// its populated range.
func WriteWorkbook(path string, workbook *WorkbookData) error {
	file := excelize.NewFile()
	defer file.Close()

	for i, table := range workbook.Tables {
		if i == 0 {
			// Reuse the default sheet for the first table.
			if err := file.SetSheetName("Sheet1", table.Name); err != nil {
				return fmt.Errorf("rename default sheet: %w", err)
			}
		} else {
			if _, err := file.NewSheet(table.Name); err != nil {
				return fmt.Errorf("create sheet %q: %w", table.Name, err)
			}
		}

		for col, header := range table.Columns {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return fmt.Errorf("resolve header cell: %w", err)
			}
			if err := file.SetCellValue(table.Name, cell, header); err != nil {
				return fmt.Errorf("write header %q: %w", header, err)
			}
		}

		for rowIdx, row := range table.Rows {
			for col, value := range row {
				cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
				if err != nil {
					return fmt.Errorf("resolve cell: %w", err)
				}
				if err := file.SetCellValue(table.Name, cell, value); err != nil {
					return fmt.Errorf("write cell %s!%s: %w", table.Name, cell, err)
				}
			}
		}

		if err := addTable(file, table, i+1); err != nil {
			return err
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func addTable(file *excelize.File, table SheetTable, index int) error {
	if len(table.Columns) == 0 {
		return nil
	}

	// Excel tables need the header row plus at least one data row.
	lastRow := len(table.Rows) + 1
	if lastRow < 2 {
		lastRow = 2
	}

	end, err := excelize.CoordinatesToCellName(len(table.Columns), lastRow)
	if err != nil {
		return fmt.Errorf("resolve table range: %w", err)
	}

	spec := &excelize.Table{
		Range: "A1:" + end,
		Name:  fmt.Sprintf("Table%d", index),
	}
	if err := file.AddTable(table.Name, spec); err != nil {
		return fmt.Errorf("add table on %q: %w", table.Name, err)
	}
	return nil
}
