// Package spreadsheet writes the line item table to an XLSX workbook, an
// alternative artifact to the rendered PDF for users who keep editing in
// a spreadsheet.
package spreadsheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"facturio/internal/session"
)

var header = []string{"#", "Reference", "Name", "Quantity", "Unit Price", "Total"}

// WriteItems writes the table to path, one row per item in display order,
// followed by a grand total row. Unset numeric cells stay empty.
func WriteItems(path string, items []session.LineItem, docType session.DocumentType) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const sheet = "Sheet1"
	if err := f.SetSheetName(sheet, docType.String()); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	name := docType.String()

	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("addressing header cell: %w", err)
		}
		if err := f.SetCellValue(name, cell, title); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	var total float64
	for i, item := range items {
		row := i + 2
		total += item.LineTotal()

		values := []interface{}{i + 1, item.Reference, item.Name}
		if item.Quantity != nil {
			values = append(values, *item.Quantity)
		} else {
			values = append(values, nil)
		}
		if item.UnitPrice != nil {
			values = append(values, *item.UnitPrice)
		} else {
			values = append(values, nil)
		}
		values = append(values, item.LineTotal())

		for col, v := range values {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("addressing cell: %w", err)
			}
			if err := f.SetCellValue(name, cell, v); err != nil {
				return fmt.Errorf("writing row %d: %w", i+1, err)
			}
		}
	}

	totalRow := len(items) + 2
	labelCell, _ := excelize.CoordinatesToCellName(5, totalRow)
	valueCell, _ := excelize.CoordinatesToCellName(6, totalRow)
	if err := f.SetCellValue(name, labelCell, "TOTAL"); err != nil {
		return fmt.Errorf("writing total label: %w", err)
	}
	if err := f.SetCellValue(name, valueCell, total); err != nil {
		return fmt.Errorf("writing total: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}
	return nil
}
