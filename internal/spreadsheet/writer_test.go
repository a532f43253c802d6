package spreadsheet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"facturio/internal/session"
)

func f(v float64) *float64 { return &v }

func TestWriteItems(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Invoice.xlsx")

	items := []session.LineItem{
		{Reference: "REF-1", Name: "Widget A", Quantity: f(2), UnitPrice: f(10)},
		{Name: "Widget B", Quantity: f(5), UnitPrice: f(20)},
	}
	require.NoError(t, WriteItems(path, items, session.DocumentTypeInvoice))

	wb, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer wb.Close()

	const sheet = "Invoice"

	name, err := wb.GetCellValue(sheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "REF-1", name)

	cell, err := wb.GetCellValue(sheet, "C3")
	require.NoError(t, err)
	assert.Equal(t, "Widget B", cell)

	total, err := wb.GetCellValue(sheet, "F4")
	require.NoError(t, err)
	assert.Equal(t, "120", total)
}

func TestWriteItems_UnsetCellsStayEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Quote.xlsx")

	require.NoError(t, WriteItems(path, []session.LineItem{{Name: "Pending"}}, session.DocumentTypeQuote))

	wb, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer wb.Close()

	qty, err := wb.GetCellValue("Quote", "D2")
	require.NoError(t, err)
	assert.Empty(t, qty)
}
