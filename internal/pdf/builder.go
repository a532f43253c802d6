// Package pdf renders a line item table into a printable document.
package pdf

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"facturio/internal/session"
)

// column layout in points, letter portrait.
var columns = []struct {
	title string
	width float64
	align string
}{
	{"#", 30, "L"},
	{"Reference", 100, "L"},
	{"Name", 190, "L"},
	{"Qty", 60, "R"},
	{"Unit Price", 80, "R"},
	{"Total", 80, "R"},
}

// Builder renders documents. A zero Builder is ready to use; Now is
// overridable so tests get a stable date line.
type Builder struct {
	Now func() time.Time
}

// Render produces the PDF bytes for the given table. Unset quantities and
// unit prices are treated as zero, matching how empty cells are billed.
func (b *Builder) Render(items []session.LineItem, docType string) ([]byte, error) {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}

	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetAutoPageBreak(true, 72)
	doc.SetMargins(50, 50, 50)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 24)
	doc.CellFormat(0, 30, docType, "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 12)
	doc.CellFormat(0, 20, fmt.Sprintf("Date: %s", now().Format("2006-01-02")), "", 1, "L", false, 0, "")
	doc.Ln(10)

	doc.SetFont("Helvetica", "B", 12)
	for _, col := range columns {
		doc.CellFormat(col.width, 18, col.title, "B", 0, col.align, false, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 10)
	var totalAmount float64
	for i, item := range items {
		lineTotal := item.LineTotal()
		totalAmount += lineTotal

		cells := []string{
			strconv.Itoa(i + 1),
			item.Reference,
			item.Name,
			formatQuantity(item.Quantity),
			fmt.Sprintf("$%.2f", deref(item.UnitPrice)),
			fmt.Sprintf("$%.2f", lineTotal),
		}
		for j, col := range columns {
			doc.CellFormat(col.width, 16, cells[j], "", 0, col.align, false, 0, "")
		}
		doc.Ln(-1)
	}

	doc.Ln(8)
	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(380, 20, "", "", 0, "L", false, 0, "")
	doc.CellFormat(80, 20, "TOTAL:", "T", 0, "R", false, 0, "")
	doc.CellFormat(80, 20, fmt.Sprintf("$%.2f", totalAmount), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}
	return buf.Bytes(), nil
}

func formatQuantity(q *float64) string {
	return strconv.FormatFloat(deref(q), 'f', -1, 64)
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
