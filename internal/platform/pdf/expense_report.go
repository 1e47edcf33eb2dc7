package pdf

import (
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// ExpenseReportDoc is the renderable form of an expense report: receipts
// grouped per category with subtotals, a grand total and the original
// receipt images appended.
type ExpenseReportDoc struct {
	Title       string
	DateRange   string
	Notes       string
	GeneratedAt time.Time
	Groups      []CategoryGroup
	GrandTotal  decimal.Decimal
	Currency    string
	Images      []ReceiptImage
}

// RenderExpenseReport renders the document and returns the PDF bytes.
func RenderExpenseReport(data ExpenseReportDoc) ([]byte, error) {
	doc := newDocument()

	doc.SetFont(fontName, "B", 18)
	doc.CellFormat(0, 10, data.Title, "", 1, "L", false, 0, "")

	doc.SetFont(fontName, "", 10)
	doc.SetTextColor(110, 110, 110)
	if data.DateRange != "" {
		doc.CellFormat(0, 6, data.DateRange, "", 1, "L", false, 0, "")
	}
	doc.CellFormat(0, 6, "Generated "+data.GeneratedAt.Format("January 2, 2006"), "", 1, "L", false, 0, "")
	doc.SetTextColor(0, 0, 0)
	doc.Ln(4)

	for _, group := range data.Groups {
		renderCategoryGroup(doc, group)
	}

	doc.Ln(3)
	doc.SetFont(fontName, "B", 12)
	doc.CellFormat(colDateW+colVendorW, rowHeight+1, "Grand Total", "T", 0, "L", false, 0, "")
	doc.CellFormat(colAmountW, rowHeight+1, formatAmount(data.GrandTotal, data.Currency), "T", 1, "R", false, 0, "")

	if data.Notes != "" {
		doc.Ln(6)
		doc.SetFont(fontName, "I", 9)
		doc.MultiCell(0, 5, data.Notes, "", "L", false)
	}

	appendImages(doc, data.Images)
	return output(doc)
}

func renderCategoryGroup(doc *fpdf.Fpdf, group CategoryGroup) {
	doc.SetFont(fontName, "B", 12)
	doc.SetFillColor(235, 237, 240)
	doc.CellFormat(0, rowHeight+1, group.Name, "", 1, "L", true, 0, "")

	doc.SetFont(fontName, "", 10)
	for _, row := range group.Rows {
		doc.CellFormat(colDateW, rowHeight, row.Date, "B", 0, "L", false, 0, "")
		doc.CellFormat(colVendorW, rowHeight, row.Vendor, "B", 0, "L", false, 0, "")
		doc.CellFormat(colAmountW, rowHeight, formatAmount(row.Amount, row.Currency), "B", 1, "R", false, 0, "")
	}

	doc.SetFont(fontName, "B", 10)
	doc.CellFormat(colDateW+colVendorW, rowHeight, "Subtotal", "", 0, "L", false, 0, "")
	doc.CellFormat(colAmountW, rowHeight, group.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	doc.Ln(3)
}
