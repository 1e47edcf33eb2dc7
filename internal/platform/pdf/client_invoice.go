package pdf

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClientInvoiceDoc is the renderable form of a client invoice: a numbered
// bill-to layout over the selected receipts with the original receipt images
// appended.
type ClientInvoiceDoc struct {
	InvoiceNumber   string
	Title           string
	BusinessName    string
	BusinessAddress string
	ClientName      string
	ClientAddress   string
	DateRange       string
	DueDate         string
	Notes           string
	IssuedAt        time.Time
	Rows            []ReceiptRow
	Total           decimal.Decimal
	Currency        string
	Images          []ReceiptImage
}

// RenderClientInvoice renders the document and returns the PDF bytes.
func RenderClientInvoice(data ClientInvoiceDoc) ([]byte, error) {
	doc := newDocument()

	doc.SetFont(fontName, "B", 20)
	doc.CellFormat(0, 10, data.Title, "", 1, "L", false, 0, "")

	doc.SetFont(fontName, "", 10)
	doc.SetTextColor(110, 110, 110)
	doc.CellFormat(0, 6, data.InvoiceNumber, "", 1, "L", false, 0, "")
	doc.CellFormat(0, 6, "Issued "+data.IssuedAt.Format("January 2, 2006"), "", 1, "L", false, 0, "")
	if data.DueDate != "" {
		doc.CellFormat(0, 6, "Due "+data.DueDate, "", 1, "L", false, 0, "")
	}
	doc.SetTextColor(0, 0, 0)
	doc.Ln(4)

	// From / Bill To blocks side by side.
	half := (colDateW + colVendorW + colAmountW) / 2
	topY := doc.GetY()
	doc.SetFont(fontName, "B", 10)
	doc.CellFormat(half, 6, "From", "", 2, "L", false, 0, "")
	doc.SetFont(fontName, "", 10)
	doc.MultiCell(half, 5, addressBlock(data.BusinessName, data.BusinessAddress), "", "L", false)
	fromBottom := doc.GetY()

	doc.SetXY(pageMargin+half, topY)
	doc.SetFont(fontName, "B", 10)
	doc.CellFormat(half, 6, "Bill To", "", 2, "L", false, 0, "")
	doc.SetFont(fontName, "", 10)
	doc.MultiCell(half, 5, addressBlock(data.ClientName, data.ClientAddress), "", "L", false)
	if doc.GetY() < fromBottom {
		doc.SetY(fromBottom)
	}
	doc.Ln(6)

	if data.DateRange != "" {
		doc.SetFont(fontName, "I", 9)
		doc.CellFormat(0, 5, "Period: "+data.DateRange, "", 1, "L", false, 0, "")
		doc.Ln(2)
	}

	// Line items.
	doc.SetFont(fontName, "B", 10)
	doc.SetFillColor(235, 237, 240)
	doc.CellFormat(colDateW, rowHeight, "Date", "B", 0, "L", true, 0, "")
	doc.CellFormat(colVendorW, rowHeight, "Description", "B", 0, "L", true, 0, "")
	doc.CellFormat(colAmountW, rowHeight, "Amount", "B", 1, "R", true, 0, "")

	doc.SetFont(fontName, "", 10)
	for _, row := range data.Rows {
		doc.CellFormat(colDateW, rowHeight, row.Date, "B", 0, "L", false, 0, "")
		doc.CellFormat(colVendorW, rowHeight, row.Vendor, "B", 0, "L", false, 0, "")
		doc.CellFormat(colAmountW, rowHeight, formatAmount(row.Amount, row.Currency), "B", 1, "R", false, 0, "")
	}

	doc.Ln(2)
	doc.SetFont(fontName, "B", 12)
	doc.CellFormat(colDateW+colVendorW, rowHeight+1, "Total Due", "", 0, "L", false, 0, "")
	doc.CellFormat(colAmountW, rowHeight+1, formatAmount(data.Total, data.Currency), "", 1, "R", false, 0, "")

	if data.Notes != "" {
		doc.Ln(6)
		doc.SetFont(fontName, "I", 9)
		doc.MultiCell(0, 5, data.Notes, "", "L", false)
	}

	appendImages(doc, data.Images)
	return output(doc)
}

func addressBlock(name, address string) string {
	switch {
	case name == "":
		return address
	case address == "":
		return name
	default:
		return name + "\n" + address
	}
}
