// Package pdf renders expense reports and client invoices as PDF documents.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// ReceiptRow is one renderable receipt line.
type ReceiptRow struct {
	Date     string
	Vendor   string
	Amount   decimal.Decimal
	Currency string
}

// ReceiptImage is an original receipt image appended to a document.
type ReceiptImage struct {
	FileName string
	FileType string
	Data     []byte
}

// CategoryGroup is one category section of an expense report.
type CategoryGroup struct {
	Name     string
	Rows     []ReceiptRow
	Subtotal decimal.Decimal
}

const (
	pageMargin  = 15.0
	rowHeight   = 7.0
	fontName    = "Helvetica"
	colDateW   = 30.0
	colVendorW = 100.0
	colAmountW = 50.0
	imagePageW = 180.0
)

func newDocument() *fpdf.Fpdf {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pageMargin, pageMargin, pageMargin)
	doc.SetAutoPageBreak(true, pageMargin)
	doc.AddPage()
	return doc
}

func formatAmount(amount decimal.Decimal, currency string) string {
	if currency == "" {
		return amount.StringFixed(2)
	}
	return amount.StringFixed(2) + " " + currency
}

// imageType maps a MIME type to the format name fpdf expects. Unsupported
// types return the empty string and are skipped by the caller.
func imageType(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/jpeg", "image/jpg":
		return "JPG"
	case "image/png":
		return "PNG"
	case "image/gif":
		return "GIF"
	default:
		return ""
	}
}

// appendImages renders each attached receipt image on its own page.
func appendImages(doc *fpdf.Fpdf, images []ReceiptImage) {
	for i, image := range images {
		format := imageType(image.FileType)
		if format == "" {
			continue
		}

		doc.AddPage()
		doc.SetFont(fontName, "B", 11)
		doc.CellFormat(0, rowHeight, image.FileName, "", 1, "L", false, 0, "")
		doc.Ln(2)

		opts := fpdf.ImageOptions{ImageType: format, ReadDpi: true}
		// Registered names must be unique even when file names repeat.
		name := fmt.Sprintf("receipt-image-%d", i)
		doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(image.Data))
		// Width-bound scaling; fpdf keeps the aspect ratio when height is 0.
		doc.ImageOptions(name, pageMargin, doc.GetY(), imagePageW, 0, false, opts, 0, "")
	}
}

func output(doc *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
