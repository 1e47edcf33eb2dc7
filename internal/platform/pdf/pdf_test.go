package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []ReceiptRow {
	return []ReceiptRow{
		{Date: "2024-03-15", Vendor: "Hotel Berlin", Amount: decimal.RequireFromString("100.00"), Currency: "EUR"},
		{Date: "2024-03-16", Vendor: "Taxi Mitte", Amount: decimal.RequireFromString("23.50"), Currency: "EUR"},
	}
}

func TestRenderExpenseReport(t *testing.T) {
	doc := ExpenseReportDoc{
		Title:       "Expense Report",
		DateRange:   "March 2024",
		Notes:       "Client visit, Berlin",
		GeneratedAt: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Groups: []CategoryGroup{
			{Name: "Accommodation", Rows: sampleRows()[:1], Subtotal: decimal.RequireFromString("100.00")},
			{Name: "Transportation", Rows: sampleRows()[1:], Subtotal: decimal.RequireFromString("23.50")},
		},
		GrandTotal: decimal.RequireFromString("123.50"),
		Currency:   "EUR",
	}

	data, err := RenderExpenseReport(doc)

	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestRenderClientInvoice(t *testing.T) {
	doc := ClientInvoiceDoc{
		InvoiceNumber:   "INV-0042",
		Title:           "Invoice",
		BusinessName:    "Acme Consulting",
		BusinessAddress: "1 Main St\nSpringfield",
		ClientName:      "Globex Corp",
		ClientAddress:   "2 Side St\nShelbyville",
		DueDate:         "2024-04-30",
		IssuedAt:        time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		Rows:            sampleRows(),
		Total:           decimal.RequireFromString("123.50"),
		Currency:        "EUR",
	}

	data, err := RenderClientInvoice(doc)

	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestImageType(t *testing.T) {
	assert.Equal(t, "JPG", imageType("image/jpeg"))
	assert.Equal(t, "PNG", imageType("image/png"))
	assert.Equal(t, "GIF", imageType("image/gif"))
	assert.Empty(t, imageType("application/pdf"))
}

func TestRenderSkipsUnsupportedImages(t *testing.T) {
	doc := ExpenseReportDoc{
		Title:      "Expense Report",
		GrandTotal: decimal.Zero,
		Images: []ReceiptImage{
			{FileName: "receipt.pdf", FileType: "application/pdf", Data: []byte("%PDF-1.4")},
		},
	}

	data, err := RenderExpenseReport(doc)

	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
