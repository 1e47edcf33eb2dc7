package dto

// Invoice generation document types.
const (
	InvoiceTypeExpenseReport = "expense-report"
	InvoiceTypeClientInvoice = "client-invoice"
)

// InvoiceConfig carries the optional presentation fields for a generated
// document.
type InvoiceConfig struct {
	Title         string `json:"title,omitempty"`
	ClientName    string `json:"clientName,omitempty"`
	ClientAddress string `json:"clientAddress,omitempty"`
	DateRange     string `json:"dateRange,omitempty"`
	DueDate       string `json:"dueDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Notes         string `json:"notes,omitempty"`
}

// GenerateInvoiceRequest defines the data needed to render a PDF document
// from a set of receipts.
type GenerateInvoiceRequest struct {
	Type       string        `json:"type" binding:"required,oneof=expense-report client-invoice"`
	ReceiptIDs []string      `json:"receiptIDs" binding:"required,min=1,dive,uuid"`
	Config     InvoiceConfig `json:"config"`
}
