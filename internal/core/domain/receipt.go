package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is a single line on a receipt. Quantity and UnitPrice are optional
// because extraction cannot always determine them.
type LineItem struct {
	Description string           `json:"description"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unitPrice,omitempty"`
	Amount      decimal.Decimal  `json:"amount"`
}

// Receipt is an uploaded receipt document with its extracted or user-entered
// monetary data.
//
// Total is authoritative in the original currency. ConvertedTotal,
// ExchangeRate and ConvertedCurrency form one unit: either all three are set
// (ConvertedTotal == round2(Total * ExchangeRate)) or all three are absent.
// They are only ever written together; absence signals that no cross-currency
// conversion occurred.
type Receipt struct {
	ReceiptID        string     `json:"receiptID"`
	VendorName       string     `json:"vendorName"`
	Date             time.Time  `json:"date"`
	LineItems        []LineItem `json:"lineItems"`
	Subtotal         *decimal.Decimal `json:"subtotal,omitempty"`
	Tax              *decimal.Decimal `json:"tax,omitempty"`
	Total            decimal.Decimal  `json:"total"`
	OriginalCurrency string           `json:"originalCurrency"`

	ConvertedCurrency *string          `json:"convertedCurrency,omitempty"`
	ConvertedTotal    *decimal.Decimal `json:"convertedTotal,omitempty"`
	ExchangeRate      *decimal.Decimal `json:"exchangeRate,omitempty"`

	CategoryID  string  `json:"categoryID"`
	Notes       string  `json:"notes,omitempty"`
	FileName    string  `json:"fileName"`
	FileType    string  `json:"fileType"`
	FileData    []byte  `json:"-"`
	DriveFileID *string `json:"driveFileID,omitempty"`
	ReportID    *string `json:"reportID,omitempty"`
	AIExtracted bool    `json:"aiExtracted"`
	AuditFields
}

// DisplayTotal returns the converted total when the conversion unit is
// present, the original total otherwise. Invoice rendering and report
// aggregation both use this rule.
func (r *Receipt) DisplayTotal() (decimal.Decimal, string) {
	if r.ConvertedTotal != nil && r.ConvertedCurrency != nil {
		return *r.ConvertedTotal, *r.ConvertedCurrency
	}
	return r.Total, r.OriginalCurrency
}

// ClearConversion removes the conversion unit as a whole.
func (r *Receipt) ClearConversion() {
	r.ConvertedCurrency = nil
	r.ConvertedTotal = nil
	r.ExchangeRate = nil
}

// SetConversion writes the conversion unit as a whole.
func (r *Receipt) SetConversion(currency string, total, rate decimal.Decimal) {
	r.ConvertedCurrency = &currency
	r.ConvertedTotal = &total
	r.ExchangeRate = &rate
}
