package dto

import (
	"time"

	"github.com/receiptly/receipt_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineItemDTO mirrors domain.LineItem for requests and responses.
type LineItemDTO struct {
	Description string           `json:"description" binding:"required"`
	Quantity    *decimal.Decimal `json:"quantity,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unitPrice,omitempty"`
	Amount      decimal.Decimal  `json:"amount" binding:"required"`
}

// CreateReceiptRequest defines the data needed to create a receipt.
// FileData arrives base64-encoded in JSON and decodes into raw bytes.
// ConvertedCurrency, when present and different from OriginalCurrency, asks
// the server to derive the conversion unit for that target currency.
type CreateReceiptRequest struct {
	VendorName        string           `json:"vendorName" binding:"required"`
	Date              string           `json:"date" binding:"required,datetime=2006-01-02"`
	LineItems         []LineItemDTO    `json:"lineItems"`
	Subtotal          *decimal.Decimal `json:"subtotal,omitempty"`
	Tax               *decimal.Decimal `json:"tax,omitempty"`
	Total             decimal.Decimal  `json:"total" binding:"required"`
	OriginalCurrency  string           `json:"originalCurrency" binding:"required,len=3,uppercase"`
	ConvertedCurrency string           `json:"convertedCurrency,omitempty" binding:"omitempty,len=3,uppercase"`
	CategoryID        string           `json:"categoryID" binding:"required,uuid"`
	Notes             string           `json:"notes,omitempty"`
	FileName          string           `json:"fileName" binding:"required"`
	FileType          string           `json:"fileType" binding:"required"`
	FileData          []byte           `json:"fileData" binding:"required"`
	ReportID          string           `json:"reportID,omitempty" binding:"omitempty,uuid"`
	AIExtracted       bool             `json:"aiExtracted"`
}

// UpdateReceiptRequest defines a partial receipt update. File data cannot be
// changed through this request. ConvertedCurrency set to the empty string
// drops the conversion unit.
type UpdateReceiptRequest struct {
	VendorName        *string          `json:"vendorName,omitempty"`
	Date              *string          `json:"date,omitempty" binding:"omitempty,datetime=2006-01-02"`
	LineItems         *[]LineItemDTO   `json:"lineItems,omitempty"`
	Subtotal          *decimal.Decimal `json:"subtotal,omitempty"`
	Tax               *decimal.Decimal `json:"tax,omitempty"`
	Total             *decimal.Decimal `json:"total,omitempty"`
	OriginalCurrency  *string          `json:"originalCurrency,omitempty" binding:"omitempty,len=3,uppercase"`
	ConvertedCurrency *string          `json:"convertedCurrency,omitempty" binding:"omitempty,len=3,uppercase|eq="`
	CategoryID        *string          `json:"categoryID,omitempty" binding:"omitempty,uuid"`
	Notes             *string          `json:"notes,omitempty"`
	ReportID          *string          `json:"reportID,omitempty" binding:"omitempty,uuid|eq="`
}

// ReceiptResponse defines the data returned for a receipt. File bytes are
// never inlined; clients fetch them from the file endpoint.
// ConversionNotice is set when a requested conversion could not be performed
// and the receipt was saved in its original currency only.
type ReceiptResponse struct {
	ReceiptID         string           `json:"receiptID"`
	VendorName        string           `json:"vendorName"`
	Date              string           `json:"date"`
	LineItems         []LineItemDTO    `json:"lineItems"`
	Subtotal          *decimal.Decimal `json:"subtotal,omitempty"`
	Tax               *decimal.Decimal `json:"tax,omitempty"`
	Total             decimal.Decimal  `json:"total"`
	OriginalCurrency  string           `json:"originalCurrency"`
	ConvertedCurrency *string          `json:"convertedCurrency,omitempty"`
	ConvertedTotal    *decimal.Decimal `json:"convertedTotal,omitempty"`
	ExchangeRate      *decimal.Decimal `json:"exchangeRate,omitempty"`
	CategoryID        string           `json:"categoryID"`
	Notes             string           `json:"notes,omitempty"`
	FileName          string           `json:"fileName"`
	FileType          string           `json:"fileType"`
	DriveFileID       *string          `json:"driveFileID,omitempty"`
	ReportID          *string          `json:"reportID,omitempty"`
	AIExtracted       bool             `json:"aiExtracted"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
	ConversionNotice  string           `json:"conversionNotice,omitempty"`
}

// ListReceiptsResponse is a paginated receipt listing.
type ListReceiptsResponse struct {
	Receipts []ReceiptResponse `json:"receipts"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

// ToLineItems converts request line items into domain line items.
func ToLineItems(items []LineItemDTO) []domain.LineItem {
	result := make([]domain.LineItem, len(items))
	for i, item := range items {
		result[i] = domain.LineItem{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}
	return result
}

func toLineItemDTOs(items []domain.LineItem) []LineItemDTO {
	result := make([]LineItemDTO, len(items))
	for i, item := range items {
		result[i] = LineItemDTO{
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}
	return result
}

// ToReceiptResponse converts a domain.Receipt to ReceiptResponse DTO.
func ToReceiptResponse(receipt *domain.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ReceiptID:         receipt.ReceiptID,
		VendorName:        receipt.VendorName,
		Date:              receipt.Date.Format("2006-01-02"),
		LineItems:         toLineItemDTOs(receipt.LineItems),
		Subtotal:          receipt.Subtotal,
		Tax:               receipt.Tax,
		Total:             receipt.Total,
		OriginalCurrency:  receipt.OriginalCurrency,
		ConvertedCurrency: receipt.ConvertedCurrency,
		ConvertedTotal:    receipt.ConvertedTotal,
		ExchangeRate:      receipt.ExchangeRate,
		CategoryID:        receipt.CategoryID,
		Notes:             receipt.Notes,
		FileName:          receipt.FileName,
		FileType:          receipt.FileType,
		DriveFileID:       receipt.DriveFileID,
		ReportID:          receipt.ReportID,
		AIExtracted:       receipt.AIExtracted,
		CreatedAt:         receipt.CreatedAt,
		UpdatedAt:         receipt.UpdatedAt,
	}
}

// ToListReceiptsResponse converts a page of receipts into the list DTO.
func ToListReceiptsResponse(receipts []domain.Receipt, total, page, limit int) ListReceiptsResponse {
	responses := make([]ReceiptResponse, len(receipts))
	for i := range receipts {
		responses[i] = ToReceiptResponse(&receipts[i])
	}
	return ListReceiptsResponse{
		Receipts: responses,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}
}
