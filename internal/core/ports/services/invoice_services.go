package services

import (
	"context"

	"github.com/receiptly/receipt_management_app/internal/dto"
)

// InvoiceSvcFacade renders PDF documents from persisted receipts.
type InvoiceSvcFacade interface {
	// GenerateDocument returns the rendered PDF and a suggested file name.
	GenerateDocument(ctx context.Context, req dto.GenerateInvoiceRequest) (pdf []byte, fileName string, err error)
}
