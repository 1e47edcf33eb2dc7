package services

import (
	"context"

	"github.com/receiptly/receipt_management_app/internal/core/domain"
	"github.com/receiptly/receipt_management_app/internal/core/ports"
	"github.com/receiptly/receipt_management_app/internal/dto"
)

// ReceiptSvcFacade defines the receipt business operations.
//
// Create and Update derive the conversion unit server-side: when the request
// names a target currency that differs from the original currency, the rate
// for the receipt date is looked up and convertedTotal/exchangeRate/
// convertedCurrency are written together. A rate failure never fails the
// save; the receipt is stored in its original currency with no conversion
// fields at all.
type ReceiptSvcFacade interface {
	CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest) (*domain.Receipt, error)
	GetReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error)
	GetReceiptFile(ctx context.Context, receiptID string) (fileName, fileType string, data []byte, err error)
	ListReceipts(ctx context.Context, filter ports.ReceiptFilter) ([]domain.Receipt, int, error)
	UpdateReceipt(ctx context.Context, receiptID string, req dto.UpdateReceiptRequest) (*domain.Receipt, error)
	DeleteReceipt(ctx context.Context, receiptID string) error
	BackupReceiptToDrive(ctx context.Context, receiptID string) (driveFileID string, err error)
}
