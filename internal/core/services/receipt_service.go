package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/receiptly/receipt_management_app/internal/apperrors"
	"github.com/receiptly/receipt_management_app/internal/core/domain"
	"github.com/receiptly/receipt_management_app/internal/core/ports"
	portssvc "github.com/receiptly/receipt_management_app/internal/core/ports/services"
	"github.com/receiptly/receipt_management_app/internal/dto"
	"github.com/receiptly/receipt_management_app/internal/exchange"
	"github.com/receiptly/receipt_management_app/internal/middleware"
)

// receiptService handles receipt business logic, including the server-side
// derivation of the currency conversion unit.
type receiptService struct {
	receiptRepo  ports.ReceiptRepository
	categoryRepo ports.CategoryRepository
	rateSvc      portssvc.RateSvcFacade
	driveSvc     portssvc.DriveSvcFacade
}

// NewReceiptService creates a new receipt service.
func NewReceiptService(receiptRepo ports.ReceiptRepository, categoryRepo ports.CategoryRepository, rateSvc portssvc.RateSvcFacade, driveSvc portssvc.DriveSvcFacade) portssvc.ReceiptSvcFacade {
	return &receiptService{
		receiptRepo:  receiptRepo,
		categoryRepo: categoryRepo,
		rateSvc:      rateSvc,
		driveSvc:     driveSvc,
	}
}

var _ portssvc.ReceiptSvcFacade = (*receiptService)(nil)

// applyConversion recomputes the receipt's conversion unit for the given
// target currency. A rate failure never fails the save; the receipt keeps no
// conversion fields at all and the failure is logged.
func (s *receiptService) applyConversion(ctx context.Context, receipt *domain.Receipt, targetCurrency string) {
	receipt.ClearConversion()
	if targetCurrency == "" || !exchange.NeedsConversion(receipt.OriginalCurrency, targetCurrency) {
		return
	}

	logger := middleware.GetLoggerFromCtx(ctx)
	date := receipt.Date.Format("2006-01-02")

	rate, err := s.rateSvc.GetExchangeRate(ctx, date, receipt.OriginalCurrency, targetCurrency)
	if err != nil {
		logger.Warn("Exchange rate unavailable, saving receipt without conversion",
			slog.String("receipt_id", receipt.ReceiptID),
			slog.String("from", receipt.OriginalCurrency),
			slog.String("to", targetCurrency),
			slog.String("date", date),
			slog.String("error", err.Error()),
		)
		return
	}

	receipt.SetConversion(targetCurrency, exchange.Convert(receipt.Total, rate), rate)
}

// validateCategory confirms the referenced category exists.
func (s *receiptService) validateCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	_, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: category %s not found", apperrors.ErrValidation, categoryID)
		}
		return fmt.Errorf("failed to validate category: %w", err)
	}
	return nil
}

// CreateReceipt stores a new receipt. When the request names a conversion
// target, the conversion unit is derived from the historical rate for the
// receipt date.
func (s *receiptService) CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest) (*domain.Receipt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validateCategory(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date", apperrors.ErrValidation)
	}

	now := time.Now()
	receipt := domain.Receipt{
		ReceiptID:        uuid.NewString(),
		VendorName:       req.VendorName,
		Date:             date,
		LineItems:        dto.ToLineItems(req.LineItems),
		Subtotal:         req.Subtotal,
		Tax:              req.Tax,
		Total:            req.Total,
		OriginalCurrency: req.OriginalCurrency,
		CategoryID:       req.CategoryID,
		Notes:            req.Notes,
		FileName:         req.FileName,
		FileType:         req.FileType,
		FileData:         req.FileData,
		AIExtracted:      req.AIExtracted,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if req.ReportID != "" {
		reportID := req.ReportID
		receipt.ReportID = &reportID
	}

	s.applyConversion(ctx, &receipt, req.ConvertedCurrency)

	if err := s.receiptRepo.SaveReceipt(ctx, receipt); err != nil {
		logger.Error("Failed to save receipt", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create receipt: %w", err)
	}

	logger.Info("Receipt created", slog.String("receipt_id", receipt.ReceiptID), slog.String("vendor", receipt.VendorName))
	return &receipt, nil
}

// GetReceiptByID retrieves a receipt without its file bytes.
func (s *receiptService) GetReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	receipt, err := s.receiptRepo.FindReceiptByID(ctx, receiptID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}
	return receipt, nil
}

// GetReceiptFile retrieves the stored file for a receipt.
func (s *receiptService) GetReceiptFile(ctx context.Context, receiptID string) (string, string, []byte, error) {
	receipt, err := s.receiptRepo.FindReceiptByID(ctx, receiptID, true)
	if err != nil {
		return "", "", nil, fmt.Errorf("failed to get receipt file: %w", err)
	}
	return receipt.FileName, receipt.FileType, receipt.FileData, nil
}

// ListReceipts returns a filtered page of receipts and the total match count.
func (s *receiptService) ListReceipts(ctx context.Context, filter ports.ReceiptFilter) ([]domain.Receipt, int, error) {
	receipts, total, err := s.receiptRepo.ListReceipts(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list receipts: %w", err)
	}
	return receipts, total, nil
}

// UpdateReceipt applies a partial update. The conversion unit is recomputed
// whenever its inputs (date, total, original currency, target currency)
// change, and dropped when the request clears the target currency.
func (s *receiptService) UpdateReceipt(ctx context.Context, receiptID string, req dto.UpdateReceiptRequest) (*domain.Receipt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	receipt, err := s.receiptRepo.FindReceiptByID(ctx, receiptID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt for update: %w", err)
	}

	// Current target, kept unless the request names or clears one.
	targetCurrency := ""
	if receipt.ConvertedCurrency != nil {
		targetCurrency = *receipt.ConvertedCurrency
	}

	conversionInputsChanged := false

	if req.VendorName != nil {
		receipt.VendorName = *req.VendorName
	}
	if req.Date != nil {
		date, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date", apperrors.ErrValidation)
		}
		if !date.Equal(receipt.Date) {
			conversionInputsChanged = true
		}
		receipt.Date = date
	}
	if req.LineItems != nil {
		receipt.LineItems = dto.ToLineItems(*req.LineItems)
	}
	if req.Subtotal != nil {
		receipt.Subtotal = req.Subtotal
	}
	if req.Tax != nil {
		receipt.Tax = req.Tax
	}
	if req.Total != nil {
		if !req.Total.Equal(receipt.Total) {
			conversionInputsChanged = true
		}
		receipt.Total = *req.Total
	}
	if req.OriginalCurrency != nil {
		if *req.OriginalCurrency != receipt.OriginalCurrency {
			conversionInputsChanged = true
		}
		receipt.OriginalCurrency = *req.OriginalCurrency
	}
	if req.ConvertedCurrency != nil {
		if *req.ConvertedCurrency != targetCurrency {
			conversionInputsChanged = true
		}
		targetCurrency = *req.ConvertedCurrency
	}
	if req.CategoryID != nil {
		if err := s.validateCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
		receipt.CategoryID = *req.CategoryID
	}
	if req.Notes != nil {
		receipt.Notes = *req.Notes
	}
	if req.ReportID != nil {
		if *req.ReportID == "" {
			receipt.ReportID = nil
		} else {
			reportID := *req.ReportID
			receipt.ReportID = &reportID
		}
	}

	if conversionInputsChanged {
		s.applyConversion(ctx, receipt, targetCurrency)
	}
	receipt.UpdatedAt = time.Now()

	if err := s.receiptRepo.UpdateReceipt(ctx, *receipt); err != nil {
		logger.Error("Failed to update receipt", slog.String("receipt_id", receiptID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to update receipt: %w", err)
	}
	return receipt, nil
}

// DeleteReceipt removes a receipt and its stored file.
func (s *receiptService) DeleteReceipt(ctx context.Context, receiptID string) error {
	if err := s.receiptRepo.DeleteReceipt(ctx, receiptID); err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	middleware.GetLoggerFromCtx(ctx).Info("Receipt deleted", slog.String("receipt_id", receiptID))
	return nil
}

// BackupReceiptToDrive uploads the receipt's file to the connected Google
// Drive account and records the resulting file ID.
func (s *receiptService) BackupReceiptToDrive(ctx context.Context, receiptID string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	receipt, err := s.receiptRepo.FindReceiptByID(ctx, receiptID, true)
	if err != nil {
		return "", fmt.Errorf("failed to get receipt for backup: %w", err)
	}
	if len(receipt.FileData) == 0 {
		return "", fmt.Errorf("%w: receipt has no stored file", apperrors.ErrValidation)
	}

	driveFileID, err := s.driveSvc.UploadFile(ctx, receipt.FileName, receipt.FileType, receipt.FileData)
	if err != nil {
		logger.Error("Drive upload failed", slog.String("receipt_id", receiptID), slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to upload receipt to drive: %w", err)
	}

	if err := s.receiptRepo.SetDriveFileID(ctx, receiptID, driveFileID); err != nil {
		return "", fmt.Errorf("failed to record drive file ID: %w", err)
	}

	logger.Info("Receipt backed up to Drive", slog.String("receipt_id", receiptID), slog.String("drive_file_id", driveFileID))
	return driveFileID, nil
}
