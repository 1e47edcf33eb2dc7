package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/receiptly/receipt_management_app/internal/apperrors"
	"github.com/receiptly/receipt_management_app/internal/core/domain"
	"github.com/receiptly/receipt_management_app/internal/core/ports"
	portssvc "github.com/receiptly/receipt_management_app/internal/core/ports/services"
	"github.com/receiptly/receipt_management_app/internal/dto"
	"github.com/receiptly/receipt_management_app/internal/exchange"
	"github.com/receiptly/receipt_management_app/internal/middleware"
	"github.com/receiptly/receipt_management_app/internal/platform/pdf"
)

// invoiceService renders PDF documents from persisted receipts.
type invoiceService struct {
	receiptRepo  ports.ReceiptRepository
	categoryRepo ports.CategoryRepository
	settingsSvc  portssvc.SettingsSvcFacade
}

// NewInvoiceService creates a new invoice service.
func NewInvoiceService(receiptRepo ports.ReceiptRepository, categoryRepo ports.CategoryRepository, settingsSvc portssvc.SettingsSvcFacade) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		receiptRepo:  receiptRepo,
		categoryRepo: categoryRepo,
		settingsSvc:  settingsSvc,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// GenerateDocument renders the requested document type over the named
// receipts and returns the PDF bytes with a suggested file name.
func (s *invoiceService) GenerateDocument(ctx context.Context, req dto.GenerateInvoiceRequest) ([]byte, string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	receipts, err := s.receiptRepo.FindReceiptsByIDs(ctx, req.ReceiptIDs, true)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load receipts: %w", err)
	}
	if len(receipts) == 0 {
		return nil, "", fmt.Errorf("%w: no matching receipts", apperrors.ErrNotFound)
	}

	switch req.Type {
	case dto.InvoiceTypeExpenseReport:
		return s.generateExpenseReport(ctx, receipts, req.Config)
	case dto.InvoiceTypeClientInvoice:
		return s.generateClientInvoice(ctx, receipts, req.Config)
	default:
		logger.Warn("Unknown document type", slog.String("type", req.Type))
		return nil, "", fmt.Errorf("%w: unknown document type %s", apperrors.ErrValidation, req.Type)
	}
}

// receiptRows converts receipts to renderable rows using their display
// amounts (converted where a conversion unit exists).
func receiptRows(receipts []domain.Receipt) ([]pdf.ReceiptRow, decimal.Decimal, string) {
	rows := make([]pdf.ReceiptRow, len(receipts))
	total := decimal.Zero
	currency := ""
	for i := range receipts {
		amount, cur := receipts[i].DisplayTotal()
		if currency == "" {
			currency = cur
		}
		rows[i] = pdf.ReceiptRow{
			Date:     receipts[i].Date.Format("2006-01-02"),
			Vendor:   receipts[i].VendorName,
			Amount:   amount,
			Currency: cur,
		}
		total = total.Add(amount)
	}
	return rows, exchange.Round2(total), currency
}

func receiptImages(receipts []domain.Receipt) []pdf.ReceiptImage {
	images := make([]pdf.ReceiptImage, 0, len(receipts))
	for i := range receipts {
		if !strings.HasPrefix(receipts[i].FileType, "image/") || len(receipts[i].FileData) == 0 {
			continue
		}
		images = append(images, pdf.ReceiptImage{
			FileName: receipts[i].FileName,
			FileType: receipts[i].FileType,
			Data:     receipts[i].FileData,
		})
	}
	return images
}

func (s *invoiceService) generateExpenseReport(ctx context.Context, receipts []domain.Receipt, cfg dto.InvoiceConfig) ([]byte, string, error) {
	categoryNames := map[string]string{}
	categories, err := s.categoryRepo.ListCategories(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load categories: %w", err)
	}
	for _, category := range categories {
		categoryNames[category.CategoryID] = category.Name
	}

	// Group receipts per category, keeping a stable name order.
	grouped := map[string][]domain.Receipt{}
	for _, receipt := range receipts {
		name := categoryNames[receipt.CategoryID]
		if name == "" {
			name = "Uncategorized"
		}
		grouped[name] = append(grouped[name], receipt)
	}
	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)

	doc := pdf.ExpenseReportDoc{
		Title:       cfg.Title,
		DateRange:   cfg.DateRange,
		Notes:       cfg.Notes,
		GeneratedAt: time.Now(),
		Images:      receiptImages(receipts),
	}
	if doc.Title == "" {
		doc.Title = "Expense Report"
	}

	grandTotal := decimal.Zero
	for _, name := range names {
		rows, subtotal, currency := receiptRows(grouped[name])
		doc.Groups = append(doc.Groups, pdf.CategoryGroup{
			Name:     name,
			Rows:     rows,
			Subtotal: subtotal,
		})
		grandTotal = grandTotal.Add(subtotal)
		if doc.Currency == "" {
			doc.Currency = currency
		}
	}
	doc.GrandTotal = exchange.Round2(grandTotal)

	data, err := pdf.RenderExpenseReport(doc)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render expense report: %w", err)
	}

	fileName := fmt.Sprintf("expense-report-%s.pdf", time.Now().Format("2006-01-02"))
	return data, fileName, nil
}

func (s *invoiceService) generateClientInvoice(ctx context.Context, receipts []domain.Receipt, cfg dto.InvoiceConfig) ([]byte, string, error) {
	settings, err := s.settingsSvc.GetSettings(ctx)
	if err != nil {
		return nil, "", err
	}
	invoiceNumber, err := s.settingsSvc.AllocateInvoiceNumber(ctx)
	if err != nil {
		return nil, "", err
	}

	rows, total, currency := receiptRows(receipts)

	doc := pdf.ClientInvoiceDoc{
		InvoiceNumber:   invoiceNumber,
		Title:           cfg.Title,
		BusinessName:    settings.BusinessName,
		BusinessAddress: settings.BusinessAddress,
		ClientName:      cfg.ClientName,
		ClientAddress:   cfg.ClientAddress,
		DateRange:       cfg.DateRange,
		DueDate:         cfg.DueDate,
		Notes:           cfg.Notes,
		IssuedAt:        time.Now(),
		Rows:            rows,
		Total:           total,
		Currency:        currency,
		Images:          receiptImages(receipts),
	}
	if doc.Title == "" {
		doc.Title = "Invoice"
	}

	data, err := pdf.RenderClientInvoice(doc)
	if err != nil {
		return nil, "", fmt.Errorf("failed to render invoice: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Invoice generated", slog.String("invoice_number", invoiceNumber))
	fileName := fmt.Sprintf("%s.pdf", invoiceNumber)
	return data, fileName, nil
}
