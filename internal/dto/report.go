package dto

import (
	"time"

	"github.com/receiptly/receipt_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateReportRequest defines the data needed to create an expense report.
type CreateReportRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
	DateFrom    string `json:"dateFrom,omitempty" binding:"omitempty,datetime=2006-01-02"`
	DateTo      string `json:"dateTo,omitempty" binding:"omitempty,datetime=2006-01-02"`
}

// UpdateReportRequest defines a partial report update.
type UpdateReportRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty" binding:"omitempty,oneof=draft finalized"`
	DateFrom    *string `json:"dateFrom,omitempty" binding:"omitempty,datetime=2006-01-02"`
	DateTo      *string `json:"dateTo,omitempty" binding:"omitempty,datetime=2006-01-02"`
}

// ReportResponse defines the data returned for a report.
type ReportResponse struct {
	ReportID    string     `json:"reportID"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status"`
	DateFrom    *time.Time `json:"dateFrom,omitempty"`
	DateTo      *time.Time `json:"dateTo,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// ReportSummaryResponse decorates a report with aggregate statistics.
type ReportSummaryResponse struct {
	ReportResponse
	ReceiptCount int             `json:"receiptCount"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}

// ReportDetailResponse is a report together with its receipts.
type ReportDetailResponse struct {
	Report   ReportResponse    `json:"report"`
	Receipts []ReceiptResponse `json:"receipts"`
}

// ToReportResponse converts a domain.Report to ReportResponse DTO.
func ToReportResponse(report *domain.Report) ReportResponse {
	return ReportResponse{
		ReportID:    report.ReportID,
		Name:        report.Name,
		Description: report.Description,
		Status:      string(report.Status),
		DateFrom:    report.DateFrom,
		DateTo:      report.DateTo,
		CreatedAt:   report.CreatedAt,
		UpdatedAt:   report.UpdatedAt,
	}
}

// ToReportSummaryResponse converts a domain.ReportSummary to its DTO.
func ToReportSummaryResponse(summary *domain.ReportSummary) ReportSummaryResponse {
	return ReportSummaryResponse{
		ReportResponse: ToReportResponse(&summary.Report),
		ReceiptCount:   summary.ReceiptCount,
		TotalAmount:    summary.TotalAmount,
	}
}

// ToListReportSummaryResponse converts report summaries to response DTOs.
func ToListReportSummaryResponse(summaries []domain.ReportSummary) []ReportSummaryResponse {
	responses := make([]ReportSummaryResponse, len(summaries))
	for i := range summaries {
		responses[i] = ToReportSummaryResponse(&summaries[i])
	}
	return responses
}
