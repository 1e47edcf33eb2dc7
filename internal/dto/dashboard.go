package dto

import (
	"github.com/receiptly/receipt_management_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CategoryBreakdownResponse is one row of the dashboard spending aggregate.
type CategoryBreakdownResponse struct {
	CategoryName string          `json:"categoryName"`
	Color        string          `json:"color"`
	Total        decimal.Decimal `json:"total"`
	Count        int             `json:"count"`
}

// DashboardResponse is the landing-page overview payload.
type DashboardResponse struct {
	TotalReceipts     int                         `json:"totalReceipts"`
	DraftReports      int                         `json:"draftReports"`
	RecentReceipts    []ReceiptResponse           `json:"recentReceipts"`
	CategoryBreakdown []CategoryBreakdownResponse `json:"categoryBreakdown"`
}

// ToDashboardResponse converts a domain.DashboardSummary to its DTO.
func ToDashboardResponse(summary *domain.DashboardSummary) DashboardResponse {
	recent := make([]ReceiptResponse, len(summary.RecentReceipts))
	for i := range summary.RecentReceipts {
		recent[i] = ToReceiptResponse(&summary.RecentReceipts[i])
	}
	breakdown := make([]CategoryBreakdownResponse, len(summary.CategoryBreakdown))
	for i, row := range summary.CategoryBreakdown {
		breakdown[i] = CategoryBreakdownResponse{
			CategoryName: row.CategoryName,
			Color:        row.Color,
			Total:        row.Total,
			Count:        row.Count,
		}
	}
	return DashboardResponse{
		TotalReceipts:     summary.TotalReceipts,
		DraftReports:      summary.DraftReports,
		RecentReceipts:    recent,
		CategoryBreakdown: breakdown,
	}
}
