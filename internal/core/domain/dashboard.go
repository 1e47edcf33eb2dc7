package domain

import "github.com/shopspring/decimal"

// CategoryBreakdownRow is one row of the dashboard's per-category spending
// aggregate.
type CategoryBreakdownRow struct {
	CategoryName string          `json:"categoryName"`
	Color        string          `json:"color"`
	Total        decimal.Decimal `json:"total"`
	Count        int             `json:"count"`
}

// DashboardSummary is the landing-page overview.
type DashboardSummary struct {
	TotalReceipts     int                    `json:"totalReceipts"`
	DraftReports      int                    `json:"draftReports"`
	RecentReceipts    []Receipt              `json:"recentReceipts"`
	CategoryBreakdown []CategoryBreakdownRow `json:"categoryBreakdown"`
}
