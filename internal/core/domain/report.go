package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportStatus is the lifecycle state of an expense report.
type ReportStatus string

const (
	ReportStatusDraft     ReportStatus = "draft"
	ReportStatusFinalized ReportStatus = "finalized"
)

// Report groups receipts into an expense report.
type Report struct {
	ReportID    string       `json:"reportID"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Status      ReportStatus `json:"status"`
	DateFrom    *time.Time   `json:"dateFrom,omitempty"`
	DateTo      *time.Time   `json:"dateTo,omitempty"`
	AuditFields
}

// ReportSummary decorates a report with aggregate receipt statistics.
type ReportSummary struct {
	Report
	ReceiptCount int             `json:"receiptCount"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}
