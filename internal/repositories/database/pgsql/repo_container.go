package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/receiptly/receipt_management_app/internal/core/ports"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ReceiptRepo:   NewPgxReceiptRepository(dbPool),
		CategoryRepo:  NewPgxCategoryRepository(dbPool),
		ReportRepo:    NewPgxReportRepository(dbPool),
		SettingsRepo:  NewPgxSettingsRepository(dbPool),
		DashboardRepo: NewPgxDashboardRepository(dbPool),
	}
}
