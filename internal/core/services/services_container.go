package services

import (
	"github.com/receiptly/receipt_management_app/internal/adapters/gemini"
	"github.com/receiptly/receipt_management_app/internal/adapters/googledrive"
	portsrepo "github.com/receiptly/receipt_management_app/internal/core/ports"
	portssvc "github.com/receiptly/receipt_management_app/internal/core/ports/services"
	"github.com/receiptly/receipt_management_app/internal/exchange"
	"github.com/receiptly/receipt_management_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly
// initialized dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) (*portssvc.ServiceContainer, error) {
	container := &portssvc.ServiceContainer{}

	// Currency rate engine: frankfurter client behind the in-memory cache.
	rateCache := exchange.NewRateCache(cfg.RateCacheMaxEntries, cfg.RateCacheTTL)
	rateClient := exchange.NewClient(cfg.FrankfurterBaseURL, cfg.RateHTTPTimeout)
	container.Rate = NewRateService(exchange.NewRateProvider(rateCache, rateClient), rateClient)

	container.Settings = NewSettingsService(repos.SettingsRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)

	// External collaborators read their credentials from settings at call
	// time, so key and connection changes apply without a restart.
	container.Extraction = gemini.NewClient(cfg.GeminiBaseURL, cfg.GeminiHTTPTimeout, container.Settings)
	container.Drive = googledrive.NewDriveService(cfg, repos.SettingsRepo)

	container.Receipt = NewReceiptService(repos.ReceiptRepo, repos.CategoryRepo, container.Rate, container.Drive)
	container.Report = NewReportService(repos.ReportRepo, repos.ReceiptRepo)
	container.Invoice = NewInvoiceService(repos.ReceiptRepo, repos.CategoryRepo, container.Settings)
	container.Dashboard = NewDashboardService(repos.DashboardRepo, repos.ReceiptRepo)

	auth, err := NewAuthService(cfg)
	if err != nil {
		return nil, err
	}
	container.Auth = auth

	return container, nil
}
