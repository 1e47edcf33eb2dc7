package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/receiptly/receipt_management_app/internal/core/domain"
)

// PgxSettingsRepository implements the ports.SettingsRepository interface
// using pgxpool. Settings live in a single row keyed by settings_id = 1.
type PgxSettingsRepository struct {
	BaseRepository
}

// NewPgxSettingsRepository creates a new PgxSettingsRepository.
func NewPgxSettingsRepository(db *pgxpool.Pool) *PgxSettingsRepository {
	return &PgxSettingsRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

const settingsDefaultCurrency = "USD"
const settingsDefaultInvoicePrefix = "INV-"

// GetSettings returns the singleton settings row, inserting the defaults on
// first access.
func (r *PgxSettingsRepository) GetSettings(ctx context.Context) (*domain.Settings, error) {
	settings, err := r.querySettings(ctx)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	// First access. ON CONFLICT covers a concurrent first access.
	_, err = r.Pool.Exec(ctx, `
		INSERT INTO settings (settings_id, default_currency, invoice_number_prefix, next_invoice_number, updated_at)
		VALUES (1, $1, $2, 1, NOW())
		ON CONFLICT (settings_id) DO NOTHING`,
		settingsDefaultCurrency, settingsDefaultInvoicePrefix,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize settings: %w", err)
	}

	settings, err = r.querySettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

func (r *PgxSettingsRepository) querySettings(ctx context.Context) (*domain.Settings, error) {
	var settings domain.Settings
	var accessToken, refreshToken *string
	var tokenExpiry *time.Time

	err := r.Pool.QueryRow(ctx, `
		SELECT gemini_api_key, default_currency,
			drive_access_token, drive_refresh_token, drive_token_expiry, drive_folder_id,
			invoice_number_prefix, next_invoice_number,
			business_name, business_address, updated_at
		FROM settings WHERE settings_id = 1`,
	).Scan(&settings.GeminiAPIKey, &settings.DefaultCurrency,
		&accessToken, &refreshToken, &tokenExpiry, &settings.DriveFolderID,
		&settings.InvoiceNumberPrefix, &settings.NextInvoiceNumber,
		&settings.BusinessName, &settings.BusinessAddress, &settings.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if refreshToken != nil && *refreshToken != "" {
		tokens := domain.DriveTokens{RefreshToken: *refreshToken}
		if accessToken != nil {
			tokens.AccessToken = *accessToken
		}
		if tokenExpiry != nil {
			tokens.Expiry = *tokenExpiry
		}
		settings.DriveTokens = &tokens
	}
	return &settings, nil
}

// SaveSettings overwrites the singleton row.
func (r *PgxSettingsRepository) SaveSettings(ctx context.Context, settings domain.Settings) error {
	var accessToken, refreshToken *string
	var tokenExpiry *time.Time
	if settings.DriveTokens != nil {
		accessToken = &settings.DriveTokens.AccessToken
		refreshToken = &settings.DriveTokens.RefreshToken
		tokenExpiry = &settings.DriveTokens.Expiry
	}

	_, err := r.Pool.Exec(ctx, `
		INSERT INTO settings (
			settings_id, gemini_api_key, default_currency,
			drive_access_token, drive_refresh_token, drive_token_expiry, drive_folder_id,
			invoice_number_prefix, next_invoice_number,
			business_name, business_address, updated_at
		) VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (settings_id) DO UPDATE SET
			gemini_api_key = EXCLUDED.gemini_api_key,
			default_currency = EXCLUDED.default_currency,
			drive_access_token = EXCLUDED.drive_access_token,
			drive_refresh_token = EXCLUDED.drive_refresh_token,
			drive_token_expiry = EXCLUDED.drive_token_expiry,
			drive_folder_id = EXCLUDED.drive_folder_id,
			invoice_number_prefix = EXCLUDED.invoice_number_prefix,
			next_invoice_number = EXCLUDED.next_invoice_number,
			business_name = EXCLUDED.business_name,
			business_address = EXCLUDED.business_address,
			updated_at = EXCLUDED.updated_at`,
		settings.GeminiAPIKey, settings.DefaultCurrency,
		accessToken, refreshToken, tokenExpiry, settings.DriveFolderID,
		settings.InvoiceNumberPrefix, settings.NextInvoiceNumber,
		settings.BusinessName, settings.BusinessAddress, settings.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// AllocateInvoiceNumber atomically claims the current invoice number. The
// single UPDATE keeps concurrent invoice generations from reusing a number.
func (r *PgxSettingsRepository) AllocateInvoiceNumber(ctx context.Context) (string, int, error) {
	if _, err := r.GetSettings(ctx); err != nil {
		return "", 0, err
	}

	var prefix string
	var number int
	err := r.Pool.QueryRow(ctx, `
		UPDATE settings
		SET next_invoice_number = next_invoice_number + 1, updated_at = NOW()
		WHERE settings_id = 1
		RETURNING invoice_number_prefix, next_invoice_number - 1`,
	).Scan(&prefix, &number)
	if err != nil {
		return "", 0, fmt.Errorf("failed to allocate invoice number: %w", err)
	}
	return prefix, number, nil
}
