// Package googledrive backs receipt files up to a folder in the user's
// Google Drive, connected through the OAuth consent flow.
package googledrive

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/receiptly/receipt_management_app/internal/apperrors"
	"github.com/receiptly/receipt_management_app/internal/core/domain"
	"github.com/receiptly/receipt_management_app/internal/core/ports"
	portssvc "github.com/receiptly/receipt_management_app/internal/core/ports/services"
	"github.com/receiptly/receipt_management_app/internal/middleware"
	"github.com/receiptly/receipt_management_app/internal/platform/config"
	"github.com/receiptly/receipt_management_app/internal/utils"
)

// backupFolderName is the Drive folder receipts are stored in when none is
// configured yet.
const backupFolderName = "Receipt Backups"

// DriveService implements the DriveSvcFacade over the Drive v3 API. Tokens
// and the backup folder ID live in the settings record so the connection
// survives restarts.
type DriveService struct {
	oauthConfig  *oauth2.Config
	settingsRepo ports.SettingsRepository

	// One pending consent flow at a time is enough for a single-admin app.
	mu           sync.Mutex
	pendingState string
}

// NewDriveService creates a new Drive backup service.
func NewDriveService(cfg *config.Config, settingsRepo ports.SettingsRepository) *DriveService {
	return &DriveService{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{drive.DriveFileScope},
			Endpoint:     google.Endpoint,
		},
		settingsRepo: settingsRepo,
	}
}

var _ portssvc.DriveSvcFacade = (*DriveService)(nil)

// AuthURL returns the consent-screen URL. Offline access with forced consent
// guarantees a refresh token on every connect.
func (s *DriveService) AuthURL() (string, error) {
	if s.oauthConfig.ClientID == "" || s.oauthConfig.ClientSecret == "" {
		return "", fmt.Errorf("%w: Google OAuth credentials are not configured", apperrors.ErrValidation)
	}

	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate OAuth state: %w", err)
	}

	s.mu.Lock()
	s.pendingState = state
	s.mu.Unlock()

	url := s.oauthConfig.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	)
	return url, nil
}

// HandleCallback verifies the state, exchanges the authorization code and
// persists the token triple as one unit.
func (s *DriveService) HandleCallback(ctx context.Context, state, code string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	s.mu.Lock()
	expected := s.pendingState
	s.pendingState = ""
	s.mu.Unlock()

	if state == "" || state != expected {
		logger.Warn("OAuth callback with mismatched state")
		return fmt.Errorf("%w: OAuth state mismatch", apperrors.ErrUnauthorized)
	}

	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	if token.RefreshToken == "" {
		return fmt.Errorf("%w: Google did not return a refresh token", apperrors.ErrValidation)
	}

	if err := s.storeTokens(ctx, token); err != nil {
		return err
	}
	logger.Info("Google Drive connected")
	return nil
}

// Status reports whether a Drive account is connected and the stored tokens
// still work, verified with a minimal listing call.
func (s *DriveService) Status(ctx context.Context) (bool, error) {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.DriveConnected() {
		return false, nil
	}

	srv, ts, err := s.driveClient(ctx, settings)
	if err != nil {
		return false, err
	}
	if _, err := srv.Files.List().PageSize(1).Fields("files(id)").Context(ctx).Do(); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Drive connection check failed", slog.String("error", err.Error()))
		return false, nil
	}
	s.persistRefreshedToken(ctx, settings, ts)
	return true, nil
}

// UploadFile stores a file in the backup folder, creating the folder on
// first use, and returns the Drive file ID.
func (s *DriveService) UploadFile(ctx context.Context, fileName, mimeType string, data []byte) (string, error) {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.DriveConnected() {
		return "", fmt.Errorf("%w: Google Drive is not connected", apperrors.ErrValidation)
	}

	srv, ts, err := s.driveClient(ctx, settings)
	if err != nil {
		return "", err
	}

	folderID, err := s.ensureFolder(ctx, srv, settings)
	if err != nil {
		return "", err
	}

	file := &drive.File{
		Name:    fileName,
		Parents: []string{folderID},
	}
	created, err := srv.Files.Create(file).
		Media(bytes.NewReader(data), googleapi.ContentType(mimeType)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload file to drive: %w", err)
	}

	s.persistRefreshedToken(ctx, settings, ts)
	return created.Id, nil
}

// driveClient builds a Drive service over a self-refreshing token source.
func (s *DriveService) driveClient(ctx context.Context, settings *domain.Settings) (*drive.Service, oauth2.TokenSource, error) {
	token := &oauth2.Token{
		AccessToken:  settings.DriveTokens.AccessToken,
		RefreshToken: settings.DriveTokens.RefreshToken,
		Expiry:       settings.DriveTokens.Expiry,
	}
	ts := s.oauthConfig.TokenSource(ctx, token)

	srv, err := drive.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create drive client: %w", err)
	}
	return srv, ts, nil
}

// ensureFolder returns the backup folder ID, creating the folder and
// persisting its ID on first use.
func (s *DriveService) ensureFolder(ctx context.Context, srv *drive.Service, settings *domain.Settings) (string, error) {
	if settings.DriveFolderID != "" {
		return settings.DriveFolderID, nil
	}

	folder, err := srv.Files.Create(&drive.File{
		Name:     backupFolderName,
		MimeType: "application/vnd.google-apps.folder",
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create drive folder: %w", err)
	}

	settings.DriveFolderID = folder.Id
	settings.UpdatedAt = time.Now()
	if err := s.settingsRepo.SaveSettings(ctx, *settings); err != nil {
		return "", fmt.Errorf("failed to persist drive folder ID: %w", err)
	}

	middleware.GetLoggerFromCtx(ctx).Info("Created Drive backup folder", slog.String("folder_id", folder.Id))
	return folder.Id, nil
}

// storeTokens persists an OAuth token triple into settings.
func (s *DriveService) storeTokens(ctx context.Context, token *oauth2.Token) error {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to get settings for token update: %w", err)
	}

	settings.DriveTokens = &domain.DriveTokens{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}
	settings.UpdatedAt = time.Now()

	if err := s.settingsRepo.SaveSettings(ctx, *settings); err != nil {
		return fmt.Errorf("failed to store drive tokens: %w", err)
	}
	return nil
}

// persistRefreshedToken writes back a token the source silently refreshed so
// the next process start reuses it instead of forcing another refresh.
func (s *DriveService) persistRefreshedToken(ctx context.Context, settings *domain.Settings, ts oauth2.TokenSource) {
	latest, err := ts.Token()
	if err != nil {
		return
	}
	if latest.AccessToken == settings.DriveTokens.AccessToken {
		return
	}
	if latest.RefreshToken == "" {
		latest.RefreshToken = settings.DriveTokens.RefreshToken
	}
	if err := s.storeTokens(ctx, latest); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to persist refreshed Drive token", slog.String("error", err.Error()))
	}
}
