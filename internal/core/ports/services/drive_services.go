package services

import "context"

// DriveSvcFacade manages the Google Drive backup connection.
type DriveSvcFacade interface {
	// AuthURL returns the consent-screen URL to redirect the user to.
	AuthURL() (string, error)
	// HandleCallback verifies the state, exchanges the authorization code
	// and persists the resulting token triple into settings.
	HandleCallback(ctx context.Context, state, code string) error
	// Status reports whether a Drive account is connected and usable.
	Status(ctx context.Context) (bool, error)
	// UploadFile stores a file in the configured Drive folder and returns
	// the Drive file ID.
	UploadFile(ctx context.Context, fileName, mimeType string, data []byte) (string, error)
}
