package services

import "context"

// AuthSvcFacade handles single-admin authentication.
type AuthSvcFacade interface {
	// Login verifies the admin password and returns a signed bearer token.
	Login(ctx context.Context, password string) (string, error)
}
