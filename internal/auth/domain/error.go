package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidToken       = errors.New("invalid_token")
	ErrMissingSecret      = errors.New("auth_jwt_secret_not_configured")
)
