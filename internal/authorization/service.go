package authorization

import (
	"context"
	"errors"
)

var (
	ErrInvalidRole   = errors.New("invalid_role")
	ErrInvalidObject = errors.New("invalid_object")
	ErrInvalidAction = errors.New("invalid_action")
)

// Service answers whether a role may perform action on object.
type Service interface {
	Authorize(ctx context.Context, roleName string, object string, action string) error
}
