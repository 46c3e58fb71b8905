package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/tradedesk/internal/auth/domain"
	"github.com/smallbiznis/tradedesk/internal/authorization"
	customerdomain "github.com/smallbiznis/tradedesk/internal/customer/domain"
	"github.com/smallbiznis/tradedesk/internal/document"
	organizationdomain "github.com/smallbiznis/tradedesk/internal/organization/domain"
	"github.com/smallbiznis/tradedesk/internal/orgcontext"
	productdomain "github.com/smallbiznis/tradedesk/internal/product/domain"
	"github.com/smallbiznis/tradedesk/internal/ratelimit"
	"github.com/smallbiznis/tradedesk/internal/reference"
	roledomain "github.com/smallbiznis/tradedesk/internal/role/domain"
	settingsdomain "github.com/smallbiznis/tradedesk/internal/settings/domain"
	userdomain "github.com/smallbiznis/tradedesk/internal/user/domain"
	"github.com/smallbiznis/tradedesk/pkg/apperror"
	"github.com/smallbiznis/tradedesk/pkg/validation"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		var limited *ratelimit.LimitedError
		if errors.As(lastErr.Err, &limited) {
			c.Header("Retry-After", strconv.Itoa(retryAfterSeconds(limited)))
		}
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return validation.New("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return validation.New(field, code, message)
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	var vErr *validation.Error
	if errors.As(err, &vErr) && vErr != nil {
		items := make([]ValidationError, 0, len(vErr.Violations))
		for _, v := range vErr.Violations {
			items = append(items, ValidationError{Field: v.Field, Code: v.Code, Message: v.Message})
		}
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: vErr.Error(),
			Errors:  items,
		}
	}

	var refErr *reference.ViolationError
	if errors.As(err, &refErr) && refErr != nil {
		items := make([]ValidationError, 0, len(refErr.Violations))
		for _, v := range refErr.Violations {
			items = append(items, ValidationError{Field: v.Field, Code: v.Code, Message: v.Message})
		}
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: refErr.Error(),
			Errors:  items,
		}
	}

	var conflict *apperror.ConflictError
	if errors.As(err, &conflict) && conflict != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: conflict.Message,
			Errors: []ValidationError{
				{Field: conflict.Field, Code: "duplicate", Message: conflict.Message},
			},
		}
	}

	if isInvalidIDError(err) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "invalid id",
			Errors: []ValidationError{
				{Field: "id", Code: err.Error(), Message: "invalid id"},
			},
		}
	}

	var limited *ratelimit.LimitedError
	if errors.As(err, &limited) {
		return http.StatusTooManyRequests, errorPayload{
			Type:    "rate_limited",
			Message: limited.Error(),
		}
	}

	var forbidden *orgcontext.ForbiddenError
	if errors.As(err, &forbidden) {
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: forbidden.Error(),
		}
	}

	var notFound *apperror.NotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: notFound.Error(),
		}
	}

	switch {
	case errors.Is(err, authdomain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "invalid email or password",
		}
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, orgcontext.ErrUnauthenticated),
		errors.Is(err, authdomain.ErrInvalidToken):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, authorization.ErrInvalidRole):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "Forbidden resource",
		}
	case errors.Is(err, document.ErrVersionConflict):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "the record was modified by another request",
		}
	case errors.Is(err, roledomain.ErrRoleInUse):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "role is still assigned to users",
		}
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "invalid request",
			Errors: []ValidationError{
				{Field: "request", Code: "invalid_request", Message: "invalid request"},
			},
		}
	case errors.Is(err, ErrNotFound),
		errors.Is(err, apperror.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isInvalidIDError(err error) bool {
	switch {
	case errors.Is(err, document.ErrInvalidID),
		errors.Is(err, customerdomain.ErrInvalidID),
		errors.Is(err, roledomain.ErrInvalidID),
		errors.Is(err, userdomain.ErrInvalidID),
		errors.Is(err, settingsdomain.ErrInvalidID),
		errors.Is(err, productdomain.ErrInvalidID),
		errors.Is(err, organizationdomain.ErrInvalidOrganization):
		return true
	default:
		return false
	}
}

func retryAfterSeconds(err *ratelimit.LimitedError) int {
	seconds := int(err.RetryAfter.Round(time.Second).Seconds())
	if seconds < 1 {
		return 1
	}
	return seconds
}

// classifyErrorForLog feeds the request logger with the response type and
// the most specific code available.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	code := payload.Type
	if len(payload.Errors) > 0 {
		code = payload.Errors[0].Code
	}
	if status >= http.StatusInternalServerError {
		return payload.Type, strings.TrimSpace(err.Error())
	}
	return payload.Type, code
}
