package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	authdomain "github.com/smallbiznis/tradedesk/internal/auth/domain"
	"github.com/smallbiznis/tradedesk/internal/document"
	"github.com/smallbiznis/tradedesk/internal/orgcontext"
	"github.com/smallbiznis/tradedesk/internal/ratelimit"
	"github.com/smallbiznis/tradedesk/internal/reference"
	roledomain "github.com/smallbiznis/tradedesk/internal/role/domain"
	"github.com/smallbiznis/tradedesk/pkg/apperror"
	"github.com/smallbiznis/tradedesk/pkg/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapErrorStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"validation", validation.New("name", validation.CodeRequired, "name is required"), http.StatusBadRequest, "validation_error"},
		{"reference", &reference.ViolationError{Violations: []reference.Violation{{Field: "shipmentDetails.currencyId", Code: reference.CodeNotFound, Message: "Currency not found"}}}, http.StatusBadRequest, "validation_error"},
		{"conflict", &apperror.ConflictError{Field: "piNo", Message: `PI No "PI-1" already exists`}, http.StatusBadRequest, "validation_error"},
		{"invalid id", document.ErrInvalidID, http.StatusBadRequest, "validation_error"},
		{"unauthenticated", orgcontext.ErrUnauthenticated, http.StatusUnauthorized, "unauthorized"},
		{"bad token", authdomain.ErrInvalidToken, http.StatusUnauthorized, "unauthorized"},
		{"bad credentials", authdomain.ErrInvalidCredentials, http.StatusUnauthorized, "unauthorized"},
		{"forbidden", &orgcontext.ForbiddenError{Message: orgcontext.MessageAccessDenied}, http.StatusForbidden, "forbidden"},
		{"not found", fmt.Errorf("load: %w", apperror.NotFound("Customer")), http.StatusNotFound, "not_found"},
		{"version conflict", document.ErrVersionConflict, http.StatusConflict, "conflict"},
		{"role in use", roledomain.ErrRoleInUse, http.StatusConflict, "conflict"},
		{"rate limited", &ratelimit.LimitedError{RetryAfter: 3 * time.Second}, http.StatusTooManyRequests, "rate_limited"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, payload := mapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.kind, payload.Type)
		})
	}
}

func TestMapErrorKeepsEveryViolation(t *testing.T) {
	var c validation.Collector
	c.Required("quotationNumber", "")
	c.Required("consigneeDetails.country", "")

	_, payload := mapError(c.Err())

	require.Len(t, payload.Errors, 2)
	assert.Equal(t, "quotationNumber", payload.Errors[0].Field)
	assert.Equal(t, "consigneeDetails.country", payload.Errors[1].Field)
}

func TestMapErrorNamesMissingEntity(t *testing.T) {
	_, payload := mapError(apperror.NotFound("Quotation"))
	assert.Equal(t, "Quotation not found", payload.Message)

	_, payload = mapError(&orgcontext.ForbiddenError{Message: orgcontext.MessageOrganizationRequired})
	assert.Equal(t, "User must belong to an organization", payload.Message)
}

func TestErrorHandlingMiddlewareSetsRetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(ErrorHandlingMiddleware())
	engine.POST("/auth/login", func(c *gin.Context) {
		AbortWithError(c, &ratelimit.LimitedError{RetryAfter: 1500 * time.Millisecond})
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/auth/login", nil))

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
}

func TestLenientInt(t *testing.T) {
	assert.Equal(t, 3, lenientInt("3"))
	assert.Equal(t, 3, lenientInt(" 3 "))
	assert.Equal(t, 0, lenientInt(""))
	assert.Equal(t, 0, lenientInt("abc"))
	assert.Equal(t, 0, lenientInt("-4"))
}

func TestAttachmentName(t *testing.T) {
	assert.Equal(t, "invoice-PI-2025-01", attachmentName("invoice-PI/2025/01"))
	assert.Equal(t, "quotation-QT-1", attachmentName("quotation-QT 1"))
}
