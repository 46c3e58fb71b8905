package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/tradedesk/internal/authorization"
	"github.com/smallbiznis/tradedesk/internal/orgcontext"
)

const bearerPrefix = "bearer "

// AuthRequired resolves the bearer token into an orgcontext.Identity on
// the request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		token := strings.TrimSpace(header[len(bearerPrefix):])

		identity, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Request = c.Request.WithContext(orgcontext.WithIdentity(c.Request.Context(), identity))
		c.Set("user_id", identity.UserID.String())
		c.Next()
	}
}

// RequireAdmin admits Admin and Super Admin callers. The action is taken
// from the HTTP method.
func (s *Server) RequireAdmin(object string) gin.HandlerFunc {
	return s.authorize(object, "")
}

// RequireSuperAdmin admits Super Admin only.
func (s *Server) RequireSuperAdmin(object string) gin.HandlerFunc {
	check := s.authorize(object, "")
	return func(c *gin.Context) {
		identity, ok := orgcontext.IdentityFromContext(c.Request.Context())
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if !identity.IsSuperAdmin() {
			AbortWithError(c, &orgcontext.ForbiddenError{Message: "Forbidden resource"})
			return
		}
		check(c)
	}
}

// RequireAction pins the checked action, e.g. export on a GET route.
func (s *Server) RequireAction(object, action string) gin.HandlerFunc {
	return s.authorize(object, action)
}

func (s *Server) authorize(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := orgcontext.IdentityFromContext(c.Request.Context())
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		act := action
		if act == "" {
			act = actionForMethod(c.Request.Method)
		}
		if err := s.authzSvc.Authorize(c.Request.Context(), identity.RoleName, object, act); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func actionForMethod(method string) string {
	switch method {
	case http.MethodPost:
		return authorization.ActionCreate
	case http.MethodPut, http.MethodPatch:
		return authorization.ActionUpdate
	case http.MethodDelete:
		return authorization.ActionDelete
	default:
		return authorization.ActionView
	}
}

// DocumentType tags the request so the request log carries it.
func DocumentType(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("document_type", name)
		c.Next()
	}
}
