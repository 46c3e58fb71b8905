package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	combodomain "github.com/smallbiznis/tradedesk/internal/combo/domain"
)

func (s *Server) combo(list func(ctx context.Context, search string) ([]combodomain.Item, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := list(c.Request.Context(), strings.TrimSpace(c.Query("search")))
		if err != nil {
			AbortWithError(c, err)
			return
		}
		if items == nil {
			items = []combodomain.Item{}
		}

		c.JSON(http.StatusOK, gin.H{"data": items})
	}
}
