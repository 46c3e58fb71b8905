package server

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
)

// resource wires the five CRUD routes of one collection. C and U are the
// create and update bodies; list receives the gin context so collections
// can read their own filters.
type resource[C, U any] struct {
	create func(ctx context.Context, req C) (any, error)
	list   func(c *gin.Context) (any, error)
	get    func(ctx context.Context, id snowflake.ID) (any, error)
	update func(ctx context.Context, id snowflake.ID, req U) (any, error)
	remove func(ctx context.Context, id snowflake.ID) error
}

func registerResource[C, U any](g *gin.RouterGroup, r resource[C, U]) {
	g.POST("", r.handleCreate)
	g.GET("", r.handleList)
	g.GET("/:id", r.handleGet)
	g.PUT("/:id", r.handleUpdate)
	g.DELETE("/:id", r.handleDelete)
}

func (r resource[C, U]) handleCreate(c *gin.Context) {
	var req C
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := r.create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (r resource[C, U]) handleList(c *gin.Context) {
	resp, err := r.list(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (r resource[C, U]) handleGet(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := r.get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (r resource[C, U]) handleUpdate(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req U
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := r.update(c.Request.Context(), id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (r resource[C, U]) handleDelete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := r.remove(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"id": id.String(), "deleted": true}})
}
