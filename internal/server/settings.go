package server

import (
	"context"
	"net/http"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	configurationdomain "github.com/smallbiznis/tradedesk/internal/configuration/domain"
	customerdomain "github.com/smallbiznis/tradedesk/internal/customer/domain"
	productdomain "github.com/smallbiznis/tradedesk/internal/product/domain"
	settingsdomain "github.com/smallbiznis/tradedesk/internal/settings/domain"
)

// settingsResource adapts a master-data service. C is the create body and
// U the patch body of the table.
func settingsResource[T any, C settingsdomain.Input[T], U settingsdomain.Patch](svc settingsdomain.Service[T]) resource[C, U] {
	return resource[C, U]{
		create: func(ctx context.Context, req C) (any, error) {
			return svc.Create(ctx, req)
		},
		list: func(c *gin.Context) (any, error) {
			q := bindListQuery(c)
			return svc.List(c.Request.Context(), settingsdomain.ListRequest{
				Page:   q.Page,
				Limit:  q.Limit,
				Search: q.Search,
			})
		},
		get: func(ctx context.Context, id snowflake.ID) (any, error) {
			return svc.Get(ctx, id)
		},
		update: func(ctx context.Context, id snowflake.ID, req U) (any, error) {
			return svc.Update(ctx, id, req)
		},
		remove: svc.Delete,
	}
}

func (s *Server) customerResource() resource[customerdomain.CreateCustomerRequest, customerdomain.UpdateCustomerRequest] {
	svc := s.customerSvc
	return resource[customerdomain.CreateCustomerRequest, customerdomain.UpdateCustomerRequest]{
		create: func(ctx context.Context, req customerdomain.CreateCustomerRequest) (any, error) {
			return svc.Create(ctx, req)
		},
		list: func(c *gin.Context) (any, error) {
			q := bindListQuery(c)
			return svc.List(c.Request.Context(), customerdomain.ListCustomerRequest{
				Page:   q.Page,
				Limit:  q.Limit,
				Search: q.Search,
			})
		},
		get: func(ctx context.Context, id snowflake.ID) (any, error) {
			return svc.GetByID(ctx, id)
		},
		update: func(ctx context.Context, id snowflake.ID, req customerdomain.UpdateCustomerRequest) (any, error) {
			return svc.Update(ctx, id, req)
		},
		remove: svc.Delete,
	}
}

func (s *Server) productResource() resource[productdomain.CreateRequest, productdomain.UpdateRequest] {
	svc := s.productSvc
	return resource[productdomain.CreateRequest, productdomain.UpdateRequest]{
		create: func(ctx context.Context, req productdomain.CreateRequest) (any, error) {
			return svc.Create(ctx, req)
		},
		list: func(c *gin.Context) (any, error) {
			q := bindListQuery(c)
			return svc.List(c.Request.Context(), productdomain.ListRequest{
				Page:   q.Page,
				Limit:  q.Limit,
				Search: q.Search,
			})
		},
		get: func(ctx context.Context, id snowflake.ID) (any, error) {
			return svc.Get(ctx, id)
		},
		update: func(ctx context.Context, id snowflake.ID, req productdomain.UpdateRequest) (any, error) {
			return svc.Update(ctx, id, req)
		},
		remove: svc.Delete,
	}
}

func (s *Server) packageResource() resource[productdomain.CreatePackageRequest, productdomain.UpdatePackageRequest] {
	svc := s.packageSvc
	return resource[productdomain.CreatePackageRequest, productdomain.UpdatePackageRequest]{
		create: func(ctx context.Context, req productdomain.CreatePackageRequest) (any, error) {
			return svc.Create(ctx, req)
		},
		list: func(c *gin.Context) (any, error) {
			q := bindListQuery(c)
			return svc.List(c.Request.Context(), productdomain.ListRequest{
				Page:   q.Page,
				Limit:  q.Limit,
				Search: q.Search,
			})
		},
		get: func(ctx context.Context, id snowflake.ID) (any, error) {
			return svc.Get(ctx, id)
		},
		update: func(ctx context.Context, id snowflake.ID, req productdomain.UpdatePackageRequest) (any, error) {
			return svc.Update(ctx, id, req)
		},
		remove: svc.Delete,
	}
}

func (s *Server) CreateInternationalConfiguration(c *gin.Context) {
	var req configurationdomain.CreateInternationalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.configurationSvc.CreateInternational(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetInternationalConfiguration(c *gin.Context) {
	resp, err := s.configurationSvc.GetInternational(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateInternationalConfiguration(c *gin.Context) {
	var req configurationdomain.UpdateInternationalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.configurationSvc.UpdateInternational(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreateDomesticConfiguration(c *gin.Context) {
	var req configurationdomain.CreateDomesticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.configurationSvc.CreateDomestic(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": resp})
}

func (s *Server) GetDomesticConfiguration(c *gin.Context) {
	resp, err := s.configurationSvc.GetDomestic(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateDomesticConfiguration(c *gin.Context) {
	var req configurationdomain.UpdateDomesticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.configurationSvc.UpdateDomestic(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
