package server

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	organizationdomain "github.com/smallbiznis/tradedesk/internal/organization/domain"
	roledomain "github.com/smallbiznis/tradedesk/internal/role/domain"
	userdomain "github.com/smallbiznis/tradedesk/internal/user/domain"
)

func (s *Server) organizationResource() resource[organizationdomain.CreateOrganizationRequest, organizationdomain.UpdateOrganizationRequest] {
	svc := s.organizationSvc
	return resource[organizationdomain.CreateOrganizationRequest, organizationdomain.UpdateOrganizationRequest]{
		create: func(ctx context.Context, req organizationdomain.CreateOrganizationRequest) (any, error) {
			return svc.Create(ctx, req)
		},
		list: func(c *gin.Context) (any, error) {
			q := bindListQuery(c)
			return svc.List(c.Request.Context(), organizationdomain.ListOrganizationRequest{
				Page:   q.Page,
				Limit:  q.Limit,
				Search: q.Search,
			})
		},
		get: func(ctx context.Context, id snowflake.ID) (any, error) {
			return svc.GetByID(ctx, id)
		},
		update: func(ctx context.Context, id snowflake.ID, req organizationdomain.UpdateOrganizationRequest) (any, error) {
			return svc.Update(ctx, id, req)
		},
		remove: svc.Delete,
	}
}

// Roles are a short fixed list and are returned without paging.
func (s *Server) roleResource() resource[roledomain.CreateRoleRequest, roledomain.UpdateRoleRequest] {
	svc := s.roleSvc
	return resource[roledomain.CreateRoleRequest, roledomain.UpdateRoleRequest]{
		create: func(ctx context.Context, req roledomain.CreateRoleRequest) (any, error) {
			return svc.Create(ctx, req)
		},
		list: func(c *gin.Context) (any, error) {
			roles, err := svc.List(c.Request.Context())
			if err != nil {
				return nil, err
			}
			return gin.H{"data": roles}, nil
		},
		get: func(ctx context.Context, id snowflake.ID) (any, error) {
			return svc.Get(ctx, id)
		},
		update: func(ctx context.Context, id snowflake.ID, req roledomain.UpdateRoleRequest) (any, error) {
			return svc.Update(ctx, id, req)
		},
		remove: svc.Delete,
	}
}

func (s *Server) userResource() resource[userdomain.CreateUserRequest, userdomain.UpdateUserRequest] {
	svc := s.userSvc
	return resource[userdomain.CreateUserRequest, userdomain.UpdateUserRequest]{
		create: func(ctx context.Context, req userdomain.CreateUserRequest) (any, error) {
			return svc.Create(ctx, req)
		},
		list: func(c *gin.Context) (any, error) {
			q := bindListQuery(c)
			roleID, err := parseOptionalSnowflakeID(c.Query("roleId"))
			if err != nil {
				return nil, newValidationError("roleId", "invalid", "roleId must be a valid id")
			}
			createdFrom, err := parseOptionalTime(c.Query("createdFrom"), false)
			if err != nil {
				return nil, newValidationError("createdFrom", "invalid", "createdFrom must be a valid ISO 8601 date string")
			}
			createdTo, err := parseOptionalTime(c.Query("createdTo"), true)
			if err != nil {
				return nil, newValidationError("createdTo", "invalid", "createdTo must be a valid ISO 8601 date string")
			}
			return svc.List(c.Request.Context(), userdomain.ListUserRequest{
				Page:        q.Page,
				Limit:       q.Limit,
				Search:      q.Search,
				RoleID:      roleID,
				CreatedFrom: createdFrom,
				CreatedTo:   createdTo,
			})
		},
		get: func(ctx context.Context, id snowflake.ID) (any, error) {
			return svc.Get(ctx, id)
		},
		update: func(ctx context.Context, id snowflake.ID, req userdomain.UpdateUserRequest) (any, error) {
			return svc.Update(ctx, id, req)
		},
		remove: svc.Delete,
	}
}
