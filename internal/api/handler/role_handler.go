package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wealthvault/portfolio-api/internal/core/domain"
	"github.com/wealthvault/portfolio-api/internal/core/ports"
)

// RoleHandler exposes role resolution and admin role assignment.
type RoleHandler struct {
	access ports.AccessResolver
}

func NewRoleHandler(access ports.AccessResolver) *RoleHandler {
	return &RoleHandler{access: access}
}

// GetRole handles GET /v1/me/role.
//
// @Summary      Resolve the caller's current role
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  roleResponse
// @Router       /v1/me/role [get]
func (h *RoleHandler) GetRole(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	role, err := h.access.ResolveRole(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, roleResponse{Role: role})
}

// IsAdmin handles GET /v1/me/admin.
//
// @Summary      Report whether the caller holds the admin role
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  adminResponse
// @Router       /v1/me/admin [get]
func (h *RoleHandler) IsAdmin(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	role, err := h.access.ResolveRole(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminResponse{Admin: role == domain.RoleAdmin})
}

// AssignRole handles POST /v1/admin/roles. The service re-checks the
// caller's admin role against the store, not just the token claim.
//
// @Summary      Assign a role to an identity (admin only)
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      assignRoleRequest  true  "Target principal and role"
// @Success      200   {object}  okResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/roles [post]
func (h *RoleHandler) AssignRole(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req assignRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.access.AssignRole(c.Request().Context(), principal, req.Principal, req.Role); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{Message: "role assigned"})
}
