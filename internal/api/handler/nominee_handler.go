package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wealthvault/portfolio-api/internal/core/domain"
	"github.com/wealthvault/portfolio-api/internal/core/ports"
)

// NomineeHandler handles HTTP requests for the nominee registry.
type NomineeHandler struct {
	service ports.NomineeService
}

func NewNomineeHandler(service ports.NomineeService) *NomineeHandler {
	return &NomineeHandler{service: service}
}

func toNomineeResponse(n *domain.Nominee) nomineeResponse {
	return nomineeResponse{
		Principal:   n.Principal,
		Name:        n.Name,
		ContactInfo: n.ContactInfo,
	}
}

func (h *NomineeHandler) bind(c echo.Context) (*nomineeRequest, error) {
	var req nomineeRequest
	if err := c.Bind(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return &req, nil
}

// Add handles POST /v1/nominee.
//
// @Summary      Register a nominee (fails if one exists)
// @Tags         nominee
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      nomineeRequest  true  "Nominee details"
// @Success      201   {object}  okResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/nominee [post]
func (h *NomineeHandler) Add(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	req, err := h.bind(c)
	if err != nil {
		return err
	}

	if err := h.service.Add(c.Request().Context(), principal, req.toDomain()); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, okResponse{Message: "nominee added"})
}

// Update handles PUT /v1/nominee.
//
// @Summary      Replace the registered nominee
// @Tags         nominee
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      nomineeRequest  true  "Nominee details"
// @Success      200   {object}  okResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/nominee [put]
func (h *NomineeHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	req, err := h.bind(c)
	if err != nil {
		return err
	}

	if err := h.service.Update(c.Request().Context(), principal, req.toDomain()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{Message: "nominee updated"})
}

// Remove handles DELETE /v1/nominee. Read access for the former nominee
// is revoked with the removal.
//
// @Summary      Remove the registered nominee
// @Tags         nominee
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  okResponse
// @Router       /v1/nominee [delete]
func (h *NomineeHandler) Remove(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.service.Remove(c.Request().Context(), principal); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{Message: "nominee removed"})
}

// GetOwn handles GET /v1/nominee — the record where the caller is the
// owner, not where the caller is the nominee.
//
// @Summary      Get the caller's registered nominee
// @Tags         nominee
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  nomineeResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/nominee [get]
func (h *NomineeHandler) GetOwn(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	nominee, err := h.service.GetCallerNominee(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNomineeResponse(nominee))
}

// Get handles GET /v1/users/:principal/nominee.
//
// @Summary      Get an owner's nominee (owner, admin or nominee)
// @Tags         nominee
// @Produce      json
// @Security     BearerAuth
// @Param        principal  path      string  true  "Owner principal"
// @Success      200        {object}  nomineeResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /v1/users/{principal}/nominee [get]
func (h *NomineeHandler) Get(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	owner := c.Param("principal")

	nominee, err := h.service.Get(c.Request().Context(), principal, owner)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toNomineeResponse(nominee))
}
