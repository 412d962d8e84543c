package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wealthvault/portfolio-api/internal/core/domain"
	"github.com/wealthvault/portfolio-api/internal/core/ports"
)

// ProfileHandler handles HTTP requests for the profile store.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

func toProfileResponse(p *domain.UserProfile) profileResponse {
	return profileResponse{
		PermanentAddress: p.PermanentAddress,
		TemporaryAddress: p.TemporaryAddress,
		ContactNumbers:   p.ContactNumbers,
		AadhaarNumber:    p.AadhaarNumber,
		PANNumber:        p.PANNumber,
	}
}

// GetOwn handles GET /v1/profile.
//
// @Summary      Get the caller's own profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/profile [get]
func (h *ProfileHandler) GetOwn(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	profile, err := h.service.Get(c.Request().Context(), principal, principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// Get handles GET /v1/users/:principal/profile.
//
// @Summary      Get another identity's profile (owner, admin or nominee)
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Param        principal  path      string  true  "Owner principal"
// @Success      200        {object}  profileResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /v1/users/{principal}/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	owner := c.Param("principal")

	profile, err := h.service.Get(c.Request().Context(), principal, owner)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// Save handles PUT /v1/profile.
//
// @Summary      Save the caller's profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Profile details"
// @Success      200   {object}  okResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/profile [put]
func (h *ProfileHandler) Save(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.Save(c.Request().Context(), principal, req.toDomain()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{Message: "profile saved"})
}
