package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wealthvault/portfolio-api/internal/api/metrics"
	"github.com/wealthvault/portfolio-api/internal/core/domain"
	"github.com/wealthvault/portfolio-api/internal/core/ports"
)

// SoAHandler handles the on-demand external reconciliation endpoints.
type SoAHandler struct {
	service ports.ReconcileService
}

func NewSoAHandler(service ports.ReconcileService) *SoAHandler {
	return &SoAHandler{service: service}
}

// FetchHoldings handles POST /v1/soa/holdings.
//
// @Summary      Fetch and merge the caller's statement of account
// @Tags         soa
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  reconcileResponse
// @Failure      412  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/soa/holdings [post]
func (h *SoAHandler) FetchHoldings(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	result, err := h.service.FetchHoldings(c.Request().Context(), principal)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFetchFailed):
			metrics.StatementFetchesTotal.WithLabelValues("fetch_failed").Inc()
		case errors.Is(err, domain.ErrPreconditionFailed):
			metrics.StatementFetchesTotal.WithLabelValues("precondition_failed").Inc()
		}
		return err
	}

	outcome := "ok"
	if result.Added == 0 && result.Updated == 0 {
		outcome = "unchanged"
	}
	metrics.StatementFetchesTotal.WithLabelValues(outcome).Inc()
	metrics.HoldingsReconciledTotal.WithLabelValues("added").Add(float64(result.Added))
	metrics.HoldingsReconciledTotal.WithLabelValues("updated").Add(float64(result.Updated))

	return c.JSON(http.StatusOK, reconcileResponse{Added: result.Added, Updated: result.Updated})
}

// FetchAadhaar handles POST /v1/soa/aadhaar.
//
// @Summary      Fetch Aadhaar details from the document locker
// @Tags         soa
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  detailsResponse
// @Failure      412  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/soa/aadhaar [post]
func (h *SoAHandler) FetchAadhaar(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	details, err := h.service.FetchAadhaarDetails(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detailsResponse{Details: details})
}

// FetchPAN handles POST /v1/soa/pan.
//
// @Summary      Fetch PAN details from the document locker
// @Tags         soa
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  detailsResponse
// @Failure      412  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /v1/soa/pan [post]
func (h *SoAHandler) FetchPAN(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	details, err := h.service.FetchPANDetails(c.Request().Context(), principal)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detailsResponse{Details: details})
}
