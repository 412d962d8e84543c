package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wealthvault/portfolio-api/internal/api/metrics"
	"github.com/wealthvault/portfolio-api/internal/core/domain"
	"github.com/wealthvault/portfolio-api/internal/core/ports"
)

// InvestmentHandler handles HTTP requests for the investment ledger.
// The index path parameter is the record's current 0-based position; it
// is only stable until the next mutation of the same ledger.
type InvestmentHandler struct {
	service ports.LedgerService
}

func NewInvestmentHandler(service ports.LedgerService) *InvestmentHandler {
	return &InvestmentHandler{service: service}
}

func pathIndex(c echo.Context) (int, error) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		return 0, domain.ErrIndexOutOfRange
	}
	return index, nil
}

// Add handles POST /v1/investments.
//
// @Summary      Add an investment to the caller's ledger
// @Tags         investments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      investmentRequest  true  "Investment details"
// @Success      201   {object}  okResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/investments [post]
func (h *InvestmentHandler) Add(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	var req investmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.Add(c.Request().Context(), principal, principal, req.toDomain()); err != nil {
		return err
	}

	metrics.LedgerMutationsTotal.WithLabelValues("add").Inc()
	return c.JSON(http.StatusCreated, okResponse{Message: "investment added"})
}

// Update handles PUT /v1/investments/:index.
//
// @Summary      Update the investment at a ledger index
// @Tags         investments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        index  path      int                true  "Current 0-based index"
// @Param        body   body      investmentRequest  true  "Replacement details"
// @Success      200    {object}  okResponse
// @Failure      404    {object}  errorResponse
// @Failure      422    {object}  errorResponse
// @Router       /v1/investments/{index} [put]
func (h *InvestmentHandler) Update(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	index, err := pathIndex(c)
	if err != nil {
		return err
	}

	var req investmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	if err := h.service.Update(c.Request().Context(), principal, principal, index, req.toDomain()); err != nil {
		return err
	}

	metrics.LedgerMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, okResponse{Message: "investment updated"})
}

// Delete handles DELETE /v1/investments/:index. All subsequent indices
// shift down by one.
//
// @Summary      Delete the investment at a ledger index
// @Tags         investments
// @Produce      json
// @Security     BearerAuth
// @Param        index  path      int  true  "Current 0-based index"
// @Success      200    {object}  okResponse
// @Failure      404    {object}  errorResponse
// @Router       /v1/investments/{index} [delete]
func (h *InvestmentHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	index, err := pathIndex(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), principal, principal, index); err != nil {
		return err
	}

	metrics.LedgerMutationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, okResponse{Message: "investment deleted"})
}

// List handles GET /v1/users/:principal/investments.
//
// @Summary      List an owner's investments in ledger order
// @Tags         investments
// @Produce      json
// @Security     BearerAuth
// @Param        principal  path      string  true  "Owner principal"
// @Success      200        {object}  listInvestmentsResponse
// @Failure      403        {object}  errorResponse
// @Router       /v1/users/{principal}/investments [get]
func (h *InvestmentHandler) List(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	owner := c.Param("principal")

	investments, err := h.service.List(c.Request().Context(), principal, owner)
	if err != nil {
		return err
	}

	data := make([]investmentResponse, 0, len(investments))
	for i, inv := range investments {
		data = append(data, toInvestmentResponse(i, inv))
	}
	return c.JSON(http.StatusOK, listInvestmentsResponse{Data: data})
}

// Summary handles GET /v1/users/:principal/summary.
//
// @Summary      Total invested and current value for an owner's ledger
// @Tags         investments
// @Produce      json
// @Security     BearerAuth
// @Param        principal  path      string  true  "Owner principal"
// @Success      200        {object}  summaryResponse
// @Failure      403        {object}  errorResponse
// @Router       /v1/users/{principal}/summary [get]
func (h *InvestmentHandler) Summary(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	owner := c.Param("principal")

	summary, err := h.service.Summarize(c.Request().Context(), principal, owner)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaryResponse{
		TotalInvested:     summary.TotalInvested,
		TotalCurrentValue: summary.TotalCurrentValue,
	})
}
