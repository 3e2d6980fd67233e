package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/consumershield/claims-core/internal/api/metrics"
	"github.com/consumershield/claims-core/internal/core/ports"
)

// ClaimHandler handles HTTP requests for claim workflow operations.
type ClaimHandler struct {
	service ports.ClaimService
}

func NewClaimHandler(service ports.ClaimService) *ClaimHandler {
	return &ClaimHandler{service: service}
}

// Create handles POST /v1/claims.
//
// @Summary      File a new claim
// @Tags         claims
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClaimRequest  true  "Claim details"
// @Success      201   {object}  createClaimResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /v1/claims [post]
func (h *ClaimHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createClaimRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.CreateClaim(c.Request().Context(), toCreateInput(req, actor))
	if err != nil {
		return err
	}

	metrics.ClaimsCreatedTotal.WithLabelValues(req.Category).Inc()

	return c.JSON(http.StatusCreated, createClaimResponse{
		ClaimID:   result.ClaimID,
		Status:    result.Status,
		CreatedAt: result.CreatedAt.UTC(),
	})
}

// Get handles GET /v1/claims/:id.
//
// @Summary      Get a claim by id
// @Tags         claims
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Claim id"
// @Success      200  {object}  getClaimResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/claims/{id} [get]
func (h *ClaimHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	claim, err := h.service.GetClaim(c.Request().Context(), ports.GetClaimInput{
		Actor:   actor,
		ClaimID: c.Param("id"),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toGetResponse(claim))
}

// List handles GET /v1/claims.
//
// @Summary      List claims visible to the actor
// @Tags         claims
// @Produce      json
// @Security     BearerAuth
// @Param        status    query     string  false  "Filter by status"
// @Param        category  query     string  false  "Filter by category"
// @Param        search    query     string  false  "Partial match on title or company name"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Rows per page (max 100)"
// @Success      200       {object}  listClaimsResponse
// @Failure      401       {object}  errorResponse
// @Router       /v1/claims [get]
func (h *ClaimHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	input := ports.ListClaimsInput{
		Actor:    actor,
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
		Search:   c.QueryParam("search"),
	}
	if p := c.QueryParam("page"); p != "" {
		input.Page, _ = strconv.Atoi(p)
	}
	if l := c.QueryParam("limit"); l != "" {
		input.Limit, _ = strconv.Atoi(l)
	}
	if from := c.QueryParam("date_from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			input.DateFrom = t
		}
	}
	if to := c.QueryParam("date_to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			input.DateTo = t
		}
	}

	result, err := h.service.ListClaims(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(result))
}

// UpdateStatus handles PATCH /v1/claims/:id/status.
//
// @Summary      Transition a claim to a new status
// @Tags         claims
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Claim id"
// @Param        body  body      updateStatusRequest  true  "Target status"
// @Success      200   {object}  updateStatusResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/claims/{id}/status [patch]
func (h *ClaimHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.UpdateClaimStatus(c.Request().Context(), ports.UpdateStatusInput{
		Actor:     actor,
		ClaimID:   c.Param("id"),
		NewStatus: req.Status,
	})
	if err != nil {
		return err
	}

	if !result.Unchanged {
		metrics.StatusTransitionsTotal.WithLabelValues(result.Status).Inc()
	}

	return c.JSON(http.StatusOK, updateStatusResponse{
		Success:   true,
		ClaimID:   result.ClaimID,
		Status:    result.Status,
		UpdatedAt: result.UpdatedAt.UTC(),
	})
}

// Assign handles PATCH /v1/claims/:id/assignee.
//
// @Summary      Assign or unassign the staff member for a claim
// @Tags         claims
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Claim id"
// @Param        body  body      assignClaimRequest  true  "Target staff id (empty to unassign)"
// @Success      200   {object}  assignClaimResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/claims/{id}/assignee [patch]
func (h *ClaimHandler) Assign(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req assignClaimRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.service.AssignClaim(c.Request().Context(), ports.AssignInput{
		Actor:   actor,
		ClaimID: c.Param("id"),
		StaffID: req.StaffID,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, assignClaimResponse{
		Success:         true,
		ClaimID:         result.ClaimID,
		AssignedStaffID: result.AssignedStaffID,
		UpdatedAt:       result.UpdatedAt.UTC(),
	})
}
