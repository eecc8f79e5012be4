package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wellnest/wellness-api/internal/core/domain"
	"github.com/wellnest/wellness-api/internal/core/ports"
)

// MetricDispatcher is the interface the handler uses to enqueue batch entries.
type MetricDispatcher interface {
	EnqueueBatch(entries []ports.RecordMetricInput)
}

// MetricHandler handles metric ingestion and listing.
type MetricHandler struct {
	service    ports.MetricService
	dispatcher MetricDispatcher
}

// NewMetricHandler creates a MetricHandler. Single entries are recorded
// synchronously through service, batches go through dispatcher.
func NewMetricHandler(service ports.MetricService, dispatcher MetricDispatcher) *MetricHandler {
	return &MetricHandler{service: service, dispatcher: dispatcher}
}

// Record handles POST /v1/metrics.
//
// @Summary      Record a metric entry
// @Tags         metrics
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      metricRequest  true  "Metric entry"
// @Success      201   {object}  recordResponse
// @Success      200   {object}  recordResponse  "duplicate entry, nothing stored"
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/metrics [post]
func (h *MetricHandler) Record(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req metricRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.service.Record(c.Request().Context(), toRecordInput(userID, role, req))
	if err != nil {
		return err
	}
	if res.Duplicate {
		return c.JSON(http.StatusOK, recordResponse{Duplicate: true})
	}
	return c.JSON(http.StatusCreated, recordResponse{Entry: res.Entry})
}

// RecordBatch handles POST /v1/metrics/batch. Every entry is checked up front
// so a bad batch is rejected as a whole before anything is queued.
//
// @Summary      Record a batch of metric entries
// @Tags         metrics
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      batchMetricRequest  true  "Metric entries"
// @Success      202   {object}  acceptedResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/metrics/batch [post]
func (h *MetricHandler) RecordBatch(c echo.Context) error {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req batchMetricRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	inputs := make([]ports.RecordMetricInput, 0, len(req.Entries))
	for i, e := range req.Entries {
		kind, err := domain.ParseMetricKind(e.Kind)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		if e.Value != nil {
			if err := domain.ValidateMetricValue(*e.Value); err != nil {
				return fmt.Errorf("entry %d: %w", i, err)
			}
		}
		if !role.CanRecord(kind) {
			return fmt.Errorf("entry %d: %w", i, domain.ErrMetricNotAllowed)
		}
		inputs = append(inputs, toRecordInput(userID, role, e))
	}

	h.dispatcher.EnqueueBatch(inputs)
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: "entries accepted", Count: len(inputs)})
}

// List handles GET /v1/metrics?kind=&limit=.
//
// @Summary      List recent metric entries
// @Tags         metrics
// @Produce      json
// @Security     BearerAuth
// @Param        kind   query     string  true   "Metric kind"
// @Param        limit  query     int     false  "Max entries (1-100, default 20)"
// @Success      200    {object}  metricListResponse
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Router       /v1/metrics [get]
func (h *MetricHandler) List(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	kind := c.QueryParam("kind")
	if kind == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "kind is required")
	}
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be an integer")
		}
	}

	entries, err := h.service.ListRecent(c.Request().Context(), userID, kind, limit)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidMetric) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return err
	}
	return c.JSON(http.StatusOK, metricListResponse{Kind: kind, Entries: entries})
}

func toRecordInput(userID string, role domain.UserRole, req metricRequest) ports.RecordMetricInput {
	in := ports.RecordMetricInput{
		UserID: userID,
		Role:   role,
		Kind:   req.Kind,
	}
	if req.Value != nil {
		in.Value = *req.Value
	}
	if req.RecordedAt != nil {
		in.RecordedAt = req.RecordedAt.UTC()
	}
	return in
}
