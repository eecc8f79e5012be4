package handler

import (
	"time"

	"github.com/wellnest/wellness-api/internal/core/domain"
	"github.com/wellnest/wellness-api/internal/ui/statcard"
)

// errorResponse documents the error envelope rendered by the API error handler.
type errorResponse struct {
	Error string `json:"error"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}

// --- auth ---

type registerRequest struct {
	Name     string  `json:"name"     validate:"required"`
	Email    string  `json:"email"    validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role"     validate:"required,oneof=doctor nutritionist yoga therapist food_partner patient"`
	Avatar   *string `json:"avatar"   validate:"omitempty,http_url"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user,omitempty"`
}

// --- metrics ---

type metricRequest struct {
	Kind       string     `json:"kind"        validate:"required"`
	Value      *float64   `json:"value"       validate:"required"`
	RecordedAt *time.Time `json:"recorded_at"`
}

type batchMetricRequest struct {
	Entries []metricRequest `json:"entries" validate:"required,min=1,max=500,dive"`
}

type recordResponse struct {
	Entry     *domain.MetricEntry `json:"entry,omitempty"`
	Duplicate bool                `json:"duplicate"`
}

type metricListResponse struct {
	Kind    string               `json:"kind"`
	Entries []domain.MetricEntry `json:"entries"`
}

// --- dashboard ---

type cardResponse struct {
	Kind     string              `json:"kind"`
	Title    string              `json:"title"`
	Value    string              `json:"value"`
	Subtitle *string             `json:"subtitle,omitempty"`
	Icon     string              `json:"icon"`
	Trend    *statcard.TrendView `json:"trend,omitempty"`
}

type dashboardResponse struct {
	Days  int            `json:"days"`
	Cards []cardResponse `json:"cards"`
}
