package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wellnest/wellness-api/internal/core/domain"
)

// RoleHandler serves the static role catalog.
type RoleHandler struct{}

func NewRoleHandler() *RoleHandler {
	return &RoleHandler{}
}

// List handles GET /v1/roles.
//
// @Summary      List role configurations
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]domain.RoleConfig
// @Router       /v1/roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	out := make(map[domain.UserRole]domain.RoleConfig, len(domain.Roles()))
	for _, entry := range domain.RoleCatalog() {
		out[entry.Role] = entry.Config
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /v1/roles/:role.
//
// @Summary      Get one role configuration
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        role  path      string  true  "Role tag"
// @Success      200   {object}  domain.RoleConfig
// @Failure      404   {object}  errorResponse
// @Router       /v1/roles/{role} [get]
func (h *RoleHandler) Get(c echo.Context) error {
	role, err := domain.ParseUserRole(c.Param("role"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "role not found")
	}
	cfg, _ := domain.RoleConfigFor(role)
	return c.JSON(http.StatusOK, cfg)
}
