package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/wellnest/wellness-api/internal/core/domain"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// fails fast before any service call: the user id must be present and the
// role must be one of the known roles.
func ctxClaims(c echo.Context) (userID string, role domain.UserRole, err error) {
	userID, _ = c.Get("user_id").(string)
	if userID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, _ = c.Get("role").(domain.UserRole)
	if !role.Valid() {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "token carries an unknown role")
	}

	return userID, role, nil
}
