package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/wellnest/wellness-api/internal/api/metrics"
	"github.com/wellnest/wellness-api/internal/core/ports"
	"github.com/wellnest/wellness-api/internal/ui/dashboard"
	"github.com/wellnest/wellness-api/internal/ui/statcard"
)

// DashboardHandler serves a user's stat cards as JSON and as an HTML page.
type DashboardHandler struct {
	stats ports.DashboardService
	users ports.AuthService
}

func NewDashboardHandler(stats ports.DashboardService, users ports.AuthService) *DashboardHandler {
	return &DashboardHandler{stats: stats, users: users}
}

// Cards handles GET /v1/dashboard/cards.
//
// @Summary      Dashboard stat cards
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        days  query     int  false  "Window length in days (1-90)"
// @Success      200   {object}  dashboardResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/dashboard/cards [get]
func (h *DashboardHandler) Cards(c echo.Context) error {
	res, err := h.load(c)
	if err != nil {
		return err
	}

	cards := make([]cardResponse, 0, len(res.Stats))
	for _, s := range res.Stats {
		card := statcard.Render(statcard.FromStat(s))
		countRendered(card)
		cards = append(cards, cardResponse{
			Kind:     string(s.Kind),
			Title:    card.Title,
			Value:    card.Value,
			Subtitle: card.Subtitle,
			Icon:     s.Icon,
			Trend:    card.Trend,
		})
	}
	return c.JSON(http.StatusOK, dashboardResponse{Days: res.Days, Cards: cards})
}

// Page handles GET /v1/dashboard and renders the cards as HTML.
//
// @Summary      Dashboard page
// @Tags         dashboard
// @Produce      html
// @Security     BearerAuth
// @Param        days  query     int  false  "Window length in days (1-90)"
// @Success      200   {string}  string  "HTML document"
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Page(c echo.Context) error {
	res, err := h.load(c)
	if err != nil {
		return err
	}
	userID, _, _ := ctxClaims(c)
	user, err := h.users.Me(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	page := dashboard.NewPage(*user, res.Days, res.Stats)
	for _, card := range page.Cards {
		countRendered(card)
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)
	return page.Write(c.Response())
}

func (h *DashboardHandler) load(c echo.Context) (*ports.DashboardResult, error) {
	userID, role, err := ctxClaims(c)
	if err != nil {
		return nil, err
	}

	days := 0
	if raw := c.QueryParam("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil || days < 1 || days > 90 {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "days must be an integer between 1 and 90")
		}
	}

	return h.stats.Stats(c.Request().Context(), ports.DashboardInput{
		UserID: userID,
		Role:   role,
		Days:   days,
	})
}

func countRendered(card statcard.Card) {
	tone := "none"
	if card.Trend != nil {
		tone = string(card.Trend.Tone)
	}
	metrics.StatCardsRenderedTotal.WithLabelValues(tone).Inc()
}

