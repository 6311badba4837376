package http

import (
	"net/http"

	"golang-trading-journal/internal/api/dto"
	"golang-trading-journal/internal/api/service"
	"golang-trading-journal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalyticsHandler serves the read models computed from a user's trades.
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
	adminService     service.AdminService
	logger           *logger.Logger
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService service.AnalyticsService, adminService service.AdminService, logger *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService, adminService: adminService, logger: logger}
}

// RegisterRoutes registers the read model routes to the Echo group.
func (h *AnalyticsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/dashboard", h.Dashboard)
	g.GET("/calendar", h.Calendar)
	g.GET("/risk", h.Risk)
	g.POST("/risk/position-size", h.PositionSize)
	g.GET("/analytics", h.Analytics)
	g.GET("/achievements", h.Achievements)
	g.GET("/challenges", h.Challenges)
}

// RegisterAdminRoutes registers the operator routes to the Echo group.
func (h *AnalyticsHandler) RegisterAdminRoutes(g *echo.Group) {
	g.GET("/overview", h.AdminOverview)
}

// Dashboard godoc
// @Summary Dashboard
// @Description Summary, streaks, equity curve and league tier, optionally for one account.
// @Tags analytics
// @Produce  json
// @Security BearerAuth
// @Param   account_id  query   string  false  "Account ID"
// @Success 200 {object} dto.DashboardResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /dashboard [get]
func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	accountID, ok := optionalUUID(c, "account_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid account ID"})
	}
	res, err := h.analyticsService.Dashboard(c.Request().Context(), userID, accountID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Calendar godoc
// @Summary Monthly P&L calendar
// @Tags analytics
// @Produce  json
// @Security BearerAuth
// @Param   month  query   string  false  "Month (YYYY-MM), defaults to the current month"
// @Success 200 {object} dto.CalendarResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /calendar [get]
func (h *AnalyticsHandler) Calendar(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	res, err := h.analyticsService.Calendar(c.Request().Context(), userID, c.QueryParam("month"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Risk godoc
// @Summary Risk status
// @Description Today's P&L against the daily loss limit and the daily equity drawdown against the max drawdown.
// @Tags analytics
// @Produce  json
// @Security BearerAuth
// @Param   account_id  query   string  false  "Account ID"
// @Success 200 {object} dto.RiskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /risk [get]
func (h *AnalyticsHandler) Risk(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	accountID, ok := optionalUUID(c, "account_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid account ID"})
	}
	res, err := h.analyticsService.Risk(c.Request().Context(), userID, accountID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, res)
}

// PositionSize godoc
// @Summary Position size calculator
// @Description Zero units means the stop is too wide for the risk budget.
// @Tags analytics
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body  body    dto.PositionSizeRequest  true  "Sizing input"
// @Success 200 {object} metrics.PositionSizeResult
// @Failure 400 {object} dto.ErrorResponse
// @Router /risk/position-size [post]
func (h *AnalyticsHandler) PositionSize(c echo.Context) error {
	var req dto.PositionSizeRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, h.analyticsService.PositionSize(&req))
}

// Analytics godoc
// @Summary Performance breakdowns
// @Description Breakdowns by symbol, setup, session, weekday and side.
// @Tags analytics
// @Produce  json
// @Security BearerAuth
// @Param   account_id  query   string  false  "Account ID"
// @Success 200 {object} dto.AnalyticsResponse
// @Router /analytics [get]
func (h *AnalyticsHandler) Analytics(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	accountID, ok := optionalUUID(c, "account_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid account ID"})
	}
	res, err := h.analyticsService.Analytics(c.Request().Context(), userID, accountID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Achievements godoc
// @Summary Achievements with progress
// @Tags analytics
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} dto.AchievementsResponse
// @Router /achievements [get]
func (h *AnalyticsHandler) Achievements(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	res, err := h.analyticsService.Achievements(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, res)
}

// Challenges godoc
// @Summary Daily and weekly challenges
// @Tags analytics
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} dto.ChallengesResponse
// @Router /challenges [get]
func (h *AnalyticsHandler) Challenges(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	res, err := h.analyticsService.Challenges(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, res)
}

// AdminOverview godoc
// @Summary Platform overview
// @Description Restricted to the operator account.
// @Tags admin
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} dto.AdminOverviewResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/overview [get]
func (h *AnalyticsHandler) AdminOverview(c echo.Context) error {
	res, err := h.adminService.Overview(c.Request().Context())
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, res)
}
