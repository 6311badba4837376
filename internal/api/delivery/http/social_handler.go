package http

import (
	"net/http"

	"golang-trading-journal/internal/api/dto"
	"golang-trading-journal/internal/api/service"
	"golang-trading-journal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SocialHandler handles profiles, squads and the public leaderboard.
type SocialHandler struct {
	profileService     service.ProfileService
	squadService       service.SquadService
	leaderboardService service.LeaderboardService
	logger             *logger.Logger
}

// NewSocialHandler creates a new SocialHandler.
func NewSocialHandler(
	profileService service.ProfileService,
	squadService service.SquadService,
	leaderboardService service.LeaderboardService,
	logger *logger.Logger,
) *SocialHandler {
	return &SocialHandler{
		profileService:     profileService,
		squadService:       squadService,
		leaderboardService: leaderboardService,
		logger:             logger,
	}
}

// RegisterRoutes registers the profile, leaderboard and squad routes to the Echo group.
func (h *SocialHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.SaveProfile)
	g.GET("/leaderboard", h.GetLeaderboard)

	squads := g.Group("/squads")
	squads.POST("", h.CreateSquad)
	squads.GET("", h.GetMySquads)
	squads.GET("/:id", h.GetSquad)
	squads.POST("/:id/join", h.JoinSquad)
	squads.POST("/:id/leave", h.LeaveSquad)
	squads.GET("/:id/leaderboard", h.SquadLeaderboard)
	squads.GET("/:id/challenges", h.SquadChallenges)
}

// GetProfile godoc
// @Summary Get the caller's profile
// @Tags profile
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /profile [get]
func (h *SocialHandler) GetProfile(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	profile, err := h.profileService.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// SaveProfile godoc
// @Summary Create or update the caller's profile
// @Tags profile
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   profile  body    dto.ProfileRequest  true  "Profile"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /profile [put]
func (h *SocialHandler) SaveProfile(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	var req dto.ProfileRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	profile, err := h.profileService.SaveProfile(c.Request().Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, profile)
}

// GetLeaderboard godoc
// @Summary Public leaderboard
// @Description Users who opted in, ranked over a rolling window.
// @Tags leaderboard
// @Produce  json
// @Security BearerAuth
// @Param   period  query   string  false  "week, month or all"
// @Param   metric  query   string  false  "total_pnl, win_rate, profit_factor, avg_r or consistency"
// @Success 200 {object} entity.LeaderboardSnapshot
// @Failure 400 {object} dto.ErrorResponse
// @Router /leaderboard [get]
func (h *SocialHandler) GetLeaderboard(c echo.Context) error {
	var q dto.LeaderboardQuery
	if err := bind(c, &q); err != nil {
		return respondError(c, h.logger, err)
	}
	board, err := h.leaderboardService.GetLeaderboard(c.Request().Context(), &q)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, board)
}

// CreateSquad godoc
// @Summary Create a squad
// @Description The caller becomes the owner.
// @Tags squads
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   squad  body    dto.SquadRequest  true  "Squad"
// @Success 201 {object} dto.SquadResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /squads [post]
func (h *SocialHandler) CreateSquad(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	var req dto.SquadRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	squad, err := h.squadService.CreateSquad(c.Request().Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, squad)
}

// GetMySquads godoc
// @Summary List the caller's squads
// @Tags squads
// @Produce  json
// @Security BearerAuth
// @Success 200 {array} dto.SquadResponse
// @Router /squads [get]
func (h *SocialHandler) GetMySquads(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	squads, err := h.squadService.GetMySquads(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, squads)
}

// GetSquad godoc
// @Summary Get a squad
// @Tags squads
// @Produce  json
// @Security BearerAuth
// @Param   id  path    string true    "Squad ID"
// @Success 200 {object} dto.SquadResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /squads/{id} [get]
func (h *SocialHandler) GetSquad(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid squad ID"})
	}
	squad, err := h.squadService.GetSquad(c.Request().Context(), userID, id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, squad)
}

// JoinSquad godoc
// @Summary Join a public squad
// @Tags squads
// @Produce  json
// @Security BearerAuth
// @Param   id  path    string true    "Squad ID"
// @Success 200 {object} dto.SquadResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /squads/{id}/join [post]
func (h *SocialHandler) JoinSquad(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid squad ID"})
	}
	squad, err := h.squadService.JoinSquad(c.Request().Context(), userID, id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, squad)
}

// LeaveSquad godoc
// @Summary Leave a squad
// @Tags squads
// @Security BearerAuth
// @Param   id  path    string true    "Squad ID"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Router /squads/{id}/leave [post]
func (h *SocialHandler) LeaveSquad(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid squad ID"})
	}
	if err := h.squadService.LeaveSquad(c.Request().Context(), userID, id); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SquadLeaderboard godoc
// @Summary Squad leaderboard
// @Tags squads
// @Produce  json
// @Security BearerAuth
// @Param   id      path    string  true   "Squad ID"
// @Param   period  query   string  false  "week, month or all"
// @Param   metric  query   string  false  "total_pnl, win_rate, profit_factor, avg_r or consistency"
// @Success 200 {object} entity.LeaderboardSnapshot
// @Failure 403 {object} dto.ErrorResponse
// @Router /squads/{id}/leaderboard [get]
func (h *SocialHandler) SquadLeaderboard(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid squad ID"})
	}
	var q dto.LeaderboardQuery
	if err := bind(c, &q); err != nil {
		return respondError(c, h.logger, err)
	}
	board, err := h.squadService.SquadLeaderboard(c.Request().Context(), userID, id, &q)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, board)
}

// SquadChallenges godoc
// @Summary Squad weekly challenges
// @Tags squads
// @Produce  json
// @Security BearerAuth
// @Param   id  path    string true    "Squad ID"
// @Success 200 {object} dto.SquadChallengesResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /squads/{id}/challenges [get]
func (h *SocialHandler) SquadChallenges(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid squad ID"})
	}
	res, err := h.squadService.SquadChallenges(c.Request().Context(), userID, id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, res)
}
