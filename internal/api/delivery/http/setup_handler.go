package http

import (
	"net/http"

	"golang-trading-journal/internal/api/dto"
	"golang-trading-journal/internal/api/service"
	"golang-trading-journal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SetupHandler handles HTTP requests for trade setups.
type SetupHandler struct {
	setupService service.SetupService
	logger       *logger.Logger
}

// NewSetupHandler creates a new SetupHandler.
func NewSetupHandler(setupService service.SetupService, logger *logger.Logger) *SetupHandler {
	return &SetupHandler{setupService: setupService, logger: logger}
}

// RegisterRoutes registers the setup routes to the Echo group.
func (h *SetupHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateSetup)
	g.GET("", h.GetAllSetups)
	g.GET("/:id", h.GetSetup)
	g.PUT("/:id", h.UpdateSetup)
	g.DELETE("/:id", h.DeleteSetup)
}

// CreateSetup godoc
// @Summary Create a setup
// @Tags setups
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   setup  body    dto.SetupRequest   true    "Setup to create"
// @Success 201 {object} dto.SetupResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /setups [post]
func (h *SetupHandler) CreateSetup(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	var req dto.SetupRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	setup, err := h.setupService.CreateSetup(c.Request().Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, setup)
}

// GetAllSetups godoc
// @Summary List setups with their statistics
// @Tags setups
// @Produce  json
// @Security BearerAuth
// @Success 200 {array} dto.SetupResponse
// @Router /setups [get]
func (h *SetupHandler) GetAllSetups(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	setups, err := h.setupService.GetAllSetups(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, setups)
}

// GetSetup godoc
// @Summary Get a setup with its statistics
// @Tags setups
// @Produce  json
// @Security BearerAuth
// @Param   id  path    string true    "Setup ID"
// @Success 200 {object} dto.SetupResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /setups/{id} [get]
func (h *SetupHandler) GetSetup(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid setup ID"})
	}
	setup, err := h.setupService.GetSetup(c.Request().Context(), userID, id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, setup)
}

// UpdateSetup godoc
// @Summary Update a setup
// @Tags setups
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id     path    string             true    "Setup ID"
// @Param   setup  body    dto.SetupRequest   true    "Setup"
// @Success 200 {object} dto.SetupResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /setups/{id} [put]
func (h *SetupHandler) UpdateSetup(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid setup ID"})
	}
	var req dto.SetupRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	setup, err := h.setupService.UpdateSetup(c.Request().Context(), userID, id, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, setup)
}

// DeleteSetup godoc
// @Summary Delete a setup
// @Tags setups
// @Security BearerAuth
// @Param   id  path    string true    "Setup ID"
// @Success 204 {object} nil
// @Failure 404 {object} dto.ErrorResponse
// @Router /setups/{id} [delete]
func (h *SetupHandler) DeleteSetup(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid setup ID"})
	}
	if err := h.setupService.DeleteSetup(c.Request().Context(), userID, id); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}
