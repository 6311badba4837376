package http

import (
	"net/http"

	"golang-trading-journal/internal/api/dto"
	"golang-trading-journal/internal/api/service"
	"golang-trading-journal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// JournalHandler handles the daily journal and the trading rule checklist.
type JournalHandler struct {
	journalService service.JournalService
	ruleService    service.RuleService
	logger         *logger.Logger
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journalService service.JournalService, ruleService service.RuleService, logger *logger.Logger) *JournalHandler {
	return &JournalHandler{journalService: journalService, ruleService: ruleService, logger: logger}
}

// RegisterRoutes registers the journal routes to the Echo group.
func (h *JournalHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListJournals)
	g.GET("/:date", h.GetJournal)
	g.PUT("/:date", h.SaveJournal)
	g.DELETE("/:date", h.DeleteJournal)
}

// RegisterRuleRoutes registers the rule routes to the Echo group.
func (h *JournalHandler) RegisterRuleRoutes(g *echo.Group) {
	g.POST("", h.CreateRule)
	g.GET("", h.GetAllRules)
	g.GET("/adherence", h.Adherence)
	g.PUT("/:id", h.UpdateRule)
	g.DELETE("/:id", h.DeleteRule)
	g.PUT("/:id/check", h.CheckRule)
}

// ListJournals godoc
// @Summary List journal entries
// @Tags journal
// @Produce  json
// @Security BearerAuth
// @Param   from  query   string  false  "From date (YYYY-MM-DD)"
// @Param   to    query   string  false  "To date (YYYY-MM-DD)"
// @Success 200 {array} dto.JournalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /journal [get]
func (h *JournalHandler) ListJournals(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	journals, err := h.journalService.ListJournals(c.Request().Context(), userID, c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, journals)
}

// GetJournal godoc
// @Summary Get the journal of a day
// @Description Returns the entry with that day's trading result. Days without an entry have no id.
// @Tags journal
// @Produce  json
// @Security BearerAuth
// @Param   date  path    string true    "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /journal/{date} [get]
func (h *JournalHandler) GetJournal(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	journal, err := h.journalService.GetJournal(c.Request().Context(), userID, c.Param("date"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, journal)
}

// SaveJournal godoc
// @Summary Write the journal of a day
// @Tags journal
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   date     path    string              true    "Date (YYYY-MM-DD)"
// @Param   journal  body    dto.JournalRequest  true    "Journal entry"
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /journal/{date} [put]
func (h *JournalHandler) SaveJournal(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	var req dto.JournalRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	journal, err := h.journalService.SaveJournal(c.Request().Context(), userID, c.Param("date"), &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, journal)
}

// DeleteJournal godoc
// @Summary Delete the journal of a day
// @Tags journal
// @Security BearerAuth
// @Param   date  path    string true    "Date (YYYY-MM-DD)"
// @Success 204 {object} nil
// @Failure 404 {object} dto.ErrorResponse
// @Router /journal/{date} [delete]
func (h *JournalHandler) DeleteJournal(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if err := h.journalService.DeleteJournal(c.Request().Context(), userID, c.Param("date")); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CreateRule godoc
// @Summary Create a trading rule
// @Tags rules
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   rule  body    dto.RuleRequest   true    "Rule"
// @Success 201 {object} dto.RuleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /rules [post]
func (h *JournalHandler) CreateRule(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	var req dto.RuleRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	rule, err := h.ruleService.CreateRule(c.Request().Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, rule)
}

// GetAllRules godoc
// @Summary List trading rules
// @Tags rules
// @Produce  json
// @Security BearerAuth
// @Success 200 {array} dto.RuleResponse
// @Router /rules [get]
func (h *JournalHandler) GetAllRules(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	rules, err := h.ruleService.GetAllRules(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, rules)
}

// UpdateRule godoc
// @Summary Update a trading rule
// @Tags rules
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id    path    string           true    "Rule ID"
// @Param   rule  body    dto.RuleRequest  true    "Rule"
// @Success 200 {object} dto.RuleResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /rules/{id} [put]
func (h *JournalHandler) UpdateRule(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid rule ID"})
	}
	var req dto.RuleRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	rule, err := h.ruleService.UpdateRule(c.Request().Context(), userID, id, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, rule)
}

// DeleteRule godoc
// @Summary Delete a trading rule and its checks
// @Tags rules
// @Security BearerAuth
// @Param   id  path    string true    "Rule ID"
// @Success 204 {object} nil
// @Failure 404 {object} dto.ErrorResponse
// @Router /rules/{id} [delete]
func (h *JournalHandler) DeleteRule(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid rule ID"})
	}
	if err := h.ruleService.DeleteRule(c.Request().Context(), userID, id); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// CheckRule godoc
// @Summary Record whether a rule was followed
// @Tags rules
// @Accept  json
// @Security BearerAuth
// @Param   id     path    string                true    "Rule ID"
// @Param   check  body    dto.RuleCheckRequest  true    "Check"
// @Success 204 {object} nil
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /rules/{id}/check [put]
func (h *JournalHandler) CheckRule(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid rule ID"})
	}
	var req dto.RuleCheckRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	if err := h.ruleService.CheckRule(c.Request().Context(), userID, id, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Adherence godoc
// @Summary Rule adherence report
// @Description Followed checks over all checks, per rule and overall. Defaults to the last 30 days.
// @Tags rules
// @Produce  json
// @Security BearerAuth
// @Param   from  query   string  false  "From date (YYYY-MM-DD)"
// @Param   to    query   string  false  "To date (YYYY-MM-DD)"
// @Success 200 {object} dto.AdherenceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /rules/adherence [get]
func (h *JournalHandler) Adherence(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	res, err := h.ruleService.Adherence(c.Request().Context(), userID, c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, res)
}
