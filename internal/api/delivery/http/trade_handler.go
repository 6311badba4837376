package http

import (
	"fmt"
	"net/http"

	"golang-trading-journal/internal/api/dto"
	"golang-trading-journal/internal/api/service"
	"golang-trading-journal/pkg/logger"

	"github.com/labstack/echo/v4"
)

const maxImportBytes = 5 << 20

// TradeHandler handles HTTP requests for trades.
type TradeHandler struct {
	tradeService service.TradeService
	logger       *logger.Logger
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeService service.TradeService, logger *logger.Logger) *TradeHandler {
	return &TradeHandler{tradeService: tradeService, logger: logger}
}

// RegisterRoutes registers the trade routes to the Echo group.
func (h *TradeHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateTrade)
	g.GET("", h.ListTrades)
	g.POST("/import", h.ImportTrades)
	g.POST("/reassign-account", h.ReassignAccount)
	g.GET("/:id", h.GetTrade)
	g.PUT("/:id", h.UpdateTrade)
	g.DELETE("/:id", h.DeleteTrade)
}

// CreateTrade godoc
// @Summary Log a trade
// @Description Create a trade. Net P&L, R-multiple and status are derived.
// @Tags trades
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   trade  body    dto.TradeRequest   true    "Trade to create"
// @Success 201 {object} dto.TradeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /trades [post]
func (h *TradeHandler) CreateTrade(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	var req dto.TradeRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	trade, err := h.tradeService.CreateTrade(c.Request().Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, trade)
}

// ListTrades godoc
// @Summary List trades
// @Description Filter and paginate the caller's trades
// @Tags trades
// @Produce  json
// @Security BearerAuth
// @Param   from        query   string  false  "Entry date from (YYYY-MM-DD, inclusive)"
// @Param   to          query   string  false  "Entry date to (YYYY-MM-DD, inclusive)"
// @Param   symbol      query   string  false  "Symbol"
// @Param   side        query   string  false  "long or short"
// @Param   setup_id    query   string  false  "Setup ID"
// @Param   account_id  query   string  false  "Account ID"
// @Param   status      query   string  false  "open or closed"
// @Param   q           query   string  false  "Search symbol and notes"
// @Param   page        query   int     false  "Page, from 1"
// @Param   per_page    query   int     false  "Page size"
// @Success 200 {object} dto.TradeListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /trades [get]
func (h *TradeHandler) ListTrades(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	var q dto.TradeListQuery
	if err := bind(c, &q); err != nil {
		return respondError(c, h.logger, err)
	}

	res, err := h.tradeService.ListTrades(c.Request().Context(), userID, &q)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, res)
}

// GetTrade godoc
// @Summary Get a trade
// @Tags trades
// @Produce  json
// @Security BearerAuth
// @Param   id  path    string true    "Trade ID"
// @Success 200 {object} dto.TradeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /trades/{id} [get]
func (h *TradeHandler) GetTrade(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid trade ID"})
	}

	trade, err := h.tradeService.GetTrade(c.Request().Context(), userID, id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, trade)
}

// UpdateTrade godoc
// @Summary Replace a trade
// @Description Replace every editable field of a trade. Last write wins.
// @Tags trades
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id     path    string              true    "Trade ID"
// @Param   trade  body    dto.TradeRequest    true    "Trade"
// @Success 200 {object} dto.TradeResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /trades/{id} [put]
func (h *TradeHandler) UpdateTrade(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid trade ID"})
	}
	var req dto.TradeRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	trade, err := h.tradeService.UpdateTrade(c.Request().Context(), userID, id, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, trade)
}

// DeleteTrade godoc
// @Summary Delete a trade
// @Tags trades
// @Security BearerAuth
// @Param   id  path    string true    "Trade ID"
// @Success 204 {object} nil
// @Failure 404 {object} dto.ErrorResponse
// @Router /trades/{id} [delete]
func (h *TradeHandler) DeleteTrade(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid trade ID"})
	}

	if err := h.tradeService.DeleteTrade(c.Request().Context(), userID, id); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ReassignAccount godoc
// @Summary Move trades to another account
// @Tags trades
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body  body    dto.ReassignAccountRequest  true  "Trades and target account"
// @Success 200 {object} dto.ReassignAccountResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /trades/reassign-account [post]
func (h *TradeHandler) ReassignAccount(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	var req dto.ReassignAccountRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	res, err := h.tradeService.ReassignAccount(c.Request().Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, res)
}

// ImportTrades godoc
// @Summary Import trades from CSV
// @Description Upload a CSV with a header row. Invalid rows are reported; valid rows are stored.
// @Tags trades
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   file  formData  file  true  "CSV file"
// @Success 200 {object} dto.ImportResult
// @Failure 400 {object} dto.ErrorResponse
// @Router /trades/import [post]
func (h *TradeHandler) ImportTrades(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	header, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "A CSV file is required in the file field"})
	}
	if header.Size > maxImportBytes {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": fmt.Sprintf("CSV files are limited to %d bytes", maxImportBytes)})
	}
	file, err := header.Open()
	if err != nil {
		return respondError(c, h.logger, err)
	}
	defer file.Close()

	res, err := h.tradeService.ImportCSV(c.Request().Context(), userID, file)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, res)
}
