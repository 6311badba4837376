package http

import (
	"net/http"

	"golang-trading-journal/internal/api/dto"
	"golang-trading-journal/internal/api/service"
	"golang-trading-journal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AccountHandler handles HTTP requests for trading accounts.
type AccountHandler struct {
	accountService service.AccountService
	logger         *logger.Logger
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService service.AccountService, logger *logger.Logger) *AccountHandler {
	return &AccountHandler{accountService: accountService, logger: logger}
}

// RegisterRoutes registers the account routes to the Echo group.
func (h *AccountHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateAccount)
	g.GET("", h.GetAllAccounts)
	g.GET("/:id", h.GetAccount)
	g.PUT("/:id", h.UpdateAccount)
	g.DELETE("/:id", h.DeleteAccount)
}

// CreateAccount godoc
// @Summary Create an account
// @Description The first account of a user becomes the default.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   account  body    dto.AccountRequest   true    "Account to create"
// @Success 201 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /accounts [post]
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	var req dto.AccountRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	account, err := h.accountService.CreateAccount(c.Request().Context(), userID, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusCreated, account)
}

// GetAllAccounts godoc
// @Summary List accounts
// @Tags accounts
// @Produce  json
// @Security BearerAuth
// @Success 200 {array} dto.AccountResponse
// @Router /accounts [get]
func (h *AccountHandler) GetAllAccounts(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	accounts, err := h.accountService.GetAllAccounts(c.Request().Context(), userID)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, accounts)
}

// GetAccount godoc
// @Summary Get an account
// @Tags accounts
// @Produce  json
// @Security BearerAuth
// @Param   id  path    string true    "Account ID"
// @Success 200 {object} dto.AccountResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid account ID"})
	}
	account, err := h.accountService.GetAccount(c.Request().Context(), userID, id)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, account)
}

// UpdateAccount godoc
// @Summary Update an account
// @Description Making an account the default clears the flag on the others.
// @Tags accounts
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id       path    string               true    "Account ID"
// @Param   account  body    dto.AccountRequest   true    "Account"
// @Success 200 {object} dto.AccountResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /accounts/{id} [put]
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid account ID"})
	}
	var req dto.AccountRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	account, err := h.accountService.UpdateAccount(c.Request().Context(), userID, id, &req)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	return c.JSON(http.StatusOK, account)
}

// DeleteAccount godoc
// @Summary Delete an account
// @Description Trades of the account are kept without an account.
// @Tags accounts
// @Security BearerAuth
// @Param   id  path    string true    "Account ID"
// @Success 204 {object} nil
// @Failure 404 {object} dto.ErrorResponse
// @Router /accounts/{id} [delete]
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	userID, err := currentUser(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid account ID"})
	}
	if err := h.accountService.DeleteAccount(c.Request().Context(), userID, id); err != nil {
		return respondError(c, h.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}
