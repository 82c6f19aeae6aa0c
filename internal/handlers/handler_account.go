package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/fintrackr/finance_tracker_app/internal/apperrors"
	"github.com/fintrackr/finance_tracker_app/internal/core/domain"
	portssvc "github.com/fintrackr/finance_tracker_app/internal/core/ports/services"
	"github.com/fintrackr/finance_tracker_app/internal/dto"
	"github.com/fintrackr/finance_tracker_app/internal/middleware"
	"github.com/fintrackr/finance_tracker_app/internal/validation"
	"github.com/fintrackr/finance_tracker_app/pkg/response"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: as}
}

// RegisterAccountRoutes registers routes related to accounts.
func RegisterAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.POST("", h.createAccount)
		accounts.PUT("/:id", h.updateAccount)
		accounts.DELETE("/:id", h.deleteAccount)
	}
}

// parseAccountID validates the :id path parameter as a positive integer.
func parseAccountID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		response.BadRequest(c, "Invalid account ID", nil)
		return 0, false
	}
	return id, true
}

// listAccounts godoc
// @Summary List accounts with totals
// @Description Retrieves every account together with its aggregated income and expense totals
// @Tags accounts
// @Produce json
// @Success 200 {object} response.Envelope{data=[]dto.AccountResponse}
// @Failure 500 {object} response.Envelope
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accounts, err := h.accountService.ListAccounts(c.Request.Context())
	if err != nil {
		logServerError(c, logger, "Error fetching accounts", err)
		response.ServerError(c)
		return
	}

	response.OK(c, "Accounts fetched successfully", dto.ToListAccountResponse(accounts))
}

// createAccount godoc
// @Summary Create a new account
// @Description Creates a new account; the response reports zero totals since no records exist yet
// @Tags accounts
// @Accept json
// @Produce json
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} response.Envelope{data=dto.AccountResponse}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to decode account payload", slog.String("error", err.Error()))
		response.BadRequest(c, "Invalid account data", nil)
		return
	}
	if fieldErrs := validation.Struct(req); fieldErrs != nil {
		logger.Warn("Account payload failed validation", slog.String("errors", fieldErrs.Error()))
		response.BadRequest(c, "Invalid account data", fieldErrs)
		return
	}

	created, err := h.accountService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			response.BadRequest(c, "Invalid account data", nil)
			return
		}
		logServerError(c, logger, "Error creating account", err)
		response.ServerError(c)
		return
	}

	// A fresh account has no records, so totals are zero by construction.
	response.Created(c, "Account created successfully", dto.ToAccountResponse(&domain.AccountWithTotals{Account: *created}))
}

// updateAccount godoc
// @Summary Update an account
// @Description Applies a partial update; at least one field must be present
// @Tags accounts
// @Accept json
// @Produce json
// @Param id path int true "Account ID"
// @Param account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} response.Envelope{data=dto.AccountData}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /accounts/{id} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to decode account payload", slog.String("error", err.Error()))
		response.BadRequest(c, "Invalid account data", nil)
		return
	}
	if fieldErrs := validation.Struct(req); fieldErrs != nil {
		logger.Warn("Account payload failed validation", slog.String("errors", fieldErrs.Error()))
		response.BadRequest(c, "Invalid account data", fieldErrs)
		return
	}

	updated, err := h.accountService.UpdateAccount(c.Request.Context(), accountID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			response.NotFound(c, "Account not found")
		case errors.Is(err, apperrors.ErrValidation):
			response.BadRequest(c, "Invalid account data", nil)
		default:
			logServerError(c, logger, "Error updating account", err)
			response.ServerError(c)
		}
		return
	}

	response.OK(c, "Account updated successfully", dto.ToAccountData(updated))
}

// deleteAccount godoc
// @Summary Delete an account
// @Description Deletes an account; its records are removed with it
// @Tags accounts
// @Produce json
// @Param id path int true "Account ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /accounts/{id} [delete]
func (h *accountHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	accountID, ok := parseAccountID(c)
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(c.Request.Context(), accountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Account not found")
			return
		}
		logServerError(c, logger, "Error deleting account", err)
		response.ServerError(c)
		return
	}

	response.OK(c, "Account deleted successfully", nil)
}
