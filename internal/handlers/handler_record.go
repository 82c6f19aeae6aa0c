package handlers

import (
	"errors"
	"log/slog"

	"github.com/fintrackr/finance_tracker_app/internal/apperrors"
	"github.com/fintrackr/finance_tracker_app/internal/core/domain"
	portssvc "github.com/fintrackr/finance_tracker_app/internal/core/ports/services"
	"github.com/fintrackr/finance_tracker_app/internal/dto"
	"github.com/fintrackr/finance_tracker_app/internal/middleware"
	"github.com/fintrackr/finance_tracker_app/internal/validation"
	"github.com/fintrackr/finance_tracker_app/pkg/response"
	"github.com/gin-gonic/gin"
)

// recordHandler handles HTTP requests related to records.
type recordHandler struct {
	recordService portssvc.RecordSvcFacade
}

func newRecordHandler(rs portssvc.RecordSvcFacade) *recordHandler {
	return &recordHandler{recordService: rs}
}

// RegisterRecordRoutes registers routes related to records.
func RegisterRecordRoutes(rg *gin.RouterGroup, recordService portssvc.RecordSvcFacade) {
	h := newRecordHandler(recordService)

	records := rg.Group("/records")
	{
		records.GET("", h.listRecords)
		records.POST("", h.createRecord)
		records.PUT("/:id", h.updateRecord)
		records.DELETE("/:id", h.deleteRecord)
	}
}

// parseRecordPathID validates the :id path parameter as a record id.
func parseRecordPathID(c *gin.Context) (domain.RecordID, bool) {
	id, err := domain.ParseRecordID(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid record ID", nil)
		return 0, false
	}
	return id, true
}

// listRecords godoc
// @Summary List records for a calendar month
// @Description Retrieves records with date inside the given year/month window, optionally for one account
// @Tags records
// @Produce json
// @Param year query int true "Year (>= 1970)"
// @Param month query int true "Month (1-12)"
// @Param accountId query int false "Restrict to one account"
// @Success 200 {object} response.Envelope{data=[]dto.RecordResponse}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /records [get]
func (h *recordHandler) listRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListRecordsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind record query params", slog.String("error", err.Error()))
		response.BadRequest(c, "Invalid query parameters", nil)
		return
	}
	if fieldErrs := validation.Struct(params); fieldErrs != nil {
		logger.Warn("Record query params failed validation", slog.String("errors", fieldErrs.Error()))
		response.BadRequest(c, "Invalid query parameters", fieldErrs)
		return
	}

	records, err := h.recordService.ListRecords(c.Request.Context(), params)
	if err != nil {
		logServerError(c, logger, "Error fetching records", err)
		response.ServerError(c)
		return
	}

	response.OK(c, "Records fetched successfully", dto.ToListRecordResponse(records))
}

// createRecord godoc
// @Summary Create a new record
// @Description Creates an income or expense record tied to an account
// @Tags records
// @Accept json
// @Produce json
// @Param record body dto.CreateRecordRequest true "Record details"
// @Success 201 {object} response.Envelope{data=dto.RecordResponse}
// @Failure 400 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /records [post]
func (h *recordHandler) createRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to decode record payload", slog.String("error", err.Error()))
		response.BadRequest(c, "Invalid record data", nil)
		return
	}
	if fieldErrs := validation.Struct(req); fieldErrs != nil {
		logger.Warn("Record payload failed validation", slog.String("errors", fieldErrs.Error()))
		response.BadRequest(c, "Invalid record data", fieldErrs)
		return
	}

	created, err := h.recordService.CreateRecord(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			response.BadRequest(c, "Invalid record data", nil)
			return
		}
		logServerError(c, logger, "Error creating record", err)
		response.ServerError(c)
		return
	}

	response.Created(c, "Record created successfully", dto.ToRecordResponse(created))
}

// updateRecord godoc
// @Summary Update a record
// @Description Applies a partial update; at least one field must be present
// @Tags records
// @Accept json
// @Produce json
// @Param id path string true "Record ID"
// @Param record body dto.UpdateRecordRequest true "Fields to update"
// @Success 200 {object} response.Envelope{data=dto.RecordResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /records/{id} [put]
func (h *recordHandler) updateRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	recordID, ok := parseRecordPathID(c)
	if !ok {
		return
	}

	var req dto.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to decode record payload", slog.String("error", err.Error()))
		response.BadRequest(c, "Invalid record data", nil)
		return
	}
	if fieldErrs := validation.Struct(req); fieldErrs != nil {
		logger.Warn("Record payload failed validation", slog.String("errors", fieldErrs.Error()))
		response.BadRequest(c, "Invalid record data", fieldErrs)
		return
	}

	updated, err := h.recordService.UpdateRecord(c.Request.Context(), recordID, req)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			response.NotFound(c, "Record not found")
		case errors.Is(err, apperrors.ErrValidation):
			response.BadRequest(c, "Invalid record data", nil)
		default:
			logServerError(c, logger, "Error updating record", err)
			response.ServerError(c)
		}
		return
	}

	response.OK(c, "Record updated successfully", dto.ToRecordResponse(updated))
}

// deleteRecord godoc
// @Summary Delete a record
// @Tags records
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /records/{id} [delete]
func (h *recordHandler) deleteRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	recordID, ok := parseRecordPathID(c)
	if !ok {
		return
	}

	if err := h.recordService.DeleteRecord(c.Request.Context(), recordID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Record not found")
			return
		}
		logServerError(c, logger, "Error deleting record", err)
		response.ServerError(c)
		return
	}

	response.OK(c, "Record deleted successfully", nil)
}
