package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/maintenance-scheduler/internal/httperr"
	"github.com/BruksfildServices01/maintenance-scheduler/internal/middleware"
	ucAssignment "github.com/BruksfildServices01/maintenance-scheduler/internal/usecase/assignment"
)

func errAsBusiness(err error, be *httperr.BusinessError) bool {
	return errors.As(err, be)
}

// ======================================================
// HANDLER
// ======================================================

type AssignmentHandler struct {
	assignUC   *ucAssignment.AssignWorker
	completeUC *ucAssignment.CompleteBooking
}

func NewAssignmentHandler(
	assignUC *ucAssignment.AssignWorker,
	completeUC *ucAssignment.CompleteBooking,
) *AssignmentHandler {
	return &AssignmentHandler{
		assignUC:   assignUC,
		completeUC: completeUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AssignWorkerRequest struct {
	WorkerID uint   `json:"worker_id" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Notes    string `json:"notes"`
}

type CompleteBookingRequest struct {
	WorkerID   uint   `json:"worker_id" binding:"required"`
	Successful *bool  `json:"successful" binding:"required"`
	Notes      string `json:"notes"`
}

// ======================================================
// ASSIGN
// ======================================================

func (h *AssignmentHandler) Assign(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	requestID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req AssignWorkerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.assignUC.Execute(c.Request.Context(), ucAssignment.AssignWorkerInput{
		CompanyID: companyID,
		UserID:    userID,
		RequestID: uint(requestID),
		WorkerID:  req.WorkerID,
		Date:      req.Date,
		Notes:     req.Notes,
	})
	if err != nil {
		writeAssignError(c, err)
		return
	}

	c.JSON(201, out)
}

// mapeia erros de negócio do fluxo de atribuição para HTTP
func writeAssignError(c *gin.Context, err error) {
	var be httperr.BusinessError
	switch {
	case httperr.IsBusiness(err, "request_not_found"),
		httperr.IsBusiness(err, "worker_not_found"):
		httperr.NotFound(c, "not_found", "Chamado ou profissional não encontrado.")
	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "Chamado não está aberto para agendamento.")
	case httperr.IsBusiness(err, "invalid_date"):
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
	case httperr.IsBusiness(err, "worker_fully_booked"):
		httperr.BadRequest(c, "worker_fully_booked", "Profissional sem vaga na data.")
	case errAsBusiness(err, &be) && strings.HasPrefix(be.Code, "assignment_rejected"):
		httperr.BadRequest(c, "assignment_rejected", be.Code)
	case errAsBusiness(err, &be) && strings.HasPrefix(be.Code, "scheduling_conflict"):
		httperr.BadRequest(c, "scheduling_conflict", be.Code)
	default:
		httperr.Internal(c, "assignment_failed", "Erro ao agendar profissional.")
	}
}

// ======================================================
// COMPLETE
// ======================================================

func (h *AssignmentHandler) Complete(c *gin.Context) {
	companyID := c.MustGet(middleware.ContextCompanyID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req CompleteBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	booking, err := h.completeUC.Execute(
		c.Request.Context(),
		companyID,
		userID,
		req.WorkerID,
		uint(bookingID),
		*req.Successful,
		req.Notes,
	)
	if err != nil {
		if httperr.IsBusiness(err, "booking_not_found") {
			httperr.NotFound(c, "booking_not_found", "Agendamento não encontrado.")
			return
		}
		if httperr.IsBusiness(err, "booking_already_completed") {
			httperr.BadRequest(c, "booking_already_completed", "Agendamento já concluído.")
			return
		}
		httperr.Internal(c, "complete_failed", "Erro ao concluir agendamento.")
		return
	}

	c.JSON(200, booking)
}
