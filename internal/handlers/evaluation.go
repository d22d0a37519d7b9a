package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/logger"
	apperrors "github.com/Martinrodriguezc/portafolius-backend-sub001/internal/pkg/errors"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/requestdata"
	"github.com/Martinrodriguezc/portafolius-backend-sub001/internal/services"
)

type EvaluationHandler struct {
	log     *logger.Logger
	evalSvc services.EvaluationService
}

func NewEvaluationHandler(log *logger.Logger, evalSvc services.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{
		log:     log.With("handler", "EvaluationHandler"),
		evalSvc: evalSvc,
	}
}

type createAttemptRequest struct {
	Responses []services.ResponseInput `json:"responses"`
	Comment   *string                  `json:"comment"`
}

// POST /api/clips/:id/attempts
// Submit one scored pass over a clip against the rubric.
func (h *EvaluationHandler) CreateAttempt(c *gin.Context) {
	clipID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", fmt.Errorf("invalid clip id"))
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing caller identity"))
		return
	}

	var req createAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", fmt.Errorf("malformed responses payload"))
		return
	}

	receipt, err := h.evalSvc.CreateAttempt(c.Request.Context(), clipID, rd.UserID, req.Responses, req.Comment)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			RespondError(c, http.StatusBadRequest, "invalid_input", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "store_failure", err)
		return
	}
	RespondCreated(c, receipt)
}

// GET /api/clips/:id/attempts
// List scored attempts for a clip, newest first, with totals.
func (h *EvaluationHandler) ListAttempts(c *gin.Context) {
	clipID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", fmt.Errorf("invalid clip id"))
		return
	}
	attempts, err := h.evalSvc.ListAttempts(c.Request.Context(), clipID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "store_failure", err)
		return
	}
	RespondOK(c, attempts)
}

// GET /api/attempts/:id/responses
// List the per-item scores recorded for one attempt.
func (h *EvaluationHandler) ListResponses(c *gin.Context) {
	attemptID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", fmt.Errorf("invalid attempt id"))
		return
	}
	responses, err := h.evalSvc.ListResponses(c.Request.Context(), attemptID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "store_failure", err)
		return
	}
	RespondOK(c, responses)
}
