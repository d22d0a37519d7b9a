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

type InteractionHandler struct {
	log            *logger.Logger
	interactionSvc services.InteractionService
}

func NewInteractionHandler(log *logger.Logger, interactionSvc services.InteractionService) *InteractionHandler {
	return &InteractionHandler{
		log:            log.With("handler", "InteractionHandler"),
		interactionSvc: interactionSvc,
	}
}

// POST /api/clips/:id/interactions/learner
// Record the learner's diagnostic read for a clip. One per clip.
func (h *InteractionHandler) SubmitLearnerInteraction(c *gin.Context) {
	clipID, rd, ok := h.clipAndCaller(c)
	if !ok {
		return
	}
	var sub services.LearnerSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", fmt.Errorf("malformed interaction payload"))
		return
	}
	if err := h.interactionSvc.SubmitLearnerInteraction(c.Request.Context(), clipID, rd.UserID, sub); err != nil {
		h.respondSubmitError(c, err)
		return
	}
	RespondCreated(c, gin.H{"status": "created"})
}

// POST /api/clips/:id/interactions/reviewer
// Record the reviewer's read for a clip. One per clip.
func (h *InteractionHandler) SubmitReviewerInteraction(c *gin.Context) {
	clipID, rd, ok := h.clipAndCaller(c)
	if !ok {
		return
	}
	var sub services.ReviewerSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", fmt.Errorf("malformed interaction payload"))
		return
	}
	if err := h.interactionSvc.SubmitReviewerInteraction(c.Request.Context(), clipID, rd.UserID, sub); err != nil {
		h.respondSubmitError(c, err)
		return
	}
	RespondCreated(c, gin.H{"status": "created"})
}

// GET /api/clips/:id/interactions
// Both role reads for a clip, names resolved, absent roles omitted.
func (h *InteractionHandler) GetInteractions(c *gin.Context) {
	clipID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", fmt.Errorf("invalid clip id"))
		return
	}
	interactions, err := h.interactionSvc.GetInteractions(c.Request.Context(), clipID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "store_failure", err)
		return
	}
	RespondOK(c, interactions)
}

func (h *InteractionHandler) clipAndCaller(c *gin.Context) (uuid.UUID, *requestdata.RequestData, bool) {
	clipID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_input", fmt.Errorf("invalid clip id"))
		return uuid.Nil, nil, false
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil {
		RespondError(c, http.StatusUnauthorized, "unauthorized", fmt.Errorf("missing caller identity"))
		return uuid.Nil, nil, false
	}
	return clipID, rd, true
}

func (h *InteractionHandler) respondSubmitError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrDuplicateSubmission):
		RespondError(c, http.StatusConflict, "duplicate_submission", err)
	case errors.Is(err, apperrors.ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
	default:
		RespondError(c, http.StatusInternalServerError, "store_failure", err)
	}
}
