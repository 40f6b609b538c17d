package api

import (
	"errors"
	"net/http"

	"consultbook/internal/domain/booking"
	reqdto "consultbook/internal/handler/dto/request"
	resdto "consultbook/internal/handler/dto/response"
	"consultbook/internal/pkg/errs"
	"consultbook/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionHandler exposes the booking conversation to the chat transport.
// Each endpoint is one state-machine transition.
type SessionHandler struct {
	conversation usecase.Conversation
}

func NewSessionHandler(conversation usecase.Conversation) *SessionHandler {
	return &SessionHandler{conversation: conversation}
}

// @Summary Start booking conversation
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body reqdto.StartSessionRequest true "Client contact"
// @Success 201 {object} resdto.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /sessions [post]
func (h *SessionHandler) Start(c *gin.Context) {
	var req reqdto.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	contact, err := booking.NewContact(req.Name, req.Phone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	session, err := h.conversation.Start(c.Request.Context(), contact)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNoSchedule):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Booking temporarily unavailable",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromSession(session))
}

// @Summary Choose consultation date
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body reqdto.ChooseDateRequest true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.SessionResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sessions/{id}/date [post]
func (h *SessionHandler) ChooseDate(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req reqdto.ChooseDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	date, err := req.ParseDate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	result, err := h.conversation.ChooseDate(c.Request.Context(), id, date)
	if err != nil {
		h.renderConversationError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromResult(result))
}

// @Summary Choose time slot
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body reqdto.ChooseSlotRequest true "Slot start"
// @Success 200 {object} resdto.SessionResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sessions/{id}/slot [post]
func (h *SessionHandler) ChooseSlot(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var req reqdto.ChooseSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	startAt, err := req.ParseStartsAt()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid timestamp format",
		})
		return
	}

	result, err := h.conversation.ChooseSlot(c.Request.Context(), id, startAt)
	if err != nil {
		h.renderConversationError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromResult(result))
}

// @Summary Confirm booking
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sessions/{id}/confirm [post]
func (h *SessionHandler) Confirm(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	result, err := h.conversation.Confirm(c.Request.Context(), id)
	if err != nil {
		h.renderConversationError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromResult(result))
}

// @Summary Back to date selection
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /sessions/{id}/back [post]
func (h *SessionHandler) Back(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	result, err := h.conversation.Back(c.Request.Context(), id)
	if err != nil {
		h.renderConversationError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromResult(result))
}

// @Summary Cancel conversation
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 404 {object} map[string]string
// @Router /sessions/{id} [delete]
func (h *SessionHandler) Cancel(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	result, err := h.conversation.Cancel(c.Request.Context(), id)
	if err != nil {
		h.renderConversationError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromResult(result))
}

func (h *SessionHandler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid session ID format",
		})
		return uuid.Nil, false
	}
	return id, true
}

func (h *SessionHandler) renderConversationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Session not found",
		})
	case errors.Is(err, errs.ErrSessionFinished):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Session already finished, start a new one",
		})
	case errors.Is(err, errs.ErrInvalidStep):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Operation not valid in current step",
		})
	case errors.Is(err, errs.ErrNoSchedule):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Booking temporarily unavailable",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
