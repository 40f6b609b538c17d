package api

import (
	"errors"
	"net/http"
	"time"

	reqdto "consultbook/internal/handler/dto/request"
	resdto "consultbook/internal/handler/dto/response"
	"consultbook/internal/pkg/errs"
	"consultbook/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	scheduler usecase.Scheduler
}

func NewBookingHandler(scheduler usecase.Scheduler) *BookingHandler {
	return &BookingHandler{scheduler: scheduler}
}

// @Summary Available slots
// @Description Open consultation slots for one day
// @Tags availability
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /availability/{date} [get]
func (h *BookingHandler) AvailableSlots(c *gin.Context) {
	date, err := time.Parse(reqdto.DateLayout, c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	slots, err := h.scheduler.AvailableSlots(c.Request.Context(), date)
	if err != nil {
		h.renderSchedulingError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.NewAvailabilityResponse(date, resdto.FromSlots(slots)))
}

// @Summary Bookings for a day
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListByDate(c *gin.Context) {
	date, err := time.Parse(reqdto.DateLayout, c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date format, expected YYYY-MM-DD",
		})
		return
	}

	bookings, err := h.scheduler.BookingsOn(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookings(bookings))
}

// @Summary Get booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	b, err := h.scheduler.Booking(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBooking(b))
}

// @Summary Cancel booking
// @Description Cancelling an already-cancelled booking is a no-op success
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	if err := h.scheduler.CancelBooking(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, errs.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *BookingHandler) renderSchedulingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrNoSchedule):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Booking temporarily unavailable",
		})
	case errors.Is(err, errs.ErrPastDate):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Date is in the past",
		})
	case errors.Is(err, errs.ErrDateOutOfRange):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Date is beyond the booking horizon",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
