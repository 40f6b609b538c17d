package api

import (
	"errors"
	"net/http"

	"consultbook/internal/domain/schedule"
	reqdto "consultbook/internal/handler/dto/request"
	resdto "consultbook/internal/handler/dto/response"
	"consultbook/internal/handler/httperr"
	"consultbook/internal/pkg/errs"
	"consultbook/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ScheduleHandler struct {
	availability usecase.AvailabilityUseCase
}

func NewScheduleHandler(availability usecase.AvailabilityUseCase) *ScheduleHandler {
	return &ScheduleHandler{availability: availability}
}

// @Summary Get weekly schedule
// @Description Current weekly availability of the consultant
// @Tags schedule
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ScheduleResponse
// @Failure 404 {object} map[string]string
// @Router /schedule [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	week, err := h.availability.Current(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrNoSchedule):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Schedule not configured",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromWeek(week))
}

// @Summary Replace weekly schedule
// @Description Replace the whole weekly availability; invalid days reject the update in full
// @Tags schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ReplaceScheduleRequest true "New weekly schedule"
// @Success 200 {object} resdto.ScheduleResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /schedule [put]
func (h *ScheduleHandler) Replace(c *gin.Context) {
	var req reqdto.ReplaceScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	days, problems := req.ToDomain()
	if len(problems) > 0 {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.ErrInvalidSchedule, "Invalid schedule", problems)
		return
	}

	week, err := h.availability.Replace(c.Request.Context(), days)
	if err != nil {
		var validationErr *schedule.ValidationError
		switch {
		case errors.As(err, &validationErr):
			detail := make([]string, len(validationErr.Days))
			for i, d := range validationErr.Days {
				detail[i] = d.Day.String() + ": " + d.Reason
			}
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid schedule", detail)
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromWeek(week))
}
