package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorq/internal/models"
	"tutorq/internal/queue"
	"tutorq/internal/response"
)

type ScheduleRequest struct {
	StartTime string `json:"start_time" binding:"required" example:"08:00"`
	EndTime   string `json:"end_time" binding:"required" example:"20:00"`
}

// ScheduleSettingsRequest: поля без значения не меняются
type ScheduleSettingsRequest struct {
	Enabled      *bool `json:"enabled"`
	ShiftMinutes *int  `json:"shift_minutes" example:"30"`
}

// @Summary		Расписание очереди
// @Tags			schedule
// @Produce		json
// @Param			guild	path		string	true	"ID сервера"
// @Param			name	path		string	true	"Название очереди"
// @Security		BearerAuth
// @Success		200	{array}		response.ScheduleResponse
// @Failure		404	{object}	response.ErrorResponse	"QUEUE_NOT_FOUND"
// @Router			/api/guilds/{guild}/queues/{name}/schedules [get]
func (h *Handler) GetSchedules(c *gin.Context) {
	_, schedules, err := h.svc.GetSchedules(c.Request.Context(), c.Param("guild"), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]response.ScheduleResponse, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, toSchedule(s))
	}
	c.JSON(http.StatusOK, out)
}

// PutSchedule задает окно работы очереди на день недели
// @Summary		Окно расписания
// @Description	День недели: 0-6 (0 - воскресенье), monday, mon и т.п. Повторный вызов перезаписывает окно
// @Tags			schedule
// @Accept			json
// @Produce		json
// @Param			guild		path		string			true	"ID сервера"
// @Param			name		path		string			true	"Название очереди"
// @Param			day			path		string			true	"День недели"
// @Param			schedule	body		ScheduleRequest	true	"Время HH:MM"
// @Security		BearerAuth
// @Success		200	{object}	response.ScheduleResponse
// @Failure		400	{object}	response.ErrorResponse	"INVALID_DAY, INVALID_TIME, INVALID_WINDOW"
// @Router			/api/guilds/{guild}/queues/{name}/schedules/{day} [put]
func (h *Handler) PutSchedule(c *gin.Context) {
	day, err := queue.ParseDay(c.Param("day"))
	if err != nil {
		respondError(c, err)
		return
	}
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}
	s, err := h.svc.AddSchedule(c.Request.Context(), c.Param("guild"), c.Param("name"), day, req.StartTime, req.EndTime)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSchedule(*s))
}

// @Summary		Удаление окна расписания
// @Tags			schedule
// @Param			guild	path	string	true	"ID сервера"
// @Param			name	path	string	true	"Название очереди"
// @Param			day		path	string	true	"День недели"
// @Security		BearerAuth
// @Success		204
// @Failure		404	{object}	response.ErrorResponse	"SCHEDULE_NOT_FOUND"
// @Router			/api/guilds/{guild}/queues/{name}/schedules/{day} [delete]
func (h *Handler) DeleteSchedule(c *gin.Context) {
	day, err := queue.ParseDay(c.Param("day"))
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.svc.RemoveSchedule(c.Request.Context(), c.Param("guild"), c.Param("name"), day); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary		Настройки расписания
// @Description	Включение автоблокировки и сдвиг окон в минутах (от -720 до 720)
// @Tags			schedule
// @Accept			json
// @Produce		json
// @Param			guild		path		string					true	"ID сервера"
// @Param			name		path		string					true	"Название очереди"
// @Param			settings	body		ScheduleSettingsRequest	true	"Настройки"
// @Security		BearerAuth
// @Success		200	{object}	response.QueueResponse
// @Failure		400	{object}	response.ErrorResponse	"INVALID_SHIFT"
// @Router			/api/guilds/{guild}/queues/{name}/schedule-settings [put]
func (h *Handler) PutScheduleSettings(c *gin.Context) {
	var req ScheduleSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}
	ctx := c.Request.Context()
	guild, name := c.Param("guild"), c.Param("name")

	q, err := h.svc.GetQueue(ctx, guild, name)
	if err != nil {
		respondError(c, err)
		return
	}
	// сдвиг первым, чтобы включение сразу считалось по новым окнам
	if req.ShiftMinutes != nil {
		if q, err = h.svc.SetScheduleShift(ctx, guild, name, *req.ShiftMinutes); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.Enabled != nil {
		if q, err = h.svc.SetScheduleEnabled(ctx, guild, name, *req.Enabled); err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, toQueue(q))
}

// @Summary		Проверка расписаний
// @Description	Внеочередной проход планировщика по всем очередям с расписанием
// @Tags			schedule
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse
// @Router			/api/schedules/evaluate [post]
func (h *Handler) EvaluateSchedules(c *gin.Context) {
	if err := h.svc.EvaluateAll(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Расписания проверены"})
}

func toSchedule(s models.QueueSchedule) response.ScheduleResponse {
	return response.ScheduleResponse{
		DayOfWeek: s.DayOfWeek,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
	}
}
