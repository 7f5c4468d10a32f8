package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorq/internal/queue"
	"tutorq/internal/response"
)

type StartSessionRequest struct {
	Queue   string `json:"queue" binding:"required"`
	TutorID string `json:"tutor_id" binding:"required"`
}

type PickRequest struct {
	StudentID string `json:"student_id"`
}

// StartSession открывает сессию преподавателя
// @Summary		Начало сессии
// @Tags			sessions
// @Accept			json
// @Produce		json
// @Param			guild	path		string				true	"ID сервера"
// @Param			session	body		StartSessionRequest	true	"Очередь и преподаватель"
// @Security		BearerAuth
// @Success		201	{object}	response.SessionResponse
// @Failure		403	{object}	response.ErrorResponse	"STUDENT_CANNOT_START_SESSION"
// @Failure		409	{object}	response.ErrorResponse	"SESSION_ALREADY_ACTIVE"
// @Router			/api/guilds/{guild}/sessions [post]
func (h *Handler) StartSession(c *gin.Context) {
	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}
	s, err := h.svc.CreateSession(c.Request.Context(), c.Param("guild"), req.Queue, req.TutorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSession(s))
}

// @Summary		Завершение сессии
// @Description	Закрывает сессию и все комнаты студентов
// @Tags			sessions
// @Produce		json
// @Param			guild	path		string	true	"ID сервера"
// @Param			tutor	path		string	true	"ID преподавателя"
// @Security		BearerAuth
// @Success		200	{object}	response.SessionResponse
// @Failure		404	{object}	response.ErrorResponse	"NO_ACTIVE_SESSION"
// @Router			/api/guilds/{guild}/sessions/{tutor} [delete]
func (h *Handler) EndSession(c *gin.Context) {
	s, err := h.svc.EndSession(c.Request.Context(), c.Param("guild"), c.Param("tutor"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSession(s))
}

// PickStudent забирает студента из очереди сессии в отдельную комнату.
// Без student_id берется первый по очереди.
// @Summary		Выбор студента
// @Tags			sessions
// @Accept			json
// @Produce		json
// @Param			guild	path		string		true	"ID сервера"
// @Param			tutor	path		string		true	"ID преподавателя"
// @Param			pick	body		PickRequest	false	"Конкретный студент"
// @Security		BearerAuth
// @Success		200	{object}	response.PickResponse
// @Failure		404	{object}	response.ErrorResponse	"NO_ACTIVE_SESSION, QUEUE_EMPTY, NOT_IN_QUEUE"
// @Failure		502	{object}	response.ErrorResponse	"ROOM_CREATION_FAILED"
// @Router			/api/guilds/{guild}/sessions/{tutor}/pick [post]
func (h *Handler) PickStudent(c *gin.Context) {
	var req PickRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			validationError(c, err)
			return
		}
	}

	ctx := c.Request.Context()
	guild, tutor := c.Param("guild"), c.Param("tutor")

	var (
		res *queue.PickResult
		err error
	)
	if req.StudentID != "" {
		res, err = h.svc.PickSpecific(ctx, guild, tutor, req.StudentID)
	} else {
		res, err = h.svc.PickNext(ctx, guild, tutor)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.PickResponse{
		SessionID: res.Session.ID,
		Queue:     res.Queue.Name,
		StudentID: res.Student.StudentID,
		Room:      res.RoomRef,
	})
}
