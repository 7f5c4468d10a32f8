package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorq/internal/response"
)

type MemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// JoinQueue обрабатывает запрос на вступление в очередь
// @Summary		Вступление в очередь
// @Description	Добавляет пользователя в очередь; в течение периода ожидания возвращает прежнее место
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			guild	path		string			true	"ID сервера"
// @Param			name	path		string			true	"Название очереди"
// @Param			member	body		MemberRequest	true	"Пользователь"
// @Security		BearerAuth
// @Success		200	{object}	response.PositionResponse
// @Failure		403	{object}	response.ErrorResponse	"TUTOR_CANNOT_JOIN_QUEUE"
// @Failure		404	{object}	response.ErrorResponse	"QUEUE_NOT_FOUND"
// @Failure		409	{object}	response.ErrorResponse	"ALREADY_IN_QUEUE"
// @Failure		423	{object}	response.ErrorResponse	"QUEUE_LOCKED"
// @Router			/api/guilds/{guild}/queues/{name}/join [post]
func (h *Handler) JoinQueue(c *gin.Context) {
	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}
	ctx := c.Request.Context()
	m, err := h.svc.JoinQueue(ctx, c.Param("guild"), c.Param("name"), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	pos, err := h.svc.GetQueuePosition(ctx, m.QueueID, req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.PositionResponse{Queue: c.Param("name"), UserID: req.UserID, Position: pos})
}

// LeaveQueue обрабатывает запрос на выход из очереди
// @Summary		Выход из очереди
// @Tags			queue
// @Accept			json
// @Produce		json
// @Param			guild	path		string			true	"ID сервера"
// @Param			name	path		string			true	"Название очереди"
// @Param			member	body		MemberRequest	true	"Пользователь"
// @Security		BearerAuth
// @Success		200	{object}	response.SuccessResponse
// @Failure		404	{object}	response.ErrorResponse	"QUEUE_NOT_FOUND, NOT_IN_QUEUE"
// @Router			/api/guilds/{guild}/queues/{name}/leave [post]
func (h *Handler) LeaveQueue(c *gin.Context) {
	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}
	if err := h.svc.LeaveQueue(c.Request.Context(), c.Param("guild"), c.Param("name"), req.UserID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.SuccessResponse{Message: "Выход из очереди выполнен"})
}

// @Summary		Позиция в очереди
// @Description	0 означает, что пользователь не стоит в очереди
// @Tags			queue
// @Produce		json
// @Param			guild	path		string	true	"ID сервера"
// @Param			name	path		string	true	"Название очереди"
// @Param			user	path		string	true	"ID пользователя"
// @Security		BearerAuth
// @Success		200	{object}	response.PositionResponse
// @Router			/api/guilds/{guild}/queues/{name}/position/{user} [get]
func (h *Handler) GetPosition(c *gin.Context) {
	ctx := c.Request.Context()
	q, err := h.svc.GetQueue(ctx, c.Param("guild"), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	pos, err := h.svc.GetQueuePosition(ctx, q.ID, c.Param("user"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.PositionResponse{Queue: q.Name, UserID: c.Param("user"), Position: pos})
}

// @Summary		Участники очереди
// @Tags			queue
// @Produce		json
// @Param			guild	path		string	true	"ID сервера"
// @Param			name	path		string	true	"Название очереди"
// @Security		BearerAuth
// @Success		200	{array}		response.MemberResponse
// @Router			/api/guilds/{guild}/queues/{name}/members [get]
func (h *Handler) ListMembers(c *gin.Context) {
	_, members, err := h.svc.ListMembers(c.Request.Context(), c.Param("guild"), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]response.MemberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, response.MemberResponse{
			UserID:   m.Member.UserID,
			Position: m.Position,
			JoinedAt: m.Member.JoinedAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

// QueueWebSocket подписывает клиента на события очереди.
// @Summary		События очереди (WebSocket)
// @Tags			queue
// @Param			guild	path	string	true	"ID сервера"
// @Param			name	path	string	true	"Название очереди"
// @Param			token	query	string	false	"Access токен, если нельзя передать заголовок"
// @Security		BearerAuth
// @Router			/api/guilds/{guild}/queues/{name}/ws [get]
func (h *Handler) QueueWebSocket(c *gin.Context) {
	q, err := h.svc.GetQueue(c.Request.Context(), c.Param("guild"), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	h.hub.Serve(c, q.ID)
}
