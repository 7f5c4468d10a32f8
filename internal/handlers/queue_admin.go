package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorq/internal/queue"
	"tutorq/internal/response"
)

type CreateQueueRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ChannelsRequest: omitted fields stay, empty strings clear the reference.
type ChannelsRequest struct {
	WaitingRoom *string `json:"waiting_room"`
	PrivateLog  *string `json:"private_log"`
	PublicLog   *string `json:"public_log"`
}

// @Summary		Список очередей
// @Tags			queues
// @Produce		json
// @Param			guild	path		string	true	"ID сервера"
// @Security		BearerAuth
// @Success		200	{array}		response.QueueResponse
// @Router			/api/guilds/{guild}/queues [get]
func (h *Handler) ListQueues(c *gin.Context) {
	queues, err := h.svc.ListQueues(c.Request.Context(), c.Param("guild"))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]response.QueueResponse, 0, len(queues))
	for i := range queues {
		out = append(out, toQueue(&queues[i]))
	}
	c.JSON(http.StatusOK, out)
}

// @Summary		Создание очереди
// @Tags			queues
// @Accept			json
// @Produce		json
// @Param			guild	path		string				true	"ID сервера"
// @Param			queue	body		CreateQueueRequest	true	"Очередь"
// @Security		BearerAuth
// @Success		201	{object}	response.QueueResponse
// @Failure		400	{object}	response.ErrorResponse	"VALIDATION_ERROR, INVALID_NAME"
// @Failure		409	{object}	response.ErrorResponse	"QUEUE_EXISTS"
// @Router			/api/guilds/{guild}/queues [post]
func (h *Handler) CreateQueue(c *gin.Context) {
	var req CreateQueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}
	q, err := h.svc.CreateQueue(c.Request.Context(), c.Param("guild"), req.Name, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toQueue(q))
}

// @Summary		Получение очереди
// @Tags			queues
// @Produce		json
// @Param			guild	path		string	true	"ID сервера"
// @Param			name	path		string	true	"Название очереди"
// @Security		BearerAuth
// @Success		200	{object}	response.QueueResponse
// @Failure		404	{object}	response.ErrorResponse	"QUEUE_NOT_FOUND"
// @Router			/api/guilds/{guild}/queues/{name} [get]
func (h *Handler) GetQueue(c *gin.Context) {
	q, err := h.svc.GetQueue(c.Request.Context(), c.Param("guild"), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQueue(q))
}

// @Summary		Удаление очереди
// @Tags			queues
// @Param			guild	path	string	true	"ID сервера"
// @Param			name	path	string	true	"Название очереди"
// @Security		BearerAuth
// @Success		204
// @Failure		404	{object}	response.ErrorResponse	"QUEUE_NOT_FOUND"
// @Router			/api/guilds/{guild}/queues/{name} [delete]
func (h *Handler) DeleteQueue(c *gin.Context) {
	if err := h.svc.DeleteQueue(c.Request.Context(), c.Param("guild"), c.Param("name")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary		Каналы очереди
// @Description	Комната ожидания и каналы журналов
// @Tags			queues
// @Accept			json
// @Produce		json
// @Param			guild		path		string			true	"ID сервера"
// @Param			name		path		string			true	"Название очереди"
// @Param			channels	body		ChannelsRequest	true	"Каналы"
// @Security		BearerAuth
// @Success		200	{object}	response.QueueResponse
// @Router			/api/guilds/{guild}/queues/{name}/channels [put]
func (h *Handler) SetChannels(c *gin.Context) {
	var req ChannelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationError(c, err)
		return
	}
	q, err := h.svc.SetQueueChannels(c.Request.Context(), c.Param("guild"), c.Param("name"), queue.ChannelUpdate{
		WaitingRoom: req.WaitingRoom,
		PrivateLog:  req.PrivateLog,
		PublicLog:   req.PublicLog,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQueue(q))
}

// @Summary		Закрытие очереди
// @Tags			queues
// @Produce		json
// @Param			guild	path		string	true	"ID сервера"
// @Param			name	path		string	true	"Название очереди"
// @Security		BearerAuth
// @Success		200	{object}	response.QueueResponse
// @Failure		409	{object}	response.ErrorResponse	"ALREADY_IN_STATE"
// @Router			/api/guilds/{guild}/queues/{name}/lock [post]
func (h *Handler) LockQueue(c *gin.Context) {
	h.setLock(c, true)
}

// @Summary		Открытие очереди
// @Tags			queues
// @Produce		json
// @Param			guild	path		string	true	"ID сервера"
// @Param			name	path		string	true	"Название очереди"
// @Security		BearerAuth
// @Success		200	{object}	response.QueueResponse
// @Failure		409	{object}	response.ErrorResponse	"ALREADY_IN_STATE"
// @Router			/api/guilds/{guild}/queues/{name}/unlock [post]
func (h *Handler) UnlockQueue(c *gin.Context) {
	h.setLock(c, false)
}

func (h *Handler) setLock(c *gin.Context, locked bool) {
	q, err := h.svc.SetQueueLockState(c.Request.Context(), c.Param("guild"), c.Param("name"), locked)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toQueue(q))
}

// @Summary		Очистка очереди
// @Tags			queues
// @Produce		json
// @Param			guild	path		string	true	"ID сервера"
// @Param			name	path		string	true	"Название очереди"
// @Security		BearerAuth
// @Success		200	{object}	response.ClearResponse
// @Router			/api/guilds/{guild}/queues/{name}/clear [post]
func (h *Handler) ClearQueue(c *gin.Context) {
	removed, err := h.svc.ClearQueue(c.Request.Context(), c.Param("guild"), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.ClearResponse{Removed: removed})
}
