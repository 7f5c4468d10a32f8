package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorq/internal/response"
)

// GetUserQueues godoc
// @Summary		Очереди пользователя
// @Description	Все очереди сервера, в которых стоит пользователь, с его позицией
// @Tags			queue
// @Produce		json
// @Param			guild	path		string	true	"ID сервера"
// @Param			user	path		string	true	"ID пользователя"
// @Security		BearerAuth
// @Success		200	{array}		response.UserQueueResponse
// @Failure		500	{object}	response.ErrorResponse
// @Router			/api/guilds/{guild}/users/{user}/queues [get]
func (h *Handler) GetUserQueues(c *gin.Context) {
	items, err := h.svc.UserQueues(c.Request.Context(), c.Param("guild"), c.Param("user"))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]response.UserQueueResponse, 0, len(items))
	for _, it := range items {
		out = append(out, response.UserQueueResponse{Queue: toQueue(&it.Queue), Position: it.Position})
	}
	c.JSON(http.StatusOK, out)
}
