package handlers

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the auth endpoints and the protected /api group.
func (h *Handler) RegisterRoutes(r *gin.Engine, authMW gin.HandlerFunc) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", h.Login)
		authGroup.POST("/refresh", h.RefreshToken)
	}

	api := r.Group("/api", authMW)
	api.POST("/schedules/evaluate", h.EvaluateSchedules)

	guild := api.Group("/guilds/:guild")
	guild.GET("/users/:user/queues", h.GetUserQueues)

	queues := guild.Group("/queues")
	{
		queues.GET("", h.ListQueues)
		queues.POST("", h.CreateQueue)
		queues.GET("/:name", h.GetQueue)
		queues.DELETE("/:name", h.DeleteQueue)
		queues.PUT("/:name/channels", h.SetChannels)
		queues.POST("/:name/lock", h.LockQueue)
		queues.POST("/:name/unlock", h.UnlockQueue)
		queues.POST("/:name/clear", h.ClearQueue)

		queues.POST("/:name/join", h.JoinQueue)
		queues.POST("/:name/leave", h.LeaveQueue)
		queues.GET("/:name/position/:user", h.GetPosition)
		queues.GET("/:name/members", h.ListMembers)
		queues.GET("/:name/ws", h.QueueWebSocket)

		queues.GET("/:name/schedules", h.GetSchedules)
		queues.PUT("/:name/schedules/:day", h.PutSchedule)
		queues.DELETE("/:name/schedules/:day", h.DeleteSchedule)
		queues.PUT("/:name/schedule-settings", h.PutScheduleSettings)
	}

	sessions := guild.Group("/sessions")
	{
		sessions.POST("", h.StartSession)
		sessions.DELETE("/:tutor", h.EndSession)
		sessions.POST("/:tutor/pick", h.PickStudent)
	}
}
