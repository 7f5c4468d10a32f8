package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tutorq/internal/auth"
	"tutorq/internal/models"
	"tutorq/internal/queue"
	"tutorq/internal/response"
	"tutorq/internal/ws"
)

// Handler serves the operations API over the queue service.
type Handler struct {
	svc    *queue.Service
	hub    *ws.Hub
	tokens *auth.Tokens

	adminUser string
	adminHash string
}

type Options struct {
	Service       *queue.Service
	Hub           *ws.Hub
	Tokens        *auth.Tokens
	AdminUser     string
	AdminPassHash string
}

func New(opts Options) *Handler {
	return &Handler{
		svc:       opts.Service,
		hub:       opts.Hub,
		tokens:    opts.Tokens,
		adminUser: opts.AdminUser,
		adminHash: opts.AdminPassHash,
	}
}

// statusFor maps core error kinds onto HTTP statuses.
func statusFor(err error) int {
	var qe *queue.Error
	if !errors.As(err, &qe) {
		return http.StatusInternalServerError
	}
	switch qe.Kind {
	case queue.KindNotFound:
		return http.StatusNotFound
	case queue.KindLocked:
		return http.StatusLocked
	case queue.KindConflict:
		return http.StatusConflict
	case queue.KindPolicyViolation:
		return http.StatusForbidden
	case queue.KindValidation:
		return http.StatusBadRequest
	case queue.KindOperationFailed:
		if qe.Code == "STORE_ERROR" {
			return http.StatusInternalServerError
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	resp := response.ErrorResponse{Code: "INTERNAL_ERROR", Message: "Внутренняя ошибка сервера"}
	var qe *queue.Error
	if errors.As(err, &qe) {
		resp.Code = qe.Code
		resp.Message = qe.Message
		if qe.Err != nil && qe.Kind != queue.KindOperationFailed {
			resp.Details = qe.Err.Error()
		}
	}
	c.JSON(statusFor(err), resp)
}

func validationError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, response.ErrorResponse{
		Code:    "VALIDATION_ERROR",
		Message: "Ошибка валидации данных",
		Details: err.Error(),
	})
}

func toQueue(q *models.Queue) response.QueueResponse {
	return response.QueueResponse{
		ID:                   q.ID,
		GuildID:              q.GuildID,
		Name:                 q.Name,
		Description:          q.Description,
		IsLocked:             q.IsLocked,
		WaitingRoom:          q.WaitingRoomRef,
		PrivateLog:           q.PrivateLogRef,
		PublicLog:            q.PublicLogRef,
		ScheduleEnabled:      q.ScheduleEnabled,
		ScheduleShiftMinutes: q.ScheduleShiftMinutes,
	}
}

func toSession(s *models.Session) response.SessionResponse {
	return response.SessionResponse{
		ID:        s.ID,
		QueueID:   s.QueueID,
		TutorID:   s.TutorID,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
	}
}
