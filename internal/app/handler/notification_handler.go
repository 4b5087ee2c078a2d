package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
)

// ============ УВЕДОМЛЕНИЯ ============

func notificationToResponse(n *ds.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Text:      n.Text,
		OrderID:   n.OrderID,
		ClusterID: n.ClusterID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

// GetNotifications уведомления пользователя
// @Summary Уведомления
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param unread query bool false "Только непрочитанные"
// @Success 200 {object} dto.SuccessResponse
// @Router /api/notifications [get]
func (h *APIHandler) GetNotifications(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Пользователь не авторизован")
		return
	}

	notifications, err := h.Repository.GetNotifications(userID, c.Query("unread") == "true")
	if err != nil {
		logrus.Error("Error getting notifications: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения уведомлений")
		return
	}

	response := make([]dto.NotificationResponse, len(notifications))
	for i := range notifications {
		response[i] = notificationToResponse(&notifications[i])
	}
	h.successResponse(c, http.StatusOK, "", response)
}

// GetUnreadCount количество непрочитанных уведомлений
// @Summary Счётчик непрочитанных
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Router /api/notifications/unread-count [get]
func (h *APIHandler) GetUnreadCount(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Пользователь не авторизован")
		return
	}

	count, err := h.Repository.CountUnreadNotifications(userID)
	if err != nil {
		logrus.Error("Error counting notifications: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения уведомлений")
		return
	}

	h.successResponse(c, http.StatusOK, "", gin.H{"count": count})
}

// MarkNotificationRead помечает уведомление прочитанным
// @Summary Прочитать уведомление
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID уведомления"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/notifications/{id}/read [put]
func (h *APIHandler) MarkNotificationRead(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Пользователь не авторизован")
		return
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repository.MarkNotificationRead(id, userID); err != nil {
		h.errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "уведомление прочитано", nil)
}

// MarkAllNotificationsRead помечает все уведомления прочитанными
// @Summary Прочитать все уведомления
// @Tags Notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Router /api/notifications/read-all [put]
func (h *APIHandler) MarkAllNotificationsRead(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Пользователь не авторизован")
		return
	}

	if err := h.Repository.MarkAllNotificationsRead(userID); err != nil {
		logrus.Error("Error marking notifications: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления уведомлений")
		return
	}

	h.successResponse(c, http.StatusOK, "все уведомления прочитаны", nil)
}
