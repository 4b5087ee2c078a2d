package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
)

// ============ СООБЩЕНИЯ ПО ЗАКАЗУ ============

func messageToResponse(message *ds.OrderMessage) dto.MessageResponse {
	return dto.MessageResponse{
		ID:        message.ID,
		OrderID:   message.OrderID,
		UserID:    message.UserID,
		Text:      message.Text,
		CreatedAt: message.CreatedAt,
	}
}

// checkMessageAccess проверяет доступ к переписке заказа
func (h *APIHandler) checkMessageAccess(c *gin.Context) (*ds.Order, uint, bool) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Пользователь не авторизован")
		return nil, 0, false
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return nil, 0, false
	}

	order, err := h.Repository.GetOrderByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Заказ не найден")
		return nil, 0, false
	}

	allowed, err := h.Repository.CanAccessOrderMessages(order.ID, userID)
	if err != nil {
		logrus.Error("Error checking message access: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка проверки доступа")
		return nil, 0, false
	}
	if !allowed {
		h.errorResponse(c, http.StatusForbidden, "Переписка доступна заказчику и владельцу кластера")
		return nil, 0, false
	}

	return order, userID, true
}

// GetOrderMessages переписка по заказу
// @Summary Сообщения заказа
// @Tags Messages
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/orders/{id}/messages [get]
func (h *APIHandler) GetOrderMessages(c *gin.Context) {
	order, _, ok := h.checkMessageAccess(c)
	if !ok {
		return
	}

	messages, err := h.Repository.GetOrderMessages(order.ID)
	if err != nil {
		logrus.Error("Error getting messages: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения сообщений")
		return
	}

	dtoMessages := make([]dto.MessageResponse, len(messages))
	for i := range messages {
		dtoMessages[i] = messageToResponse(&messages[i])
	}
	h.successResponse(c, http.StatusOK, "", dtoMessages)
}

// CreateOrderMessage добавляет сообщение в переписку
// @Summary Отправка сообщения
// @Description Переписка открывается после отправки заказа, в черновике недоступна
// @Tags Messages
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Param request body dto.CreateMessageRequest true "Текст сообщения"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/orders/{id}/messages [post]
func (h *APIHandler) CreateOrderMessage(c *gin.Context) {
	order, userID, ok := h.checkMessageAccess(c)
	if !ok {
		return
	}

	// По черновику переписки нет
	if order.Status == ds.OrderStatusDraft {
		h.errorResponse(c, http.StatusBadRequest, "Сообщения доступны после отправки заказа")
		return
	}

	var request dto.CreateMessageRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	message := ds.OrderMessage{
		OrderID: order.ID,
		UserID:  userID,
		Text:    request.Text,
	}
	if err := h.Repository.CreateOrderMessage(&message); err != nil {
		logrus.Error("Error creating message: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка отправки сообщения")
		return
	}

	c.JSON(http.StatusCreated, messageToResponse(&message))
}
