package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/queue"
	"backend/internal/app/repository"
)

// ============ ДОМЕН ЗАКАЗЫ ============

func (h *APIHandler) orderToResponse(order *ds.Order, withFiles bool) dto.OrderResponse {
	response := dto.OrderResponse{
		ID:          order.ID,
		UserID:      order.UserID,
		Title:       order.Title,
		Description: order.Description,
		Status:      order.Status,
		MaterialID:  order.MaterialID,
		ColorID:     order.ColorID,
		Quantity:    order.Quantity,
		Budget:      order.Budget,
		Deadline:    order.Deadline,
		CompletedAt: order.CompletedAt,
		CreatedAt:   order.CreatedAt,
	}

	if cluster, err := h.Repository.GetOrderCluster(order.ID); err == nil {
		response.ClusterID = &cluster.ID
	}

	if withFiles {
		files, err := h.Repository.GetOrderFiles(order.ID)
		if err == nil {
			response.Files = make([]dto.OrderFileResponse, len(files))
			for i := range files {
				response.Files[i] = h.fileToResponse(&files[i])
			}
		}
	}

	return response
}

// GetOrders получает заказы пользователя
// @Summary Получение списка заказов
// @Description Свои заказы, incoming=true переключает на заказы в кластерах пользователя
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param status query string false "Статус заказа"
// @Param incoming query bool false "Заказы в моих кластерах"
// @Success 200 {object} dto.OrderListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/orders [get]
func (h *APIHandler) GetOrders(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Пользователь не авторизован")
		return
	}

	filter := repository.OrderFilter{}
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if c.Query("incoming") == "true" {
		filter.ClusterOwner = &userID
	} else {
		filter.UserID = &userID
	}

	orders, err := h.Repository.GetOrders(filter)
	if err != nil {
		logrus.Error("Error getting orders: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения заказов")
		return
	}

	dtoOrders := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		dtoOrders[i] = h.orderToResponse(&orders[i], false)
	}

	c.JSON(http.StatusOK, dto.OrderListResponse{
		Orders: dtoOrders,
		Total:  len(dtoOrders),
	})
}

// canViewOrder - заказ видят заказчик и владелец кластера-исполнителя
func (h *APIHandler) canViewOrder(order *ds.Order, userID uint) bool {
	if order.UserID == userID {
		return true
	}
	cluster, err := h.Repository.GetOrderCluster(order.ID)
	if err != nil {
		return false
	}
	return cluster.UserID == userID
}

// GetOrder получает один заказ с файлами
// @Summary Получение заказа
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.OrderResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id} [get]
func (h *APIHandler) GetOrder(c *gin.Context) {
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

	order, err := h.Repository.GetOrderByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Заказ не найден")
		return
	}
	if !h.canViewOrder(order, userID) {
		h.errorResponse(c, http.StatusForbidden, "Нет доступа к заказу")
		return
	}

	c.JSON(http.StatusOK, h.orderToResponse(order, true))
}

// CreateOrder создаёт черновик заказа.
// cluster_id сразу привязывает черновик к кластеру-исполнителю,
// отправка в любом случае идёт через submit.
// @Summary Создание заказа
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOrderRequest true "Данные заказа"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/orders [post]
func (h *APIHandler) CreateOrder(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Пользователь не авторизован")
		return
	}

	var request dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	order := ds.Order{
		UserID:      userID,
		Title:       request.Title,
		Description: request.Description,
		MaterialID:  request.MaterialID,
		ColorID:     request.ColorID,
		Quantity:    request.Quantity,
		Budget:      request.Budget,
		Deadline:    request.Deadline,
	}
	if order.Quantity == 0 {
		order.Quantity = 1
	}

	if request.ClusterID == nil {
		if err := h.Repository.CreateDraftOrder(&order); err != nil {
			logrus.Error("Error creating order: ", err)
			h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания заказа")
			return
		}
	} else {
		err := h.Repository.CreateOrderWithCluster(&order, *request.ClusterID)
		switch {
		case err == nil:
		case errors.Is(err, repository.ErrOwnCluster),
			errors.Is(err, repository.ErrMaterialNotAvailable),
			errors.Is(err, repository.ErrColorNotAvailable):
			h.errorResponse(c, http.StatusBadRequest, err.Error())
			return
		case h.Repository.IsNotFound(err):
			h.errorResponse(c, http.StatusNotFound, "Кластер не найден")
			return
		default:
			logrus.Error("Error creating order with cluster: ", err)
			h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания заказа")
			return
		}

		h.Publisher.Publish(c.Request.Context(), "order.created", queue.Event{
			Type:      "order.created",
			OrderID:   order.ID,
			ClusterID: *request.ClusterID,
			UserID:    userID,
		})
	}

	c.JSON(http.StatusCreated, h.orderToResponse(&order, false))
}

// getOwnOrder возвращает заказ, если он принадлежит пользователю
func (h *APIHandler) getOwnOrder(c *gin.Context) (*ds.Order, bool) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Пользователь не авторизован")
		return nil, false
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return nil, false
	}

	order, err := h.Repository.GetOrderByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Заказ не найден")
		return nil, false
	}
	if order.UserID != userID {
		h.errorResponse(c, http.StatusForbidden, "Заказ принадлежит другому пользователю")
		return nil, false
	}
	return order, true
}

// UpdateOrder правит поля черновика
// @Summary Изменение заказа
// @Description Редактировать можно только черновик
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Param request body dto.UpdateOrderRequest true "Изменяемые поля"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/orders/{id} [put]
func (h *APIHandler) UpdateOrder(c *gin.Context) {
	order, ok := h.getOwnOrder(c)
	if !ok {
		return
	}

	var request dto.UpdateOrderRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	patch := repository.OrderPatch{
		Title:       request.Title,
		Description: request.Description,
		MaterialID:  request.MaterialID,
		ColorID:     request.ColorID,
		Quantity:    request.Quantity,
		Budget:      request.Budget,
		Deadline:    request.Deadline,
	}
	if err := h.Repository.UpdateOrder(order.ID, patch); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.Repository.GetOrderByID(order.ID)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения заказа")
		return
	}
	c.JSON(http.StatusOK, h.orderToResponse(updated, false))
}

// SubmitOrder отправляет черновик, единственный путь в pending
// @Summary Отправка черновика
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/orders/{id}/submit [put]
func (h *APIHandler) SubmitOrder(c *gin.Context) {
	order, ok := h.getOwnOrder(c)
	if !ok {
		return
	}

	if err := h.Repository.SubmitDraftOrder(order.ID); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.Publisher.Publish(c.Request.Context(), "order.submitted", queue.Event{
		Type:    "order.submitted",
		OrderID: order.ID,
		UserID:  order.UserID,
	})

	h.successResponse(c, http.StatusOK, "заказ отправлен", nil)
}

// UpdateOrderStatus меняет статус заказа.
// Допускаются произвольные переходы между нетерминальными статусами,
// завершение фиксирует completed_at.
// @Summary Смена статуса заказа
// @Tags Orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Param request body dto.UpdateOrderStatusRequest true "Новый статус"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/orders/{id}/status [put]
func (h *APIHandler) UpdateOrderStatus(c *gin.Context) {
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

	var request dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}
	if !repository.IsValidOrderStatus(request.Status) {
		h.errorResponse(c, http.StatusBadRequest, "Неизвестный статус: "+request.Status)
		return
	}
	// draft -> pending идёт только через submit
	if request.Status == ds.OrderStatusPending {
		h.errorResponse(c, http.StatusBadRequest, "Черновик отправляется через /submit")
		return
	}
	// Архивирует заказ только его владелец через удаление
	if request.Status == ds.OrderStatusArchived {
		h.errorResponse(c, http.StatusBadRequest, "Заказ архивируется через удаление")
		return
	}

	order, err := h.Repository.GetOrderByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Заказ не найден")
		return
	}
	if !h.canViewOrder(order, userID) {
		h.errorResponse(c, http.StatusForbidden, "Нет доступа к заказу")
		return
	}

	if err := h.Repository.UpdateOrderStatus(id, request.Status); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	// Владелец связанного кластера узнаёт о любой смене статуса,
	// если менял не он сам. Сбой уведомления операцию не ломает.
	if cluster, err := h.Repository.GetOrderCluster(order.ID); err == nil && cluster.UserID != userID {
		notification := ds.Notification{
			UserID:    cluster.UserID,
			Type:      ds.NotificationOrderStatusChanged,
			Title:     "Статус заказа изменён",
			Text:      "Заказ «" + order.Title + "» переведён в статус " + request.Status,
			OrderID:   &order.ID,
			ClusterID: &cluster.ID,
		}
		if request.Status == ds.OrderStatusCompleted {
			notification.Type = ds.NotificationOrderCompleted
			notification.Title = "Заказ выполнен"
		}
		if err := h.Repository.CreateNotification(&notification); err != nil {
			logrus.Error("Error creating notification: ", err)
		}
	}

	if request.Status == ds.OrderStatusCompleted {
		h.Publisher.Publish(c.Request.Context(), "order.completed", queue.Event{
			Type:    "order.completed",
			OrderID: order.ID,
			UserID:  order.UserID,
		})
	}

	h.successResponse(c, http.StatusOK, "статус заказа обновлён", nil)
}

// DeleteOrder архивирует заказ владельца
// @Summary Удаление заказа
// @Description Логическое удаление, заказ переводится в archived
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id} [delete]
func (h *APIHandler) DeleteOrder(c *gin.Context) {
	order, ok := h.getOwnOrder(c)
	if !ok {
		return
	}

	if err := h.Repository.ArchiveOrder(order.ID); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "заказ удалён", nil)
}
