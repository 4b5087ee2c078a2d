package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/repository"
)

// ============ ЗАПРОСЫ НА ПОДКЛЮЧЕНИЕ ПРИНТЕРОВ ============

func requestToResponse(request *ds.ClusterPrinterRequest) dto.PrinterRequestResponse {
	return dto.PrinterRequestResponse{
		ID:             request.ID,
		ClusterID:      request.ClusterID,
		PrinterID:      request.PrinterID,
		RequestedBy:    request.RequestedBy,
		PrinterOwnerID: request.PrinterOwnerID,
		Status:         request.Status,
		Message:        request.Message,
		CreatedAt:      request.CreatedAt,
	}
}

// notifyRequestEvent создаёт уведомление best-effort
func (h *APIHandler) notifyRequestEvent(userID uint, notifType, title string, request *ds.ClusterPrinterRequest) {
	notification := ds.Notification{
		UserID:    userID,
		Type:      notifType,
		Title:     title,
		ClusterID: &request.ClusterID,
	}
	if err := h.Repository.CreateNotification(&notification); err != nil {
		logrus.Error("Error creating notification: ", err)
	}
}

// CreatePrinterRequest создаёт запрос на подключение чужого принтера
// @Summary Запрос на подключение принтера
// @Description Владелец кластера запрашивает подключение принтера другого пользователя
// @Tags PrinterRequests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID кластера"
// @Param request body dto.CreatePrinterRequestRequest true "Принтер и сообщение"
// @Success 201 {object} dto.PrinterRequestResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/clusters/{id}/printer-requests [post]
func (h *APIHandler) CreatePrinterRequest(c *gin.Context) {
	cluster, ok := h.getOwnCluster(c)
	if !ok {
		return
	}

	var body dto.CreatePrinterRequestRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	printer, err := h.Repository.GetPrinterByID(body.PrinterID)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Принтер не найден")
		return
	}
	if printer.UserID == cluster.UserID {
		h.errorResponse(c, http.StatusBadRequest, "Свой принтер привязывается без запроса")
		return
	}

	request, err := h.Repository.CreatePrinterRequest(cluster.ID, printer.ID, cluster.UserID, printer.UserID, body.Message)
	if err != nil {
		if errors.Is(err, repository.ErrRequestAlreadyPending) || errors.Is(err, repository.ErrPrinterAlreadyInUse) {
			h.errorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		logrus.Error("Error creating printer request: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания запроса")
		return
	}

	h.notifyRequestEvent(printer.UserID, ds.NotificationRequestCreated, "Новый запрос на подключение принтера", request)

	c.JSON(http.StatusCreated, requestToResponse(request))
}

// GetIncomingRequests входящие запросы на принтеры пользователя
// @Summary Входящие запросы
// @Tags PrinterRequests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PrinterRequestListResponse
// @Router /api/printer-requests/incoming [get]
func (h *APIHandler) GetIncomingRequests(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Пользователь не авторизован")
		return
	}

	requests, err := h.Repository.GetIncomingRequests(userID)
	if err != nil {
		logrus.Error("Error getting incoming requests: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения запросов")
		return
	}

	h.sendRequestList(c, requests)
}

// GetOutgoingRequests исходящие запросы пользователя
// @Summary Исходящие запросы
// @Tags PrinterRequests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PrinterRequestListResponse
// @Router /api/printer-requests/outgoing [get]
func (h *APIHandler) GetOutgoingRequests(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Пользователь не авторизован")
		return
	}

	requests, err := h.Repository.GetOutgoingRequests(userID)
	if err != nil {
		logrus.Error("Error getting outgoing requests: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения запросов")
		return
	}

	h.sendRequestList(c, requests)
}

func (h *APIHandler) sendRequestList(c *gin.Context, requests []ds.ClusterPrinterRequest) {
	dtoRequests := make([]dto.PrinterRequestResponse, len(requests))
	for i := range requests {
		dtoRequests[i] = requestToResponse(&requests[i])
	}
	c.JSON(http.StatusOK, dto.PrinterRequestListResponse{
		Requests: dtoRequests,
		Total:    len(dtoRequests),
	})
}

// ApprovePrinterRequest одобряет запрос, принтер привязывается к кластеру
// @Summary Одобрение запроса
// @Description Одобрить может только владелец принтера, повторное одобрение не проходит
// @Tags PrinterRequests
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID запроса"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/printer-requests/{id}/approve [put]
func (h *APIHandler) ApprovePrinterRequest(c *gin.Context) {
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

	request, err := h.Repository.GetPrinterRequestByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Запрос не найден")
		return
	}
	if request.PrinterOwnerID != userID {
		h.errorResponse(c, http.StatusForbidden, "Одобрить запрос может только владелец принтера")
		return
	}

	if err := h.Repository.ApprovePrinterRequest(id); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.notifyRequestEvent(request.RequestedBy, ds.NotificationRequestApproved, "Запрос на подключение принтера одобрен", request)

	h.successResponse(c, http.StatusOK, "запрос одобрен, принтер привязан", nil)
}

// RejectPrinterRequest отклоняет запрос
// @Summary Отклонение запроса
// @Tags PrinterRequests
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID запроса"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/printer-requests/{id}/reject [put]
func (h *APIHandler) RejectPrinterRequest(c *gin.Context) {
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

	request, err := h.Repository.GetPrinterRequestByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Запрос не найден")
		return
	}
	if request.PrinterOwnerID != userID {
		h.errorResponse(c, http.StatusForbidden, "Отклонить запрос может только владелец принтера")
		return
	}

	if err := h.Repository.RejectPrinterRequest(id); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.notifyRequestEvent(request.RequestedBy, ds.NotificationRequestRejected, "Запрос на подключение принтера отклонён", request)

	h.successResponse(c, http.StatusOK, "запрос отклонён", nil)
}

// CancelPrinterRequest отменяет собственный запрос
// @Summary Отмена запроса
// @Tags PrinterRequests
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID запроса"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/printer-requests/{id}/cancel [put]
func (h *APIHandler) CancelPrinterRequest(c *gin.Context) {
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

	request, err := h.Repository.GetPrinterRequestByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Запрос не найден")
		return
	}
	if request.RequestedBy != userID {
		h.errorResponse(c, http.StatusForbidden, "Отменить запрос может только его автор")
		return
	}

	if err := h.Repository.CancelPrinterRequest(id); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "запрос отменён", nil)
}
