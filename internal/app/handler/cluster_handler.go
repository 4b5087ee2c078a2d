package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/repository"
)

// ============ ДОМЕН КЛАСТЕРЫ ============

func (h *APIHandler) clusterToResponse(cluster *ds.Cluster) dto.ClusterResponse {
	response := dto.ClusterResponse{
		ID:              cluster.ID,
		UserID:          cluster.UserID,
		Name:            cluster.Name,
		Description:     cluster.Description,
		RegionID:        cluster.RegionID,
		CityID:          cluster.CityID,
		MetroID:         cluster.MetroID,
		ParentClusterID: cluster.ParentClusterID,
		State:           cluster.State,
	}

	if count, err := h.Repository.CountClusterPrinters(cluster.ID); err == nil {
		response.PrintersCount = count
	}
	if count, err := h.Repository.CountAvailableClusterPrinters(cluster.ID); err == nil {
		response.AvailablePrinters = count
	}
	if ids, err := h.Repository.GetClusterDeliveryMethodIDs(cluster.ID); err == nil {
		response.DeliveryMethodIDs = ids
	}

	return response
}

// GetClusters получает список кластеров
// @Summary Получение списка кластеров
// @Description Возвращает кластеры с фильтрацией по локации, состоянию, материалу и цвету
// @Tags Clusters
// @Produce json
// @Param state query string false "Состояние кластера"
// @Param region_id query int false "ID региона"
// @Param city_id query int false "ID города"
// @Param metro_id query int false "ID станции метро"
// @Param material_id query int false "ID материала"
// @Param color_id query int false "ID цвета"
// @Success 200 {object} dto.ClusterListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/clusters [get]
func (h *APIHandler) GetClusters(c *gin.Context) {
	filter := repository.ClusterFilter{}

	if state := c.Query("state"); state != "" {
		filter.State = &state
	}
	for name, dst := range map[string]**uint{
		"region_id":   &filter.RegionID,
		"city_id":     &filter.CityID,
		"metro_id":    &filter.MetroID,
		"material_id": &filter.MaterialID,
		"color_id":    &filter.ColorID,
	} {
		val, err := parseUintQuery(c, name)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, err.Error())
			return
		}
		*dst = val
	}

	if c.Query("mine") == "true" {
		userID, _, err := h.getUserFromContext(c)
		if err != nil {
			h.errorResponse(c, http.StatusUnauthorized, "Пользователь не авторизован")
			return
		}
		filter.UserID = &userID
	}

	clusters, err := h.Repository.GetClusters(filter)
	if err != nil {
		logrus.Error("Error getting clusters: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения кластеров")
		return
	}

	dtoClusters := make([]dto.ClusterResponse, len(clusters))
	for i := range clusters {
		dtoClusters[i] = h.clusterToResponse(&clusters[i])
	}

	c.JSON(http.StatusOK, dto.ClusterListResponse{
		Clusters: dtoClusters,
		Total:    len(dtoClusters),
	})
}

// GetCluster получает один кластер
// @Summary Получение кластера
// @Tags Clusters
// @Produce json
// @Param id path int true "ID кластера"
// @Success 200 {object} dto.ClusterResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/clusters/{id} [get]
func (h *APIHandler) GetCluster(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cluster, err := h.Repository.GetClusterByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Кластер не найден")
		return
	}

	c.JSON(http.StatusOK, h.clusterToResponse(cluster))
}

// CreateCluster создаёт кластер в состоянии draft
// @Summary Создание кластера
// @Description Новый кластер создаётся черновиком, локация проверяется по справочникам
// @Tags Clusters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClusterRequest true "Данные кластера"
// @Success 201 {object} dto.ClusterResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/clusters [post]
func (h *APIHandler) CreateCluster(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Пользователь не авторизован")
		return
	}

	var request dto.CreateClusterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	// Цепочка регион -> город -> метро должна быть согласована
	if err := h.Repository.ValidateLocationHierarchy(request.RegionID, request.CityID, request.MetroID); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверная локация: "+err.Error())
		return
	}

	if request.ParentClusterID != nil {
		parent, err := h.Repository.GetClusterByID(*request.ParentClusterID)
		if err != nil {
			h.errorResponse(c, http.StatusBadRequest, "Родительский кластер не найден")
			return
		}
		if parent.UserID != userID {
			h.errorResponse(c, http.StatusForbidden, "Родительский кластер принадлежит другому пользователю")
			return
		}
	}

	cluster := ds.Cluster{
		UserID:          userID,
		Name:            request.Name,
		Description:     request.Description,
		RegionID:        request.RegionID,
		CityID:          request.CityID,
		MetroID:         request.MetroID,
		ParentClusterID: request.ParentClusterID,
		State:           ds.ClusterStateDraft,
	}

	if err := h.Repository.CreateCluster(&cluster); err != nil {
		logrus.Error("Error creating cluster: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания кластера")
		return
	}

	if len(request.DeliveryMethodIDs) > 0 {
		if err := h.Repository.SetClusterDeliveryMethods(cluster.ID, request.DeliveryMethodIDs); err != nil {
			logrus.Error("Error setting delivery methods: ", err)
		}
	}

	c.JSON(http.StatusCreated, h.clusterToResponse(&cluster))
}

// getOwnCluster возвращает кластер, если он принадлежит пользователю
func (h *APIHandler) getOwnCluster(c *gin.Context) (*ds.Cluster, bool) {
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

	cluster, err := h.Repository.GetClusterByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Кластер не найден")
		return nil, false
	}
	if cluster.UserID != userID {
		h.errorResponse(c, http.StatusForbidden, "Кластер принадлежит другому пользователю")
		return nil, false
	}
	return cluster, true
}

// UpdateCluster частично обновляет кластер владельца
// @Summary Изменение кластера
// @Tags Clusters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID кластера"
// @Param request body dto.UpdateClusterRequest true "Изменяемые поля"
// @Success 200 {object} dto.ClusterResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/clusters/{id} [put]
func (h *APIHandler) UpdateCluster(c *gin.Context) {
	cluster, ok := h.getOwnCluster(c)
	if !ok {
		return
	}

	var request dto.UpdateClusterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	// При смене любой части локации проверяем итоговую цепочку
	if request.RegionID != nil || request.CityID != nil || request.MetroID != nil {
		regionID := cluster.RegionID
		cityID := cluster.CityID
		metroID := cluster.MetroID
		if request.RegionID != nil {
			regionID = *request.RegionID
		}
		if request.CityID != nil {
			cityID = *request.CityID
		}
		if request.MetroID != nil {
			metroID = request.MetroID
		}
		if err := h.Repository.ValidateLocationHierarchy(regionID, cityID, metroID); err != nil {
			h.errorResponse(c, http.StatusBadRequest, "Неверная локация: "+err.Error())
			return
		}
	}

	patch := repository.ClusterPatch{
		Name:        request.Name,
		Description: request.Description,
		RegionID:    request.RegionID,
		CityID:      request.CityID,
		MetroID:     request.MetroID,
	}
	if err := h.Repository.UpdateCluster(cluster.ID, patch); err != nil {
		logrus.Error("Error updating cluster: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления кластера")
		return
	}

	if request.DeliveryMethodIDs != nil {
		if err := h.Repository.SetClusterDeliveryMethods(cluster.ID, request.DeliveryMethodIDs); err != nil {
			logrus.Error("Error setting delivery methods: ", err)
		}
	}

	updated, err := h.Repository.GetClusterByID(cluster.ID)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения кластера")
		return
	}
	c.JSON(http.StatusOK, h.clusterToResponse(updated))
}

// ActivateCluster активирует кластер владельца
// @Summary Активация кластера
// @Description Кластер без принтеров активировать нельзя
// @Tags Clusters
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID кластера"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/clusters/{id}/activate [put]
func (h *APIHandler) ActivateCluster(c *gin.Context) {
	cluster, ok := h.getOwnCluster(c)
	if !ok {
		return
	}

	if err := h.Repository.ActivateCluster(cluster.ID); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "кластер активирован", nil)
}

// DeactivateCluster переводит кластер владельца в inactive
// @Summary Деактивация кластера
// @Tags Clusters
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID кластера"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/clusters/{id}/deactivate [put]
func (h *APIHandler) DeactivateCluster(c *gin.Context) {
	cluster, ok := h.getOwnCluster(c)
	if !ok {
		return
	}

	if err := h.Repository.DeactivateCluster(cluster.ID); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "кластер деактивирован", nil)
}

// DeleteCluster архивирует кластер владельца
// @Summary Удаление кластера
// @Description Логическое удаление, кластер переводится в archived
// @Tags Clusters
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID кластера"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/clusters/{id} [delete]
func (h *APIHandler) DeleteCluster(c *gin.Context) {
	cluster, ok := h.getOwnCluster(c)
	if !ok {
		return
	}

	// Отвязываем все принтеры перед архивацией
	printers, err := h.Repository.GetClusterPrinters(cluster.ID)
	if err == nil {
		for _, printer := range printers {
			if err := h.Repository.DetachPrinter(cluster.ID, printer.ID); err != nil {
				logrus.Error("Error detaching printer: ", err)
			}
		}
	}

	if err := h.Repository.ArchiveCluster(cluster.ID); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "кластер удалён", nil)
}

// GetClusterPrinters принтеры кластера
// @Summary Принтеры кластера
// @Tags Clusters
// @Produce json
// @Param id path int true "ID кластера"
// @Success 200 {object} dto.PrinterListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/clusters/{id}/printers [get]
func (h *APIHandler) GetClusterPrinters(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.Repository.GetClusterByID(id); err != nil {
		h.errorResponse(c, http.StatusNotFound, "Кластер не найден")
		return
	}

	printers, err := h.Repository.GetClusterPrinters(id)
	if err != nil {
		logrus.Error("Error getting cluster printers: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения принтеров")
		return
	}

	dtoPrinters := make([]dto.PrinterResponse, len(printers))
	for i := range printers {
		dtoPrinters[i] = h.printerToResponse(&printers[i])
	}

	c.JSON(http.StatusOK, dto.PrinterListResponse{
		Printers: dtoPrinters,
		Total:    len(dtoPrinters),
	})
}

// GetClusterOrders заказы, привязанные к кластеру (владелец)
// @Summary Заказы кластера
// @Tags Clusters
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID кластера"
// @Success 200 {object} dto.OrderListResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/clusters/{id}/orders [get]
func (h *APIHandler) GetClusterOrders(c *gin.Context) {
	cluster, ok := h.getOwnCluster(c)
	if !ok {
		return
	}

	orders, err := h.Repository.GetOrders(repository.OrderFilter{ClusterID: &cluster.ID})
	if err != nil {
		logrus.Error("Error getting cluster orders: ", err)
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

// AttachPrinterToCluster привязывает принтер к кластеру
// @Summary Привязка принтера к кластеру
// @Description Доступно владельцу кластера и владельцу принтера
// @Tags Clusters
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID кластера"
// @Param request body dto.AttachPrinterRequest true "ID принтера"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/clusters/{id}/printers [post]
func (h *APIHandler) AttachPrinterToCluster(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Пользователь не авторизован")
		return
	}

	clusterID, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var request dto.AttachPrinterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	cluster, err := h.Repository.GetClusterByID(clusterID)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Кластер не найден")
		return
	}
	printer, err := h.Repository.GetPrinterByID(request.PrinterID)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Принтер не найден")
		return
	}

	if cluster.UserID != userID && printer.UserID != userID {
		h.errorResponse(c, http.StatusForbidden, "Привязать может владелец кластера или принтера")
		return
	}

	if err := h.Repository.AttachPrinter(cluster.ID, printer.ID, userID); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "принтер привязан к кластеру", nil)
}

// DetachPrinterFromCluster отвязывает принтер от кластера
// @Summary Отвязка принтера от кластера
// @Description Доступно владельцу кластера и владельцу принтера
// @Tags Clusters
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID кластера"
// @Param printer_id path int true "ID принтера"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/clusters/{id}/printers/{printer_id} [delete]
func (h *APIHandler) DetachPrinterFromCluster(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Пользователь не авторизован")
		return
	}

	clusterID, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	printerID, err := parseIDParam(c, "printer_id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	cluster, err := h.Repository.GetClusterByID(clusterID)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Кластер не найден")
		return
	}
	printer, err := h.Repository.GetPrinterByID(printerID)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Принтер не найден")
		return
	}

	if cluster.UserID != userID && printer.UserID != userID {
		h.errorResponse(c, http.StatusForbidden, "Отвязать может владелец кластера или принтера")
		return
	}

	if err := h.Repository.DetachPrinter(clusterID, printerID); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	// Без доступных принтеров активный кластер гаснет
	if err := h.Repository.DeactivateClusterIfNoAvailablePrinters(clusterID); err != nil {
		logrus.Error("Error deactivating cluster: ", err)
	}

	h.successResponse(c, http.StatusOK, "принтер отвязан от кластера", nil)
}
