package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/repository"
)

// ============ ДОМЕН ПРИНТЕРЫ ============

func (h *APIHandler) printerToResponse(printer *ds.Printer) dto.PrinterResponse {
	response := dto.PrinterResponse{
		ID:           printer.ID,
		UserID:       printer.UserID,
		ModelName:    printer.ModelName,
		Manufacturer: printer.Manufacturer,
		PricePerHour: printer.PricePerHour,
		Description:  printer.Description,
		Quantity:     printer.Quantity,
		MaxSizeX:     printer.MaxSizeX,
		MaxSizeY:     printer.MaxSizeY,
		MaxSizeZ:     printer.MaxSizeZ,
		State:        printer.State,
		ClusterID:    printer.ClusterID,
	}

	materialIDs, err := h.Repository.GetPrinterMaterialIDs(printer.ID)
	if err == nil {
		response.MaterialIDs = materialIDs
	}
	colorIDs, err := h.Repository.GetPrinterColorIDs(printer.ID)
	if err == nil {
		response.ColorIDs = colorIDs
	}

	return response
}

// GetPrinters получает список принтеров
// @Summary Получение списка принтеров
// @Description Возвращает принтеры с фильтрацией по владельцу, состоянию, материалу и цвету
// @Tags Printers
// @Produce json
// @Param state query string false "Состояние принтера"
// @Param material_id query int false "ID материала"
// @Param color_id query int false "ID цвета"
// @Param mine query bool false "Только свои принтеры"
// @Security BearerAuth
// @Success 200 {object} dto.PrinterListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/printers [get]
func (h *APIHandler) GetPrinters(c *gin.Context) {
	filter := repository.PrinterFilter{}

	if state := c.Query("state"); state != "" {
		filter.State = &state
	}

	materialID, err := parseUintQuery(c, "material_id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	filter.MaterialID = materialID

	colorID, err := parseUintQuery(c, "color_id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	filter.ColorID = colorID

	if c.Query("mine") == "true" {
		userID, _, err := h.getUserFromContext(c)
		if err != nil {
			h.errorResponse(c, http.StatusUnauthorized, "Пользователь не авторизован")
			return
		}
		filter.UserID = &userID
	}

	printers, err := h.Repository.GetPrinters(filter)
	if err != nil {
		logrus.Error("Error getting printers: ", err)
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

// GetPrinter получает один принтер
// @Summary Получение принтера
// @Tags Printers
// @Produce json
// @Param id path int true "ID принтера"
// @Success 200 {object} dto.PrinterResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/printers/{id} [get]
func (h *APIHandler) GetPrinter(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	printer, err := h.Repository.GetPrinterByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Принтер не найден")
		return
	}

	c.JSON(http.StatusOK, h.printerToResponse(printer))
}

// CreatePrinter создаёт принтер
// @Summary Создание принтера
// @Tags Printers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePrinterRequest true "Данные принтера"
// @Success 201 {object} dto.PrinterResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/printers [post]
func (h *APIHandler) CreatePrinter(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Пользователь не авторизован")
		return
	}

	var request dto.CreatePrinterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	printer := ds.Printer{
		UserID:       userID,
		ModelName:    request.ModelName,
		Manufacturer: request.Manufacturer,
		PricePerHour: request.PricePerHour,
		Description:  request.Description,
		Quantity:     request.Quantity,
		MaxSizeX:     request.MaxSizeX,
		MaxSizeY:     request.MaxSizeY,
		MaxSizeZ:     request.MaxSizeZ,
		State:        ds.PrinterStateAvailable,
	}
	if printer.Quantity == 0 {
		printer.Quantity = 1
	}

	if err := h.Repository.CreatePrinter(&printer); err != nil {
		logrus.Error("Error creating printer: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания принтера")
		return
	}

	if len(request.MaterialIDs) > 0 {
		if err := h.Repository.SetPrinterMaterials(printer.ID, request.MaterialIDs); err != nil {
			logrus.Error("Error setting printer materials: ", err)
		}
	}
	if len(request.ColorIDs) > 0 {
		if err := h.Repository.SetPrinterColors(printer.ID, request.ColorIDs); err != nil {
			logrus.Error("Error setting printer colors: ", err)
		}
	}

	c.JSON(http.StatusCreated, h.printerToResponse(&printer))
}

// getOwnPrinter возвращает принтер, если он принадлежит пользователю
func (h *APIHandler) getOwnPrinter(c *gin.Context) (*ds.Printer, bool) {
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

	printer, err := h.Repository.GetPrinterByID(id)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Принтер не найден")
		return nil, false
	}
	if printer.UserID != userID {
		h.errorResponse(c, http.StatusForbidden, "Принтер принадлежит другому пользователю")
		return nil, false
	}
	return printer, true
}

// UpdatePrinter частично обновляет принтер владельца
// @Summary Изменение принтера
// @Tags Printers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID принтера"
// @Param request body dto.UpdatePrinterRequest true "Изменяемые поля"
// @Success 200 {object} dto.PrinterResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/printers/{id} [put]
func (h *APIHandler) UpdatePrinter(c *gin.Context) {
	printer, ok := h.getOwnPrinter(c)
	if !ok {
		return
	}

	var request dto.UpdatePrinterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	patch := repository.PrinterPatch{
		ModelName:    request.ModelName,
		Manufacturer: request.Manufacturer,
		PricePerHour: request.PricePerHour,
		Description:  request.Description,
		Quantity:     request.Quantity,
		MaxSizeX:     request.MaxSizeX,
		MaxSizeY:     request.MaxSizeY,
		MaxSizeZ:     request.MaxSizeZ,
	}

	if err := h.Repository.UpdatePrinter(printer.ID, patch); err != nil {
		logrus.Error("Error updating printer: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления принтера")
		return
	}

	if request.MaterialIDs != nil {
		if err := h.Repository.SetPrinterMaterials(printer.ID, request.MaterialIDs); err != nil {
			logrus.Error("Error setting printer materials: ", err)
		}
	}
	if request.ColorIDs != nil {
		if err := h.Repository.SetPrinterColors(printer.ID, request.ColorIDs); err != nil {
			logrus.Error("Error setting printer colors: ", err)
		}
	}

	updated, err := h.Repository.GetPrinterByID(printer.ID)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения принтера")
		return
	}
	c.JSON(http.StatusOK, h.printerToResponse(updated))
}

// UpdatePrinterState меняет состояние принтера.
// После перевода из available активный кластер может погаснуть.
// @Summary Смена состояния принтера
// @Tags Printers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID принтера"
// @Param request body dto.UpdatePrinterStateRequest true "Новое состояние"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/printers/{id}/state [put]
func (h *APIHandler) UpdatePrinterState(c *gin.Context) {
	printer, ok := h.getOwnPrinter(c)
	if !ok {
		return
	}

	var request dto.UpdatePrinterStateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	if err := h.Repository.UpdatePrinterState(printer.ID, request.State); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	// Кластер без доступных принтеров деактивируется
	if printer.ClusterID != nil && request.State != ds.PrinterStateAvailable {
		if err := h.Repository.DeactivateClusterIfNoAvailablePrinters(*printer.ClusterID); err != nil {
			logrus.Error("Error deactivating cluster: ", err)
		}
	}

	h.successResponse(c, http.StatusOK, "состояние принтера обновлено", nil)
}

// DeletePrinter архивирует принтер владельца
// @Summary Удаление принтера
// @Description Логическое удаление, принтер переводится в archived
// @Tags Printers
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID принтера"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/printers/{id} [delete]
func (h *APIHandler) DeletePrinter(c *gin.Context) {
	printer, ok := h.getOwnPrinter(c)
	if !ok {
		return
	}

	// Привязанный принтер сначала отвязываем от кластера
	if printer.ClusterID != nil {
		clusterID := *printer.ClusterID
		if err := h.Repository.DetachPrinter(clusterID, printer.ID); err != nil {
			logrus.Error("Error detaching printer: ", err)
		} else if err := h.Repository.DeactivateClusterIfNoAvailablePrinters(clusterID); err != nil {
			logrus.Error("Error deactivating cluster: ", err)
		}
	}

	if err := h.Repository.ArchivePrinter(printer.ID); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "принтер удалён", nil)
}
