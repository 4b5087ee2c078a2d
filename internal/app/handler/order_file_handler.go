package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/storage"
)

// ============ ФАЙЛЫ ЗАКАЗА ============

func (h *APIHandler) fileToResponse(file *ds.OrderFile) dto.OrderFileResponse {
	return dto.OrderFileResponse{
		ID:           file.ID,
		OrderID:      file.OrderID,
		FileName:     file.FileName,
		OriginalName: file.OriginalName,
		MimeType:     file.MimeType,
		Size:         file.Size,
		URL:          "/uploads/" + file.FileName,
		CreatedAt:    file.CreatedAt,
	}
}

// UploadOrderFile загружает файл модели к черновику заказа
// @Summary Загрузка файла модели
// @Description Принимает .stl, .obj и .3mf до 50 МБ, не больше 10 файлов на заказ
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Param file formData file true "Файл модели"
// @Success 201 {object} dto.OrderFileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/orders/{id}/files [post]
func (h *APIHandler) UploadOrderFile(c *gin.Context) {
	order, ok := h.getOwnOrder(c)
	if !ok {
		return
	}

	// Файлы добавляются только к черновику
	if order.Status != ds.OrderStatusDraft {
		h.errorResponse(c, http.StatusBadRequest, "Файлы можно загружать только в черновик")
		return
	}

	count, err := h.Repository.CountOrderFiles(order.ID)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка проверки файлов")
		return
	}
	if count >= int64(h.Config.Upload.MaxFileCount) {
		h.errorResponse(c, http.StatusBadRequest,
			fmt.Sprintf("Превышен лимит файлов на заказ (%d)", h.Config.Upload.MaxFileCount))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Файл не передан")
		return
	}

	if !storage.IsAllowedModelFile(fileHeader.Filename) {
		h.errorResponse(c, http.StatusBadRequest, "Допустимы только файлы .stl, .obj и .3mf")
		return
	}
	if fileHeader.Size > h.Config.Upload.MaxFileSize {
		h.errorResponse(c, http.StatusBadRequest, "Файл больше 50 МБ")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения файла")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения файла")
		return
	}

	filename, err := h.MinIOClient.UploadFile(data, fileHeader.Filename)
	if err != nil {
		logrus.Error("Error uploading file: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка загрузки файла")
		return
	}

	file := ds.OrderFile{
		OrderID:      order.ID,
		FileName:     filename,
		OriginalName: fileHeader.Filename,
		MimeType:     fileHeader.Header.Get("Content-Type"),
		Size:         fileHeader.Size,
		UploadedBy:   order.UserID,
	}
	if err := h.Repository.AddOrderFile(&file); err != nil {
		logrus.Error("Error saving file record: ", err)
		// Запись не сохранилась - убираем объект из хранилища
		if delErr := h.MinIOClient.DeleteFile(filename); delErr != nil {
			logrus.Error("Error deleting orphan file: ", delErr)
		}
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка сохранения файла")
		return
	}

	c.JSON(http.StatusCreated, h.fileToResponse(&file))
}

// GetOrderFiles список файлов заказа
// @Summary Файлы заказа
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/orders/{id}/files [get]
func (h *APIHandler) GetOrderFiles(c *gin.Context) {
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

	files, err := h.Repository.GetOrderFiles(order.ID)
	if err != nil {
		logrus.Error("Error getting files: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения файлов")
		return
	}

	dtoFiles := make([]dto.OrderFileResponse, len(files))
	for i := range files {
		dtoFiles[i] = h.fileToResponse(&files[i])
	}
	h.successResponse(c, http.StatusOK, "", dtoFiles)
}

// DeleteOrderFile удаляет файл черновика
// @Summary Удаление файла
// @Description Удалять файлы можно только пока заказ в черновике
// @Tags Files
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Param file_id path int true "ID файла"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/orders/{id}/files/{file_id} [delete]
func (h *APIHandler) DeleteOrderFile(c *gin.Context) {
	order, ok := h.getOwnOrder(c)
	if !ok {
		return
	}

	if order.Status != ds.OrderStatusDraft {
		h.errorResponse(c, http.StatusBadRequest, "Файлы можно удалять только из черновика")
		return
	}

	fileID, err := parseIDParam(c, "file_id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	file, err := h.Repository.GetOrderFileByID(fileID)
	if err != nil || file.OrderID != order.ID {
		h.errorResponse(c, http.StatusNotFound, "Файл не найден")
		return
	}

	if err := h.Repository.DeleteOrderFile(file.ID); err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.MinIOClient.DeleteFile(file.FileName); err != nil {
		logrus.Error("Error deleting file from storage: ", err)
	}

	h.successResponse(c, http.StatusOK, "файл удалён", nil)
}
