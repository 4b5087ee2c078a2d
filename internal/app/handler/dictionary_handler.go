package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/repository"
)

// ============ СПРАВОЧНИКИ ============

func itemToResponse(item *ds.DictionaryItem) dto.DictionaryItemResponse {
	return dto.DictionaryItemResponse{
		ID:       item.ID,
		Value:    item.Value,
		ParentID: item.ParentID,
		Code:     item.Code,
	}
}

// GetDictionaries список справочников
// @Summary Список справочников
// @Tags Dictionaries
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router /api/dictionaries [get]
func (h *APIHandler) GetDictionaries(c *gin.Context) {
	dictionaries, err := h.Repository.GetDictionaries()
	if err != nil {
		logrus.Error("Error getting dictionaries: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения справочников")
		return
	}

	response := make([]dto.DictionaryResponse, len(dictionaries))
	for i, d := range dictionaries {
		response[i] = dto.DictionaryResponse{
			ID:          d.ID,
			Name:        d.Name,
			Description: d.Description,
		}
	}
	h.successResponse(c, http.StatusOK, "", response)
}

// GetDictionaryItems элементы справочника по имени
// @Summary Элементы справочника
// @Description parent_id фильтрует по родителю, parent_id=null отдаёт корневые элементы
// @Tags Dictionaries
// @Produce json
// @Param name path string true "Имя справочника"
// @Param parent_id query string false "ID родителя или null"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/dictionaries/{name}/items [get]
func (h *APIHandler) GetDictionaryItems(c *gin.Context) {
	name := c.Param("name")

	var parentID *uint
	parentSet := false
	if raw, ok := c.GetQuery("parent_id"); ok {
		parentSet = true
		if raw != "null" && raw != "" {
			val, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				h.errorResponse(c, http.StatusBadRequest, "параметр parent_id должен быть числом или null")
				return
			}
			id := uint(val)
			parentID = &id
		}
	}

	items, err := h.Repository.GetDictionaryItems(name, parentID, parentSet)
	if err != nil {
		if errors.Is(err, repository.ErrDictionaryNotFound) {
			h.errorResponse(c, http.StatusNotFound, "Справочник не найден")
			return
		}
		logrus.Error("Error getting dictionary items: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения элементов")
		return
	}

	response := make([]dto.DictionaryItemResponse, len(items))
	for i := range items {
		response[i] = itemToResponse(&items[i])
	}
	h.successResponse(c, http.StatusOK, "", response)
}

// CreateDictionaryItem добавляет элемент справочника (модератор)
// @Summary Добавление элемента справочника
// @Tags Dictionaries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name path string true "Имя справочника"
// @Param request body dto.CreateDictionaryItemRequest true "Элемент"
// @Success 201 {object} dto.DictionaryItemResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/dictionaries/{name}/items [post]
func (h *APIHandler) CreateDictionaryItem(c *gin.Context) {
	name := c.Param("name")

	var request dto.CreateDictionaryItemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	dictionary, err := h.Repository.GetDictionaryByName(name)
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Справочник не найден")
		return
	}

	if request.ParentID != nil {
		if _, err := h.Repository.GetDictionaryItemByID(*request.ParentID); err != nil {
			h.errorResponse(c, http.StatusBadRequest, "Родительский элемент не найден")
			return
		}
	}

	item := ds.DictionaryItem{
		DictionaryID: dictionary.ID,
		Value:        request.Value,
		ParentID:     request.ParentID,
		Code:         request.Code,
		SortOrder:    request.SortOrder,
		IsActive:     true,
	}
	if err := h.Repository.CreateDictionaryItem(&item); err != nil {
		logrus.Error("Error creating dictionary item: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания элемента")
		return
	}

	c.JSON(http.StatusCreated, itemToResponse(&item))
}

// UpdateDictionaryItem правит элемент справочника (модератор)
// @Summary Изменение элемента справочника
// @Tags Dictionaries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param name path string true "Имя справочника"
// @Param id path int true "ID элемента"
// @Param request body dto.UpdateDictionaryItemRequest true "Изменяемые поля"
// @Success 200 {object} dto.DictionaryItemResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/dictionaries/{name}/items/{id} [put]
func (h *APIHandler) UpdateDictionaryItem(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	var request dto.UpdateDictionaryItemRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	dictionary, err := h.Repository.GetDictionaryByName(c.Param("name"))
	if err != nil {
		h.errorResponse(c, http.StatusNotFound, "Справочник не найден")
		return
	}

	item, err := h.Repository.GetDictionaryItemByID(id)
	if err != nil || item.DictionaryID != dictionary.ID {
		h.errorResponse(c, http.StatusNotFound, "Элемент не найден")
		return
	}

	if request.Value != nil {
		item.Value = *request.Value
	}
	if request.Code != nil {
		item.Code = request.Code
	}
	if request.SortOrder != nil {
		item.SortOrder = *request.SortOrder
	}
	if err := h.Repository.UpdateDictionaryItem(item); err != nil {
		logrus.Error("Error updating dictionary item: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка обновления элемента")
		return
	}

	c.JSON(http.StatusOK, itemToResponse(item))
}

// DeleteDictionaryItem деактивирует элемент справочника (модератор)
// @Summary Удаление элемента справочника
// @Tags Dictionaries
// @Produce json
// @Security BearerAuth
// @Param name path string true "Имя справочника"
// @Param id path int true "ID элемента"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/dictionaries/{name}/items/{id} [delete]
func (h *APIHandler) DeleteDictionaryItem(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repository.DeactivateDictionaryItem(id); err != nil {
		h.errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "элемент удалён", nil)
}
