package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
	"backend/internal/app/repository"
)

// ============ АДРЕСА ДОСТАВКИ ============

func addressToResponse(address *ds.Address) dto.AddressResponse {
	return dto.AddressResponse{
		ID:        address.ID,
		RegionID:  address.RegionID,
		CityID:    address.CityID,
		MetroID:   address.MetroID,
		Street:    address.Street,
		House:     address.House,
		Apartment: address.Apartment,
		Comment:   address.Comment,
		IsDefault: address.IsDefault,
	}
}

// GetAddresses адреса пользователя
// @Summary Адреса доставки
// @Tags Addresses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Router /api/addresses [get]
func (h *APIHandler) GetAddresses(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Пользователь не авторизован")
		return
	}

	addresses, err := h.Repository.GetAddresses(userID)
	if err != nil {
		logrus.Error("Error getting addresses: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения адресов")
		return
	}

	response := make([]dto.AddressResponse, len(addresses))
	for i := range addresses {
		response[i] = addressToResponse(&addresses[i])
	}
	h.successResponse(c, http.StatusOK, "", response)
}

// CreateAddress добавляет адрес доставки
// @Summary Добавление адреса
// @Description Локация проверяется по справочникам регионов, городов и метро
// @Tags Addresses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAddressRequest true "Адрес"
// @Success 201 {object} dto.AddressResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/addresses [post]
func (h *APIHandler) CreateAddress(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Пользователь не авторизован")
		return
	}

	var request dto.CreateAddressRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	if err := h.Repository.ValidateLocationHierarchy(request.RegionID, request.CityID, request.MetroID); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверная локация: "+err.Error())
		return
	}

	address := ds.Address{
		UserID:    userID,
		RegionID:  request.RegionID,
		CityID:    request.CityID,
		MetroID:   request.MetroID,
		Street:    request.Street,
		House:     request.House,
		Apartment: request.Apartment,
		Comment:   request.Comment,
		IsDefault: request.IsDefault,
	}
	if err := h.Repository.CreateAddress(&address); err != nil {
		logrus.Error("Error creating address: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка создания адреса")
		return
	}

	c.JSON(http.StatusCreated, addressToResponse(&address))
}

// UpdateAddress правит поля адреса
// @Summary Изменение адреса
// @Tags Addresses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID адреса"
// @Param request body dto.UpdateAddressRequest true "Изменяемые поля"
// @Success 200 {object} dto.AddressResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/addresses/{id} [put]
func (h *APIHandler) UpdateAddress(c *gin.Context) {
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

	var request dto.UpdateAddressRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверные данные: "+err.Error())
		return
	}

	patch := repository.AddressPatch{
		Street:    request.Street,
		House:     request.House,
		Apartment: request.Apartment,
		Comment:   request.Comment,
	}
	if err := h.Repository.UpdateAddress(id, userID, patch); err != nil {
		h.errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	updated, err := h.Repository.GetAddressByID(id, userID)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения адреса")
		return
	}
	c.JSON(http.StatusOK, addressToResponse(updated))
}

// SetDefaultAddress делает адрес основным
// @Summary Основной адрес
// @Tags Addresses
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID адреса"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/addresses/{id}/default [put]
func (h *APIHandler) SetDefaultAddress(c *gin.Context) {
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

	if err := h.Repository.SetDefaultAddress(id, userID); err != nil {
		h.errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "адрес сделан основным", nil)
}

// DeleteAddress удаляет адрес
// @Summary Удаление адреса
// @Tags Addresses
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID адреса"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/addresses/{id} [delete]
func (h *APIHandler) DeleteAddress(c *gin.Context) {
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

	if err := h.Repository.DeleteAddress(id, userID); err != nil {
		h.errorResponse(c, http.StatusNotFound, err.Error())
		return
	}

	h.successResponse(c, http.StatusOK, "адрес удалён", nil)
}
