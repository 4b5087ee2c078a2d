package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"backend/internal/app/config"
	"backend/internal/app/dto"
	"backend/internal/app/queue"
	"backend/internal/app/repository"
	"backend/internal/app/role"
	"backend/internal/app/storage"
)

// APIHandler содержит обработчики для REST API
type APIHandler struct {
	Repository  *repository.Repository
	MinIOClient *storage.MinIOClient
	AuthHandler *AuthHandler
	Publisher   *queue.Publisher
	Config      *config.Config
}

func NewAPIHandler(r *repository.Repository, minioClient *storage.MinIOClient, authHandler *AuthHandler, publisher *queue.Publisher, cfg *config.Config) *APIHandler {
	return &APIHandler{
		Repository:  r,
		MinIOClient: minioClient,
		AuthHandler: authHandler,
		Publisher:   publisher,
		Config:      cfg,
	}
}

// Получение текущего пользователя из контекста
func (h *APIHandler) getUserFromContext(c *gin.Context) (uint, role.Role, error) {
	userID, exists := c.Get("userID")
	if !exists {
		logrus.Warn("userID not found in context")
		return 0, role.Unknown, fmt.Errorf("user not authenticated")
	}

	userRole, _ := c.Get("userRole")
	r, _ := userRole.(role.Role)

	id, ok := userID.(uint)
	if !ok {
		logrus.Errorf("getUserFromContext: invalid userID type: %T", userID)
		return 0, r, fmt.Errorf("invalid user ID")
	}

	return id, r, nil
}

// parseIDParam разбирает числовой path-параметр
func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("неверный ID")
	}
	return uint(id), nil
}

// parseUintQuery разбирает необязательный числовой query-параметр
func parseUintQuery(c *gin.Context, name string) (*uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	val, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("параметр %s должен быть числом", name)
	}
	id := uint(val)
	return &id, nil
}

// ============ Вспомогательные функции ============

func (h *APIHandler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func (h *APIHandler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// ============ Служебные эндпоинты ============

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(c *gin.Context) {
	c.JSON(200, gin.H{"message": "pong"})
}

// Health проверяет доступность зависимостей
// @Summary Проверка состояния сервиса
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *APIHandler) Health(c *gin.Context) {
	if _, err := h.Repository.GetPlatformStats(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "fail", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetPlatformStats сводная статистика площадки
// @Summary Статистика площадки
// @Description Количество принтеров, активных кластеров и выполненных заказов
// @Tags Stats
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/stats [get]
func (h *APIHandler) GetPlatformStats(c *gin.Context) {
	stats, err := h.Repository.GetPlatformStats()
	if err != nil {
		logrus.Error("Error getting platform stats: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения статистики")
		return
	}
	h.successResponse(c, http.StatusOK, "", stats)
}

// GetUserStats статистика текущего пользователя
// @Summary Статистика пользователя
// @Tags Stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/stats/me [get]
func (h *APIHandler) GetUserStats(c *gin.Context) {
	userID, _, err := h.getUserFromContext(c)
	if err != nil {
		h.errorResponse(c, http.StatusUnauthorized, "Пользователь не авторизован")
		return
	}

	stats, err := h.Repository.GetUserStats(userID)
	if err != nil {
		logrus.Error("Error getting user stats: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка получения статистики")
		return
	}
	h.successResponse(c, http.StatusOK, "", stats)
}

// ServeUpload отдаёт файл из хранилища по имени объекта.
// Сохраняет форму URL /uploads/<имя файла>.
// @Summary Скачивание файла
// @Tags Files
// @Produce octet-stream
// @Param filename path string true "Имя файла"
// @Success 200 {file} binary
// @Failure 404 {object} dto.ErrorResponse
// @Router /uploads/{filename} [get]
func (h *APIHandler) ServeUpload(c *gin.Context) {
	filename := c.Param("filename")

	exists, err := h.MinIOClient.FileExists(filename)
	if err != nil {
		logrus.Error("Error checking file: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка доступа к хранилищу")
		return
	}
	if !exists {
		h.errorResponse(c, http.StatusNotFound, "Файл не найден")
		return
	}

	data, err := h.MinIOClient.DownloadFile(filename)
	if err != nil {
		logrus.Error("Error downloading file: ", err)
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка скачивания файла")
		return
	}

	c.Data(http.StatusOK, "application/octet-stream", data)
}
