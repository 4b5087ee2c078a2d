package handler

import (
	"backend/internal/app/middleware"
	"backend/internal/app/role"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes регистрирует все REST API маршруты с авторизацией
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	anyUser := authMiddleware.WithAuthCheck(role.User, role.Moderator, role.Admin)
	moderator := authMiddleware.WithAuthCheck(role.Moderator, role.Admin)

	// REST API маршруты
	api := router.Group("/api")

	// ============ Аутентификация ============
	auth := api.Group("/auth")
	{
		// Публичные эндпоинты
		auth.POST("/register", h.AuthHandler.RegisterUser) // POST регистрация
		auth.POST("/login", h.AuthHandler.LoginUser)       // POST аутентификация JWT

		// Защищенные эндпоинты
		auth.GET("/profile", anyUser, h.AuthHandler.GetUserProfile)
		auth.POST("/logout", anyUser, h.AuthHandler.LogoutUser)
		auth.POST("/send-code", anyUser, h.AuthHandler.SendVerificationCode)
		auth.POST("/verify-email", anyUser, h.AuthHandler.VerifyEmail)
		auth.POST("/change-email", anyUser, h.AuthHandler.RequestEmailChange)
		auth.POST("/confirm-email-change", anyUser, h.AuthHandler.ConfirmEmailChange)
		auth.POST("/change-password", anyUser, h.AuthHandler.ChangePassword)
	}

	// ============ Принтеры ============
	printers := api.Group("/printers")
	{
		printers.GET("", h.GetPrinters)    // GET список с фильтрацией
		printers.GET("/:id", h.GetPrinter) // GET одна запись

		printers.POST("", anyUser, h.CreatePrinter)
		printers.PUT("/:id", anyUser, h.UpdatePrinter)
		printers.PUT("/:id/state", anyUser, h.UpdatePrinterState)
		printers.DELETE("/:id", anyUser, h.DeletePrinter)
	}

	// ============ Кластеры ============
	clusters := api.Group("/clusters")
	{
		clusters.GET("", h.GetClusters)
		clusters.GET("/:id", h.GetCluster)
		clusters.GET("/:id/printers", h.GetClusterPrinters)

		clusters.POST("", anyUser, h.CreateCluster)
		clusters.PUT("/:id", anyUser, h.UpdateCluster)
		clusters.PUT("/:id/activate", anyUser, h.ActivateCluster)
		clusters.PUT("/:id/deactivate", anyUser, h.DeactivateCluster)
		clusters.DELETE("/:id", anyUser, h.DeleteCluster)
		clusters.GET("/:id/orders", anyUser, h.GetClusterOrders)

		// Привязка принтеров
		clusters.POST("/:id/printers", anyUser, h.AttachPrinterToCluster)
		clusters.DELETE("/:id/printers/:printer_id", anyUser, h.DetachPrinterFromCluster)

		// Запросы на чужие принтеры
		clusters.POST("/:id/printer-requests", anyUser, h.CreatePrinterRequest)
	}

	// ============ Запросы на подключение принтеров ============
	requests := api.Group("/printer-requests")
	requests.Use(anyUser)
	{
		requests.GET("/incoming", h.GetIncomingRequests)
		requests.GET("/outgoing", h.GetOutgoingRequests)
		requests.PUT("/:id/approve", h.ApprovePrinterRequest)
		requests.PUT("/:id/reject", h.RejectPrinterRequest)
		requests.PUT("/:id/cancel", h.CancelPrinterRequest)
	}

	// ============ Заказы ============
	orders := api.Group("/orders")
	orders.Use(anyUser)
	{
		orders.GET("", h.GetOrders)
		orders.GET("/:id", h.GetOrder)
		orders.POST("", h.CreateOrder)
		orders.PUT("/:id", h.UpdateOrder)
		orders.PUT("/:id/submit", h.SubmitOrder)
		orders.PUT("/:id/status", h.UpdateOrderStatus)
		orders.DELETE("/:id", h.DeleteOrder)

		// Файлы моделей
		orders.GET("/:id/files", h.GetOrderFiles)
		orders.POST("/:id/files", h.UploadOrderFile)
		orders.DELETE("/:id/files/:file_id", h.DeleteOrderFile)

		// Переписка
		orders.GET("/:id/messages", h.GetOrderMessages)
		orders.POST("/:id/messages", h.CreateOrderMessage)
	}

	// ============ Справочники ============
	dictionaries := api.Group("/dictionaries")
	{
		dictionaries.GET("", h.GetDictionaries)
		dictionaries.GET("/:name/items", h.GetDictionaryItems)

		// Управление справочниками - только модераторы
		dictionaries.POST("/:name/items", moderator, h.CreateDictionaryItem)
		dictionaries.PUT("/:name/items/:id", moderator, h.UpdateDictionaryItem)
		dictionaries.DELETE("/:name/items/:id", moderator, h.DeleteDictionaryItem)
	}

	// ============ Уведомления ============
	notifications := api.Group("/notifications")
	notifications.Use(anyUser)
	{
		notifications.GET("", h.GetNotifications)
		notifications.GET("/unread-count", h.GetUnreadCount)
		notifications.PUT("/:id/read", h.MarkNotificationRead)
		notifications.PUT("/read-all", h.MarkAllNotificationsRead)
	}

	// ============ Адреса ============
	addresses := api.Group("/addresses")
	addresses.Use(anyUser)
	{
		addresses.GET("", h.GetAddresses)
		addresses.POST("", h.CreateAddress)
		addresses.PUT("/:id", h.UpdateAddress)
		addresses.PUT("/:id/default", h.SetDefaultAddress)
		addresses.DELETE("/:id", h.DeleteAddress)
	}

	// ============ Статистика ============
	api.GET("/stats", h.GetPlatformStats)
	api.GET("/stats/me", anyUser, h.GetUserStats)

	// Файлы из хранилища
	router.GET("/uploads/:filename", h.ServeUpload)

	// Служебные эндпоинты
	router.GET("/ping", h.Ping)
	router.GET("/health", h.Health)
}
