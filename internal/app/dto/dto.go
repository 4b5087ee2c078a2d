package dto

import "time"

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Пользователи и авторизация ============

type UserResponse struct {
	ID            uint   `json:"id"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	EmailVerified bool   `json:"email_verified"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type VerifyEmailRequest struct {
	Code string `json:"code" binding:"required,len=4"`
}

type ChangeEmailRequest struct {
	NewEmail string `json:"new_email" binding:"required,email"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// ============ Принтеры ============

type PrinterResponse struct {
	ID           uint    `json:"id"`
	UserID       uint    `json:"user_id"`
	ModelName    string  `json:"model_name"`
	Manufacturer string  `json:"manufacturer,omitempty"`
	PricePerHour int     `json:"price_per_hour"`
	Description  *string `json:"description,omitempty"`
	Quantity     int     `json:"quantity"`
	MaxSizeX     float64 `json:"max_size_x"`
	MaxSizeY     float64 `json:"max_size_y"`
	MaxSizeZ     float64 `json:"max_size_z"`
	State        string  `json:"state"`
	ClusterID    *uint   `json:"cluster_id,omitempty"`
	MaterialIDs  []uint  `json:"material_ids,omitempty"`
	ColorIDs     []uint  `json:"color_ids,omitempty"`
}

type PrinterListResponse struct {
	Printers []PrinterResponse `json:"printers"`
	Total    int               `json:"total"`
}

type CreatePrinterRequest struct {
	ModelName    string  `json:"model_name" binding:"required,max=100"`
	Manufacturer string  `json:"manufacturer" binding:"max=100"`
	PricePerHour int     `json:"price_per_hour" binding:"required,gte=1"`
	Description  *string `json:"description"`
	Quantity     int     `json:"quantity" binding:"omitempty,gte=1"`
	MaxSizeX     float64 `json:"max_size_x" binding:"omitempty,gte=0"`
	MaxSizeY     float64 `json:"max_size_y" binding:"omitempty,gte=0"`
	MaxSizeZ     float64 `json:"max_size_z" binding:"omitempty,gte=0"`
	MaterialIDs  []uint  `json:"material_ids"`
	ColorIDs     []uint  `json:"color_ids"`
}

type UpdatePrinterRequest struct {
	ModelName    *string  `json:"model_name" binding:"omitempty,max=100"`
	Manufacturer *string  `json:"manufacturer" binding:"omitempty,max=100"`
	PricePerHour *int     `json:"price_per_hour" binding:"omitempty,gte=1"`
	Description  *string  `json:"description"`
	Quantity     *int     `json:"quantity" binding:"omitempty,gte=1"`
	MaxSizeX     *float64 `json:"max_size_x" binding:"omitempty,gte=0"`
	MaxSizeY     *float64 `json:"max_size_y" binding:"omitempty,gte=0"`
	MaxSizeZ     *float64 `json:"max_size_z" binding:"omitempty,gte=0"`
	MaterialIDs  []uint   `json:"material_ids"`
	ColorIDs     []uint   `json:"color_ids"`
}

type UpdatePrinterStateRequest struct {
	State string `json:"state" binding:"required,oneof=available busy maintenance inactive"`
}

// ============ Кластеры ============

type ClusterResponse struct {
	ID                uint   `json:"id"`
	UserID            uint   `json:"user_id"`
	Name              string `json:"name"`
	Description       string `json:"description,omitempty"`
	RegionID          uint   `json:"region_id"`
	CityID            uint   `json:"city_id"`
	MetroID           *uint  `json:"metro_id,omitempty"`
	ParentClusterID   *uint  `json:"parent_cluster_id,omitempty"`
	State             string `json:"state"`
	PrintersCount     int64  `json:"printers_count"`
	AvailablePrinters int64  `json:"available_printers"`
	DeliveryMethodIDs []uint `json:"delivery_method_ids,omitempty"`
}

type ClusterListResponse struct {
	Clusters []ClusterResponse `json:"clusters"`
	Total    int               `json:"total"`
}

type CreateClusterRequest struct {
	Name              string `json:"name" binding:"required,max=100"`
	Description       string `json:"description"`
	RegionID          uint   `json:"region_id" binding:"required"`
	CityID            uint   `json:"city_id" binding:"required"`
	MetroID           *uint  `json:"metro_id"`
	ParentClusterID   *uint  `json:"parent_cluster_id"`
	DeliveryMethodIDs []uint `json:"delivery_method_ids"`
}

type UpdateClusterRequest struct {
	Name              *string `json:"name" binding:"omitempty,max=100"`
	Description       *string `json:"description"`
	RegionID          *uint   `json:"region_id"`
	CityID            *uint   `json:"city_id"`
	MetroID           *uint   `json:"metro_id"`
	DeliveryMethodIDs []uint  `json:"delivery_method_ids"`
}

type AttachPrinterRequest struct {
	PrinterID uint `json:"printer_id" binding:"required"`
}

// ============ Запросы на подключение принтеров ============

type CreatePrinterRequestRequest struct {
	PrinterID uint   `json:"printer_id" binding:"required"`
	Message   string `json:"message"`
}

type PrinterRequestResponse struct {
	ID             uint      `json:"id"`
	ClusterID      uint      `json:"cluster_id"`
	PrinterID      uint      `json:"printer_id"`
	RequestedBy    uint      `json:"requested_by"`
	PrinterOwnerID uint      `json:"printer_owner_id"`
	Status         string    `json:"status"`
	Message        string    `json:"message,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type PrinterRequestListResponse struct {
	Requests []PrinterRequestResponse `json:"requests"`
	Total    int                      `json:"total"`
}

// ============ Заказы ============

type OrderResponse struct {
	ID          uint       `json:"id"`
	UserID      uint       `json:"user_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status"`
	MaterialID  *uint      `json:"material_id,omitempty"`
	ColorID     *uint      `json:"color_id,omitempty"`
	Quantity    int        `json:"quantity"`
	Budget      *int       `json:"budget,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	ClusterID   *uint      `json:"cluster_id,omitempty"`

	Files []OrderFileResponse `json:"files,omitempty"` // Только для GET одного заказа
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

type CreateOrderRequest struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description *string    `json:"description"`
	MaterialID  *uint      `json:"material_id"`
	ColorID     *uint      `json:"color_id"`
	Quantity    int        `json:"quantity" binding:"omitempty,gte=1"`
	Budget      *int       `json:"budget" binding:"omitempty,gte=0"`
	Deadline    *time.Time `json:"deadline"`
	ClusterID   *uint      `json:"cluster_id"` // если задан, черновик сразу привязывается к кластеру
}

type UpdateOrderRequest struct {
	Title       *string    `json:"title" binding:"omitempty,max=200"`
	Description *string    `json:"description"`
	MaterialID  *uint      `json:"material_id"`
	ColorID     *uint      `json:"color_id"`
	Quantity    *int       `json:"quantity" binding:"omitempty,gte=1"`
	Budget      *int       `json:"budget" binding:"omitempty,gte=0"`
	Deadline    *time.Time `json:"deadline"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ============ Файлы заказа ============

type OrderFileResponse struct {
	ID           uint      `json:"id"`
	OrderID      uint      `json:"order_id"`
	FileName     string    `json:"file_name"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type,omitempty"`
	Size         int64     `json:"size"`
	URL          string    `json:"url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ============ Сообщения по заказу ============

type CreateMessageRequest struct {
	Text string `json:"text" binding:"required,max=5000"`
}

type MessageResponse struct {
	ID        uint      `json:"id"`
	OrderID   uint      `json:"order_id"`
	UserID    uint      `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ============ Справочники ============

type DictionaryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type DictionaryItemResponse struct {
	ID       uint    `json:"id"`
	Value    string  `json:"value"`
	ParentID *uint   `json:"parent_id,omitempty"`
	Code     *string `json:"code,omitempty"`
}

type CreateDictionaryItemRequest struct {
	Value     string  `json:"value" binding:"required,max=200"`
	ParentID  *uint   `json:"parent_id"`
	Code      *string `json:"code"`
	SortOrder int     `json:"sort_order"`
}

type UpdateDictionaryItemRequest struct {
	Value     *string `json:"value" binding:"omitempty,max=200"`
	Code      *string `json:"code"`
	SortOrder *int    `json:"sort_order"`
}

// ============ Уведомления ============

type NotificationResponse struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Text      string    `json:"text,omitempty"`
	OrderID   *uint     `json:"order_id,omitempty"`
	ClusterID *uint     `json:"cluster_id,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// ============ Адреса ============

type AddressResponse struct {
	ID        uint    `json:"id"`
	RegionID  uint    `json:"region_id"`
	CityID    uint    `json:"city_id"`
	MetroID   *uint   `json:"metro_id,omitempty"`
	Street    string  `json:"street"`
	House     string  `json:"house"`
	Apartment *string `json:"apartment,omitempty"`
	Comment   *string `json:"comment,omitempty"`
	IsDefault bool    `json:"is_default"`
}

type CreateAddressRequest struct {
	RegionID  uint    `json:"region_id" binding:"required"`
	CityID    uint    `json:"city_id" binding:"required"`
	MetroID   *uint   `json:"metro_id"`
	Street    string  `json:"street" binding:"required,max=200"`
	House     string  `json:"house" binding:"required,max=50"`
	Apartment *string `json:"apartment"`
	Comment   *string `json:"comment"`
	IsDefault bool    `json:"is_default"`
}

type UpdateAddressRequest struct {
	Street    *string `json:"street" binding:"omitempty,max=200"`
	House     *string `json:"house" binding:"omitempty,max=50"`
	Apartment *string `json:"apartment"`
	Comment   *string `json:"comment"`
}
