package ds

import "time"

// Статусы заказа. Переход draft -> pending только через submitDraft,
// остальные смены статуса выполняются через updateState.
const (
	OrderStatusDraft      = "draft"
	OrderStatusPending    = "pending"
	OrderStatusApproved   = "approved"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
	OrderStatusArchived   = "archived"
)

// Таблица заказов на печать
type Order struct {
	ID          uint    `gorm:"primaryKey"`
	UserID      uint    `gorm:"not null;index"` // заказчик
	Title       string  `gorm:"type:varchar(200);not null"`
	Description *string `gorm:"type:text"`
	Status      string  `gorm:"type:varchar(20);default:'draft';not null"`

	// Параметры печати (элементы справочников materials/colors)
	MaterialID *uint `gorm:"default:null"`
	ColorID    *uint `gorm:"default:null"`

	Quantity    int        `gorm:"type:int;default:1"`
	Budget      *int       `gorm:"default:null"`
	Deadline    *time.Time `gorm:"default:null"`
	CompletedAt *time.Time `gorm:"default:null"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Customer User            `gorm:"foreignKey:UserID"`
	Material *DictionaryItem `gorm:"foreignKey:MaterialID"`
	Color    *DictionaryItem `gorm:"foreignKey:ColorID"`
}

// Привязка заказа к кластеру-исполнителю
type OrderCluster struct {
	ID        uint `gorm:"primaryKey"`
	OrderID   uint `gorm:"not null;index;uniqueIndex:idx_order_cluster"`
	ClusterID uint `gorm:"not null;index;uniqueIndex:idx_order_cluster"`
	CreatedAt time.Time

	Order   Order   `gorm:"foreignKey:OrderID"`
	Cluster Cluster `gorm:"foreignKey:ClusterID"`
}
