package ds

import "time"

// Типы уведомлений
const (
	NotificationOrderCompleted     = "order_completed"
	NotificationOrderStatusChanged = "order_status_changed"
	NotificationRequestCreated     = "request_created"
	NotificationRequestApproved    = "request_approved"
	NotificationRequestRejected    = "request_rejected"
)

// Уведомление пользователя. Создаётся по принципу best-effort:
// сбой записи не ломает основную операцию.
type Notification struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"not null;index"`
	Type      string `gorm:"type:varchar(50);not null"`
	Title     string `gorm:"type:varchar(200);not null"`
	Text      string `gorm:"type:text"`
	OrderID   *uint  `gorm:"default:null"`
	ClusterID *uint  `gorm:"default:null"`
	IsRead    bool   `gorm:"type:boolean;default:false;not null"`
	CreatedAt time.Time

	User User `gorm:"foreignKey:UserID"`
}
