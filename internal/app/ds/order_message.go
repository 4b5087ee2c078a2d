package ds

import "time"

// Сообщение в переписке по заказу. Писать могут только заказчик
// и владелец кластера-исполнителя, и только после отправки заказа.
type OrderMessage struct {
	ID        uint   `gorm:"primaryKey"`
	OrderID   uint   `gorm:"not null;index"`
	UserID    uint   `gorm:"not null;index"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt time.Time

	Order  Order `gorm:"foreignKey:OrderID"`
	Author User  `gorm:"foreignKey:UserID"`
}
