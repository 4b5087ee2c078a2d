package ds

import "time"

// Статусы запроса: pending -> approved | rejected | cancelled (терминальные)
const (
	RequestStatusPending   = "pending"
	RequestStatusApproved  = "approved"
	RequestStatusRejected  = "rejected"
	RequestStatusCancelled = "cancelled"
)

// Запрос владельца кластера на подключение чужого принтера.
// Не больше одного pending на пару (кластер, принтер).
type ClusterPrinterRequest struct {
	ID             uint   `gorm:"primaryKey"`
	ClusterID      uint   `gorm:"not null;index"`
	PrinterID      uint   `gorm:"not null;index"`
	RequestedBy    uint   `gorm:"not null"`       // владелец кластера
	PrinterOwnerID uint   `gorm:"not null;index"` // кто одобряет
	Status         string `gorm:"type:varchar(20);default:'pending';not null"`
	Message        string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Cluster      Cluster `gorm:"foreignKey:ClusterID"`
	Printer      Printer `gorm:"foreignKey:PrinterID"`
	Requester    User    `gorm:"foreignKey:RequestedBy"`
	PrinterOwner User    `gorm:"foreignKey:PrinterOwnerID"`
}
