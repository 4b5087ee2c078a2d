package ds

import "time"

// Файл модели, привязанный к заказу. Загружается только пока заказ в draft,
// не больше 10 файлов на заказ, каждый не больше 50 МБ.
type OrderFile struct {
	ID           uint   `gorm:"primaryKey"`
	OrderID      uint   `gorm:"not null;index"`
	FileName     string `gorm:"type:varchar(255);not null"` // сгенерированное имя объекта
	OriginalName string `gorm:"type:varchar(255);not null"`
	MimeType     string `gorm:"type:varchar(100)"`
	Size         int64  `gorm:"type:bigint;not null"`
	UploadedBy   uint   `gorm:"not null"`
	CreatedAt    time.Time

	Order Order `gorm:"foreignKey:OrderID"`
}
