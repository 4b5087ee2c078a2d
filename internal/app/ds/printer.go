package ds

import "time"

// Состояния принтера. Archived - терминальное, остальные переключаются свободно.
const (
	PrinterStateAvailable   = "available"
	PrinterStateBusy        = "busy"
	PrinterStateMaintenance = "maintenance"
	PrinterStateInactive    = "inactive"
	PrinterStateArchived    = "archived"
)

// Таблица принтеров
type Printer struct {
	ID           uint    `gorm:"primaryKey"`
	UserID       uint    `gorm:"not null;index"`
	ModelName    string  `gorm:"type:varchar(100);not null"`
	Manufacturer string  `gorm:"type:varchar(100)"`
	PricePerHour int     `gorm:"type:int;not null"` // целое, минимум 1
	Description  *string `gorm:"type:text"`
	Quantity     int     `gorm:"type:int;default:1"`
	MaxSizeX     float64 `gorm:"type:decimal(10,2);default:0"`
	MaxSizeY     float64 `gorm:"type:decimal(10,2);default:0"`
	MaxSizeZ     float64 `gorm:"type:decimal(10,2);default:0"`
	State        string  `gorm:"type:varchar(20);default:'available';not null"`

	// Денормализованная ссылка на кластер, зеркало cluster_printers.
	// Обновляется в одной транзакции с join-таблицей.
	ClusterID *uint `gorm:"index"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Owner User `gorm:"foreignKey:UserID"`
}

// М-М принтеры-материалы (material_id из справочника materials)
type PrinterMaterial struct {
	ID         uint `gorm:"primaryKey"`
	PrinterID  uint `gorm:"not null;index;uniqueIndex:idx_printer_material"`
	MaterialID uint `gorm:"not null;index;uniqueIndex:idx_printer_material"`
	CreatedAt  time.Time

	Printer  Printer        `gorm:"foreignKey:PrinterID"`
	Material DictionaryItem `gorm:"foreignKey:MaterialID"`
}

// М-М принтеры-цвета (color_id из справочника colors)
type PrinterColor struct {
	ID        uint `gorm:"primaryKey"`
	PrinterID uint `gorm:"not null;index;uniqueIndex:idx_printer_color"`
	ColorID   uint `gorm:"not null;index;uniqueIndex:idx_printer_color"`
	CreatedAt time.Time

	Printer Printer        `gorm:"foreignKey:PrinterID"`
	Color   DictionaryItem `gorm:"foreignKey:ColorID"`
}
