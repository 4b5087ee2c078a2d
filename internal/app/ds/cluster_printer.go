package ds

import "time"

// Привязка принтера к кластеру. Одна активная привязка на пару (кластер, принтер).
type ClusterPrinter struct {
	ID        uint `gorm:"primaryKey"`
	ClusterID uint `gorm:"not null;index;uniqueIndex:idx_cluster_printer"`
	PrinterID uint `gorm:"not null;index;uniqueIndex:idx_cluster_printer"`
	AddedBy   uint `gorm:"not null"`
	AddedAt   time.Time

	Cluster Cluster `gorm:"foreignKey:ClusterID"`
	Printer Printer `gorm:"foreignKey:PrinterID"`
}
