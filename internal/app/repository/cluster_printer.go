package repository

import (
	"errors"

	"gorm.io/gorm"

	"backend/internal/app/ds"
)

// Привязка принтеров к кластерам. Join-таблица и зеркальное поле
// printers.cluster_id меняются в одной транзакции.

func (r *Repository) AttachPrinter(clusterID, printerID, addedBy uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&ds.ClusterPrinter{}).
			Where("cluster_id = ? AND printer_id = ?", clusterID, printerID).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return errors.New("принтер уже привязан к кластеру")
		}

		link := ds.ClusterPrinter{
			ClusterID: clusterID,
			PrinterID: printerID,
			AddedBy:   addedBy,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}

		return tx.Model(&ds.Printer{}).Where("id = ?", printerID).
			Update("cluster_id", clusterID).Error
	})
}

func (r *Repository) DetachPrinter(clusterID, printerID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("cluster_id = ? AND printer_id = ?", clusterID, printerID).
			Delete(&ds.ClusterPrinter{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errors.New("принтер не привязан к кластеру")
		}

		return tx.Model(&ds.Printer{}).Where("id = ? AND cluster_id = ?", printerID, clusterID).
			Update("cluster_id", nil).Error
	})
}

func (r *Repository) GetClusterPrinters(clusterID uint) ([]ds.Printer, error) {
	var printers []ds.Printer
	err := r.db.
		Joins("JOIN cluster_printers ON cluster_printers.printer_id = printers.id").
		Where("cluster_printers.cluster_id = ?", clusterID).
		Order("printers.id").
		Find(&printers).Error
	return printers, err
}

func (r *Repository) IsPrinterAttached(clusterID, printerID uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.ClusterPrinter{}).
		Where("cluster_id = ? AND printer_id = ?", clusterID, printerID).
		Count(&count).Error
	return count > 0, err
}
