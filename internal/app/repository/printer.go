package repository

import (
	"errors"

	"gorm.io/gorm"

	"backend/internal/app/ds"
)

// Методы для принтеров

// Фильтры списка принтеров
type PrinterFilter struct {
	UserID     *uint
	State      *string
	MaterialID *uint
	ColorID    *uint
}

func (r *Repository) CreatePrinter(printer *ds.Printer) error {
	return r.db.Create(printer).Error
}

// GetPrinterByID возвращает принтер, архивные считаются удалёнными
func (r *Repository) GetPrinterByID(id uint) (*ds.Printer, error) {
	var printer ds.Printer
	err := r.db.Where("id = ? AND state != ?", id, ds.PrinterStateArchived).First(&printer).Error
	if err != nil {
		return nil, err
	}
	return &printer, nil
}

func (r *Repository) GetPrinters(filter PrinterFilter) ([]ds.Printer, error) {
	query := r.db.Where("state != ?", ds.PrinterStateArchived)

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.State != nil {
		query = query.Where("state = ?", *filter.State)
	}
	if filter.MaterialID != nil {
		query = query.Where("EXISTS (SELECT 1 FROM printer_materials pm WHERE pm.printer_id = printers.id AND pm.material_id = ?)", *filter.MaterialID)
	}
	if filter.ColorID != nil {
		query = query.Where("EXISTS (SELECT 1 FROM printer_colors pc WHERE pc.printer_id = printers.id AND pc.color_id = ?)", *filter.ColorID)
	}

	var printers []ds.Printer
	err := query.Order("id").Find(&printers).Error
	return printers, err
}

// Частичное обновление: nil-поля не трогаются
type PrinterPatch struct {
	ModelName    *string
	Manufacturer *string
	PricePerHour *int
	Description  *string
	Quantity     *int
	MaxSizeX     *float64
	MaxSizeY     *float64
	MaxSizeZ     *float64
}

func (r *Repository) UpdatePrinter(id uint, patch PrinterPatch) error {
	updates := map[string]interface{}{}
	if patch.ModelName != nil {
		updates["model_name"] = *patch.ModelName
	}
	if patch.Manufacturer != nil {
		updates["manufacturer"] = *patch.Manufacturer
	}
	if patch.PricePerHour != nil {
		updates["price_per_hour"] = *patch.PricePerHour
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Quantity != nil {
		updates["quantity"] = *patch.Quantity
	}
	if patch.MaxSizeX != nil {
		updates["max_size_x"] = *patch.MaxSizeX
	}
	if patch.MaxSizeY != nil {
		updates["max_size_y"] = *patch.MaxSizeY
	}
	if patch.MaxSizeZ != nil {
		updates["max_size_z"] = *patch.MaxSizeZ
	}
	if len(updates) == 0 {
		return nil
	}

	return r.db.Model(&ds.Printer{}).Where("id = ? AND state != ?", id, ds.PrinterStateArchived).Updates(updates).Error
}

// UpdatePrinterState меняет состояние принтера. Archived - терминальное.
func (r *Repository) UpdatePrinterState(id uint, state string) error {
	result := r.db.Model(&ds.Printer{}).
		Where("id = ? AND state != ?", id, ds.PrinterStateArchived).
		Update("state", state)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("принтер не найден или архивирован")
	}
	return nil
}

// SQL операция для логического удаления принтера
func (r *Repository) ArchivePrinter(id uint) error {
	result := r.db.Exec("UPDATE printers SET state = 'archived' WHERE id = ? AND state != 'archived'", id)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("принтер не найден или уже архивирован")
	}
	return nil
}

// SetPrinterMaterials заменяет набор материалов принтера
func (r *Repository) SetPrinterMaterials(printerID uint, materialIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("printer_id = ?", printerID).Delete(&ds.PrinterMaterial{}).Error; err != nil {
			return err
		}
		for _, mid := range materialIDs {
			if err := tx.Create(&ds.PrinterMaterial{PrinterID: printerID, MaterialID: mid}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SetPrinterColors заменяет набор цветов принтера
func (r *Repository) SetPrinterColors(printerID uint, colorIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("printer_id = ?", printerID).Delete(&ds.PrinterColor{}).Error; err != nil {
			return err
		}
		for _, cid := range colorIDs {
			if err := tx.Create(&ds.PrinterColor{PrinterID: printerID, ColorID: cid}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) GetPrinterMaterialIDs(printerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&ds.PrinterMaterial{}).Where("printer_id = ?", printerID).Pluck("material_id", &ids).Error
	return ids, err
}

func (r *Repository) GetPrinterColorIDs(printerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&ds.PrinterColor{}).Where("printer_id = ?", printerID).Pluck("color_id", &ids).Error
	return ids, err
}
