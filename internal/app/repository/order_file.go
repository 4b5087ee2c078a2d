package repository

import (
	"errors"

	"backend/internal/app/ds"
)

// Файлы моделей заказа. Загрузка разрешена только для черновиков,
// лимиты по количеству и размеру проверяет обработчик.

var ErrFileNotFound = errors.New("файл не найден")

func (r *Repository) AddOrderFile(file *ds.OrderFile) error {
	return r.db.Create(file).Error
}

func (r *Repository) GetOrderFiles(orderID uint) ([]ds.OrderFile, error) {
	var files []ds.OrderFile
	err := r.db.Where("order_id = ?", orderID).Order("id").Find(&files).Error
	return files, err
}

func (r *Repository) GetOrderFileByID(id uint) (*ds.OrderFile, error) {
	var file ds.OrderFile
	err := r.db.First(&file, id).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *Repository) CountOrderFiles(orderID uint) (int64, error) {
	var count int64
	err := r.db.Model(&ds.OrderFile{}).Where("order_id = ?", orderID).Count(&count).Error
	return count, err
}

func (r *Repository) DeleteOrderFile(id uint) error {
	result := r.db.Delete(&ds.OrderFile{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFileNotFound
	}
	return nil
}
