package repository

import (
	"errors"

	"gorm.io/gorm"

	"backend/internal/app/ds"
)

// Методы для кластеров

// Рабочие состояния принтера: только они учитываются в доступности
// кластера и в проверках возможностей печати
var printerWorkingStates = []string{ds.PrinterStateAvailable, ds.PrinterStateBusy}

type ClusterFilter struct {
	UserID     *uint
	State      *string
	RegionID   *uint
	CityID     *uint
	MetroID    *uint
	MaterialID *uint
	ColorID    *uint
}

func (r *Repository) CreateCluster(cluster *ds.Cluster) error {
	return r.db.Create(cluster).Error
}

func (r *Repository) GetClusterByID(id uint) (*ds.Cluster, error) {
	var cluster ds.Cluster
	err := r.db.Where("id = ? AND state != ?", id, ds.ClusterStateArchived).First(&cluster).Error
	if err != nil {
		return nil, err
	}
	return &cluster, nil
}

func (r *Repository) GetClusters(filter ClusterFilter) ([]ds.Cluster, error) {
	query := r.db.Where("state != ?", ds.ClusterStateArchived)

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.State != nil {
		query = query.Where("state = ?", *filter.State)
	}
	if filter.RegionID != nil {
		query = query.Where("region_id = ?", *filter.RegionID)
	}
	if filter.CityID != nil {
		query = query.Where("city_id = ?", *filter.CityID)
	}
	if filter.MetroID != nil {
		query = query.Where("metro_id = ?", *filter.MetroID)
	}
	// Фильтры по возможностям печати смотрят на рабочие принтеры кластера
	if filter.MaterialID != nil {
		query = query.Where(`EXISTS (
			SELECT 1 FROM cluster_printers cp
			JOIN printers p ON p.id = cp.printer_id
			JOIN printer_materials pm ON pm.printer_id = cp.printer_id
			WHERE cp.cluster_id = clusters.id AND pm.material_id = ? AND p.state IN ?)`,
			*filter.MaterialID, printerWorkingStates)
	}
	if filter.ColorID != nil {
		query = query.Where(`EXISTS (
			SELECT 1 FROM cluster_printers cp
			JOIN printers p ON p.id = cp.printer_id
			JOIN printer_colors pc ON pc.printer_id = cp.printer_id
			WHERE cp.cluster_id = clusters.id AND pc.color_id = ? AND p.state IN ?)`,
			*filter.ColorID, printerWorkingStates)
	}

	var clusters []ds.Cluster
	err := query.Order("id").Find(&clusters).Error
	return clusters, err
}

type ClusterPatch struct {
	Name        *string
	Description *string
	RegionID    *uint
	CityID      *uint
	MetroID     *uint
}

func (r *Repository) UpdateCluster(id uint, patch ClusterPatch) error {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.RegionID != nil {
		updates["region_id"] = *patch.RegionID
	}
	if patch.CityID != nil {
		updates["city_id"] = *patch.CityID
	}
	if patch.MetroID != nil {
		updates["metro_id"] = *patch.MetroID
	}
	if len(updates) == 0 {
		return nil
	}

	return r.db.Model(&ds.Cluster{}).Where("id = ? AND state != ?", id, ds.ClusterStateArchived).Updates(updates).Error
}

// CountClusterPrinters считает все принтеры кластера
func (r *Repository) CountClusterPrinters(clusterID uint) (int64, error) {
	var count int64
	err := r.db.Model(&ds.ClusterPrinter{}).Where("cluster_id = ?", clusterID).Count(&count).Error
	return count, err
}

// CountAvailableClusterPrinters считает рабочие принтеры кластера.
// Занятый принтер тоже рабочий: busy не гасит кластер.
func (r *Repository) CountAvailableClusterPrinters(clusterID uint) (int64, error) {
	var count int64
	err := r.db.Model(&ds.ClusterPrinter{}).
		Joins("JOIN printers ON printers.id = cluster_printers.printer_id").
		Where("cluster_printers.cluster_id = ? AND printers.state IN ?", clusterID, printerWorkingStates).
		Count(&count).Error
	return count, err
}

// ActivateCluster переводит кластер в active. Активировать можно только
// кластер с хотя бы одним принтером.
func (r *Repository) ActivateCluster(id uint) error {
	count, err := r.CountClusterPrinters(id)
	if err != nil {
		return err
	}
	if count == 0 {
		return errors.New("нельзя активировать кластер без принтеров")
	}

	result := r.db.Model(&ds.Cluster{}).
		Where("id = ? AND state IN ?", id, []string{ds.ClusterStateDraft, ds.ClusterStateInactive}).
		Update("state", ds.ClusterStateActive)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("кластер нельзя активировать из текущего состояния")
	}
	return nil
}

func (r *Repository) DeactivateCluster(id uint) error {
	result := r.db.Model(&ds.Cluster{}).
		Where("id = ? AND state = ?", id, ds.ClusterStateActive).
		Update("state", ds.ClusterStateInactive)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("кластер не активен")
	}
	return nil
}

// SQL операция для логического удаления кластера
func (r *Repository) ArchiveCluster(id uint) error {
	result := r.db.Exec("UPDATE clusters SET state = 'archived' WHERE id = ? AND state != 'archived'", id)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("кластер не найден или уже архивирован")
	}
	return nil
}

// DeactivateClusterIfNoAvailablePrinters гасит активный кластер,
// когда в нём не осталось доступных принтеров. Вызывается после
// смены состояния принтера и после отвязки.
func (r *Repository) DeactivateClusterIfNoAvailablePrinters(clusterID uint) error {
	var cluster ds.Cluster
	err := r.db.First(&cluster, clusterID).Error
	if err != nil {
		return err
	}
	if cluster.State != ds.ClusterStateActive {
		return nil
	}

	count, err := r.CountAvailableClusterPrinters(clusterID)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return r.db.Model(&ds.Cluster{}).Where("id = ? AND state = ?", clusterID, ds.ClusterStateActive).
		Update("state", ds.ClusterStateInactive).Error
}

// SetClusterDeliveryMethods заменяет набор способов доставки кластера
func (r *Repository) SetClusterDeliveryMethods(clusterID uint, methodIDs []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cluster_id = ?", clusterID).Delete(&ds.ClusterDelivery{}).Error; err != nil {
			return err
		}
		for _, mid := range methodIDs {
			if err := tx.Create(&ds.ClusterDelivery{ClusterID: clusterID, DeliveryMethodID: mid}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *Repository) GetClusterDeliveryMethodIDs(clusterID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&ds.ClusterDelivery{}).Where("cluster_id = ?", clusterID).Pluck("delivery_method_id", &ids).Error
	return ids, err
}

// ClusterHasMaterial проверяет, печатает ли кластер этим материалом.
// Принтеры в обслуживании и неактивные не считаются.
func (r *Repository) ClusterHasMaterial(clusterID, materialID uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.ClusterPrinter{}).
		Joins("JOIN printers ON printers.id = cluster_printers.printer_id").
		Joins("JOIN printer_materials pm ON pm.printer_id = cluster_printers.printer_id").
		Where("cluster_printers.cluster_id = ? AND pm.material_id = ? AND printers.state IN ?",
			clusterID, materialID, printerWorkingStates).
		Count(&count).Error
	return count > 0, err
}

// ClusterHasColor проверяет, печатает ли кластер этим цветом
func (r *Repository) ClusterHasColor(clusterID, colorID uint) (bool, error) {
	var count int64
	err := r.db.Model(&ds.ClusterPrinter{}).
		Joins("JOIN printers ON printers.id = cluster_printers.printer_id").
		Joins("JOIN printer_colors pc ON pc.printer_id = cluster_printers.printer_id").
		Where("cluster_printers.cluster_id = ? AND pc.color_id = ? AND printers.state IN ?",
			clusterID, colorID, printerWorkingStates).
		Count(&count).Error
	return count > 0, err
}
