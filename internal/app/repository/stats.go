package repository

import (
	"backend/internal/app/ds"
)

// Сводная статистика по площадке

type PlatformStats struct {
	Printers        int64 `json:"printers"`
	ActiveClusters  int64 `json:"active_clusters"`
	CompletedOrders int64 `json:"completed_orders"`
	Users           int64 `json:"users"`
}

func (r *Repository) GetPlatformStats() (*PlatformStats, error) {
	stats := &PlatformStats{}

	err := r.db.Model(&ds.Printer{}).
		Where("state != ?", ds.PrinterStateArchived).
		Count(&stats.Printers).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&ds.Cluster{}).
		Where("state = ?", ds.ClusterStateActive).
		Count(&stats.ActiveClusters).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&ds.Order{}).
		Where("status = ?", ds.OrderStatusCompleted).
		Count(&stats.CompletedOrders).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&ds.User{}).Count(&stats.Users).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// Статистика пользователя для личного кабинета
type UserStats struct {
	Printers       int64 `json:"printers"`
	Clusters       int64 `json:"clusters"`
	Orders         int64 `json:"orders"`
	IncomingOrders int64 `json:"incoming_orders"`
}

func (r *Repository) GetUserStats(userID uint) (*UserStats, error) {
	stats := &UserStats{}

	err := r.db.Model(&ds.Printer{}).
		Where("user_id = ? AND state != ?", userID, ds.PrinterStateArchived).
		Count(&stats.Printers).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&ds.Cluster{}).
		Where("user_id = ? AND state != ?", userID, ds.ClusterStateArchived).
		Count(&stats.Clusters).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&ds.Order{}).
		Where("user_id = ? AND status != ?", userID, ds.OrderStatusArchived).
		Count(&stats.Orders).Error
	if err != nil {
		return nil, err
	}

	err = r.db.Model(&ds.Order{}).
		Where(`orders.status != ? AND EXISTS (
			SELECT 1 FROM order_clusters oc
			JOIN clusters c ON c.id = oc.cluster_id
			WHERE oc.order_id = orders.id AND c.user_id = ?)`, ds.OrderStatusArchived, userID).
		Count(&stats.IncomingOrders).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}
