package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"backend/internal/app/ds"
)

// Методы для заказов

var (
	ErrOwnCluster           = errors.New("нельзя разместить заказ в собственном кластере")
	ErrMaterialNotAvailable = errors.New("Material is not available in this cluster")
	ErrColorNotAvailable    = errors.New("Color is not available in this cluster")
	ErrOrderNotDraft        = errors.New("заказ не в статусе черновика")
)

// Допустимые статусы для updateState. Проверка нарочно не строже:
// произвольные переходы между нетерминальными статусами разрешены.
var orderStatuses = map[string]bool{
	ds.OrderStatusDraft:      true,
	ds.OrderStatusPending:    true,
	ds.OrderStatusApproved:   true,
	ds.OrderStatusInProgress: true,
	ds.OrderStatusCompleted:  true,
	ds.OrderStatusCancelled:  true,
	ds.OrderStatusArchived:   true,
}

func IsValidOrderStatus(status string) bool {
	return orderStatuses[status]
}

type OrderFilter struct {
	UserID       *uint // заказчик
	ClusterOwner *uint // владелец кластера-исполнителя
	Status       *string
	ClusterID    *uint
}

func (r *Repository) CreateDraftOrder(order *ds.Order) error {
	order.Status = ds.OrderStatusDraft
	return r.db.Create(order).Error
}

// CreateOrderWithCluster создаёт черновик заказа и привязывает его к
// кластеру. Кластер должен принадлежать другому пользователю и уметь
// печатать запрошенным материалом и цветом. В pending заказ уходит
// только через submit.
func (r *Repository) CreateOrderWithCluster(order *ds.Order, clusterID uint) error {
	cluster, err := r.GetClusterByID(clusterID)
	if err != nil {
		return err
	}
	if cluster.UserID == order.UserID {
		return ErrOwnCluster
	}

	if order.MaterialID != nil {
		ok, err := r.ClusterHasMaterial(clusterID, *order.MaterialID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrMaterialNotAvailable
		}
	}
	if order.ColorID != nil {
		ok, err := r.ClusterHasColor(clusterID, *order.ColorID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrColorNotAvailable
		}
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		order.Status = ds.OrderStatusDraft
		if err := tx.Create(order).Error; err != nil {
			return err
		}
		link := ds.OrderCluster{OrderID: order.ID, ClusterID: clusterID}
		return tx.Create(&link).Error
	})
}

func (r *Repository) GetOrderByID(id uint) (*ds.Order, error) {
	var order ds.Order
	err := r.db.Where("id = ? AND status != ?", id, ds.OrderStatusArchived).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *Repository) GetOrders(filter OrderFilter) ([]ds.Order, error) {
	query := r.db.Where("orders.status != ?", ds.OrderStatusArchived)

	if filter.UserID != nil {
		query = query.Where("orders.user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("orders.status = ?", *filter.Status)
	}
	if filter.ClusterID != nil {
		query = query.Where("EXISTS (SELECT 1 FROM order_clusters oc WHERE oc.order_id = orders.id AND oc.cluster_id = ?)", *filter.ClusterID)
	}
	if filter.ClusterOwner != nil {
		query = query.Where(`EXISTS (
			SELECT 1 FROM order_clusters oc
			JOIN clusters c ON c.id = oc.cluster_id
			WHERE oc.order_id = orders.id AND c.user_id = ?)`, *filter.ClusterOwner)
	}

	var orders []ds.Order
	err := query.Order("orders.id DESC").Find(&orders).Error
	return orders, err
}

type OrderPatch struct {
	Title       *string
	Description *string
	MaterialID  *uint
	ColorID     *uint
	Quantity    *int
	Budget      *int
	Deadline    *time.Time
}

// UpdateOrder правит поля черновика, nil-поля не трогаются
func (r *Repository) UpdateOrder(id uint, patch OrderPatch) error {
	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.MaterialID != nil {
		updates["material_id"] = *patch.MaterialID
	}
	if patch.ColorID != nil {
		updates["color_id"] = *patch.ColorID
	}
	if patch.Quantity != nil {
		updates["quantity"] = *patch.Quantity
	}
	if patch.Budget != nil {
		updates["budget"] = *patch.Budget
	}
	if patch.Deadline != nil {
		updates["deadline"] = *patch.Deadline
	}
	if len(updates) == 0 {
		return nil
	}

	result := r.db.Model(&ds.Order{}).
		Where("id = ? AND status = ?", id, ds.OrderStatusDraft).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotDraft
	}
	return nil
}

// SubmitDraftOrder - единственный путь из draft в pending
func (r *Repository) SubmitDraftOrder(id uint) error {
	result := r.db.Model(&ds.Order{}).
		Where("id = ? AND status = ?", id, ds.OrderStatusDraft).
		Update("status", ds.OrderStatusPending)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotDraft
	}
	return nil
}

// UpdateOrderStatus меняет статус заказа. Для completed ставится completed_at.
func (r *Repository) UpdateOrderStatus(id uint, status string) error {
	updates := map[string]interface{}{"status": status}
	if status == ds.OrderStatusCompleted {
		now := time.Now()
		updates["completed_at"] = now
	}

	result := r.db.Model(&ds.Order{}).
		Where("id = ? AND status != ?", id, ds.OrderStatusArchived).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("заказ не найден или архивирован")
	}
	return nil
}

// SQL операция для логического удаления заказа
func (r *Repository) ArchiveOrder(id uint) error {
	result := r.db.Exec("UPDATE orders SET status = 'archived' WHERE id = ? AND status != 'archived'", id)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("заказ не найден или уже архивирован")
	}
	return nil
}

// GetOrderCluster возвращает кластер-исполнитель заказа (если назначен)
func (r *Repository) GetOrderCluster(orderID uint) (*ds.Cluster, error) {
	var cluster ds.Cluster
	err := r.db.
		Joins("JOIN order_clusters ON order_clusters.cluster_id = clusters.id").
		Where("order_clusters.order_id = ?", orderID).
		First(&cluster).Error
	if err != nil {
		return nil, err
	}
	return &cluster, nil
}
