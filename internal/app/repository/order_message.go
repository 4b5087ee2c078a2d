package repository

import (
	"backend/internal/app/ds"
)

// Сообщения по заказу

func (r *Repository) CreateOrderMessage(message *ds.OrderMessage) error {
	return r.db.Create(message).Error
}

func (r *Repository) GetOrderMessages(orderID uint) ([]ds.OrderMessage, error) {
	var messages []ds.OrderMessage
	err := r.db.Where("order_id = ?", orderID).Order("id").Find(&messages).Error
	return messages, err
}

// CanAccessOrderMessages - писать и читать переписку могут только
// заказчик и владелец кластера-исполнителя
func (r *Repository) CanAccessOrderMessages(orderID, userID uint) (bool, error) {
	order, err := r.GetOrderByID(orderID)
	if err != nil {
		return false, err
	}
	if order.UserID == userID {
		return true, nil
	}

	cluster, err := r.GetOrderCluster(orderID)
	if err != nil {
		if r.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return cluster.UserID == userID, nil
}
