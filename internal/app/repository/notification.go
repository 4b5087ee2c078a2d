package repository

import (
	"errors"

	"backend/internal/app/ds"
)

// Уведомления

func (r *Repository) CreateNotification(notification *ds.Notification) error {
	return r.db.Create(notification).Error
}

func (r *Repository) GetNotifications(userID uint, unreadOnly bool) ([]ds.Notification, error) {
	query := r.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []ds.Notification
	err := query.Order("id DESC").Find(&notifications).Error
	return notifications, err
}

func (r *Repository) CountUnreadNotifications(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&ds.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkNotificationRead помечает уведомление прочитанным, только своё
func (r *Repository) MarkNotificationRead(id, userID uint) error {
	result := r.db.Model(&ds.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("уведомление не найдено")
	}
	return nil
}

func (r *Repository) MarkAllNotificationsRead(userID uint) error {
	return r.db.Model(&ds.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
