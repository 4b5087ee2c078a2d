package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/app/ds"
)

func createTestNotification(t *testing.T, r *Repository, userID uint) *ds.Notification {
	t.Helper()
	n := &ds.Notification{
		UserID: userID,
		Type:   ds.NotificationOrderCompleted,
		Title:  "Заказ выполнен",
	}
	require.NoError(t, r.CreateNotification(n))
	return n
}

func TestNotificationsUnreadFilter(t *testing.T) {
	r := newTestRepo(t)
	user := createTestUser(t, r)

	first := createTestNotification(t, r, user.ID)
	createTestNotification(t, r, user.ID)

	require.NoError(t, r.MarkNotificationRead(first.ID, user.ID))

	all, err := r.GetNotifications(user.ID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	unread, err := r.GetNotifications(user.ID, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)

	count, err := r.CountUnreadNotifications(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestMarkNotificationReadForeignUser(t *testing.T) {
	r := newTestRepo(t)
	owner := createTestUser(t, r)
	other := createTestUser(t, r)

	n := createTestNotification(t, r, owner.ID)

	// Чужое уведомление пометить нельзя
	require.Error(t, r.MarkNotificationRead(n.ID, other.ID))

	count, err := r.CountUnreadNotifications(owner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	r := newTestRepo(t)
	user := createTestUser(t, r)

	createTestNotification(t, r, user.ID)
	createTestNotification(t, r, user.ID)

	require.NoError(t, r.MarkAllNotificationsRead(user.ID))

	count, err := r.CountUnreadNotifications(user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}
