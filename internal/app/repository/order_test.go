package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/app/ds"
)

func createDraftOrder(t *testing.T, r *Repository, userID uint) *ds.Order {
	t.Helper()
	order := &ds.Order{
		UserID:   userID,
		Title:    "Корпус для датчика",
		Quantity: 1,
	}
	require.NoError(t, r.CreateDraftOrder(order))
	return order
}

func TestSubmitDraftOrder(t *testing.T) {
	r := newTestRepo(t)
	customer := createTestUser(t, r)
	order := createDraftOrder(t, r, customer.ID)

	require.NoError(t, r.SubmitDraftOrder(order.ID))

	got, err := r.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.OrderStatusPending, got.Status)

	// Повторная отправка не проходит
	require.ErrorIs(t, r.SubmitDraftOrder(order.ID), ErrOrderNotDraft)
}

func TestUpdateOrderOnlyDraft(t *testing.T) {
	r := newTestRepo(t)
	customer := createTestUser(t, r)
	order := createDraftOrder(t, r, customer.ID)

	title := "Новое название"
	require.NoError(t, r.UpdateOrder(order.ID, OrderPatch{Title: &title}))

	require.NoError(t, r.SubmitDraftOrder(order.ID))
	require.ErrorIs(t, r.UpdateOrder(order.ID, OrderPatch{Title: &title}), ErrOrderNotDraft)
}

func TestCreateOrderWithOwnClusterFails(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	customer := createTestUser(t, r)
	cluster := createTestCluster(t, r, customer.ID, items)

	order := &ds.Order{UserID: customer.ID, Title: "Деталь", Quantity: 1}
	err := r.CreateOrderWithCluster(order, cluster.ID)
	require.ErrorIs(t, err, ErrOwnCluster)
}

func TestCreateOrderWithClusterMaterialCheck(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	customer := createTestUser(t, r)
	provider := createTestUser(t, r)
	cluster := createTestCluster(t, r, provider.ID, items)
	printer := createTestPrinter(t, r, provider.ID)

	require.NoError(t, r.SetPrinterMaterials(printer.ID, []uint{items["pla"].ID}))
	require.NoError(t, r.AttachPrinter(cluster.ID, printer.ID, provider.ID))

	// Кластер не печатает ABS
	order := &ds.Order{UserID: customer.ID, Title: "Деталь", Quantity: 1, MaterialID: &items["abs"].ID}
	err := r.CreateOrderWithCluster(order, cluster.ID)
	require.ErrorIs(t, err, ErrMaterialNotAvailable)

	// PLA доступен - черновик создаётся с привязкой к кластеру
	order = &ds.Order{UserID: customer.ID, Title: "Деталь", Quantity: 1, MaterialID: &items["pla"].ID}
	require.NoError(t, r.CreateOrderWithCluster(order, cluster.ID))
	assert.Equal(t, ds.OrderStatusDraft, order.Status)

	gotCluster, err := r.GetOrderCluster(order.ID)
	require.NoError(t, err)
	assert.Equal(t, cluster.ID, gotCluster.ID)
}

func TestCreateOrderWithClusterStartsAsDraft(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	customer := createTestUser(t, r)
	provider := createTestUser(t, r)
	cluster := createTestCluster(t, r, provider.ID, items)
	printer := createTestPrinter(t, r, provider.ID)
	require.NoError(t, r.AttachPrinter(cluster.ID, printer.ID, provider.ID))

	order := &ds.Order{UserID: customer.ID, Title: "Деталь", Quantity: 1}
	require.NoError(t, r.CreateOrderWithCluster(order, cluster.ID))

	got, err := r.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.OrderStatusDraft, got.Status)

	// Черновик с кластером редактируется и отправляется как обычный
	title := "Деталь v2"
	require.NoError(t, r.UpdateOrder(order.ID, OrderPatch{Title: &title}))
	require.NoError(t, r.SubmitDraftOrder(order.ID))

	got, err = r.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.OrderStatusPending, got.Status)
	require.ErrorIs(t, r.UpdateOrder(order.ID, OrderPatch{Title: &title}), ErrOrderNotDraft)
}

func TestUpdateOrderStatusCompletedAt(t *testing.T) {
	r := newTestRepo(t)
	customer := createTestUser(t, r)
	order := createDraftOrder(t, r, customer.ID)
	require.NoError(t, r.SubmitDraftOrder(order.ID))

	require.NoError(t, r.UpdateOrderStatus(order.ID, ds.OrderStatusInProgress))
	got, err := r.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CompletedAt)

	require.NoError(t, r.UpdateOrderStatus(order.ID, ds.OrderStatusCompleted))
	got, err = r.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.OrderStatusCompleted, got.Status)
	assert.NotNil(t, got.CompletedAt)
}

func TestArchiveOrderHidesIt(t *testing.T) {
	r := newTestRepo(t)
	customer := createTestUser(t, r)
	order := createDraftOrder(t, r, customer.ID)

	require.NoError(t, r.ArchiveOrder(order.ID))

	_, err := r.GetOrderByID(order.ID)
	require.Error(t, err)

	orders, err := r.GetOrders(OrderFilter{UserID: &customer.ID})
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestGetOrdersIncomingFilter(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	customer := createTestUser(t, r)
	provider := createTestUser(t, r)
	cluster := createTestCluster(t, r, provider.ID, items)
	printer := createTestPrinter(t, r, provider.ID)
	require.NoError(t, r.AttachPrinter(cluster.ID, printer.ID, provider.ID))

	order := &ds.Order{UserID: customer.ID, Title: "Деталь", Quantity: 1}
	require.NoError(t, r.CreateOrderWithCluster(order, cluster.ID))

	// Владелец кластера видит входящий заказ
	incoming, err := r.GetOrders(OrderFilter{ClusterOwner: &provider.ID})
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, order.ID, incoming[0].ID)

	// У заказчика он в собственных
	own, err := r.GetOrders(OrderFilter{UserID: &customer.ID})
	require.NoError(t, err)
	assert.Len(t, own, 1)
}

func TestOrderMessagesAccess(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	customer := createTestUser(t, r)
	provider := createTestUser(t, r)
	outsider := createTestUser(t, r)
	cluster := createTestCluster(t, r, provider.ID, items)
	printer := createTestPrinter(t, r, provider.ID)
	require.NoError(t, r.AttachPrinter(cluster.ID, printer.ID, provider.ID))

	order := &ds.Order{UserID: customer.ID, Title: "Деталь", Quantity: 1}
	require.NoError(t, r.CreateOrderWithCluster(order, cluster.ID))

	for _, tc := range []struct {
		userID  uint
		allowed bool
	}{
		{customer.ID, true},
		{provider.ID, true},
		{outsider.ID, false},
	} {
		ok, err := r.CanAccessOrderMessages(order.ID, tc.userID)
		require.NoError(t, err)
		assert.Equal(t, tc.allowed, ok)
	}
}

func TestOrderFilesCount(t *testing.T) {
	r := newTestRepo(t)
	customer := createTestUser(t, r)
	order := createDraftOrder(t, r, customer.ID)

	for i := 0; i < 3; i++ {
		file := &ds.OrderFile{
			OrderID:      order.ID,
			FileName:     "model_abc_1.stl",
			OriginalName: "деталь.stl",
			Size:         1024,
			UploadedBy:   customer.ID,
		}
		require.NoError(t, r.AddOrderFile(file))
	}

	count, err := r.CountOrderFiles(order.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	files, err := r.GetOrderFiles(order.ID)
	require.NoError(t, err)
	require.Len(t, files, 3)

	require.NoError(t, r.DeleteOrderFile(files[0].ID))
	require.ErrorIs(t, r.DeleteOrderFile(files[0].ID), ErrFileNotFound)
}
