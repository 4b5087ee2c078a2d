package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/app/ds"
)

func TestPlatformStats(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	customer := createTestUser(t, r)
	provider := createTestUser(t, r)

	cluster := createTestCluster(t, r, provider.ID, items)
	printer := createTestPrinter(t, r, provider.ID)
	require.NoError(t, r.AttachPrinter(cluster.ID, printer.ID, provider.ID))
	require.NoError(t, r.ActivateCluster(cluster.ID))

	// Архивный принтер в статистику не попадает
	archived := createTestPrinter(t, r, provider.ID)
	require.NoError(t, r.ArchivePrinter(archived.ID))

	order := createDraftOrder(t, r, customer.ID)
	require.NoError(t, r.SubmitDraftOrder(order.ID))
	require.NoError(t, r.UpdateOrderStatus(order.ID, ds.OrderStatusCompleted))

	stats, err := r.GetPlatformStats()
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Printers)
	assert.EqualValues(t, 1, stats.ActiveClusters)
	assert.EqualValues(t, 1, stats.CompletedOrders)
	assert.EqualValues(t, 2, stats.Users)
}

func TestUserStatsIncomingOrders(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	customer := createTestUser(t, r)
	provider := createTestUser(t, r)

	cluster := createTestCluster(t, r, provider.ID, items)
	printer := createTestPrinter(t, r, provider.ID)
	require.NoError(t, r.AttachPrinter(cluster.ID, printer.ID, provider.ID))

	order := &ds.Order{UserID: customer.ID, Title: "Деталь", Quantity: 1}
	require.NoError(t, r.CreateOrderWithCluster(order, cluster.ID))

	providerStats, err := r.GetUserStats(provider.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, providerStats.Printers)
	assert.EqualValues(t, 1, providerStats.Clusters)
	assert.EqualValues(t, 0, providerStats.Orders)
	assert.EqualValues(t, 1, providerStats.IncomingOrders)

	customerStats, err := r.GetUserStats(customer.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, customerStats.Orders)
	assert.EqualValues(t, 0, customerStats.IncomingOrders)
}
