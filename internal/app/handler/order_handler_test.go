package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/app/ds"
	"backend/internal/app/dto"
)

func TestUpdateOrderStatusRejectsArchived(t *testing.T) {
	h, r := newTestHandler(t)
	regionID, cityID := seedHandlerLocation(t, r)
	customer := newHandlerTestUser(t, r)
	provider := newHandlerTestUser(t, r)

	cluster := &ds.Cluster{
		UserID:   provider.ID,
		Name:     "Центр",
		RegionID: regionID,
		CityID:   cityID,
		State:    ds.ClusterStateDraft,
	}
	require.NoError(t, r.CreateCluster(cluster))

	order := &ds.Order{UserID: customer.ID, Title: "Деталь", Quantity: 1}
	require.NoError(t, r.CreateOrderWithCluster(order, cluster.ID))
	require.NoError(t, r.SubmitDraftOrder(order.ID))

	params := gin.Params{idParam("id", order.ID)}

	// Владелец кластера не архивирует чужой заказ через смену статуса
	c, w := newAuthedContext(t, provider.ID, http.MethodPut, dto.UpdateOrderStatusRequest{Status: ds.OrderStatusArchived}, params)
	h.UpdateOrderStatus(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// И сам заказчик тоже: архивация только через удаление
	c, w = newAuthedContext(t, customer.ID, http.MethodPut, dto.UpdateOrderStatusRequest{Status: ds.OrderStatusArchived}, params)
	h.UpdateOrderStatus(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	got, err := r.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.OrderStatusPending, got.Status)

	// Обычный переход владельцу кластера доступен
	c, w = newAuthedContext(t, provider.ID, http.MethodPut, dto.UpdateOrderStatusRequest{Status: ds.OrderStatusInProgress}, params)
	h.UpdateOrderStatus(c)
	require.Equal(t, http.StatusOK, w.Code)

	got, err = r.GetOrderByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.OrderStatusInProgress, got.Status)
}
