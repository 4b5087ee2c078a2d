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

func TestAttachPrinterAccess(t *testing.T) {
	h, r := newTestHandler(t)
	regionID, cityID := seedHandlerLocation(t, r)
	clusterOwner := newHandlerTestUser(t, r)
	printerOwner := newHandlerTestUser(t, r)
	outsider := newHandlerTestUser(t, r)

	cluster := &ds.Cluster{
		UserID:   clusterOwner.ID,
		Name:     "Центр",
		RegionID: regionID,
		CityID:   cityID,
		State:    ds.ClusterStateDraft,
	}
	require.NoError(t, r.CreateCluster(cluster))

	printer := &ds.Printer{
		UserID:       printerOwner.ID,
		ModelName:    "Prusa MK4",
		PricePerHour: 100,
		Quantity:     1,
		State:        ds.PrinterStateAvailable,
	}
	require.NoError(t, r.CreatePrinter(printer))

	body := dto.AttachPrinterRequest{PrinterID: printer.ID}
	params := gin.Params{idParam("id", cluster.ID)}

	// Посторонний не привязывает чужой принтер к чужому кластеру
	c, w := newAuthedContext(t, outsider.ID, http.MethodPost, body, params)
	h.AttachPrinterToCluster(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Владелец принтера привязывает его к чужому кластеру
	c, w = newAuthedContext(t, printerOwner.ID, http.MethodPost, body, params)
	h.AttachPrinterToCluster(c)
	require.Equal(t, http.StatusOK, w.Code)

	gotPrinter, err := r.GetPrinterByID(printer.ID)
	require.NoError(t, err)
	require.NotNil(t, gotPrinter.ClusterID)
	assert.Equal(t, cluster.ID, *gotPrinter.ClusterID)

	// Владелец кластера привязывает собственный принтер
	ownPrinter := &ds.Printer{
		UserID:       clusterOwner.ID,
		ModelName:    "Ender 3",
		PricePerHour: 80,
		Quantity:     1,
		State:        ds.PrinterStateAvailable,
	}
	require.NoError(t, r.CreatePrinter(ownPrinter))

	c, w = newAuthedContext(t, clusterOwner.ID, http.MethodPost, dto.AttachPrinterRequest{PrinterID: ownPrinter.ID}, params)
	h.AttachPrinterToCluster(c)
	assert.Equal(t, http.StatusOK, w.Code)
}
