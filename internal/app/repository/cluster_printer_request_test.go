package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/app/ds"
)

func TestCreatePrinterRequestOnlyOnePending(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	clusterOwner := createTestUser(t, r)
	printerOwner := createTestUser(t, r)
	cluster := createTestCluster(t, r, clusterOwner.ID, items)
	printer := createTestPrinter(t, r, printerOwner.ID)

	_, err := r.CreatePrinterRequest(cluster.ID, printer.ID, clusterOwner.ID, printerOwner.ID, "возьмите принтер в кластер")
	require.NoError(t, err)

	_, err = r.CreatePrinterRequest(cluster.ID, printer.ID, clusterOwner.ID, printerOwner.ID, "ещё раз")
	require.ErrorIs(t, err, ErrRequestAlreadyPending)
}

func TestCreatePrinterRequestAlreadyAttached(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	clusterOwner := createTestUser(t, r)
	printerOwner := createTestUser(t, r)
	cluster := createTestCluster(t, r, clusterOwner.ID, items)
	printer := createTestPrinter(t, r, printerOwner.ID)

	require.NoError(t, r.AttachPrinter(cluster.ID, printer.ID, printerOwner.ID))

	_, err := r.CreatePrinterRequest(cluster.ID, printer.ID, clusterOwner.ID, printerOwner.ID, "")
	require.ErrorIs(t, err, ErrPrinterAlreadyInUse)
}

func TestApprovePrinterRequestAttaches(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	clusterOwner := createTestUser(t, r)
	printerOwner := createTestUser(t, r)
	cluster := createTestCluster(t, r, clusterOwner.ID, items)
	printer := createTestPrinter(t, r, printerOwner.ID)

	request, err := r.CreatePrinterRequest(cluster.ID, printer.ID, clusterOwner.ID, printerOwner.ID, "")
	require.NoError(t, err)

	require.NoError(t, r.ApprovePrinterRequest(request.ID))

	got, err := r.GetPrinterRequestByID(request.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.RequestStatusApproved, got.Status)

	attached, err := r.IsPrinterAttached(cluster.ID, printer.ID)
	require.NoError(t, err)
	assert.True(t, attached)

	gotPrinter, err := r.GetPrinterByID(printer.ID)
	require.NoError(t, err)
	require.NotNil(t, gotPrinter.ClusterID)
	assert.Equal(t, cluster.ID, *gotPrinter.ClusterID)
}

func TestApprovePrinterRequestTwice(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	clusterOwner := createTestUser(t, r)
	printerOwner := createTestUser(t, r)
	cluster := createTestCluster(t, r, clusterOwner.ID, items)
	printer := createTestPrinter(t, r, printerOwner.ID)

	request, err := r.CreatePrinterRequest(cluster.ID, printer.ID, clusterOwner.ID, printerOwner.ID, "")
	require.NoError(t, err)

	require.NoError(t, r.ApprovePrinterRequest(request.ID))
	require.ErrorIs(t, r.ApprovePrinterRequest(request.ID), ErrRequestNotPending)
}

func TestRejectThenApproveFails(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	clusterOwner := createTestUser(t, r)
	printerOwner := createTestUser(t, r)
	cluster := createTestCluster(t, r, clusterOwner.ID, items)
	printer := createTestPrinter(t, r, printerOwner.ID)

	request, err := r.CreatePrinterRequest(cluster.ID, printer.ID, clusterOwner.ID, printerOwner.ID, "")
	require.NoError(t, err)

	require.NoError(t, r.RejectPrinterRequest(request.ID))
	require.ErrorIs(t, r.ApprovePrinterRequest(request.ID), ErrRequestNotPending)

	// Принтер не привязался
	attached, err := r.IsPrinterAttached(cluster.ID, printer.ID)
	require.NoError(t, err)
	assert.False(t, attached)
}

func TestCancelPrinterRequest(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	clusterOwner := createTestUser(t, r)
	printerOwner := createTestUser(t, r)
	cluster := createTestCluster(t, r, clusterOwner.ID, items)
	printer := createTestPrinter(t, r, printerOwner.ID)

	request, err := r.CreatePrinterRequest(cluster.ID, printer.ID, clusterOwner.ID, printerOwner.ID, "")
	require.NoError(t, err)

	require.NoError(t, r.CancelPrinterRequest(request.ID))

	got, err := r.GetPrinterRequestByID(request.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.RequestStatusCancelled, got.Status)

	// После отмены можно создать новый запрос
	_, err = r.CreatePrinterRequest(cluster.ID, printer.ID, clusterOwner.ID, printerOwner.ID, "")
	require.NoError(t, err)
}

func TestIncomingOutgoingRequests(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	clusterOwner := createTestUser(t, r)
	printerOwner := createTestUser(t, r)
	cluster := createTestCluster(t, r, clusterOwner.ID, items)
	printer := createTestPrinter(t, r, printerOwner.ID)

	_, err := r.CreatePrinterRequest(cluster.ID, printer.ID, clusterOwner.ID, printerOwner.ID, "")
	require.NoError(t, err)

	incoming, err := r.GetIncomingRequests(printerOwner.ID)
	require.NoError(t, err)
	assert.Len(t, incoming, 1)

	outgoing, err := r.GetOutgoingRequests(clusterOwner.ID)
	require.NoError(t, err)
	assert.Len(t, outgoing, 1)

	// С другой стороны списки пустые
	incoming, err = r.GetIncomingRequests(clusterOwner.ID)
	require.NoError(t, err)
	assert.Empty(t, incoming)
}
