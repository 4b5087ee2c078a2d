package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/app/ds"
)

func TestActivateClusterWithoutPrinters(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	owner := createTestUser(t, r)
	cluster := createTestCluster(t, r, owner.ID, items)

	err := r.ActivateCluster(cluster.ID)
	require.Error(t, err)

	got, err := r.GetClusterByID(cluster.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.ClusterStateDraft, got.State)
}

func TestActivateClusterWithPrinter(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	owner := createTestUser(t, r)
	cluster := createTestCluster(t, r, owner.ID, items)
	printer := createTestPrinter(t, r, owner.ID)

	require.NoError(t, r.AttachPrinter(cluster.ID, printer.ID, owner.ID))
	require.NoError(t, r.ActivateCluster(cluster.ID))

	got, err := r.GetClusterByID(cluster.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.ClusterStateActive, got.State)

	// Зеркальное поле принтера обновилось в той же транзакции
	gotPrinter, err := r.GetPrinterByID(printer.ID)
	require.NoError(t, err)
	require.NotNil(t, gotPrinter.ClusterID)
	assert.Equal(t, cluster.ID, *gotPrinter.ClusterID)
}

func TestDeactivateClusterIfNoAvailablePrinters(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	owner := createTestUser(t, r)
	cluster := createTestCluster(t, r, owner.ID, items)
	printer := createTestPrinter(t, r, owner.ID)

	require.NoError(t, r.AttachPrinter(cluster.ID, printer.ID, owner.ID))
	require.NoError(t, r.ActivateCluster(cluster.ID))

	// Единственный принтер ушёл в обслуживание - кластер гаснет
	require.NoError(t, r.UpdatePrinterState(printer.ID, ds.PrinterStateMaintenance))
	require.NoError(t, r.DeactivateClusterIfNoAvailablePrinters(cluster.ID))

	got, err := r.GetClusterByID(cluster.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.ClusterStateInactive, got.State)
}

func TestBusyPrinterKeepsClusterActive(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	owner := createTestUser(t, r)
	cluster := createTestCluster(t, r, owner.ID, items)
	printer := createTestPrinter(t, r, owner.ID)

	require.NoError(t, r.AttachPrinter(cluster.ID, printer.ID, owner.ID))
	require.NoError(t, r.ActivateCluster(cluster.ID))

	// Занятый принтер - рабочий, кластер остаётся активным
	require.NoError(t, r.UpdatePrinterState(printer.ID, ds.PrinterStateBusy))
	require.NoError(t, r.DeactivateClusterIfNoAvailablePrinters(cluster.ID))

	got, err := r.GetClusterByID(cluster.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.ClusterStateActive, got.State)

	count, err := r.CountAvailableClusterPrinters(cluster.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestDeactivateClusterSkipsNonActive(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	owner := createTestUser(t, r)
	cluster := createTestCluster(t, r, owner.ID, items)

	// Черновик без принтеров не трогаем
	require.NoError(t, r.DeactivateClusterIfNoAvailablePrinters(cluster.ID))

	got, err := r.GetClusterByID(cluster.ID)
	require.NoError(t, err)
	assert.Equal(t, ds.ClusterStateDraft, got.State)
}

func TestDetachPrinterClearsMirror(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	owner := createTestUser(t, r)
	cluster := createTestCluster(t, r, owner.ID, items)
	printer := createTestPrinter(t, r, owner.ID)

	require.NoError(t, r.AttachPrinter(cluster.ID, printer.ID, owner.ID))
	require.NoError(t, r.DetachPrinter(cluster.ID, printer.ID))

	gotPrinter, err := r.GetPrinterByID(printer.ID)
	require.NoError(t, err)
	assert.Nil(t, gotPrinter.ClusterID)

	// Повторная отвязка не проходит
	require.Error(t, r.DetachPrinter(cluster.ID, printer.ID))
}

func TestAttachPrinterTwice(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	owner := createTestUser(t, r)
	cluster := createTestCluster(t, r, owner.ID, items)
	printer := createTestPrinter(t, r, owner.ID)

	require.NoError(t, r.AttachPrinter(cluster.ID, printer.ID, owner.ID))
	require.Error(t, r.AttachPrinter(cluster.ID, printer.ID, owner.ID))
}

func TestClusterMaterialFilter(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	owner := createTestUser(t, r)
	cluster := createTestCluster(t, r, owner.ID, items)
	printer := createTestPrinter(t, r, owner.ID)

	require.NoError(t, r.SetPrinterMaterials(printer.ID, []uint{items["pla"].ID}))
	require.NoError(t, r.AttachPrinter(cluster.ID, printer.ID, owner.ID))

	ok, err := r.ClusterHasMaterial(cluster.ID, items["pla"].ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.ClusterHasMaterial(cluster.ID, items["abs"].ID)
	require.NoError(t, err)
	assert.False(t, ok)

	// Фильтр списка кластеров по материалу
	clusters, err := r.GetClusters(ClusterFilter{MaterialID: &items["pla"].ID})
	require.NoError(t, err)
	require.Len(t, clusters, 1)
	assert.Equal(t, cluster.ID, clusters[0].ID)

	clusters, err = r.GetClusters(ClusterFilter{MaterialID: &items["abs"].ID})
	require.NoError(t, err)
	assert.Empty(t, clusters)
}

func TestClusterCapabilityIgnoresUnavailablePrinters(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	owner := createTestUser(t, r)
	cluster := createTestCluster(t, r, owner.ID, items)
	printer := createTestPrinter(t, r, owner.ID)

	require.NoError(t, r.SetPrinterMaterials(printer.ID, []uint{items["pla"].ID}))
	require.NoError(t, r.SetPrinterColors(printer.ID, []uint{items["red"].ID}))
	require.NoError(t, r.AttachPrinter(cluster.ID, printer.ID, owner.ID))

	// Единственный принтер в обслуживании - кластер ничего не печатает
	require.NoError(t, r.UpdatePrinterState(printer.ID, ds.PrinterStateMaintenance))

	ok, err := r.ClusterHasMaterial(cluster.ID, items["pla"].ID)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.ClusterHasColor(cluster.ID, items["red"].ID)
	require.NoError(t, err)
	assert.False(t, ok)

	clusters, err := r.GetClusters(ClusterFilter{MaterialID: &items["pla"].ID})
	require.NoError(t, err)
	assert.Empty(t, clusters)

	// Занятый принтер считается
	require.NoError(t, r.UpdatePrinterState(printer.ID, ds.PrinterStateBusy))

	ok, err = r.ClusterHasMaterial(cluster.ID, items["pla"].ID)
	require.NoError(t, err)
	assert.True(t, ok)

	clusters, err = r.GetClusters(ClusterFilter{MaterialID: &items["pla"].ID})
	require.NoError(t, err)
	require.Len(t, clusters, 1)
	assert.Equal(t, cluster.ID, clusters[0].ID)
}

func TestArchiveClusterHidesIt(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	owner := createTestUser(t, r)
	cluster := createTestCluster(t, r, owner.ID, items)

	require.NoError(t, r.ArchiveCluster(cluster.ID))

	_, err := r.GetClusterByID(cluster.ID)
	require.Error(t, err)

	// Повторная архивация не проходит
	require.Error(t, r.ArchiveCluster(cluster.ID))
}
