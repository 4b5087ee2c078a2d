package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/app/ds"
)

func TestPrinterStateArchivedIsTerminal(t *testing.T) {
	r := newTestRepo(t)
	owner := createTestUser(t, r)
	printer := createTestPrinter(t, r, owner.ID)

	require.NoError(t, r.UpdatePrinterState(printer.ID, ds.PrinterStateBusy))
	require.NoError(t, r.ArchivePrinter(printer.ID))

	// Из archived дороги назад нет
	require.Error(t, r.UpdatePrinterState(printer.ID, ds.PrinterStateAvailable))
	_, err := r.GetPrinterByID(printer.ID)
	require.Error(t, err)
}

func TestPrinterFilters(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	owner := createTestUser(t, r)
	other := createTestUser(t, r)

	p1 := createTestPrinter(t, r, owner.ID)
	p2 := createTestPrinter(t, r, other.ID)
	require.NoError(t, r.SetPrinterMaterials(p1.ID, []uint{items["pla"].ID}))
	require.NoError(t, r.SetPrinterColors(p1.ID, []uint{items["red"].ID}))
	require.NoError(t, r.UpdatePrinterState(p2.ID, ds.PrinterStateBusy))

	byOwner, err := r.GetPrinters(PrinterFilter{UserID: &owner.ID})
	require.NoError(t, err)
	require.Len(t, byOwner, 1)
	assert.Equal(t, p1.ID, byOwner[0].ID)

	available := ds.PrinterStateAvailable
	byState, err := r.GetPrinters(PrinterFilter{State: &available})
	require.NoError(t, err)
	require.Len(t, byState, 1)
	assert.Equal(t, p1.ID, byState[0].ID)

	byMaterial, err := r.GetPrinters(PrinterFilter{MaterialID: &items["pla"].ID})
	require.NoError(t, err)
	require.Len(t, byMaterial, 1)

	byColor, err := r.GetPrinters(PrinterFilter{ColorID: &items["blue"].ID})
	require.NoError(t, err)
	assert.Empty(t, byColor)
}

func TestUpdatePrinterPatch(t *testing.T) {
	r := newTestRepo(t)
	owner := createTestUser(t, r)
	printer := createTestPrinter(t, r, owner.ID)

	price := 250
	require.NoError(t, r.UpdatePrinter(printer.ID, PrinterPatch{PricePerHour: &price}))

	got, err := r.GetPrinterByID(printer.ID)
	require.NoError(t, err)
	assert.Equal(t, 250, got.PricePerHour)
	// Остальные поля не тронуты
	assert.Equal(t, "Prusa MK4", got.ModelName)
}

func TestSetPrinterMaterialsReplaces(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	owner := createTestUser(t, r)
	printer := createTestPrinter(t, r, owner.ID)

	require.NoError(t, r.SetPrinterMaterials(printer.ID, []uint{items["pla"].ID, items["abs"].ID}))
	ids, err := r.GetPrinterMaterialIDs(printer.ID)
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	require.NoError(t, r.SetPrinterMaterials(printer.ID, []uint{items["abs"].ID}))
	ids, err = r.GetPrinterMaterialIDs(printer.ID)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.Equal(t, items["abs"].ID, ids[0])
}
