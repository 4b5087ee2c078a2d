package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"backend/internal/app/ds"
)

var testDBSeq int

// newTestRepo поднимает репозиторий на sqlite в памяти,
// у каждого теста своя база
func newTestRepo(t *testing.T) *Repository {
	t.Helper()

	testDBSeq++
	dbName := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq)
	db, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	repo, err := NewWithDB(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return repo
}

var testUserSeq int

func createTestUser(t *testing.T, r *Repository) *ds.User {
	t.Helper()
	testUserSeq++
	user, err := r.CreateUser(fmt.Sprintf("user%d@example.com", testUserSeq), "hash", "salt")
	require.NoError(t, err)
	return user
}

// seedDictionaries создаёт системные справочники и базовую иерархию локаций
func seedDictionaries(t *testing.T, r *Repository) map[string]*ds.DictionaryItem {
	t.Helper()

	dictionaries := map[string]*ds.Dictionary{}
	for _, name := range []string{
		ds.DictionaryRegions, ds.DictionaryCities, ds.DictionaryMetroStations,
		ds.DictionaryMaterials, ds.DictionaryColors, ds.DictionaryDeliveryMethods,
	} {
		d := &ds.Dictionary{Name: name}
		require.NoError(t, r.CreateDictionary(d))
		dictionaries[name] = d
	}

	items := map[string]*ds.DictionaryItem{}
	addItem := func(key, dictName, value string, parent *ds.DictionaryItem) {
		item := &ds.DictionaryItem{
			DictionaryID: dictionaries[dictName].ID,
			Value:        value,
			IsActive:     true,
		}
		if parent != nil {
			item.ParentID = &parent.ID
		}
		require.NoError(t, r.CreateDictionaryItem(item))
		items[key] = item
	}

	addItem("region", ds.DictionaryRegions, "Московская область", nil)
	addItem("city", ds.DictionaryCities, "Москва", items["region"])
	addItem("metro", ds.DictionaryMetroStations, "Китай-город", items["city"])
	addItem("otherCity", ds.DictionaryCities, "Химки", items["region"])
	addItem("pla", ds.DictionaryMaterials, "PLA", nil)
	addItem("abs", ds.DictionaryMaterials, "ABS", nil)
	addItem("red", ds.DictionaryColors, "Красный", nil)
	addItem("blue", ds.DictionaryColors, "Синий", nil)

	return items
}

func createTestPrinter(t *testing.T, r *Repository, userID uint) *ds.Printer {
	t.Helper()
	printer := &ds.Printer{
		UserID:       userID,
		ModelName:    "Prusa MK4",
		PricePerHour: 100,
		Quantity:     1,
		State:        ds.PrinterStateAvailable,
	}
	require.NoError(t, r.CreatePrinter(printer))
	return printer
}

func createTestCluster(t *testing.T, r *Repository, userID uint, items map[string]*ds.DictionaryItem) *ds.Cluster {
	t.Helper()
	cluster := &ds.Cluster{
		UserID:   userID,
		Name:     "Центр",
		RegionID: items["region"].ID,
		CityID:   items["city"].ID,
		State:    ds.ClusterStateDraft,
	}
	require.NoError(t, r.CreateCluster(cluster))
	return cluster
}
