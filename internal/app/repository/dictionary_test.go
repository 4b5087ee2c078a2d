package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/app/ds"
)

func TestValidateLocationHierarchy(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)

	// Полная согласованная цепочка
	err := r.ValidateLocationHierarchy(items["region"].ID, items["city"].ID, &items["metro"].ID)
	require.NoError(t, err)

	// Без метро тоже допустимо
	require.NoError(t, r.ValidateLocationHierarchy(items["region"].ID, items["city"].ID, nil))

	// Метро из другого города
	err = r.ValidateLocationHierarchy(items["region"].ID, items["otherCity"].ID, &items["metro"].ID)
	require.ErrorIs(t, err, ErrBadParent)

	// Город вместо региона
	err = r.ValidateLocationHierarchy(items["city"].ID, items["city"].ID, nil)
	require.ErrorIs(t, err, ErrBadParent)
}

func TestGetDictionaryItemsByParent(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)

	// Все города региона
	cities, err := r.GetDictionaryItems(ds.DictionaryCities, &items["region"].ID, true)
	require.NoError(t, err)
	assert.Len(t, cities, 2)

	// parent_id=null отдаёт только корневые элементы
	roots, err := r.GetDictionaryItems(ds.DictionaryRegions, nil, true)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, items["region"].ID, roots[0].ID)

	// Без фильтра - все элементы справочника
	all, err := r.GetDictionaryItems(ds.DictionaryCities, nil, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGetDictionaryItemsUnknownDictionary(t *testing.T) {
	r := newTestRepo(t)
	seedDictionaries(t, r)

	_, err := r.GetDictionaryItems("unknown", nil, false)
	require.ErrorIs(t, err, ErrDictionaryNotFound)
}

func TestDeactivateDictionaryItem(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)

	require.NoError(t, r.DeactivateDictionaryItem(items["pla"].ID))

	materials, err := r.GetDictionaryItems(ds.DictionaryMaterials, nil, false)
	require.NoError(t, err)
	require.Len(t, materials, 1)
	assert.Equal(t, items["abs"].ID, materials[0].ID)

	// Деактивированный элемент не находится
	_, err = r.GetDictionaryItemByID(items["pla"].ID)
	require.Error(t, err)
}
