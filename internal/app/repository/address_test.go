package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backend/internal/app/ds"
)

func createTestAddress(t *testing.T, r *Repository, userID uint, items map[string]*ds.DictionaryItem, isDefault bool) *ds.Address {
	t.Helper()
	address := &ds.Address{
		UserID:    userID,
		RegionID:  items["region"].ID,
		CityID:    items["city"].ID,
		Street:    "Тверская",
		House:     "1",
		IsDefault: isDefault,
	}
	require.NoError(t, r.CreateAddress(address))
	return address
}

func TestCreateAddressDefaultSwitch(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	user := createTestUser(t, r)

	first := createTestAddress(t, r, user.ID, items, true)
	second := createTestAddress(t, r, user.ID, items, true)

	addresses, err := r.GetAddresses(user.ID)
	require.NoError(t, err)
	require.Len(t, addresses, 2)

	// Флаг по умолчанию остаётся только у последнего
	gotFirst, err := r.GetAddressByID(first.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, gotFirst.IsDefault)

	gotSecond, err := r.GetAddressByID(second.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, gotSecond.IsDefault)
}

func TestSetDefaultAddress(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	user := createTestUser(t, r)

	first := createTestAddress(t, r, user.ID, items, true)
	second := createTestAddress(t, r, user.ID, items, false)

	require.NoError(t, r.SetDefaultAddress(second.ID, user.ID))

	gotFirst, err := r.GetAddressByID(first.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, gotFirst.IsDefault)

	gotSecond, err := r.GetAddressByID(second.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, gotSecond.IsDefault)
}

func TestDeleteAddressOwnerOnly(t *testing.T) {
	r := newTestRepo(t)
	items := seedDictionaries(t, r)
	owner := createTestUser(t, r)
	other := createTestUser(t, r)

	address := createTestAddress(t, r, owner.ID, items, false)

	require.Error(t, r.DeleteAddress(address.ID, other.ID))
	require.NoError(t, r.DeleteAddress(address.ID, owner.ID))

	_, err := r.GetAddressByID(address.ID, owner.ID)
	require.Error(t, err)
}
