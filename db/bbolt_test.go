package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *BboltStore {
	t.Helper()
	bbs, err := NewBBoltDB(t.TempDir(), "TEST.db")
	require.NoError(t, err)
	t.Cleanup(func() { bbs.Close() })
	return bbs
}

func TestStoreGetSubstate(t *testing.T) {
	bbs := testStore(t)

	rec := CachedSubstate{
		SubstateID: "component_aa",
		Version:    3,
		Value:      map[string]any{"balance": float64(100)},
		Result:     "Accept",
		UpdatedAt:  1700000000,
	}
	changes, err := bbs.StoreSubstate(rec)
	require.NoError(t, err)
	assert.True(t, changes)

	got, err := bbs.GetSubstate("component_aa")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec, *got)
}

func TestGetSubstateMissing(t *testing.T) {
	bbs := testStore(t)

	got, err := bbs.GetSubstate("component_ffff")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreSubstateNoID(t *testing.T) {
	bbs := testStore(t)

	changes, err := bbs.StoreSubstate(CachedSubstate{})
	require.Error(t, err)
	assert.False(t, changes)
}

func TestStoreSubstateOverwrite(t *testing.T) {
	bbs := testStore(t)

	_, err := bbs.StoreSubstate(CachedSubstate{SubstateID: "vault_bb", Version: 1})
	require.NoError(t, err)
	_, err = bbs.StoreSubstate(CachedSubstate{SubstateID: "vault_bb", Version: 2})
	require.NoError(t, err)

	got, err := bbs.GetSubstate("vault_bb")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint64(2), got.Version)
}

func TestGetAllSubstates(t *testing.T) {
	bbs := testStore(t)

	for _, id := range []string{"component_aa", "vault_bb", "resource_cc"} {
		_, err := bbs.StoreSubstate(CachedSubstate{SubstateID: id, Version: 1})
		require.NoError(t, err)
	}

	all := bbs.GetAllSubstates()
	require.Len(t, all, 3)
	assert.Equal(t, "vault_bb", all["vault_bb"].SubstateID)
}

func TestLastScannedVersionCursor(t *testing.T) {
	bbs := testStore(t)

	version, err := bbs.GetLastScannedVersion()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), version)

	changes, err := bbs.StoreLastScannedVersion(42)
	require.NoError(t, err)
	assert.True(t, changes)

	version, err = bbs.GetLastScannedVersion()
	require.NoError(t, err)
	assert.Equal(t, uint64(42), version)
}
