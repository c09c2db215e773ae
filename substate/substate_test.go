package substate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	ids := []ID{
		Component("deadbeef"),
		Resource("ab12"),
		Vault("0011"),
		UnclaimedConfidentialOutput("ffee"),
		NonFungible("0badcafe"),
		TransactionReceipt("1234"),
		FeeClaim("5678"),
	}
	for _, id := range ids {
		back, err := FromString(id.String())
		require.NoError(t, err, id.String())
		assert.Equal(t, id, back)
	}
}

func TestFromString(t *testing.T) {
	id, err := FromString("component_ab12")
	require.NoError(t, err)
	assert.Equal(t, Component("ab12"), id)

	// only the first underscore splits
	id, err = FromString("vault_ab_12")
	require.NoError(t, err)
	assert.Equal(t, Vault("ab_12"), id)
}

func TestFromStringErrors(t *testing.T) {
	_, err := FromString("bogus")
	require.ErrorIs(t, err, ErrMalformedSubstateID)

	_, err = FromString("xyz_ab12")
	require.ErrorIs(t, err, ErrUnknownSubstatePrefix)
}

func TestNonFungibleIndexString(t *testing.T) {
	idx := NonFungibleIndex{ResourceAddress: Resource("ab12"), Index: 5}
	assert.Equal(t, "resource_ab12:5", idx.String())
}
