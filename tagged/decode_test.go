package tagged

import (
	"encoding/hex"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryTagAddresses(t *testing.T) {
	prefixes := map[BinaryTag]string{
		TagComponentAddress:   "component",
		TagMetadata:           "metadata",
		TagNonFungibleAddress: "nft",
		TagResourceAddress:    "resource",
		TagVaultID:            "vault",
		TagTransactionReceipt: "txreceipt",
		TagFeeClaim:           "feeclaim",
	}

	rng := rand.New(rand.NewSource(1))
	for tag, prefix := range prefixes {
		for _, size := range []int{0, 1, 16, 32, 64} {
			b := make([]byte, size)
			rng.Read(b)

			got := Decode(Tag(uint64(tag), Bytes(b)))
			want := prefix + "_" + hex.EncodeToString(b)
			require.Equal(t, want, got)

			// two lowercase digits per byte, nothing else
			s := got.(string)
			hexPart := strings.TrimPrefix(s, prefix+"_")
			assert.Len(t, hexPart, size*2)
			assert.Equal(t, strings.ToLower(hexPart), hexPart)
		}
	}
}

func TestUnknownTagPassesThrough(t *testing.T) {
	// 999 is no binary tag; the tag is discarded, the inner value survives
	assert.Equal(t, "inner", Decode(Tag(999, Text("inner"))))

	// a known tag over something that is not bytes decodes its inner too
	assert.Equal(t, int64(7), Decode(Tag(uint64(TagVaultID), Integer(7))))
}

func TestDecodeLeaves(t *testing.T) {
	assert.Nil(t, Decode(nil))
	assert.Nil(t, Decode(Null()))
	assert.Equal(t, "x", Decode(Text("x")))
	assert.Equal(t, int64(-3), Decode(Integer(-3)))
	assert.Equal(t, false, Decode(Bool(false)))
	assert.Equal(t, []byte{1, 2}, Decode(Bytes([]byte{1, 2})))
}

func TestDecodeMapKeys(t *testing.T) {
	// non-text keys are decoded first, then stringified
	tree := Map(
		Pair{Key: Integer(7), Value: Text("seven")},
		Pair{Key: Text("name"), Value: Text("acct")},
	)
	assert.Equal(t, map[string]any{"7": "seven", "name": "acct"}, Decode(tree))
}

func TestDecodeNestedAddresses(t *testing.T) {
	tree := Map(
		Pair{
			Key:   Text("vaults"),
			Value: Array(Tag(uint64(TagVaultID), Bytes([]byte{0xab, 0xcd}))),
		},
	)
	assert.Equal(t, map[string]any{"vaults": []any{"vault_abcd"}}, Decode(tree))
}
