package tagged

import (
	"encoding/hex"
	"fmt"
)

// BinaryTag marks a Bytes node as a domain address. The set is closed; these
// numbers are fixed by the backend.
type BinaryTag uint64

const (
	TagComponentAddress   BinaryTag = 128
	TagMetadata           BinaryTag = 129
	TagNonFungibleAddress BinaryTag = 130
	TagResourceAddress    BinaryTag = 131
	TagVaultID            BinaryTag = 132
	TagTransactionReceipt BinaryTag = 134
	TagFeeClaim           BinaryTag = 135
)

var tagPrefixes = map[BinaryTag]string{
	TagComponentAddress:   "component",
	TagMetadata:           "metadata",
	TagNonFungibleAddress: "nft",
	TagResourceAddress:    "resource",
	TagVaultID:            "vault",
	TagTransactionReceipt: "txreceipt",
	TagFeeClaim:           "feeclaim",
}

// Prefix returns the canonical address prefix for a known tag
func (t BinaryTag) Prefix() (string, bool) {
	p, ok := tagPrefixes[t]
	return p, ok
}

// Decode converts a value tree to native values. It is total over the closed
// variant set: a known binary tag over Bytes becomes "<prefix>_<hex>", an
// unknown tag is discarded and its inner value decoded, everything else maps
// straight to its native form. Maps come back keyed by their decoded keys,
// stringified when the key is not text.
func Decode(v *Value) any {
	if v == nil {
		return nil
	}
	switch v.kind {
	case KindNull:
		return nil
	case KindMap:
		out := make(map[string]any, len(v.pairs))
		for _, p := range v.pairs {
			out[decodeKey(p.Key)] = Decode(p.Value)
		}
		return out
	case KindArray:
		out := make([]any, len(v.items))
		for i, item := range v.items {
			out[i] = Decode(item)
		}
		return out
	case KindTag:
		if prefix, known := BinaryTag(v.tagNum).Prefix(); known && v.inner != nil && v.inner.kind == KindBytes {
			return prefix + "_" + hex.EncodeToString(v.inner.data)
		}
		return Decode(v.inner)
	case KindText:
		return v.text
	case KindBytes:
		return v.data
	case KindInteger:
		return v.num
	case KindBool:
		return v.flag
	}
	return nil
}

func decodeKey(k *Value) string {
	decoded := Decode(k)
	if s, ok := decoded.(string); ok {
		return s
	}
	return fmt.Sprint(decoded)
}
