package tagged

import (
	"fmt"
	"math"

	"github.com/fxamacker/cbor/v2"
)

// FromCBOR parses raw cbor bytes into a value tree. Some backend surfaces
// hand the substate body over as cbor instead of the json tree form; both
// land in the same Value and decode identically. Entry order of cbor maps is
// not preserved here, the library hands maps back unordered.
func FromCBOR(data []byte) (*Value, error) {
	var raw any
	if err := cbor.Unmarshal(data, &raw); err != nil {
		return nil, &DecodeError{Reason: "invalid cbor", Err: err}
	}
	return fromRaw(raw)
}

func fromRaw(raw any) (*Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case map[any]any:
		pairs := make([]Pair, 0, len(x))
		for k, v := range x {
			key, err := fromRaw(k)
			if err != nil {
				return nil, err
			}
			val, err := fromRaw(v)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, Pair{Key: key, Value: val})
		}
		return Map(pairs...), nil
	case []any:
		items := make([]*Value, len(x))
		for i, e := range x {
			item, err := fromRaw(e)
			if err != nil {
				return nil, err
			}
			items[i] = item
		}
		return Array(items...), nil
	case cbor.Tag:
		inner, err := fromRaw(x.Content)
		if err != nil {
			return nil, err
		}
		return Tag(x.Number, inner), nil
	case string:
		return Text(x), nil
	case []byte:
		return Bytes(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return nil, &DecodeError{Reason: fmt.Sprintf("integer %d overflows", x)}
		}
		return Integer(int64(x)), nil
	case int64:
		return Integer(x), nil
	case bool:
		return Bool(x), nil
	}
	return nil, &DecodeError{Reason: fmt.Sprintf("unsupported cbor item %T", raw)}
}
