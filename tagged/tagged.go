// Package tagged holds the self-describing value tree the backend uses to
// ship substates and addresses over json-rpc. Every node is exactly one of a
// closed set of variants; trees arrive as flat serialized data, so decoding
// always terminates.
package tagged

import (
	"encoding/json"
	"fmt"
)

type Kind int

const (
	KindNull Kind = iota
	KindMap
	KindArray
	KindTag
	KindText
	KindBytes
	KindInteger
	KindBool
)

// a single map entry; keys are full value trees too
type Pair struct {
	Key   *Value
	Value *Value
}

type Value struct {
	kind   Kind
	pairs  []Pair
	items  []*Value
	tagNum uint64
	inner  *Value
	text   string
	data   []byte
	num    int64
	flag   bool
}

func Null() *Value                       { return &Value{kind: KindNull} }
func Map(pairs ...Pair) *Value           { return &Value{kind: KindMap, pairs: pairs} }
func Array(items ...*Value) *Value       { return &Value{kind: KindArray, items: items} }
func Tag(n uint64, inner *Value) *Value  { return &Value{kind: KindTag, tagNum: n, inner: inner} }
func Text(s string) *Value               { return &Value{kind: KindText, text: s} }
func Bytes(b []byte) *Value              { return &Value{kind: KindBytes, data: b} }
func Integer(n int64) *Value             { return &Value{kind: KindInteger, num: n} }
func Bool(b bool) *Value                 { return &Value{kind: KindBool, flag: b} }

func (v *Value) Kind() Kind {
	if v == nil {
		return KindNull
	}
	return v.kind
}

func (v *Value) Pairs() []Pair  { return v.pairs }
func (v *Value) Items() []*Value { return v.items }

// On the wire every variant is a single-key object, except the unit variant
// which arrives as the bare string "Null". Some backends also emit it where a
// whole value tree is expected; that string is the Null node, full stop.
func (v *Value) UnmarshalJSON(b []byte) error {
	var probe any
	if err := json.Unmarshal(b, &probe); err != nil {
		return &DecodeError{Reason: "invalid json", Err: err}
	}

	switch p := probe.(type) {
	case nil:
		v.kind = KindNull
		return nil
	case string:
		if p == "Null" {
			v.kind = KindNull
			return nil
		}
		return &DecodeError{Reason: fmt.Sprintf("unexpected bare string %q", p)}
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return &DecodeError{Reason: "value is neither a variant object nor \"Null\"", Err: err}
	}
	if len(obj) != 1 {
		return &DecodeError{Reason: fmt.Sprintf("variant object has %d keys, want 1", len(obj))}
	}

	for name, raw := range obj {
		switch name {
		case "Map":
			var entries [][]json.RawMessage
			if err := json.Unmarshal(raw, &entries); err != nil {
				return &DecodeError{Reason: "Map entries", Err: err}
			}
			pairs := make([]Pair, 0, len(entries))
			for _, e := range entries {
				if len(e) != 2 {
					return &DecodeError{Reason: fmt.Sprintf("Map entry has %d elements, want 2", len(e))}
				}
				var k, val Value
				if err := json.Unmarshal(e[0], &k); err != nil {
					return err
				}
				if err := json.Unmarshal(e[1], &val); err != nil {
					return err
				}
				pairs = append(pairs, Pair{Key: &k, Value: &val})
			}
			v.kind, v.pairs = KindMap, pairs
		case "Array":
			var items []*Value
			if err := json.Unmarshal(raw, &items); err != nil {
				return &DecodeError{Reason: "Array elements", Err: err}
			}
			v.kind, v.items = KindArray, items
		case "Tag":
			var tuple []json.RawMessage
			if err := json.Unmarshal(raw, &tuple); err != nil || len(tuple) != 2 {
				return &DecodeError{Reason: "Tag is not a [number, value] pair", Err: err}
			}
			if err := json.Unmarshal(tuple[0], &v.tagNum); err != nil {
				return &DecodeError{Reason: "Tag number", Err: err}
			}
			var inner Value
			if err := json.Unmarshal(tuple[1], &inner); err != nil {
				return err
			}
			v.kind, v.inner = KindTag, &inner
		case "Text":
			if err := json.Unmarshal(raw, &v.text); err != nil {
				return &DecodeError{Reason: "Text", Err: err}
			}
			v.kind = KindText
		case "Bytes":
			// byte sequences are arrays of numbers on the wire; a base64
			// string is accepted too so re-marshaled trees stay readable
			var nums []int
			if err := json.Unmarshal(raw, &nums); err == nil {
				data := make([]byte, len(nums))
				for i, n := range nums {
					if n < 0 || n > 255 {
						return &DecodeError{Reason: fmt.Sprintf("byte %d out of range", n)}
					}
					data[i] = byte(n)
				}
				v.kind, v.data = KindBytes, data
				break
			}
			var data []byte
			if err := json.Unmarshal(raw, &data); err != nil {
				return &DecodeError{Reason: "Bytes", Err: err}
			}
			v.kind, v.data = KindBytes, data
		case "Integer":
			if err := json.Unmarshal(raw, &v.num); err != nil {
				return &DecodeError{Reason: "Integer", Err: err}
			}
			v.kind = KindInteger
		case "Bool":
			if err := json.Unmarshal(raw, &v.flag); err != nil {
				return &DecodeError{Reason: "Bool", Err: err}
			}
			v.kind = KindBool
		case "Null":
			v.kind = KindNull
		default:
			return &DecodeError{Reason: fmt.Sprintf("unknown variant %q", name)}
		}
	}
	return nil
}

func (v *Value) MarshalJSON() ([]byte, error) {
	if v == nil {
		return json.Marshal("Null")
	}
	switch v.kind {
	case KindNull:
		return json.Marshal("Null")
	case KindMap:
		entries := make([][2]*Value, len(v.pairs))
		for i, p := range v.pairs {
			entries[i] = [2]*Value{p.Key, p.Value}
		}
		return json.Marshal(map[string]any{"Map": entries})
	case KindArray:
		return json.Marshal(map[string]any{"Array": v.items})
	case KindTag:
		return json.Marshal(map[string]any{"Tag": []any{v.tagNum, v.inner}})
	case KindText:
		return json.Marshal(map[string]any{"Text": v.text})
	case KindBytes:
		nums := make([]int, len(v.data))
		for i, b := range v.data {
			nums[i] = int(b)
		}
		return json.Marshal(map[string]any{"Bytes": nums})
	case KindInteger:
		return json.Marshal(map[string]any{"Integer": v.num})
	case KindBool:
		return json.Marshal(map[string]any{"Bool": v.flag})
	}
	return nil, &DecodeError{Reason: fmt.Sprintf("unhandled kind %d", v.kind)}
}

// A value tree that is structurally malformed
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return "tagged value: " + e.Reason + ": " + e.Err.Error()
	}
	return "tagged value: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }
