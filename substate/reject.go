package substate

import (
	"encoding/json"
	"fmt"
)

type RejectKind int

const (
	RejectUnknown RejectKind = iota
	RejectInvalidTransaction
	RejectExecutionFailure
	RejectOneOrMoreInputsNotFound
	RejectNoInputs
	RejectFailedToLockInputs
	RejectFailedToLockOutputs
	RejectForeignShardGroupDecidedToAbort
	RejectFeesNotPaid
)

var rejectNames = map[RejectKind]string{
	RejectInvalidTransaction:              "InvalidTransaction",
	RejectExecutionFailure:                "ExecutionFailure",
	RejectOneOrMoreInputsNotFound:         "OneOrMoreInputsNotFound",
	RejectNoInputs:                        "NoInputs",
	RejectFailedToLockInputs:              "FailedToLockInputs",
	RejectFailedToLockOutputs:             "FailedToLockOutputs",
	RejectForeignShardGroupDecidedToAbort: "ForeignShardGroupDecidedToAbort",
	RejectFeesNotPaid:                     "FeesNotPaid",
}

var rejectKinds = func() map[string]RejectKind {
	m := make(map[string]RejectKind, len(rejectNames))
	for k, name := range rejectNames {
		m[name] = k
	}
	return m
}()

// RejectReason is the structured explanation for why a transaction did not
// fully go through. Variants the wire grows later land on RejectUnknown
// instead of failing the whole result decode.
type RejectReason struct {
	Kind   RejectKind
	Detail string
}

func Rejected(kind RejectKind, detail string) RejectReason {
	return RejectReason{Kind: kind, Detail: detail}
}

// on the wire a bare variant name is a string, a payload-carrying variant is
// a single-key object
func (r *RejectReason) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		r.Kind = rejectKinds[name] // unknown names map to RejectUnknown
		r.Detail = ""
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("reject reason: %w", err)
	}
	if len(obj) != 1 {
		return fmt.Errorf("reject reason has %d variants, want 1", len(obj))
	}
	for variant, raw := range obj {
		r.Kind = rejectKinds[variant]
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			r.Detail = s
		} else {
			r.Detail = string(raw) // struct payloads keep their compact json text
		}
	}
	return nil
}

func (r RejectReason) MarshalJSON() ([]byte, error) {
	name, ok := rejectNames[r.Kind]
	if !ok {
		name = "Unknown"
	}
	if r.Detail == "" {
		return json.Marshal(name)
	}
	return json.Marshal(map[string]string{name: r.Detail})
}

// Display renders "<Variant>(<payload>)" for payload-carrying reasons and the
// bare variant name otherwise; anything unrecognized is "Unknown".
func (r RejectReason) Display() string {
	name, ok := rejectNames[r.Kind]
	if !ok {
		return "Unknown"
	}
	if r.Detail == "" {
		return name
	}
	return name + "(" + r.Detail + ")"
}
