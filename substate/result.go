package substate

import (
	"encoding/json"
	"fmt"
)

// Result is the three-way outcome of a submitted transaction. Exactly one
// field is set.
type Result struct {
	Accept              *Diff
	AcceptFeeRejectRest *FeeAccepted
	Reject              *RejectReason
}

// the fee half went through, the rest of the transaction did not
type FeeAccepted struct {
	Diff   Diff
	Reason RejectReason
}

func (r *Result) UnmarshalJSON(b []byte) error {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("transaction result: %w", err)
	}
	if len(obj) != 1 {
		return fmt.Errorf("transaction result has %d variants, want 1", len(obj))
	}
	for name, raw := range obj {
		switch name {
		case "Accept":
			r.Accept = &Diff{}
			return json.Unmarshal(raw, r.Accept)
		case "AcceptFeeRejectRest":
			var tuple []json.RawMessage
			if err := json.Unmarshal(raw, &tuple); err != nil || len(tuple) != 2 {
				return fmt.Errorf("AcceptFeeRejectRest is not a [diff, reason] pair")
			}
			fa := &FeeAccepted{}
			if err := json.Unmarshal(tuple[0], &fa.Diff); err != nil {
				return err
			}
			if err := json.Unmarshal(tuple[1], &fa.Reason); err != nil {
				return err
			}
			r.AcceptFeeRejectRest = fa
			return nil
		case "Reject":
			r.Reject = &RejectReason{}
			return json.Unmarshal(raw, r.Reject)
		default:
			return fmt.Errorf("unknown transaction result variant %q", name)
		}
	}
	return nil
}

func (r Result) MarshalJSON() ([]byte, error) {
	switch {
	case r.Accept != nil:
		return json.Marshal(map[string]any{"Accept": r.Accept})
	case r.AcceptFeeRejectRest != nil:
		return json.Marshal(map[string]any{
			"AcceptFeeRejectRest": []any{r.AcceptFeeRejectRest.Diff, r.AcceptFeeRejectRest.Reason},
		})
	case r.Reject != nil:
		return json.Marshal(map[string]any{"Reject": r.Reject})
	}
	return nil, fmt.Errorf("transaction result has no variant set")
}

// Diff lists the substates a transaction brought up and tore down
type Diff struct {
	Up   []UpEntry
	Down []DownEntry
}

// an (id, substate) pair; the substate body is a fixed schema the callers
// deal with, so it stays raw here
type UpEntry struct {
	ID       ID
	Substate json.RawMessage
}

type DownEntry struct {
	ID      ID
	Version uint64
}

func (d *Diff) UnmarshalJSON(b []byte) error {
	var wire struct {
		Up   [][]json.RawMessage `json:"up_substates"`
		Down [][]json.RawMessage `json:"down_substates"`
	}
	if err := json.Unmarshal(b, &wire); err != nil {
		return fmt.Errorf("substate diff: %w", err)
	}
	d.Up = make([]UpEntry, 0, len(wire.Up))
	for _, tuple := range wire.Up {
		if len(tuple) != 2 {
			return fmt.Errorf("up_substates entry has %d elements, want 2", len(tuple))
		}
		id, err := idFromRaw(tuple[0])
		if err != nil {
			return err
		}
		d.Up = append(d.Up, UpEntry{ID: id, Substate: tuple[1]})
	}
	d.Down = make([]DownEntry, 0, len(wire.Down))
	for _, tuple := range wire.Down {
		if len(tuple) != 2 {
			return fmt.Errorf("down_substates entry has %d elements, want 2", len(tuple))
		}
		id, err := idFromRaw(tuple[0])
		if err != nil {
			return err
		}
		var version uint64
		if err := json.Unmarshal(tuple[1], &version); err != nil {
			return fmt.Errorf("down_substates version: %w", err)
		}
		d.Down = append(d.Down, DownEntry{ID: id, Version: version})
	}
	return nil
}

func (d Diff) MarshalJSON() ([]byte, error) {
	up := make([][]any, len(d.Up))
	for i, e := range d.Up {
		body := e.Substate
		if body == nil {
			body = json.RawMessage("null")
		}
		up[i] = []any{e.ID.String(), body}
	}
	down := make([][]any, len(d.Down))
	for i, e := range d.Down {
		down[i] = []any{e.ID.String(), e.Version}
	}
	return json.Marshal(map[string]any{"up_substates": up, "down_substates": down})
}

func idFromRaw(raw json.RawMessage) (ID, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("substate id in diff is not a string: %w", err)
	}
	return FromString(s)
}

// GetSubstateDiff returns the diff of a fully or partially accepted result,
// nil for a rejection.
func GetSubstateDiff(r *Result) *Diff {
	switch {
	case r == nil:
		return nil
	case r.Accept != nil:
		return r.Accept
	case r.AcceptFeeRejectRest != nil:
		return &r.AcceptFeeRejectRest.Diff
	}
	return nil
}

// GetRejectReason returns the reason of a rejected or partially rejected
// result, nil for a clean accept.
func GetRejectReason(r *Result) *RejectReason {
	switch {
	case r == nil:
		return nil
	case r.Reject != nil:
		return r.Reject
	case r.AcceptFeeRejectRest != nil:
		return &r.AcceptFeeRejectRest.Reason
	}
	return nil
}
