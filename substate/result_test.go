package substate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDiff() Diff {
	return Diff{
		Up: []UpEntry{
			{ID: Component("aa"), Substate: json.RawMessage(`{"version":1}`)},
		},
		Down: []DownEntry{
			{ID: Vault("bb"), Version: 3},
		},
	}
}

func TestInterpreterAccept(t *testing.T) {
	diff := sampleDiff()
	r := &Result{Accept: &diff}

	got := GetSubstateDiff(r)
	require.NotNil(t, got)
	assert.Equal(t, diff, *got)
	assert.Nil(t, GetRejectReason(r))
}

func TestInterpreterReject(t *testing.T) {
	r := &Result{Reject: &RejectReason{Kind: RejectInvalidTransaction, Detail: "x"}}

	assert.Nil(t, GetSubstateDiff(r))
	reason := GetRejectReason(r)
	require.NotNil(t, reason)
	assert.Equal(t, Rejected(RejectInvalidTransaction, "x"), *reason)
}

func TestInterpreterFeeRejectRest(t *testing.T) {
	diff := sampleDiff()
	r := &Result{AcceptFeeRejectRest: &FeeAccepted{
		Diff:   diff,
		Reason: Rejected(RejectFeesNotPaid, "1"),
	}}

	gotDiff := GetSubstateDiff(r)
	require.NotNil(t, gotDiff)
	assert.Equal(t, diff, *gotDiff)

	gotReason := GetRejectReason(r)
	require.NotNil(t, gotReason)
	assert.Equal(t, Rejected(RejectFeesNotPaid, "1"), *gotReason)
}

func TestInterpreterNil(t *testing.T) {
	assert.Nil(t, GetSubstateDiff(nil))
	assert.Nil(t, GetRejectReason(nil))
}

func TestResultJSON(t *testing.T) {
	raw := `{"AcceptFeeRejectRest":[
		{"up_substates":[["component_aa",{"version":1}]],
		 "down_substates":[["vault_bb",3]]},
		{"FeesNotPaid":"1"}
	]}`

	var r Result
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	require.NotNil(t, r.AcceptFeeRejectRest)

	diff := GetSubstateDiff(&r)
	require.Len(t, diff.Up, 1)
	assert.Equal(t, Component("aa"), diff.Up[0].ID)
	require.Len(t, diff.Down, 1)
	assert.Equal(t, Vault("bb"), diff.Down[0].ID)
	assert.Equal(t, uint64(3), diff.Down[0].Version)

	assert.Equal(t, "FeesNotPaid(1)", GetRejectReason(&r).Display())

	// and back out again
	out, err := json.Marshal(r)
	require.NoError(t, err)
	var again Result
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, GetRejectReason(&r), GetRejectReason(&again))
}

func TestResultJSONReject(t *testing.T) {
	var r Result
	require.NoError(t, json.Unmarshal([]byte(`{"Reject":"NoInputs"}`), &r))
	assert.Equal(t, "NoInputs", GetRejectReason(&r).Display())

	var r2 Result
	require.NoError(t, json.Unmarshal([]byte(`{"Reject":{"ExecutionFailure":"boom"}}`), &r2))
	assert.Equal(t, "ExecutionFailure(boom)", GetRejectReason(&r2).Display())
}

func TestResultJSONUnknownVariant(t *testing.T) {
	var r Result
	require.Error(t, json.Unmarshal([]byte(`{"Whatever":1}`), &r))
}

func TestRejectReasonForwardCompat(t *testing.T) {
	var reason RejectReason
	require.NoError(t, json.Unmarshal([]byte(`"SomethingNew"`), &reason))
	assert.Equal(t, RejectUnknown, reason.Kind)
	assert.Equal(t, "Unknown", reason.Display())

	require.NoError(t, json.Unmarshal([]byte(`{"SomethingNew":{"a":1}}`), &reason))
	assert.Equal(t, "Unknown", reason.Display())
}

func TestRejectReasonDisplay(t *testing.T) {
	assert.Equal(t, "NoInputs", Rejected(RejectNoInputs, "").Display())
	assert.Equal(t, "InvalidTransaction(x)", Rejected(RejectInvalidTransaction, "x").Display())
	assert.Equal(t, "Unknown", Rejected(RejectUnknown, "detail").Display())
}
