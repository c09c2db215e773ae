// Package models carries the json-rpc payload types for the wallet daemon
// and indexer surfaces this module calls. These mirror a fixed backend
// schema; no logic lives here.
package models

import (
	"encoding/json"

	"github.com/secretnamebasis/simple-tari/substate"
	"github.com/secretnamebasis/simple-tari/tagged"
)

// auth.request
type AuthRequest_Params struct {
	Permissions []string `json:"permissions"`
	Duration    *uint64  `json:"duration,omitempty"`
}
type AuthRequest_Result struct {
	AuthToken string `json:"auth_token"`
}

// auth.accept
type AuthAccept_Params struct {
	AuthToken string `json:"auth_token"`
	Name      string `json:"name"`
}
type AuthAccept_Result struct {
	PermissionsToken string `json:"permissions_token"`
}

// auth.revoke
type AuthRevoke_Params struct {
	PermissionToken string `json:"permission_token"`
}

// get_identity
type GetIdentity_Result struct {
	NodeID          string   `json:"node_id"`
	PublicKey       string   `json:"public_key"`
	PublicAddresses []string `json:"public_addresses"`
	Version         string   `json:"version"`
}

// accounts.list
type AccountsList_Params struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}
type AccountInfo struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	KeyIndex   uint64 `json:"key_index"`
	IsDefault  bool   `json:"is_default"`
	PublicKey  string `json:"public_key"`
}
type AccountsList_Result struct {
	Accounts []AccountInfo `json:"accounts"`
	Total    uint64        `json:"total"`
}

// substates.list
type SubstatesList_Params struct {
	FilterByTemplate *string `json:"filter_by_template,omitempty"`
	FilterByType     *string `json:"filter_by_type,omitempty"`
}
type SubstateRecord struct {
	SubstateID      string `json:"substate_id"`
	Version         uint64 `json:"version"`
	TemplateAddress string `json:"template_address,omitempty"`
}
type SubstatesList_Result struct {
	Substates []SubstateRecord `json:"substates"`
}

// substates.get - the value tree comes back in the json form, or as raw cbor
// hex from surfaces that never unpacked it
type SubstatesGet_Params struct {
	SubstateID string `json:"substate_id"`
}
type SubstatesGet_Result struct {
	Record    SubstateRecord `json:"record"`
	Value     *tagged.Value  `json:"value,omitempty"`
	ValueCBOR string         `json:"value_cbor,omitempty"`
}

// transactions.get_result
type TransactionGetResult_Params struct {
	TransactionID string `json:"transaction_id"`
}
type TransactionGetResult_Result struct {
	TransactionID string           `json:"transaction_id"`
	Status        string           `json:"status"`
	Result        *substate.Result `json:"result,omitempty"`
	JSONResult    json.RawMessage  `json:"json_result,omitempty"`
}

// transactions.submit
type TransactionSubmit_Params struct {
	Transaction json.RawMessage `json:"transaction"`
	IsDryRun    bool            `json:"is_dry_run"`
}
type TransactionSubmit_Result struct {
	TransactionID string `json:"transaction_id"`
}

// keys.list
type KeysList_Result struct {
	Keys []KeyBranch `json:"keys"`
}
type KeyBranch struct {
	Index     uint64 `json:"index"`
	PublicKey string `json:"public_key"`
	IsActive  bool   `json:"is_active"`
}
