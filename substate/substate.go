// Package substate maps between canonical "<prefix>_<hex>" address strings
// and the closed set of typed substate ids, and pulls diffs and reject
// reasons out of submitted transaction results.
package substate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ID is one of a closed set of substate id variants. Every variant renders
// its own canonical string; adding a variant without a String method will
// not compile, which is the exhaustiveness check.
type ID interface {
	fmt.Stringer
	substateID()
}

type Component string
type Resource string
type Vault string
type UnclaimedConfidentialOutput string
type NonFungible string
type TransactionReceipt string
type FeeClaim string

// NonFungibleIndex addresses one slot of a resource; its string form is
// "<resource_address>:<index>" rather than a prefixed hex string
type NonFungibleIndex struct {
	ResourceAddress Resource
	Index           uint64
}

func (c Component) String() string                   { return "component_" + string(c) }
func (r Resource) String() string                    { return "resource_" + string(r) }
func (v Vault) String() string                       { return "vault_" + string(v) }
func (u UnclaimedConfidentialOutput) String() string { return "commitment_" + string(u) }
func (n NonFungible) String() string                 { return "nft_" + string(n) }
func (t TransactionReceipt) String() string          { return "txreceipt_" + string(t) }
func (f FeeClaim) String() string                    { return "feeclaim_" + string(f) }
func (n NonFungibleIndex) String() string {
	return n.ResourceAddress.String() + ":" + strconv.FormatUint(n.Index, 10)
}

func (Component) substateID()                   {}
func (Resource) substateID()                    {}
func (Vault) substateID()                       {}
func (UnclaimedConfidentialOutput) substateID() {}
func (NonFungible) substateID()                 {}
func (TransactionReceipt) substateID()          {}
func (FeeClaim) substateID()                    {}
func (NonFungibleIndex) substateID()            {}

var (
	ErrMalformedSubstateID   = errors.New("substate id has no prefix separator")
	ErrUnknownSubstatePrefix = errors.New("unknown substate id prefix")
)

// FromString parses a canonical address string back into its typed variant.
// The split is on the first underscore only, the remainder is the address.
func FromString(s string) (ID, error) {
	prefix, rest, found := strings.Cut(s, "_")
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrMalformedSubstateID, s)
	}
	switch prefix {
	case "component":
		return Component(rest), nil
	case "resource":
		return Resource(rest), nil
	case "vault":
		return Vault(rest), nil
	case "commitment":
		return UnclaimedConfidentialOutput(rest), nil
	case "nft":
		return NonFungible(rest), nil
	case "txreceipt":
		return TransactionReceipt(rest), nil
	case "feeclaim":
		return FeeClaim(rest), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSubstatePrefix, prefix)
}
