package connections

import (
	"context"

	"github.com/blang/semver/v4"

	"github.com/secretnamebasis/simple-tari/models"
)

// typed wrappers over Session.Call; these are the functions call sites use

func GetIdentity(ctx context.Context, s *Session) (models.GetIdentity_Result, error) {
	return CallFor[models.GetIdentity_Result](ctx, s, "get_identity", nil)
}

func AccountsList(ctx context.Context, s *Session, params models.AccountsList_Params) (models.AccountsList_Result, error) {
	return CallFor[models.AccountsList_Result](ctx, s, "accounts.list", params)
}

func KeysList(ctx context.Context, s *Session) (models.KeysList_Result, error) {
	return CallFor[models.KeysList_Result](ctx, s, "keys.list", nil)
}

func SubstatesList(ctx context.Context, s *Session, params models.SubstatesList_Params) (models.SubstatesList_Result, error) {
	return CallFor[models.SubstatesList_Result](ctx, s, "substates.list", params)
}

func SubstatesGet(ctx context.Context, s *Session, params models.SubstatesGet_Params) (models.SubstatesGet_Result, error) {
	return CallFor[models.SubstatesGet_Result](ctx, s, "substates.get", params)
}

func TransactionSubmit(ctx context.Context, s *Session, params models.TransactionSubmit_Params) (models.TransactionSubmit_Result, error) {
	return CallFor[models.TransactionSubmit_Result](ctx, s, "transactions.submit", params)
}

func TransactionGetResult(ctx context.Context, s *Session, params models.TransactionGetResult_Params) (models.TransactionGetResult_Result, error) {
	return CallFor[models.TransactionGetResult_Result](ctx, s, "transactions.get_result", params)
}

// oldest daemon this module is known to decode correctly
const minDaemonVersion = "0.5.0"

// CheckVersion reports whether a daemon version is recent enough; anything
// unparseable counts as too old
func CheckVersion(version string) bool {
	v, err := semver.ParseTolerant(version)
	if err != nil {
		return false
	}
	return v.GE(semver.MustParse(minDaemonVersion))
}
