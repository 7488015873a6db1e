package user

import (
	"context"

	"github.com/frahmantamala/user-management/internal"
	"github.com/frahmantamala/user-management/internal/accesslevel"
	levelDatamodel "github.com/frahmantamala/user-management/internal/core/datamodel/accesslevel"
)

// LevelResolverAPI is the slice of the access level store the policy needs.
type LevelResolverAPI interface {
	GetByID(ctx context.Context, id int64) (*levelDatamodel.AccessLevel, error)
}

// ProvisioningPolicy decides which access level a newly created account
// receives, based on the creator's own role. It takes the caller's
// administrator status as a plain input so it can be tested without any
// transport machinery.
type ProvisioningPolicy struct {
	levels LevelResolverAPI
}

func NewProvisioningPolicy(levels LevelResolverAPI) *ProvisioningPolicy {
	return &ProvisioningPolicy{levels: levels}
}

// DecideAssignedLevel resolves the level for a new account.
//
// Only an administrator may request a level other than the Viewer baseline,
// and a request for a level id that does not exist aborts user creation with
// a not-found error. Everyone else gets the baseline regardless of what was
// requested; a non-administrator's request is ignored, not rejected. A
// missing baseline row is a configuration/integrity failure.
//
// The second return value reports whether the requested level was honored.
func (p *ProvisioningPolicy) DecideAssignedLevel(ctx context.Context, requestedLevelID int64, callerIsAdministrator bool) (*levelDatamodel.AccessLevel, bool, error) {
	if callerIsAdministrator && requestedLevelID != 0 && requestedLevelID != accesslevel.DefaultLevelID {
		requested, err := p.levels.GetByID(ctx, requestedLevelID)
		if err != nil {
			return nil, false, err
		}
		if requested == nil {
			return nil, false, internal.NewAccessLevelNotFoundError(requestedLevelID)
		}
		return requested, true, nil
	}

	baseline, err := p.levels.GetByID(ctx, accesslevel.DefaultLevelID)
	if err != nil {
		return nil, false, err
	}
	if baseline == nil {
		return nil, false, internal.NewConfigError(
			"baseline access level 'Viewer' (id 4) is missing",
			internal.ErrCodeMissingBaselineLevel,
		)
	}
	return baseline, false, nil
}
