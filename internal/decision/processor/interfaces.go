package processor

import (
	"context"

	"referral-access/internal/clients/referralapi"
	"referral-access/internal/identity"
)

// ReferralClient defines the referral service operations required by the
// decision processor
type ReferralClient interface {
	// GetReferralByID retrieves a single referral with decrypted fields
	GetReferralByID(ctx context.Context, caller identity.CallerIdentity, referralID int64) (referralapi.Referral, error)

	// GetReferralStatuses fetches the backend's status catalog
	GetReferralStatuses(ctx context.Context, caller identity.CallerIdentity) ([]referralapi.ReferralStatus, error)

	// UpdateReferral writes the full record back, encrypting on the way out
	UpdateReferral(ctx context.Context, caller identity.CallerIdentity, referral referralapi.Referral) (referralapi.Referral, error)

	// UpdateReferralStatus sets only the status and returns the confirmed name
	UpdateReferralStatus(ctx context.Context, caller identity.CallerIdentity, referralID int64, status referralapi.StatusName) (string, error)
}
