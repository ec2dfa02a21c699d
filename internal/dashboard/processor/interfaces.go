package processor

import (
	"context"

	"referral-access/internal/clients/referralapi"
	"referral-access/internal/identity"
)

// ReferralClient defines the referral service operations required by the
// dashboard processor
type ReferralClient interface {
	// GetRequestsByOrganisation retrieves a page of referrals routed to an organisation
	GetRequestsByOrganisation(ctx context.Context, caller identity.CallerIdentity, organisationID string,
		orderBy *referralapi.OrderBy, ascending *bool, pageNumber, pageSize int) (referralapi.PaginatedReferrals, error)

	// GetRequestsByProfessional retrieves a page of referrals sent by a professional
	GetRequestsByProfessional(ctx context.Context, caller identity.CallerIdentity, accountID string,
		orderBy *referralapi.OrderBy, ascending *bool, pageNumber, pageSize int) (referralapi.PaginatedReferrals, error)
}
