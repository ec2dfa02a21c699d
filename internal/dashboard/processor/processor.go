package processor

import (
	"context"
	"errors"

	"referral-access/internal/clients/referralapi"
	"referral-access/internal/identity"
	"referral-access/internal/observability"
)

var (
	ErrNoOrganisation = errors.New("caller has no organisation id")
	ErrNoAccount      = errors.New("caller has no account id")
)

// PageSize is the fixed number of rows per dashboard page.
const PageSize = 20

type DashboardProcessor struct {
	client ReferralClient
	logger *observability.Logger
}

func New(client ReferralClient, logger *observability.Logger) DashboardProcessor {
	return DashboardProcessor{
		client: client,
		logger: logger,
	}
}

// DashboardRequest carries the raw paging and sort state from the caller.
// Column and Sort are untrusted strings straight from the URL.
type DashboardRequest struct {
	Page   int
	Column string
	Sort   string
}

// DashboardResponse is one page of the dashboard with everything the
// presentation layer needs to render rows, sort indicators and pager.
type DashboardResponse struct {
	Rows          []referralapi.Referral `json:"rows"`
	ColumnHeaders []ColumnHeader         `json:"column_headers"`
	Page          int                    `json:"page"`
	TotalPages    int                    `json:"total_pages"`
	TotalCount    int                    `json:"total_count"`
	SortColumn    string                 `json:"sort_column"`
	Ascending     bool                   `json:"ascending"`
}

// OrganisationDashboard retrieves one page of the requests routed to the
// caller's organisation.
func (p *DashboardProcessor) OrganisationDashboard(ctx context.Context, caller identity.CallerIdentity, req DashboardRequest) (DashboardResponse, error) {
	if caller.OrganisationID == "" {
		return DashboardResponse{}, ErrNoOrganisation
	}

	return p.page(ctx, caller, req, func(ctx context.Context, orderBy *referralapi.OrderBy, ascending *bool, page int) (referralapi.PaginatedReferrals, error) {
		return p.client.GetRequestsByOrganisation(ctx, caller, caller.OrganisationID, orderBy, ascending, page, PageSize)
	})
}

// ProfessionalDashboard retrieves one page of the requests sent by the
// calling professional.
func (p *DashboardProcessor) ProfessionalDashboard(ctx context.Context, caller identity.CallerIdentity, req DashboardRequest) (DashboardResponse, error) {
	if caller.AccountID == "" {
		return DashboardResponse{}, ErrNoAccount
	}

	return p.page(ctx, caller, req, func(ctx context.Context, orderBy *referralapi.OrderBy, ascending *bool, page int) (referralapi.PaginatedReferrals, error) {
		return p.client.GetRequestsByProfessional(ctx, caller, caller.AccountID, orderBy, ascending, page, PageSize)
	})
}

type fetchPage func(ctx context.Context, orderBy *referralapi.OrderBy, ascending *bool, page int) (referralapi.PaginatedReferrals, error)

func (p *DashboardProcessor) page(ctx context.Context, caller identity.CallerIdentity, req DashboardRequest, fetch fetchPage) (DashboardResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}

	sortSpec, defaulted := ResolveSort(req.Column, req.Sort)
	if defaulted == SortDefaultedMalformed {
		ctx = observability.WithFields(ctx, observability.Field{Key: "raw_sort_column", Value: req.Column})
		p.logger.Info(ctx, "unrecognised sort column, falling back to default")
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "sort_column", Value: string(sortSpec.Column)},
		observability.Field{Key: "page", Value: req.Page},
	)

	var orderBy *referralapi.OrderBy
	if key, ok := sortSpec.OrderBy(); ok {
		orderBy = &key
	}

	result, err := fetch(ctx, orderBy, &sortSpec.Ascending, req.Page)
	if err != nil {
		p.logger.Error(ctx, "failed to fetch dashboard page", err)
		return DashboardResponse{}, err
	}

	// Ensure rows is never null - return empty array instead
	rows := result.Items
	if rows == nil {
		rows = []referralapi.Referral{}
	}

	return DashboardResponse{
		Rows:          rows,
		ColumnHeaders: ColumnHeaders(sortSpec),
		Page:          result.PageNumber,
		TotalPages:    result.TotalPages,
		TotalCount:    result.TotalCount,
		SortColumn:    string(sortSpec.Column),
		Ascending:     sortSpec.Ascending,
	}, nil
}
