package processor

import (
	"context"
	"errors"
	"testing"

	"referral-access/internal/clients/referralapi"
	"referral-access/internal/identity"
	"referral-access/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReferralClient struct {
	page referralapi.PaginatedReferrals
	err  error

	gotOrganisationID string
	gotAccountID      string
	gotOrderBy        *referralapi.OrderBy
	gotAscending      *bool
	gotPageNumber     int
	gotPageSize       int
}

func (f *fakeReferralClient) GetRequestsByOrganisation(ctx context.Context, caller identity.CallerIdentity, organisationID string, orderBy *referralapi.OrderBy, ascending *bool, pageNumber, pageSize int) (referralapi.PaginatedReferrals, error) {
	f.gotOrganisationID = organisationID
	f.gotOrderBy = orderBy
	f.gotAscending = ascending
	f.gotPageNumber = pageNumber
	f.gotPageSize = pageSize
	return f.page, f.err
}

func (f *fakeReferralClient) GetRequestsByProfessional(ctx context.Context, caller identity.CallerIdentity, accountID string, orderBy *referralapi.OrderBy, ascending *bool, pageNumber, pageSize int) (referralapi.PaginatedReferrals, error) {
	f.gotAccountID = accountID
	f.gotOrderBy = orderBy
	f.gotAscending = ascending
	f.gotPageNumber = pageNumber
	f.gotPageSize = pageSize
	return f.page, f.err
}

var orgCaller = identity.CallerIdentity{
	BearerToken:    "token",
	AccountID:      "123",
	OrganisationID: "456",
}

func TestOrganisationDashboard(t *testing.T) {
	client := &fakeReferralClient{
		page: referralapi.PaginatedReferrals{
			Items:      []referralapi.Referral{{ID: 7, ReasonForSupport: "reason"}},
			PageNumber: 1,
			TotalPages: 3,
			TotalCount: 41,
		},
	}
	p := New(client, observability.NewLogger())

	resp, err := p.OrganisationDashboard(context.Background(), orgCaller, DashboardRequest{
		Page:   1,
		Column: "ContactInFamily",
		Sort:   "ascending",
	})
	require.NoError(t, err)

	assert.Equal(t, "456", client.gotOrganisationID)
	require.NotNil(t, client.gotOrderBy)
	assert.Equal(t, referralapi.OrderByRecipientName, *client.gotOrderBy)
	require.NotNil(t, client.gotAscending)
	assert.True(t, *client.gotAscending)
	assert.Equal(t, PageSize, client.gotPageSize)

	assert.Len(t, resp.Rows, 1)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, 41, resp.TotalCount)
	assert.Equal(t, "ContactInFamily", resp.SortColumn)
	assert.True(t, resp.Ascending)
	assert.Len(t, resp.ColumnHeaders, 4)
}

func TestOrganisationDashboardRequiresOrganisation(t *testing.T) {
	p := New(&fakeReferralClient{}, observability.NewLogger())

	_, err := p.OrganisationDashboard(context.Background(), identity.CallerIdentity{BearerToken: "token"}, DashboardRequest{Page: 1})
	assert.ErrorIs(t, err, ErrNoOrganisation)
}

func TestProfessionalDashboard(t *testing.T) {
	client := &fakeReferralClient{
		page: referralapi.PaginatedReferrals{PageNumber: 1},
	}
	p := New(client, observability.NewLogger())

	resp, err := p.ProfessionalDashboard(context.Background(), orgCaller, DashboardRequest{Page: 1})
	require.NoError(t, err)

	assert.Equal(t, "123", client.gotAccountID)
	assert.NotNil(t, resp.Rows)
	assert.Empty(t, resp.Rows)
}

func TestProfessionalDashboardRequiresAccount(t *testing.T) {
	p := New(&fakeReferralClient{}, observability.NewLogger())

	_, err := p.ProfessionalDashboard(context.Background(), identity.CallerIdentity{BearerToken: "token", OrganisationID: "456"}, DashboardRequest{Page: 1})
	assert.ErrorIs(t, err, ErrNoAccount)
}

func TestDashboardClampsPageToOne(t *testing.T) {
	client := &fakeReferralClient{page: referralapi.PaginatedReferrals{PageNumber: 1}}
	p := New(client, observability.NewLogger())

	_, err := p.OrganisationDashboard(context.Background(), orgCaller, DashboardRequest{Page: -3})
	require.NoError(t, err)
	assert.Equal(t, 1, client.gotPageNumber)
}

func TestDashboardDefaultSortOmitsBackendOrdering(t *testing.T) {
	client := &fakeReferralClient{page: referralapi.PaginatedReferrals{PageNumber: 1}}
	p := New(client, observability.NewLogger())

	resp, err := p.OrganisationDashboard(context.Background(), orgCaller, DashboardRequest{Page: 1, Column: "RequestNumber"})
	require.NoError(t, err)

	// Request number has no backend ordering parameter.
	assert.Nil(t, client.gotOrderBy)
	assert.Equal(t, "RequestNumber", resp.SortColumn)
}

func TestDashboardMalformedColumnFallsBack(t *testing.T) {
	client := &fakeReferralClient{page: referralapi.PaginatedReferrals{PageNumber: 1}}
	p := New(client, observability.NewLogger())

	resp, err := p.OrganisationDashboard(context.Background(), orgCaller, DashboardRequest{Page: 1, Column: "bogus", Sort: "ascending"})
	require.NoError(t, err)

	require.NotNil(t, client.gotOrderBy)
	assert.Equal(t, referralapi.OrderByDateSent, *client.gotOrderBy)
	assert.Equal(t, string(DefaultColumn), resp.SortColumn)
	assert.False(t, resp.Ascending)
}

func TestDashboardPropagatesClientError(t *testing.T) {
	wantErr := errors.New("upstream unavailable")
	p := New(&fakeReferralClient{err: wantErr}, observability.NewLogger())

	_, err := p.OrganisationDashboard(context.Background(), orgCaller, DashboardRequest{Page: 1})
	assert.ErrorIs(t, err, wantErr)
}
