package referralapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"referral-access/internal/crypto"
	"referral-access/internal/identity"
	"referral-access/internal/observability"
)

// Client talks to the referral service on behalf of an authenticated
// caller. Every record crossing this boundary has its two sensitive
// fields decrypted on the way in and encrypted on the way out; nothing
// else is rewritten. The client holds no referral state between calls.
type Client struct {
	baseURL    string
	httpClient *http.Client
	crypto     crypto.Crypto
	logger     *observability.Logger
}

// New creates a referral service client.
func New(baseURL string, fieldCrypto crypto.Crypto, logger *observability.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		crypto:  fieldCrypto,
		logger:  logger,
	}
}

// GetReferralByID retrieves a single referral with its sensitive fields
// decrypted. A decryption failure fails the whole retrieval; ciphertext
// is never returned to the caller.
func (c *Client) GetReferralByID(ctx context.Context, caller identity.CallerIdentity, referralID int64) (Referral, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "referral_id", Value: referralID})

	var referral Referral
	if err := c.do(ctx, caller, http.MethodGet, fmt.Sprintf("/api/referral/%d", referralID), nil, nil, &referral); err != nil {
		return Referral{}, err
	}

	if err := c.decryptSensitiveFields(&referral); err != nil {
		c.logger.Error(ctx, "failed to decrypt referral fields", err)
		return Referral{}, err
	}

	return referral, nil
}

// GetRequestsByProfessional retrieves a page of referrals sent by the
// given professional account.
func (c *Client) GetRequestsByProfessional(ctx context.Context, caller identity.CallerIdentity, accountID string,
	orderBy *OrderBy, ascending *bool, pageNumber, pageSize int) (PaginatedReferrals, error) {

	ctx = observability.WithFields(ctx, observability.Field{Key: "professional_account_id", Value: accountID})
	path := fmt.Sprintf("/api/referrals/professional/%s", url.PathEscape(accountID))
	return c.getPage(ctx, caller, path, orderBy, ascending, pageNumber, pageSize)
}

// GetRequestsByOrganisation retrieves a page of referrals routed to the
// given organisation.
func (c *Client) GetRequestsByOrganisation(ctx context.Context, caller identity.CallerIdentity, organisationID string,
	orderBy *OrderBy, ascending *bool, pageNumber, pageSize int) (PaginatedReferrals, error) {

	ctx = observability.WithFields(ctx, observability.Field{Key: "organisation_id", Value: organisationID})
	path := fmt.Sprintf("/api/referrals/organisation/%s", url.PathEscape(organisationID))
	return c.getPage(ctx, caller, path, orderBy, ascending, pageNumber, pageSize)
}

func (c *Client) getPage(ctx context.Context, caller identity.CallerIdentity, path string,
	orderBy *OrderBy, ascending *bool, pageNumber, pageSize int) (PaginatedReferrals, error) {

	if pageNumber < 1 {
		return PaginatedReferrals{}, &ValidationError{Reason: fmt.Sprintf("pageNumber must be >= 1, got %d", pageNumber)}
	}
	if pageSize <= 0 {
		return PaginatedReferrals{}, &ValidationError{Reason: fmt.Sprintf("pageSize must be > 0, got %d", pageSize)}
	}

	query := url.Values{}
	if orderBy != nil {
		query.Set("orderBy", string(*orderBy))
	}
	if ascending != nil {
		query.Set("ascending", strconv.FormatBool(*ascending))
	}
	query.Set("pageNumber", strconv.Itoa(pageNumber))
	query.Set("pageSize", strconv.Itoa(pageSize))

	var page PaginatedReferrals
	if err := c.do(ctx, caller, http.MethodGet, path, query, nil, &page); err != nil {
		return PaginatedReferrals{}, err
	}

	// Decrypt into a fresh slice so a failure part-way through never
	// hands the caller a half-decrypted page.
	items := make([]Referral, 0, len(page.Items))
	for i := range page.Items {
		referral := page.Items[i]
		if err := c.decryptSensitiveFields(&referral); err != nil {
			c.logger.Error(ctx, "failed to decrypt referral fields in page", err)
			return PaginatedReferrals{}, err
		}
		items = append(items, referral)
	}
	page.Items = items

	return page, nil
}

// UpdateReferral encrypts the sensitive fields, PUTs the full record and
// returns the updated record as confirmed by the service, decrypted
// again. Callers always supply plaintext; passing ciphertext in is a
// contract violation this layer cannot detect.
func (c *Client) UpdateReferral(ctx context.Context, caller identity.CallerIdentity, referral Referral) (Referral, error) {
	ctx = observability.WithFields(ctx, observability.Field{Key: "referral_id", Value: referral.ID})

	if err := c.encryptSensitiveFields(&referral); err != nil {
		c.logger.Error(ctx, "failed to encrypt referral fields", err)
		return Referral{}, err
	}

	var updated Referral
	if err := c.do(ctx, caller, http.MethodPut, fmt.Sprintf("/api/referrals/%d", referral.ID), nil, referral, &updated); err != nil {
		return Referral{}, err
	}

	if err := c.decryptSensitiveFields(&updated); err != nil {
		c.logger.Error(ctx, "failed to decrypt updated referral fields", err)
		return Referral{}, err
	}

	return updated, nil
}

// UpdateReferralStatus sets only the status of a referral and returns the
// resulting status name as confirmed by the service.
func (c *Client) UpdateReferralStatus(ctx context.Context, caller identity.CallerIdentity, referralID int64, status StatusName) (string, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "referral_id", Value: referralID},
		observability.Field{Key: "status", Value: string(status)},
	)

	path := fmt.Sprintf("/api/referrals/%d/status/%s", referralID, url.PathEscape(string(status)))

	var confirmed string
	if err := c.do(ctx, caller, http.MethodPut, path, nil, nil, &confirmed); err != nil {
		return "", err
	}

	return confirmed, nil
}

// GetReferralStatuses fetches the backend's status catalog.
func (c *Client) GetReferralStatuses(ctx context.Context, caller identity.CallerIdentity) ([]ReferralStatus, error) {
	var statuses []ReferralStatus
	if err := c.do(ctx, caller, http.MethodGet, "/api/referralstatuses", nil, nil, &statuses); err != nil {
		return nil, err
	}
	if statuses == nil {
		statuses = []ReferralStatus{}
	}
	return statuses, nil
}

// do performs one authenticated round trip. Distinct failure kinds map to
// distinct error types; none are retried here.
func (c *Client) do(ctx context.Context, caller identity.CallerIdentity, method, path string, query url.Values, body any, out any) error {
	if caller.BearerToken == "" {
		return ErrNoBearerToken
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			c.logger.Error(ctx, "failed to marshal request body", err)
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		c.logger.Error(ctx, "failed to create request", err)
		return fmt.Errorf("failed to create request: %w", err)
	}
	if query != nil {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Authorization", "Bearer "+caller.BearerToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "failed to call referral service", err)
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, resp.Body)
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		c.logger.InfoWithError(ctx, "referral service returned non-success status", statusErr)
		return statusErr
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logger.Error(ctx, "failed to decode referral service response", err)
		return &DecodeError{Err: err}
	}

	return nil
}

// decryptSensitiveFields replaces the two encrypted fields with their
// plaintext. Assignment happens only after both succeed, so a failed call
// never leaves a half-decrypted record visible.
func (c *Client) decryptSensitiveFields(r *Referral) error {
	reason, err := c.crypto.DecryptData(r.ReasonForSupport)
	if err != nil {
		return err
	}
	engage, err := c.crypto.DecryptData(r.EngageWithFamily)
	if err != nil {
		return err
	}
	r.ReasonForSupport = reason
	r.EngageWithFamily = engage
	return nil
}

func (c *Client) encryptSensitiveFields(r *Referral) error {
	reason, err := c.crypto.EncryptData(r.ReasonForSupport)
	if err != nil {
		return err
	}
	engage, err := c.crypto.EncryptData(r.EngageWithFamily)
	if err != nil {
		return err
	}
	r.ReasonForSupport = reason
	r.EngageWithFamily = engage
	return nil
}
