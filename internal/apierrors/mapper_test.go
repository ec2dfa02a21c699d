package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"referral-access/internal/clients/referralapi"
	"referral-access/internal/crypto"
	decisionProcessor "referral-access/internal/decision/processor"
	"referral-access/internal/identity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing token",
			err:        identity.ErrMissingToken,
			wantStatus: http.StatusUnauthorized,
			wantCode:   CodeUnauthorized,
		},
		{
			name:       "expired token",
			err:        identity.ErrExpiredToken,
			wantStatus: http.StatusUnauthorized,
			wantCode:   CodeUnauthorized,
		},
		{
			name:       "no bearer token for upstream",
			err:        referralapi.ErrNoBearerToken,
			wantStatus: http.StatusUnauthorized,
			wantCode:   CodeUnauthorized,
		},
		{
			name:       "decline without reason",
			err:        decisionProcessor.ErrDeclineReasonRequired,
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeReasonRequired,
		},
		{
			name:       "unknown status name",
			err:        fmt.Errorf("%w: %q", decisionProcessor.ErrUnknownStatus, "Archived"),
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidRequest,
		},
		{
			name:       "client-side validation",
			err:        &referralapi.ValidationError{Reason: "pageNumber must be at least 1"},
			wantStatus: http.StatusBadRequest,
			wantCode:   CodeInvalidRequest,
		},
		{
			name:       "upstream 404",
			err:        &referralapi.StatusError{StatusCode: http.StatusNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   CodeNotFound,
		},
		{
			name:       "upstream 403",
			err:        &referralapi.StatusError{StatusCode: http.StatusForbidden},
			wantStatus: http.StatusUnauthorized,
			wantCode:   CodeUnauthorized,
		},
		{
			name:       "upstream 500",
			err:        &referralapi.StatusError{StatusCode: http.StatusInternalServerError},
			wantStatus: http.StatusBadGateway,
			wantCode:   CodeUpstreamFailure,
		},
		{
			name:       "transport failure",
			err:        &referralapi.TransportError{Err: errors.New("connection refused")},
			wantStatus: http.StatusBadGateway,
			wantCode:   CodeUpstreamFailure,
		},
		{
			name:       "unreadable response",
			err:        &referralapi.DecodeError{Err: errors.New("invalid character '<'")},
			wantStatus: http.StatusBadGateway,
			wantCode:   CodeUpstreamFailure,
		},
		{
			name:       "decrypt failure is a sanitized 500",
			err:        fmt.Errorf("%w: cipher: message authentication failed", crypto.ErrDecrypt),
			wantStatus: http.StatusInternalServerError,
			wantCode:   CodeInternalError,
		},
		{
			name:       "unknown error is a sanitized 500",
			err:        errors.New("something unexpected"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   CodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := MapError(tt.err)
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestMapErrorNil(t *testing.T) {
	assert.Nil(t, MapError(nil))
}

func TestMapErrorPassesThroughAPIError(t *testing.T) {
	original := NotFound("Request not found")
	assert.Same(t, original, MapError(original))
}
