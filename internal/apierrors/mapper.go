package apierrors

import (
	"errors"
	"net/http"

	"referral-access/internal/clients/referralapi"
	"referral-access/internal/crypto"
	decisionProcessor "referral-access/internal/decision/processor"
	"referral-access/internal/identity"
)

// MapError converts domain errors to APIErrors. This centralizes the
// error mapping so every handler returns consistent responses. Unknown
// errors become a sanitized 500.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	// Check if already an APIError
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var validationErr *referralapi.ValidationError
	var statusErr *referralapi.StatusError
	var transportErr *referralapi.TransportError
	var decodeErr *referralapi.DecodeError

	switch {
	// Identity errors
	case errors.Is(err, identity.ErrMissingToken),
		errors.Is(err, identity.ErrExpiredToken),
		errors.Is(err, identity.ErrInvalidToken),
		errors.Is(err, identity.ErrParseToken),
		errors.Is(err, referralapi.ErrNoBearerToken):
		return Unauthorized("unauthorized")

	// Decision workflow errors
	case errors.Is(err, decisionProcessor.ErrDeclineReasonRequired):
		return BadRequest(CodeReasonRequired, "A reason is required to decline a request")

	case errors.Is(err, decisionProcessor.ErrUnknownStatus):
		return BadRequest(CodeInvalidRequest, "Unknown referral status")

	// Referral service client errors
	case errors.As(err, &validationErr):
		return BadRequest(CodeInvalidRequest, validationErr.Reason)

	case errors.As(err, &statusErr):
		if statusErr.StatusCode == http.StatusNotFound {
			return NotFound("Request not found")
		}
		if statusErr.StatusCode == http.StatusUnauthorized || statusErr.StatusCode == http.StatusForbidden {
			return Unauthorized("unauthorized")
		}
		return BadGateway("The referral service could not process the request")

	case errors.As(err, &transportErr):
		return BadGateway("The referral service is unavailable")

	case errors.As(err, &decodeErr):
		return BadGateway("The referral service returned an unreadable response")

	// Garbled sensitive data must fail hard, never leak ciphertext
	case errors.Is(err, crypto.ErrDecrypt):
		return InternalError()

	default:
		return InternalError()
	}
}
