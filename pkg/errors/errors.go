package errors

import (
	"fmt"
	"strings"
)

// StatusCoder is implemented by errors that map to an HTTP status.
// Handlers fall back to 500 for anything else.
type StatusCoder interface {
	StatusCode() int
}

// StatusCode returns the HTTP status attached to err, or 500.
func StatusCode(err error) int {
	if sc, ok := err.(StatusCoder); ok {
		return sc.StatusCode()
	}
	return 500
}

// ErrValidation is returned when request input is missing or malformed
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

func (e *ErrValidation) StatusCode() int { return 400 }

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
	Message  string
}

func (e *ErrNotFound) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *ErrNotFound) StatusCode() int { return 404 }

// ErrUnauthorized is returned when authentication fails
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

func (e *ErrUnauthorized) StatusCode() int { return 401 }

// ErrRefreshTokenExpired is terminal: the merchant must re-authenticate.
// Retrying the refresh cannot succeed.
type ErrRefreshTokenExpired struct {
	Shop string
}

func (e *ErrRefreshTokenExpired) Error() string {
	return fmt.Sprintf("refresh token expired for shop: %s. Re-authentication required", e.Shop)
}

func (e *ErrRefreshTokenExpired) StatusCode() int { return 401 }

// ErrMissingRefreshToken is returned when a refresh is required but the
// session has no refresh token stored.
type ErrMissingRefreshToken struct {
	Shop string
}

func (e *ErrMissingRefreshToken) Error() string {
	return fmt.Sprintf("no refresh token available for shop: %s", e.Shop)
}

func (e *ErrMissingRefreshToken) StatusCode() int { return 401 }

// ErrTokenRefresh wraps a failed token exchange with the OAuth endpoint.
// The stored session is left untouched on this error.
type ErrTokenRefresh struct {
	Shop  string
	Cause error
}

func (e *ErrTokenRefresh) Error() string {
	return fmt.Sprintf("token refresh failed for shop %s: %v", e.Shop, e.Cause)
}

func (e *ErrTokenRefresh) StatusCode() int { return 502 }

func (e *ErrTokenRefresh) Unwrap() error { return e.Cause }

// ErrConflict is returned on state conflicts (workspace ID mismatch,
// idempotency key reuse with a different payload)
type ErrConflict struct {
	Message string
	Status  int
}

func (e *ErrConflict) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "conflict"
}

func (e *ErrConflict) StatusCode() int {
	if e.Status != 0 {
		return e.Status
	}
	return 409
}

// ErrUpstream is returned when a Shopify mutation reports field-level user
// errors. Errors holds "field: message" pairs.
type ErrUpstream struct {
	Operation string
	Errors    []string
}

func (e *ErrUpstream) Error() string {
	return fmt.Sprintf("%s failed: %s", e.Operation, strings.Join(e.Errors, "; "))
}

func (e *ErrUpstream) StatusCode() int { return 400 }

// ErrUnexpectedResponse is returned when a remote call succeeded at the
// transport level but the payload is missing the expected mutation key.
type ErrUnexpectedResponse struct {
	Operation string
}

func (e *ErrUnexpectedResponse) Error() string {
	return fmt.Sprintf("unexpected response from Shopify: missing %s payload", e.Operation)
}

func (e *ErrUnexpectedResponse) StatusCode() int { return 502 }

// ErrUnavailable is returned when a required remote collaborator is not
// configured for this deployment.
type ErrUnavailable struct {
	Message string
}

func (e *ErrUnavailable) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "service unavailable"
}

func (e *ErrUnavailable) StatusCode() int { return 503 }

// NoSession builds the canonical missing-session error for a shop.
func NoSession(shop string) *ErrNotFound {
	return &ErrNotFound{
		Resource: "session",
		ID:       shop,
		Message:  fmt.Sprintf("no offline session found for shop: %s", shop),
	}
}

// OrderNotFound builds the canonical missing-order error.
func OrderNotFound(ref string) *ErrNotFound {
	return &ErrNotFound{Resource: "order", ID: ref, Message: "order not found"}
}

// NoOrdersForEmail is the email-path variant of a missing order.
func NoOrdersForEmail(email string) *ErrNotFound {
	return &ErrNotFound{Resource: "order", ID: email, Message: "no orders found for this email"}
}
