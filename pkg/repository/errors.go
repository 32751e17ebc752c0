package repository

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies the error taxonomy the core recognizes (§7).
type Kind string

const (
	KindInvalidParameter   Kind = "invalid_parameter"
	KindInvalidCitation    Kind = "invalid_citation"
	KindAlreadyExists      Kind = "already_exists"
	KindDocumentMissing    Kind = "document_missing"
	KindCertificateMissing Kind = "certificate_missing"
	KindDocumentInvalid    Kind = "document_invalid"
	KindChainTooDeep       Kind = "chain_too_deep"
	KindServerError        Kind = "server_error"
	KindNetworkError       Kind = "network_error"
	KindInvalidRequest     Kind = "invalid_request"
	KindNotAllowed         Kind = "not_allowed"
)

// Error is the single structured error value every Client API
// operation wraps its root cause in (§7's propagation policy),
// modeled on the kind-classification idea behind moby/moby's errdefs
// package but built in the teacher's plain %w-wrapping idiom (see
// DESIGN.md).
type Error struct {
	Kind       Kind
	Operation  string
	AccountID  string
	Identifier string
	Cause      error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Operation, e.Kind)
	if e.AccountID != "" {
		msg += fmt.Sprintf(" account=%s", e.AccountID)
	}
	if e.Identifier != "" {
		msg += fmt.Sprintf(" id=%s", e.Identifier)
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(": %v", e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// Is supports errors.Is(err, &repository.Error{Kind: k}) style checks:
// it matches any *Error target with the same Kind; see IsKind below for
// the common case.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// Wrap builds a contextual *Error naming the operation, account, and
// critical identifier, around cause.
func Wrap(kind Kind, operation string, accountID string, identifier string, cause error) *Error {
	return &Error{Kind: kind, Operation: operation, AccountID: accountID, Identifier: identifier, Cause: cause}
}

// IsKind reports whether err (or any error it wraps) is a *Error of
// the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// HTTPStatus maps a Kind to the wire status code from §4.8/§7.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindAlreadyExists:
		return http.StatusConflict
	case KindInvalidParameter, KindInvalidCitation, KindInvalidRequest:
		return http.StatusBadRequest
	case KindNotAllowed:
		return http.StatusMethodNotAllowed
	case KindDocumentMissing, KindCertificateMissing:
		return http.StatusNotFound
	case KindDocumentInvalid, KindChainTooDeep:
		return http.StatusUnprocessableEntity
	case KindServerError:
		return http.StatusInternalServerError
	case KindNetworkError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// KindFromHTTPStatus maps a remote response's status code back to a
// Kind, per §4.8's status mapping table.
func KindFromHTTPStatus(status int) Kind {
	switch {
	case status >= 200 && status < 300:
		return ""
	case status == http.StatusConflict:
		return KindAlreadyExists
	case status == http.StatusBadRequest:
		return KindInvalidRequest
	case status == http.StatusMethodNotAllowed:
		return KindNotAllowed
	case status >= 500:
		return KindServerError
	default:
		return KindServerError
	}
}
