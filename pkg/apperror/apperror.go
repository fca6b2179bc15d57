// Package apperror defines the application error taxonomy. Every failure a
// handler can surface is one of the kinds below; the HTTP layer maps a kind
// to a status code and only the user-facing message ever leaves the process.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	// InternalError is an unexpected server-side failure.
	InternalError Kind = iota
	// InvalidInput is a request validation failure; Message names the field rule.
	InvalidInput
	// DuplicateAccount means an account with the same email already exists.
	DuplicateAccount
	// NotFound means the requested record does not exist.
	NotFound
	// WrongAuthMethod means the account exists but uses the other sign-in path.
	WrongAuthMethod
	// InvalidCredential means the supplied password or token failed verification.
	InvalidCredential
	// MissingCredential means no token was supplied on a protected route.
	MissingCredential
	// FederatedAuthFailed means the third-party identity assertion could not be verified.
	FederatedAuthFailed
)

// Error is a tagged application error. Err carries the underlying cause for
// logs; only Message is shown to clients.
type Error struct {
	Kind    Kind
	Message string
	Err     error
	// Status overrides the kind's default HTTP status when nonzero. The
	// sign-in contract returns 403 for an unknown email while missing
	// resources elsewhere are plain 404s.
	Status int
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// StatusCode maps the error kind to the HTTP status the API contract fixes.
func (e *Error) StatusCode() int {
	if e.Status != 0 {
		return e.Status
	}
	switch e.Kind {
	case InvalidInput, NotFound, WrongAuthMethod, InvalidCredential:
		return http.StatusForbidden
	case MissingCredential:
		return http.StatusUnauthorized
	case DuplicateAccount, FederatedAuthFailed, InternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Response is the wire shape for every error body.
type Response struct {
	Error string `json:"error"`
}

// ToResponse strips the underlying cause and keeps the user-facing message.
func (e *Error) ToResponse() Response {
	return Response{Error: e.Message}
}

func New(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewInvalidInput(message string) *Error {
	return New(InvalidInput, message, nil)
}

func NewDuplicateAccount(message string, err error) *Error {
	return New(DuplicateAccount, message, err)
}

func NewNotFound(message string) *Error {
	return New(NotFound, message, nil)
}

func NewWrongAuthMethod(message string) *Error {
	return New(WrongAuthMethod, message, nil)
}

func NewInvalidCredential(message string) *Error {
	return New(InvalidCredential, message, nil)
}

func NewMissingCredential(message string) *Error {
	return New(MissingCredential, message, nil)
}

func NewFederatedAuthFailed(message string, err error) *Error {
	return New(FederatedAuthFailed, message, err)
}

func NewInternal(message string, err error) *Error {
	return New(InternalError, message, err)
}

// From converts any error into an *Error, wrapping unknown errors as
// InternalError with a generic message so internals never leak.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return NewInternal("something went wrong", err)
}

// IsKind reports whether err is an application error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
