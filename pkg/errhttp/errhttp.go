// Package errhttp writes JSON error responses for domain variants and for the
// sentinel errors that reach the transport.
//
// Variants are mapped through a domainerr.Classifier, so a new error kind fails
// to compile here until it has a status. Sentinels are matched with errors.Is;
// add a case to sentinelStatus for each new one.
package errhttp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/ghuser/hourglass/pkg/auth"
	"github.com/ghuser/hourglass/pkg/domainerr"
	"github.com/ghuser/hourglass/pkg/httpx"
	trackingdomain "github.com/ghuser/hourglass/services/tracking/domain"
)

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string         `json:"error" example:"time entry overlaps an existing entry"`
	Kind  domainerr.Kind `json:"kind,omitempty" example:"invariant_violation"`
	ID    *uuid.UUID     `json:"id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
} // @name ErrorResponse

// statusClassifier maps each kind of domain error to an HTTP status.
type statusClassifier struct{}

func (statusClassifier) NotFound(domainerr.Error) int           { return http.StatusNotFound }
func (statusClassifier) RelatedNotFound(domainerr.Error) int    { return http.StatusNotFound }
func (statusClassifier) AlreadyExists(domainerr.Error) int      { return http.StatusConflict }
func (statusClassifier) InvariantViolation(domainerr.Error) int { return http.StatusConflict }
func (statusClassifier) Unknown(domainerr.Error) int            { return http.StatusInternalServerError }

// Status returns the HTTP status for a domain variant.
func Status(err domainerr.Error) int {
	return domainerr.Classify[int](err, statusClassifier{})
}

// WriteDomainError writes a domain variant. The message of an Unknown variant
// carries its cause and is replaced with the generic status text.
func WriteDomainError(w http.ResponseWriter, err domainerr.Error) {
	status := Status(err)
	body := ErrorResponse{Error: err.Error(), Kind: domainerr.KindOf(err)}
	if status >= http.StatusInternalServerError {
		body.Error = http.StatusText(status)
	}
	if id := err.Subject(); id != uuid.Nil {
		body.ID = &id
	}
	httpx.JSON(w, status, body)
}

// WriteError maps a non-variant err to an HTTP status and writes a JSON error
// response. Unrecognized errors become 500 with the generic status text.
func WriteError(w http.ResponseWriter, err error) {
	status := sentinelStatus(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	httpx.JSON(w, status, ErrorResponse{Error: msg})
}

func sentinelStatus(err error) int {
	switch {
	case errors.Is(err, trackingdomain.ErrInvalidCredentials),
		errors.Is(err, trackingdomain.ErrUnauthenticated),
		errors.Is(err, auth.ErrUserIDNotFound):
		return http.StatusUnauthorized // 401
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable // 503
	default:
		return http.StatusInternalServerError // 500
	}
}
