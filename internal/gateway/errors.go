package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/akyairhashvil/sprintboard/internal/models"
)

// Kind classifies a gateway failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindTransient
	KindValidation
	KindNotFound
	KindConflict
	KindInvariant
)

func (k Kind) String() string {
	switch k {
	case KindTransient:
		return "transient"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindConflict:
		return "conflict"
	case KindInvariant:
		return "invariant"
	}
	return "unknown"
}

var (
	ErrNotFound       = errors.New("record not found")
	ErrConflict       = errors.New("conflicting record")
	ErrNoActiveSprint = errors.New("no sprint is active after activation")
)

// Error is returned by every gateway implementation.
type Error struct {
	Op     string
	Entity models.EntityType
	ID     string
	Kind   Kind
	// Status is the HTTP status for networked gateways, 0 otherwise.
	Status int
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("%s %s", e.Op, e.Entity)
	if e.ID != "" {
		msg += " " + e.ID
	}
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	return fmt.Sprintf("%s: %s: %v", msg, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Wrap builds a gateway error, returning nil for a nil err.
func Wrap(op string, entity models.EntityType, id string, kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Entity: entity, ID: id, Kind: kind, Err: err}
}

// KindOf reports the kind of the first gateway error in err's chain. Errors
// from other layers that wrap ErrNotFound or ErrConflict are classified too.
func KindOf(err error) Kind {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Kind
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	}
	return KindUnknown
}

// KindForStatus maps an HTTP status to an error kind.
func KindForStatus(status int) Kind {
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return KindValidation
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case retryableStatus(status):
		return KindTransient
	}
	return KindUnknown
}

func retryableStatus(status int) bool {
	switch status {
	case http.StatusRequestTimeout, http.StatusTooManyRequests,
		http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// IsRetryable reports whether err is worth another attempt: transient gateway
// errors, rate limiting and 5xx responses, deadline expiry and network timeouts.
// Validation, not-found, conflict and invariant errors are never retried.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	var gwErr *Error
	if errors.As(err, &gwErr) {
		switch gwErr.Kind {
		case KindTransient:
			return true
		case KindValidation, KindNotFound, KindConflict, KindInvariant:
			return false
		}
		if gwErr.Status != 0 {
			return retryableStatus(gwErr.Status)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return false
}
