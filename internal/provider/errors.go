package provider

import (
	"errors"
	"fmt"
)

// Status is the status string the geocoding provider returns with every response.
type Status string

const (
	StatusOK             Status = "OK"
	StatusZeroResults    Status = "ZERO_RESULTS"
	StatusOverQueryLimit Status = "OVER_QUERY_LIMIT"
	StatusOverDailyLimit Status = "OVER_DAILY_LIMIT"
	StatusRequestDenied  Status = "REQUEST_DENIED"
	StatusInvalidRequest Status = "INVALID_REQUEST"
	StatusUnknownError   Status = "UNKNOWN_ERROR"
)

// ErrorKind is the category a provider failure falls into.
type ErrorKind int

const (
	// ErrorKindUnknownUpstream is an unexpected status or an unreadable response.
	ErrorKindUnknownUpstream ErrorKind = iota
	// ErrorKindInvalidRequest means the provider rejected the query itself.
	ErrorKindInvalidRequest
	// ErrorKindQuotaExceeded means the API key ran out of quota.
	ErrorKindQuotaExceeded
	// ErrorKindAccessDenied means the API key was refused.
	ErrorKindAccessDenied
	// ErrorKindTransient covers network failures and provider-side errors worth retrying.
	ErrorKindTransient
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindInvalidRequest:
		return "invalid_request"
	case ErrorKindQuotaExceeded:
		return "quota_exceeded"
	case ErrorKindAccessDenied:
		return "access_denied"
	case ErrorKindTransient:
		return "transient"
	default:
		return "unknown_upstream"
	}
}

// Error is a failed provider call.
type Error struct {
	Kind    ErrorKind
	Status  Status
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := "provider: " + e.Message
	if e.Status != "" {
		msg = fmt.Sprintf("%s (status %s)", msg, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind, true
	}
	return ErrorKindUnknownUpstream, false
}

// StatusError maps a provider status to an error. OK and ZERO_RESULTS are not
// errors; an empty result list is classified like any other.
func StatusError(status Status, message string) error {
	switch status {
	case StatusOK, StatusZeroResults:
		return nil
	case StatusOverQueryLimit, StatusOverDailyLimit:
		return &Error{Kind: ErrorKindQuotaExceeded, Status: status, Message: orDefault(message, "quota exceeded")}
	case StatusRequestDenied:
		return &Error{Kind: ErrorKindAccessDenied, Status: status, Message: orDefault(message, "request denied")}
	case StatusInvalidRequest:
		return &Error{Kind: ErrorKindInvalidRequest, Status: status, Message: orDefault(message, "invalid request")}
	case StatusUnknownError:
		return &Error{Kind: ErrorKindTransient, Status: status, Message: orDefault(message, "provider error")}
	default:
		return &Error{Kind: ErrorKindUnknownUpstream, Status: status, Message: orDefault(message, "unexpected status")}
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
