package common

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned by operations that need a session.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrUnavailable marks list data that could not be fetched. It is
	// distinct from an empty list.
	ErrUnavailable = errors.New("data unavailable")
)

// NetworkError means no HTTP response was received: the host was
// unreachable, the request timed out or the context was cancelled.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError is a non-2xx response. Detail holds the server's "detail"
// message when the body carried one.
type ServerError struct {
	Status int
	Detail string
	Err    error
}

func (e *ServerError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server error %d: %s", e.Status, e.Detail)
	}
	if e.Err != nil {
		return fmt.Sprintf("server error %d: %v", e.Status, e.Err)
	}
	return fmt.Sprintf("server error %d", e.Status)
}

func (e *ServerError) Unwrap() error { return e.Err }

// StorageError is a failed key-value operation.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage %s[%s]: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// ValidationError is a client-side field check failure.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// AuthError is the normalized failure of a login or registration. Its
// message is safe to show to the user; the underlying cause stays
// reachable through errors.As/Unwrap for logging.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return e.Err }

// UserMessage picks the message a screen should display for err.
func UserMessage(err error) string {
	var (
		authErr       *AuthError
		validationErr *ValidationError
		serverErr     *ServerError
		networkErr    *NetworkError
		storageErr    *StorageError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &authErr):
		return authErr.Message
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.As(err, &serverErr) && serverErr.Detail != "":
		return serverErr.Detail
	case errors.As(err, &networkErr):
		return GenericNetworkMessage
	case errors.As(err, &storageErr):
		return StorageFailureMessage
	default:
		return err.Error()
	}
}
