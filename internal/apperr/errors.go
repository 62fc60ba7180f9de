// Package apperr defines the failure taxonomy shared by the gateway, the
// session controller and the push channel. Callers branch on these with
// errors.As.
package apperr

import "fmt"

// ValidationError rejects user input before any network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// AuthError means the backend rejected the credentials or the request's
// authorization. Message is the backend's error string when it sent one.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return e.Message
}

// NetworkError wraps a request that failed to complete or came back with an
// unexpected status.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// NotFoundError means the referenced entity does not exist on the backend.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// ChannelError wraps a push channel failure (dial or read). The channel
// supervisor logs these and reconnects; they are never fatal.
type ChannelError struct {
	Err error
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("push channel: %v", e.Err)
}

func (e *ChannelError) Unwrap() error { return e.Err }
