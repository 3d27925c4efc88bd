// Package stores holds the app's state containers: dashboards and widgets,
// connected services, and the auth session. Each store keeps its state in
// memory, mutates it as a single read-then-replace step, and persists a full
// JSON snapshot after every mutation.
package stores

import "errors"

var (
	ErrDashboardNotFound  = errors.New("dashboard not found")
	ErrWidgetNotFound     = errors.New("widget not found")
	ErrServiceNotFound    = errors.New("connected service not found")
	ErrLastDashboard      = errors.New("cannot remove the last dashboard")
	ErrUnknownWidgetType  = errors.New("unknown widget type")
	ErrUnknownServiceType = errors.New("unknown service type")
	ErrNotAuthenticated   = errors.New("not authenticated")
)

// FetchError wraps a failed remote read. The store records its message and
// leaves the previous state untouched.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return "failed to fetch connected services: " + e.Err.Error()
}

func (e *FetchError) Unwrap() error { return e.Err }

// AuthError wraps a failed identity provider call.
type AuthError struct {
	Op  string
	Err error
}

func (e *AuthError) Error() string {
	return e.Op + " failed: " + e.Err.Error()
}

func (e *AuthError) Unwrap() error { return e.Err }
