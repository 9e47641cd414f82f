package domain

import "errors"

// Domain errors
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrApartmentNotFound = errors.New("apartment not found")
	ErrInvalidYear       = errors.New("invalid year")
	ErrInvalidMonth      = errors.New("invalid month name")
	ErrSourceUnavailable = errors.New("data source unavailable")
	ErrUnknownDataSource = errors.New("unknown data source")
)

// Roles known to the dashboard. Users see only their allowed apartments;
// admins see everything.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
