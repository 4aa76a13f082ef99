// Package model contains domain models passed between layers.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrValidation marks a request that failed field validation.
var ErrValidation = errors.New("invalid request")

// RegistrationTerm is the validity window granted to a new trademark.
const RegistrationTerm = 3650 * 24 * time.Hour

// Status is the lifecycle state of a trademark.
type Status string

// Known trademark statuses.
const (
	StatusPending    Status = "pending"
	StatusRegistered Status = "registered"
	StatusRejected   Status = "rejected"
	StatusExpired    Status = "expired"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusRegistered, StatusRejected, StatusExpired:
		return true
	}
	return false
}

// ParseStatus converts a raw string into a Status.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrValidation, raw)
	}
	return s, nil
}

// Trademark is the record exposed by the API.
// The ID is always assigned by the registry.
type Trademark struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Description      *string    `json:"description"`
	RegistrationDate time.Time  `json:"registrationDate"`
	ExpirationDate   *time.Time `json:"expirationDate"`
	Status           Status     `json:"status"`
	Owner            string     `json:"owner"`
	Classes          []int      `json:"classes"` // Nice classes
	CountryCodes     []string   `json:"countryCodes"`
}

// CreateRequest is the payload for registering a new trademark.
type CreateRequest struct {
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	Owner        string   `json:"owner"`
	Classes      []int    `json:"classes"`
	CountryCodes []string `json:"countryCodes"`
}

// Validate checks that all required fields are present.
func (r CreateRequest) Validate() error {
	switch {
	case strings.TrimSpace(r.Name) == "":
		return fmt.Errorf("%w: missing name", ErrValidation)
	case strings.TrimSpace(r.Owner) == "":
		return fmt.Errorf("%w: missing owner", ErrValidation)
	case r.Classes == nil:
		return fmt.Errorf("%w: missing classes", ErrValidation)
	case r.CountryCodes == nil:
		return fmt.Errorf("%w: missing countryCodes", ErrValidation)
	}
	return nil
}

// UpdateRequest is a partial update. Fields left unset are omitted when
// the request is marshaled; fields explicitly set to null are kept as null.
type UpdateRequest struct {
	Name         Optional[string]   `json:"name,omitzero"`
	Description  Optional[string]   `json:"description,omitzero"`
	Status       Optional[Status]   `json:"status,omitzero"`
	Owner        Optional[string]   `json:"owner,omitzero"`
	Classes      Optional[[]int]    `json:"classes,omitzero"`
	CountryCodes Optional[[]string] `json:"countryCodes,omitzero"`
}

// Validate checks the fields that carry a value.
func (r UpdateRequest) Validate() error {
	if name, ok := r.Name.Get(); ok && strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name must not be empty", ErrValidation)
	}
	if owner, ok := r.Owner.Get(); ok && strings.TrimSpace(owner) == "" {
		return fmt.Errorf("%w: owner must not be empty", ErrValidation)
	}
	if status, ok := r.Status.Get(); ok && !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}
	return nil
}

// Empty reports whether no field was provided at all.
func (r UpdateRequest) Empty() bool {
	return r.Name.IsZero() && r.Description.IsZero() && r.Status.IsZero() &&
		r.Owner.IsZero() && r.Classes.IsZero() && r.CountryCodes.IsZero()
}
