package apperrors

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError maps field names to human-readable messages, mirroring the
// shape of the JSON error payload the API returns for bad input.
type ValidationError struct {
	Fields map[string]string
}

func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AuthError covers bad credentials and invalid or expired tokens.
type AuthError struct {
	Message string
}

func NewAuth(message string) *AuthError {
	return &AuthError{Message: message}
}

func (e *AuthError) Error() string {
	return e.Message
}

// ForbiddenError means the caller is authenticated but does not own the
// resource it is trying to mutate.
type ForbiddenError struct {
	Message string
}

func NewForbidden(message string) *ForbiddenError {
	return &ForbiddenError{Message: message}
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// NotFoundError is returned both when a row does not exist and when it exists
// but is outside the caller's scope; the two cases are indistinguishable to
// the client.
type NotFoundError struct {
	Resource string
}

func NewNotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

func (e *NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return e.Resource + " not found"
}
