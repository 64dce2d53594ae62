package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrSessionNotFound        = errors.New("case session not found")
	ErrGateNotFound           = errors.New("consent gate not found")
	ErrContributorNotFound    = errors.New("contributor not found")
	ErrCategoryNotFound       = errors.New("case category not found")
	ErrStepBlocked            = errors.New("current step is incomplete")
	ErrConsentRequired        = errors.New("consent must be accepted before submitting")
	ErrConsentIncomplete      = errors.New("all consent affirmations must be checked")
	ErrWizardComplete         = errors.New("case has already been submitted")
	ErrNotAtReview            = errors.New("case is not at the review step")
	ErrContributorUnavailable = errors.New("contributor is unavailable")
	ErrFileIndexOutOfRange    = errors.New("file index out of range")
	ErrAffirmationOutOfRange  = errors.New("affirmation index out of range")
)

// ValidationError carries one message per offending field
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates an empty validation error
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Set records a message for field
func (e *ValidationError) Set(field, message string) {
	e.Fields[field] = message
}

// Empty reports whether no field failed
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// OrNil returns e when it has failures and nil otherwise
func (e *ValidationError) OrNil() error {
	if e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// StepError wraps ErrStepBlocked with the inline messages of the blocked step
type StepError struct {
	*ValidationError
}

func (e *StepError) Unwrap() error {
	return ErrStepBlocked
}
