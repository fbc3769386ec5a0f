package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrValidation                = errors.New("validation failed")
	ErrInvalidTransition         = errors.New("invalid status transition")
	ErrPrecondition              = errors.New("precondition not met")
	ErrRecommendationUnavailable = errors.New("recommendation service unavailable")
	ErrNotFound                  = errors.New("record not found")
	ErrDuplicateID               = errors.New("duplicate record id")
	ErrInsufficientPoints        = errors.New("insufficient points")
)

// ValidationError lists every rejected field of a submission, keyed by field name.
type ValidationError struct {
	Fields map[string]string
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
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

type InvalidTransitionError struct {
	From DonationStatus
	To   DonationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }

type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrPrecondition, e.Reason)
}

func (e *PreconditionError) Is(target error) bool { return target == ErrPrecondition }

// RecommendationUnavailableError wraps the transport, decode or context error of a failed call.
type RecommendationUnavailableError struct {
	Err error
}

func (e *RecommendationUnavailableError) Error() string {
	if e.Err == nil {
		return ErrRecommendationUnavailable.Error()
	}
	return fmt.Sprintf("%s: %v", ErrRecommendationUnavailable, e.Err)
}

func (e *RecommendationUnavailableError) Is(target error) bool {
	return target == ErrRecommendationUnavailable
}

func (e *RecommendationUnavailableError) Unwrap() error { return e.Err }

type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

type DuplicateIDError struct {
	Kind string
	ID   string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s: %s %q already exists", ErrDuplicateID, e.Kind, e.ID)
}

func (e *DuplicateIDError) Is(target error) bool { return target == ErrDuplicateID }

type InsufficientPointsError struct {
	Balance  int
	Required int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("%s: balance %d, required %d", ErrInsufficientPoints, e.Balance, e.Required)
}

func (e *InsufficientPointsError) Is(target error) bool { return target == ErrInsufficientPoints }
