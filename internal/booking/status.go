// Package booking holds the booking lifecycle rules: the status set, the
// transition table, who may request which transition, and the amount
// computation. Every persisted status change must pass through
// ValidateTransition; handlers and services do not re-check roles on their own.
package booking

import (
	"errors"
	"strings"

	"github.com/camilohimself/projet-gocours/internal/models"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusNoShow    Status = "NO_SHOW"
)

var (
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
)

// transitions lists the permitted target states per source state.
// COMPLETED, CANCELLED and NO_SHOW are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
	StatusCompleted: {},
	StatusCancelled: {},
	StatusNoShow:    {},
}

// ParseStatus normalizes client input into a Status.
func ParseStatus(raw string) (Status, error) {
	switch strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(raw, "-", "_"))) {
	case "PENDING":
		return StatusPending, nil
	case "CONFIRM", "CONFIRMED":
		return StatusConfirmed, nil
	case "COMPLETE", "COMPLETED":
		return StatusCompleted, nil
	case "CANCEL", "CANCELED", "CANCELLED":
		return StatusCancelled, nil
	case "NO_SHOW", "NOSHOW":
		return StatusNoShow, nil
	default:
		return "", ErrInvalidStatus
	}
}

func IsTerminal(status Status) bool {
	targets, ok := transitions[status]
	return ok && len(targets) == 0
}

// ValidateTransition checks that requested is reachable from current and that
// the acting role is allowed to request it. Only a tutor may confirm a
// booking. It has no side effects; on success it returns the new status.
func ValidateTransition(current, requested Status, actorRole string) (Status, error) {
	targets, ok := transitions[current]
	if !ok {
		return "", ErrInvalidStatus
	}

	permitted := false
	for _, target := range targets {
		if target == requested {
			permitted = true
			break
		}
	}
	if !permitted {
		return "", ErrInvalidTransition
	}

	if requested == StatusConfirmed && actorRole != models.RoleTutor {
		return "", ErrForbidden
	}

	return requested, nil
}

// ValidateDeletion enforces the cancellation-by-deletion rule: a booking can
// be removed only while still pending.
func ValidateDeletion(current Status) error {
	if current != StatusPending {
		return ErrConflict
	}
	return nil
}

// TotalAmount prices a booking from the tutor's hourly rate at creation time.
// Historical bookings are never repriced when the rate changes later.
func TotalAmount(hourlyRate float64, durationMinutes int) float64 {
	return hourlyRate * float64(durationMinutes) / 60
}
