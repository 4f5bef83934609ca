package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camilohimself/projet-gocours/internal/models"
)

func TestParseStatusNormalizesInput(t *testing.T) {
	cases := map[string]Status{
		"confirmed": StatusConfirmed,
		"confirm":   StatusConfirmed,
		" Complete": StatusCompleted,
		"CANCELED":  StatusCancelled,
		"cancelled": StatusCancelled,
		"no-show":   StatusNoShow,
		"noshow":    StatusNoShow,
		"pending":   StatusPending,
	}
	for raw, want := range cases {
		got, err := ParseStatus(raw)
		require.NoError(t, err, "ParseStatus(%q)", raw)
		assert.Equal(t, want, got, "ParseStatus(%q)", raw)
	}

	_, err := ParseStatus("rescheduled")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestValidateTransitionTable(t *testing.T) {
	next, err := ValidateTransition(StatusPending, StatusCancelled, models.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, next)

	next, err = ValidateTransition(StatusConfirmed, StatusCompleted, models.RoleTutor)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, next)

	_, err = ValidateTransition(StatusConfirmed, StatusNoShow, models.RoleTutor)
	assert.NoError(t, err)

	_, err = ValidateTransition(StatusPending, StatusCompleted, models.RoleTutor)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = ValidateTransition(StatusPending, StatusNoShow, models.RoleTutor)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestValidateTransitionTerminalStatesRejectEverything(t *testing.T) {
	terminal := []Status{StatusCompleted, StatusCancelled, StatusNoShow}
	targets := []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow}

	for _, from := range terminal {
		assert.True(t, IsTerminal(from))
		for _, to := range targets {
			_, err := ValidateTransition(from, to, models.RoleTutor)
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", from, to)
		}
	}
}

func TestOnlyTutorsConfirm(t *testing.T) {
	_, err := ValidateTransition(StatusPending, StatusConfirmed, models.RoleStudent)
	assert.ErrorIs(t, err, ErrForbidden)

	next, err := ValidateTransition(StatusPending, StatusConfirmed, models.RoleTutor)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, next)
}

func TestValidateDeletion(t *testing.T) {
	assert.NoError(t, ValidateDeletion(StatusPending))

	for _, status := range []Status{StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow} {
		assert.ErrorIs(t, ValidateDeletion(status), ErrConflict, "delete in %s", status)
	}
}

func TestTotalAmount(t *testing.T) {
	assert.InDelta(t, 80.0, TotalAmount(80, 60), 1e-9)
	assert.InDelta(t, 120.0, TotalAmount(80, 90), 1e-9)
	assert.InDelta(t, 22.5, TotalAmount(45, 30), 1e-9)
}
