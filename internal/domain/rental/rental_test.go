package rental

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRental(t *testing.T) *Rental {
	t.Helper()
	pickup := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	r, err := NewRental(uuid.New(), uuid.New(), pickup, pickup.AddDate(0, 0, 2), Quote{
		Days: 2, WeekdayCount: 2, WeekdayTotal: 1000000, TaxFee: 100000, Total: 1100000,
	}, "")
	require.NoError(t, err)
	return r
}

func TestNewRental_Defaults(t *testing.T) {
	r := newTestRental(t)
	assert.Equal(t, StatusPending, r.Status())
	assert.Equal(t, CurrencyVND, r.Currency())
	assert.Equal(t, int64(1), r.Version())
	assert.Regexp(t, `^RT-[A-Z2-9]{6}$`, r.RentalNumber())
}

func TestNewRental_Validation(t *testing.T) {
	pickup := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	quote := Quote{Total: 1100000}

	_, err := NewRental(uuid.Nil, uuid.New(), pickup, pickup.AddDate(0, 0, 1), quote, "")
	assert.Error(t, err)

	_, err = NewRental(uuid.New(), uuid.New(), pickup, pickup.AddDate(0, 0, -1), quote, "")
	assert.Error(t, err)

	_, err = NewRental(uuid.New(), uuid.New(), pickup, pickup.AddDate(0, 0, 1), Quote{}, "")
	assert.Error(t, err)
}

func TestRentalLifecycle(t *testing.T) {
	r := newTestRental(t)

	require.NoError(t, r.Approve())
	assert.Equal(t, StatusApproved, r.Status())
	assert.NotNil(t, r.ApprovedAt())

	require.NoError(t, r.Complete())
	assert.Equal(t, StatusCompleted, r.Status())
	assert.NotNil(t, r.CompletedAt())

	// Terminal: no further transitions.
	assert.Error(t, r.Cancel("too late"))
	assert.Error(t, r.Approve())
}

func TestRental_CompleteRequiresApproval(t *testing.T) {
	r := newTestRental(t)
	assert.Error(t, r.Complete())
}

func TestRental_CancelFromPendingAndApproved(t *testing.T) {
	r := newTestRental(t)
	require.NoError(t, r.Cancel("changed my mind"))
	assert.Equal(t, StatusCancelled, r.Status())
	assert.Equal(t, "changed my mind", r.CancelNote())

	r2 := newTestRental(t)
	require.NoError(t, r2.Approve())
	require.NoError(t, r2.Cancel("vehicle damaged"))
	assert.Equal(t, StatusCancelled, r2.Status())
}

func TestRentalStatus_Transitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusApproved))
	assert.False(t, StatusPending.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusApproved.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())

	_, err := ParseRentalStatus("nonsense")
	assert.Error(t, err)
}
