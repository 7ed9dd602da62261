package eta

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rashedul-dev/Qourio-client/internal/client/models"
)

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestDeliveryDate_DefaultTable(t *testing.T) {
	tests := []struct {
		status models.ParcelStatus
		days   int
	}{
		{models.StatusRequested, 7},
		{models.StatusApproved, 6},
		{models.StatusPending, 7},
		{models.StatusPicked, 5},
		{models.StatusDispatched, 4},
		{models.StatusInTransit, 3},
		{models.StatusRescheduled, 3},
		{models.StatusOutForDelivery, 1},
		{models.StatusFailedAttempt, 2},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			want := base.AddDate(0, 0, tt.days)
			require.Equal(t, want, DeliveryDate(tt.status, base))
		})
	}
}

func TestDeliveryDate_TerminalStatusesProjectNothing(t *testing.T) {
	for _, s := range []models.ParcelStatus{
		models.StatusDelivered, models.StatusReturned, models.StatusCancelled,
		models.StatusBlocked, models.StatusFlagged, models.StatusLost,
		models.StatusDamaged, models.StatusReceived,
	} {
		assert.Equalf(t, base, DeliveryDate(s, base), "terminal status %s must keep the timestamp", s)
	}
}

func TestDeliveryDate_UnknownStatusFallsBack(t *testing.T) {
	want := base.AddDate(0, 0, DefaultDaysFallback)
	require.Equal(t, want, DeliveryDate("Teleported", base))
	require.Equal(t, want, DeliveryDate("", base))
}

func TestDeliveryDate_Overrides(t *testing.T) {
	custom := Days{models.StatusInTransit: 10}

	got := DeliveryDate(models.StatusInTransit, base, custom)
	require.Equal(t, base.AddDate(0, 0, 10), got)

	// statuses absent from the override still use the default table
	got = DeliveryDate(models.StatusPicked, base, custom)
	require.Equal(t, base.AddDate(0, 0, 5), got)

	// the default table is not mutated by overrides
	require.Equal(t, base.AddDate(0, 0, 3), DeliveryDate(models.StatusInTransit, base))

	// an explicit zero in the override is honored, not skipped
	got = DeliveryDate(models.StatusInTransit, base, Days{models.StatusInTransit: 0})
	require.Equal(t, base, got)
}

func TestDeliveryDate_ZeroTimestamp(t *testing.T) {
	require.True(t, DeliveryDate(models.StatusInTransit, time.Time{}).IsZero())
	require.Empty(t, DeliveryDateString(models.StatusInTransit, time.Time{}))
}

func TestDeliveryDateString_Examples(t *testing.T) {
	// In-Transit adds 3 days.
	require.Equal(t, "2024-01-04", DeliveryDateString(models.StatusInTransit, base))
	// Delivered is terminal.
	require.Equal(t, "2024-01-01", DeliveryDateString(models.StatusDelivered, base))
}

func TestDeliveryDate_CalendarDaysNotHours(t *testing.T) {
	// 23:30 plus one calendar day lands on the next date, not 24h later with
	// DST drift. AddDate keeps the wall clock.
	late := time.Date(2024, 3, 30, 23, 30, 0, 0, time.UTC)
	got := DeliveryDate(models.StatusOutForDelivery, late)
	require.Equal(t, time.Date(2024, 3, 31, 23, 30, 0, 0, time.UTC), got)
}
