// Package eta derives a projected delivery date from a parcel's current
// status and the timestamp of its most recent status-log entry. This value is
// a client-side projection and is intentionally distinct from the parcel's
// own EstimatedDelivery field, which the backend computes; the two can
// disagree and are never reconciled.
package eta

import (
	"time"

	"github.com/rashedul-dev/Qourio-client/internal/client/models"
)

// Days maps a status to the number of calendar days to add on top of the
// last status-log timestamp.
type Days map[models.ParcelStatus]int

// DefaultDaysFallback applies when a status is absent from both the override
// and the default table.
const DefaultDaysFallback = 5

// defaultDays is the built-in projection table. Terminal states project zero
// days: the last log entry already is the final word.
var defaultDays = Days{
	models.StatusRequested:      7,
	models.StatusApproved:       6,
	models.StatusPending:        7,
	models.StatusPicked:         5,
	models.StatusDispatched:     4,
	models.StatusInTransit:      3,
	models.StatusRescheduled:    3,
	models.StatusOutForDelivery: 1,
	models.StatusFailedAttempt:  2,
	models.StatusDelivered:      0,
	models.StatusReturned:       0,
	models.StatusCancelled:      0,
	models.StatusBlocked:        0,
	models.StatusFlagged:        0,
	models.StatusLost:           0,
	models.StatusDamaged:        0,
	models.StatusReceived:       0,
}

// DeliveryDate projects the delivery date for status from the last
// status-log timestamp. Optional override tables are consulted before the
// default table and never mutate it; the first override carrying the status
// wins. Unknown statuses fall back to DefaultDaysFallback days.
//
// A zero lastUpdated is returned unchanged: the caller is expected to guard
// against an empty status log, and a zero output makes that failure visible
// without panicking.
func DeliveryDate(status models.ParcelStatus, lastUpdated time.Time, overrides ...Days) time.Time {
	if lastUpdated.IsZero() {
		return lastUpdated
	}
	return lastUpdated.AddDate(0, 0, days(status, overrides))
}

// DeliveryDateString is DeliveryDate formatted as an ISO calendar date
// (2006-01-02), the form shown in tables and tracking output. A zero input
// produces an empty string.
func DeliveryDateString(status models.ParcelStatus, lastUpdated time.Time, overrides ...Days) string {
	d := DeliveryDate(status, lastUpdated, overrides...)
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

func days(status models.ParcelStatus, overrides []Days) int {
	for _, o := range overrides {
		if d, ok := o[status]; ok {
			return d
		}
	}
	if d, ok := defaultDays[status]; ok {
		return d
	}
	return DefaultDaysFallback
}
