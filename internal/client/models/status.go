// Package models defines the client-side projections of backend resources:
// parcels, users, sessions, and the request/response shapes of the REST API.
// All entities are owned by the backend; the client never mutates them
// directly, it only submits operations and re-reads.
package models

// ParcelStatus is the closed set of parcel lifecycle states. The string
// values are the exact wire representation used by the backend.
type ParcelStatus string

const (
	StatusRequested      ParcelStatus = "Requested"
	StatusApproved       ParcelStatus = "Approved"
	StatusPending        ParcelStatus = "Pending"
	StatusPicked         ParcelStatus = "Picked"
	StatusDispatched     ParcelStatus = "Dispatched"
	StatusInTransit      ParcelStatus = "In-Transit"
	StatusRescheduled    ParcelStatus = "Rescheduled"
	StatusDelivered      ParcelStatus = "Delivered"
	StatusReturned       ParcelStatus = "Returned"
	StatusCancelled      ParcelStatus = "Cancelled"
	StatusBlocked        ParcelStatus = "Blocked"
	StatusFlagged        ParcelStatus = "Flagged"
	StatusOutForDelivery ParcelStatus = "Out for Delivery"
	StatusFailedAttempt  ParcelStatus = "Failed Attempt"
	StatusLost           ParcelStatus = "Lost"
	StatusDamaged        ParcelStatus = "Damaged"
	StatusReceived       ParcelStatus = "Received"
)

// ParcelStatuses lists every known status in presentation order.
func ParcelStatuses() []ParcelStatus {
	return []ParcelStatus{
		StatusRequested, StatusApproved, StatusPending, StatusPicked,
		StatusDispatched, StatusInTransit, StatusRescheduled, StatusDelivered,
		StatusReturned, StatusCancelled, StatusBlocked, StatusFlagged,
		StatusOutForDelivery, StatusFailedAttempt, StatusLost, StatusDamaged,
		StatusReceived,
	}
}

// Terminal reports whether the status ends the parcel lifecycle. Terminal
// parcels get no further delivery-date projection.
func (s ParcelStatus) Terminal() bool {
	switch s {
	case StatusDelivered, StatusReturned, StatusCancelled, StatusBlocked,
		StatusFlagged, StatusLost, StatusDamaged, StatusReceived:
		return true
	}
	return false
}

// Known reports whether s is one of the enumerated statuses.
func (s ParcelStatus) Known() bool {
	for _, k := range ParcelStatuses() {
		if s == k {
			return true
		}
	}
	return false
}

// ParcelType categorizes the contents of a parcel.
type ParcelType string

const (
	TypeDocument    ParcelType = "document"
	TypePackage     ParcelType = "package"
	TypeFragile     ParcelType = "fragile"
	TypeElectronics ParcelType = "electronics"
	TypeFood        ParcelType = "food"
	TypeMedicine    ParcelType = "medicine"
	TypeClothing    ParcelType = "clothing"
	TypeValuable    ParcelType = "valuable"
	TypeBooks       ParcelType = "books"
	TypeOther       ParcelType = "other"
)

// ShippingType selects the delivery speed tier.
type ShippingType string

const (
	ShippingStandard  ShippingType = "standard"
	ShippingExpress   ShippingType = "express"
	ShippingSameDay   ShippingType = "same_day"
	ShippingOvernight ShippingType = "overnight"
)
