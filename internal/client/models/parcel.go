package models

import (
	"fmt"
	"strings"
	"time"
)

// Party is the identity snapshot of a parcel's sender or receiver. The
// backend copies these at creation time, so they can lag the user record.
type Party struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Actor identifies who recorded a status-log entry.
type Actor struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  Role   `json:"role,omitempty"`
	Email string `json:"email,omitempty"`
}

// StatusLogEntry is one record of the append-only status history. Entries are
// immutable once created; ordering is insertion order (chronological).
type StatusLogEntry struct {
	Status    ParcelStatus `json:"status"`
	Location  string       `json:"location,omitempty"`
	Note      string       `json:"note,omitempty"`
	UpdatedBy *Actor       `json:"updatedBy,omitempty"`
	CreatedAt time.Time    `json:"createdAt,omitzero"`
	UpdatedAt time.Time    `json:"updatedAt,omitzero"`
}

// Parcel is the read-only cached projection of a backend parcel.
type Parcel struct {
	ID                string           `json:"_id"`
	TrackingID        string           `json:"trackingId"`
	Type              ParcelType       `json:"type"`
	ShippingType      ShippingType     `json:"shippingType"`
	Weight            float64          `json:"weight"`
	WeightUnit        string           `json:"weightUnit,omitempty"`
	Fee               float64          `json:"fee"`
	CouponCode        string           `json:"couponCode,omitempty"`
	EstimatedDelivery *time.Time       `json:"estimatedDelivery"`
	CurrentStatus     ParcelStatus     `json:"currentStatus"`
	CurrentLocation   string           `json:"currentLocation,omitempty"`
	IsPaid            bool             `json:"isPaid"`
	IsBlocked         bool             `json:"isBlocked,omitempty"`
	Sender            Party            `json:"sender"`
	Receiver          Party            `json:"receiver"`
	PickupAddress     string           `json:"pickupAddress"`
	DeliveryAddress   string           `json:"deliveryAddress"`
	StatusLog         []StatusLogEntry `json:"statusLog"`
	DeliveryPersonnel []string         `json:"deliveryPersonnel,omitempty"`
	DeliveredAt       *time.Time       `json:"deliveredAt"`
	CancelledAt       *time.Time       `json:"cancelledAt"`
	CreatedAt         time.Time        `json:"createdAt,omitzero"`
	UpdatedAt         time.Time        `json:"updatedAt,omitzero"`
}

// LastStatusLog returns the newest status-log entry, or nil when the log is
// empty. The last entry is authoritative for "current" status and location,
// redundantly with the parcel's own fields.
func (p *Parcel) LastStatusLog() *StatusLogEntry {
	if len(p.StatusLog) == 0 {
		return nil
	}
	return &p.StatusLog[len(p.StatusLog)-1]
}

// TrackInfo is the public tracking projection served without authentication.
type TrackInfo struct {
	TrackingID        string           `json:"trackingId"`
	CurrentStatus     ParcelStatus     `json:"currentStatus"`
	EstimatedDelivery *time.Time       `json:"estimatedDelivery"`
	DeliveredAt       *time.Time       `json:"deliveredAt"`
	StatusLog         []StatusLogEntry `json:"statusLog"`
	PickupAddress     string           `json:"pickupAddress"`
	DeliveryAddress   string           `json:"deliveryAddress"`
	UpdatedAt         time.Time        `json:"updatedAt,omitzero"`
}

// LastStatusLog returns the newest entry of the public status log, or nil.
func (t *TrackInfo) LastStatusLog() *StatusLogEntry {
	if len(t.StatusLog) == 0 {
		return nil
	}
	return &t.StatusLog[len(t.StatusLog)-1]
}

// Weight bounds accepted by the parcel form, in kilograms.
const (
	MinParcelWeightKg = 0.1
	MaxParcelWeightKg = 10
)

// CreateParcelInput is the body of POST /parcels and /parcels/create-parcel.
type CreateParcelInput struct {
	Type            ParcelType   `json:"type,omitempty"`
	ShippingType    ShippingType `json:"shippingType,omitempty"`
	Weight          float64      `json:"weight"`
	CouponCode      string       `json:"couponCode,omitempty"`
	ReceiverEmail   string       `json:"receiverEmail"`
	SenderEmail     string       `json:"senderEmail,omitempty"`
	PickupAddress   string       `json:"pickupAddress,omitempty"`
	DeliveryAddress string       `json:"deliveryAddress,omitempty"`
}

// Validate applies the parcel form's checks. Fee computation and address
// verification are server-side concerns.
func (in CreateParcelInput) Validate() error {
	if in.Weight < MinParcelWeightKg {
		return fmt.Errorf("weight must be at least %.1f kg", MinParcelWeightKg)
	}
	if in.Weight > MaxParcelWeightKg {
		return fmt.Errorf("weight cannot exceed %d kg", MaxParcelWeightKg)
	}
	if err := validateEmail(in.ReceiverEmail); err != nil {
		return fmt.Errorf("receiver email: %w", err)
	}
	if len(in.CouponCode) > 20 {
		return fmt.Errorf("coupon code cannot exceed 20 characters")
	}
	for _, addr := range []struct{ name, value string }{
		{"pickup address", in.PickupAddress},
		{"delivery address", in.DeliveryAddress},
	} {
		if addr.value == "" {
			continue
		}
		if strings.TrimSpace(addr.value) == "" {
			return fmt.Errorf("%s must not be blank", addr.name)
		}
		if len(addr.value) > 100 {
			return fmt.Errorf("%s cannot exceed 100 characters", addr.name)
		}
	}
	return nil
}

// Cancellation note bounds, matching the cancel dialog.
const (
	MinCancelNoteLen = 5
	MaxCancelNoteLen = 200
)

// ValidateCancelNote checks the free-text reason attached to a cancellation.
func ValidateCancelNote(note string) error {
	n := len(strings.TrimSpace(note))
	if n < MinCancelNoteLen {
		return fmt.Errorf("reason too short")
	}
	if n > MaxCancelNoteLen {
		return fmt.Errorf("reason too long")
	}
	return nil
}

// DeliveryStatusUpdate is the body of PATCH /parcels/:id/delivery-status.
type DeliveryStatusUpdate struct {
	CurrentStatus       ParcelStatus `json:"currentStatus,omitempty"`
	CurrentLocation     string       `json:"currentLocation,omitempty"`
	Note                string       `json:"note,omitempty"`
	DeliveryPersonnelID string       `json:"deliveryPersonnelId,omitempty"`
}

// BlockStatusUpdate is the body of PATCH /parcels/:id/block-status.
type BlockStatusUpdate struct {
	IsBlocked bool   `json:"isBlocked"`
	Note      string `json:"note,omitempty"`
}

// Coupon is a fee-discount voucher.
type Coupon struct {
	ID         string     `json:"_id,omitempty"`
	Code       string     `json:"code"`
	DiscountPc float64    `json:"discountPercentage,omitempty"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	IsActive   bool       `json:"isActive,omitempty"`
}

// Validate checks a coupon before it is sent to the backend.
func (c Coupon) Validate() error {
	if c.Code == "" {
		return fmt.Errorf("coupon code is required")
	}
	if len(c.Code) > 20 {
		return fmt.Errorf("coupon code cannot exceed 20 characters")
	}
	if c.DiscountPc < 0 || c.DiscountPc > 100 {
		return fmt.Errorf("discount percentage must be between 0 and 100")
	}
	return nil
}

// StatusCount is one bucket of an aggregate breakdown.
type StatusCount struct {
	Key   string `json:"_id"`
	Count int    `json:"count"`
}

// ParcelStats is the aggregate analytics payload of GET /stats/parcels.
type ParcelStats struct {
	TotalParcel          int           `json:"totalParcel"`
	TotalParcelByStatus  []StatusCount `json:"totalParcelByStatus"`
	CreatedInLast7Days   int           `json:"parcelCreatedInLast7Days"`
	CreatedInLast30Days  int           `json:"parcelCreatedInLast30Days"`
	ParcelPerType        []StatusCount `json:"parcelPerType"`
	ParcelPerShippingTyp []StatusCount `json:"parcelPerShippingType"`
}
