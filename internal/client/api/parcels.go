package api

import (
	"context"
	"net/http"

	"github.com/rashedul-dev/Qourio-client/internal/client/models"
)

// CreateParcel submits a delivery request as the current sender.
func (c *HTTPClient) CreateParcel(ctx context.Context, in models.CreateParcelInput) (*models.Parcel, error) {
	return c.postParcel(ctx, "/parcels", in)
}

// AdminCreateParcel creates a parcel on behalf of an arbitrary sender.
func (c *HTTPClient) AdminCreateParcel(ctx context.Context, in models.CreateParcelInput) (*models.Parcel, error) {
	return c.postParcel(ctx, "/parcels/create-parcel", in)
}

func (c *HTTPClient) postParcel(ctx context.Context, path string, in models.CreateParcelInput) (*models.Parcel, error) {
	env, err := c.do(ctx, http.MethodPost, path, nil, in)
	if err != nil {
		return nil, err
	}
	p, err := decodeData[models.Parcel](env)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SenderParcels lists the current sender's parcels.
func (c *HTTPClient) SenderParcels(ctx context.Context, p models.ParcelListParams) ([]models.Parcel, models.Meta, error) {
	return getList[models.Parcel](ctx, c, "/parcels/me", p.Values())
}

// IncomingParcels lists parcels addressed to the current receiver that are
// still under way.
func (c *HTTPClient) IncomingParcels(ctx context.Context, p models.ParcelListParams) ([]models.Parcel, models.Meta, error) {
	return getList[models.Parcel](ctx, c, "/parcels/me/incoming", p.Values())
}

// ParcelHistory lists the current receiver's completed deliveries.
func (c *HTTPClient) ParcelHistory(ctx context.Context, p models.ParcelListParams) ([]models.Parcel, models.Meta, error) {
	return getList[models.Parcel](ctx, c, "/parcels/me/history", p.Values())
}

// AllParcels lists every parcel (admin only).
func (c *HTTPClient) AllParcels(ctx context.Context, p models.ParcelListParams) ([]models.Parcel, models.Meta, error) {
	return getList[models.Parcel](ctx, c, "/parcels", p.Values())
}

// ParcelByID fetches the full detail view of one parcel.
func (c *HTTPClient) ParcelByID(ctx context.Context, id string) (*models.Parcel, error) {
	return c.getParcel(ctx, "/parcels/"+id+"/details")
}

// ParcelStatusLog fetches a parcel with its status history populated.
func (c *HTTPClient) ParcelStatusLog(ctx context.Context, id string) (*models.Parcel, error) {
	return c.getParcel(ctx, "/parcels/"+id+"/status-log")
}

func (c *HTTPClient) getParcel(ctx context.Context, path string) (*models.Parcel, error) {
	env, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	p, err := decodeData[models.Parcel](env)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// TrackParcel resolves a tracking ID on the public, unauthenticated endpoint.
func (c *HTTPClient) TrackParcel(ctx context.Context, trackingID string) (*models.TrackInfo, error) {
	env, err := c.do(ctx, http.MethodGet, "/parcels/tracking/"+trackingID, nil, nil)
	if err != nil {
		return nil, err
	}
	t, err := decodeData[models.TrackInfo](env)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// CancelParcel cancels a not-yet-dispatched parcel with a reason note
// (sender action; legality is decided by the backend).
func (c *HTTPClient) CancelParcel(ctx context.Context, id, note string) error {
	_, err := c.do(ctx, http.MethodPost, "/parcels/cancel/"+id, nil,
		map[string]string{"note": note})
	return err
}

// DeleteParcel removes a parcel record (sender action).
func (c *HTTPClient) DeleteParcel(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodPost, "/parcels/delete/"+id, nil, nil)
	return err
}

// ConfirmDelivery acknowledges receipt (receiver action).
func (c *HTTPClient) ConfirmDelivery(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodPatch, "/parcels/confirm/"+id, nil, nil)
	return err
}

// UpdateDeliveryStatus advances a parcel's status and/or assigns personnel
// (admin action; transition legality is server-owned).
func (c *HTTPClient) UpdateDeliveryStatus(ctx context.Context, id string, upd models.DeliveryStatusUpdate) error {
	_, err := c.do(ctx, http.MethodPatch, "/parcels/"+id+"/delivery-status", nil, upd)
	return err
}

// SetParcelBlocked toggles the blocked flag (admin action).
func (c *HTTPClient) SetParcelBlocked(ctx context.Context, id string, upd models.BlockStatusUpdate) error {
	_, err := c.do(ctx, http.MethodPatch, "/parcels/"+id+"/block-status", nil, upd)
	return err
}
