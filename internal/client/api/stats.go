package api

import (
	"context"
	"net/http"

	"github.com/rashedul-dev/Qourio-client/internal/client/models"
)

// ParcelStats fetches the aggregate analytics payload backing the admin
// dashboard.
func (c *HTTPClient) ParcelStats(ctx context.Context) (*models.ParcelStats, error) {
	env, err := c.do(ctx, http.MethodGet, "/stats/parcels", nil, nil)
	if err != nil {
		return nil, err
	}
	s, err := decodeData[models.ParcelStats](env)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateCoupon registers a discount coupon (admin only).
func (c *HTTPClient) CreateCoupon(ctx context.Context, in models.Coupon) (*models.Coupon, error) {
	env, err := c.do(ctx, http.MethodPost, "/coupons", nil, in)
	if err != nil {
		return nil, err
	}
	cp, err := decodeData[models.Coupon](env)
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

// Coupons lists all coupons.
func (c *HTTPClient) Coupons(ctx context.Context) ([]models.Coupon, error) {
	env, err := c.do(ctx, http.MethodGet, "/coupons", nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeData[[]models.Coupon](env)
}
