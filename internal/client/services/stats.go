package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/rashedul-dev/Qourio-client/internal/client/models"
	"github.com/rashedul-dev/Qourio-client/internal/client/query"
)

// StatsAPI is the slice of the REST client used by StatsService.
type StatsAPI interface {
	ParcelStats(ctx context.Context) (*models.ParcelStats, error)
	CreateCoupon(ctx context.Context, in models.Coupon) (*models.Coupon, error)
	Coupons(ctx context.Context) ([]models.Coupon, error)
}

// StatsService serves the admin analytics dashboard and coupon management.
type StatsService interface {
	ParcelStats(ctx context.Context) (*models.ParcelStats, error)
	CreateCoupon(ctx context.Context, in models.Coupon) (*models.Coupon, error)
	Coupons(ctx context.Context) ([]models.Coupon, error)
}

type statsService struct {
	api   StatsAPI
	cache *query.Cache
}

// NewStatsService constructs a StatsService bound to the given API client and
// query cache.
func NewStatsService(api StatsAPI, cache *query.Cache) StatsService {
	return &statsService{api: api, cache: cache}
}

// ParcelStats is cached under ALL_PARCEL: any parcel mutation may shift the
// status counts.
func (s *statsService) ParcelStats(ctx context.Context) (*models.ParcelStats, error) {
	return query.Fetch(ctx, s.cache, "/stats/parcels", []query.Tag{query.TagAllParcel},
		func(ctx context.Context) (*models.ParcelStats, error) {
			return s.api.ParcelStats(ctx)
		})
}

// CreateCoupon creates a discount coupon. An empty code gets a generated one.
func (s *statsService) CreateCoupon(ctx context.Context, in models.Coupon) (*models.Coupon, error) {
	if in.Code == "" {
		in.Code = generateCouponCode()
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return s.api.CreateCoupon(ctx, in)
}

// Coupons is deliberately uncached so a just-created coupon shows up
// immediately.
func (s *statsService) Coupons(ctx context.Context) ([]models.Coupon, error) {
	return s.api.Coupons(ctx)
}

// generateCouponCode derives a short, upper-case code from a random UUID.
func generateCouponCode() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "QR-" + raw[:8]
}
