package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rashedul-dev/Qourio-client/internal/client/models"
)

type fakeStatsAPI struct {
	Stats      *models.ParcelStats
	StatsCalls int

	LastCoupon models.Coupon
}

func (f *fakeStatsAPI) ParcelStats(ctx context.Context) (*models.ParcelStats, error) {
	f.StatsCalls++
	return f.Stats, nil
}

func (f *fakeStatsAPI) CreateCoupon(ctx context.Context, in models.Coupon) (*models.Coupon, error) {
	f.LastCoupon = in
	return &in, nil
}

func (f *fakeStatsAPI) Coupons(ctx context.Context) ([]models.Coupon, error) {
	return []models.Coupon{f.LastCoupon}, nil
}

func TestParcelStats_Cached(t *testing.T) {
	apiFake := &fakeStatsAPI{Stats: &models.ParcelStats{TotalParcel: 42}}
	svc := NewStatsService(apiFake, newCache())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		stats, err := svc.ParcelStats(ctx)
		require.NoError(t, err)
		require.Equal(t, 42, stats.TotalParcel)
	}
	require.Equal(t, 1, apiFake.StatsCalls)
}

func TestCreateCoupon_GeneratesCodeWhenEmpty(t *testing.T) {
	apiFake := &fakeStatsAPI{}
	svc := NewStatsService(apiFake, newCache())

	c, err := svc.CreateCoupon(context.Background(), models.Coupon{DiscountPc: 10})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(c.Code, "QR-"))
	require.LessOrEqual(t, len(c.Code), 20)
}

func TestCreateCoupon_RejectsBadDiscount(t *testing.T) {
	apiFake := &fakeStatsAPI{}
	svc := NewStatsService(apiFake, newCache())

	_, err := svc.CreateCoupon(context.Background(), models.Coupon{Code: "SUMMER", DiscountPc: 150})
	require.Error(t, err)
	require.Empty(t, apiFake.LastCoupon.Code, "invalid coupon must not reach the backend")
}
