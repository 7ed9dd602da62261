package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rashedul-dev/Qourio-client/internal/client/models"
)

func sampleParcels() []models.Parcel {
	created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	return []models.Parcel{
		{
			ID:            "p1",
			TrackingID:    "TRK-20240101-A1",
			Type:          models.TypePackage,
			CurrentStatus: models.StatusInTransit,
			Fee:           150,
			CreatedAt:     created,
			UpdatedAt:     created,
			StatusLog: []models.StatusLogEntry{
				{Status: models.StatusRequested, UpdatedAt: created},
				{Status: models.StatusInTransit, UpdatedAt: created.AddDate(0, 0, 2)},
			},
		},
	}
}

func TestCmdList_RendersTableWithDerivedDelivery(t *testing.T) {
	apiFake := &fakeParcelAPI{Rows: sampleParcels(), Meta: models.Meta{Total: 1, Page: 1, Limit: 10}}
	a, out := newTestApp(t, models.RoleSender, apiFake, "")

	require.NoError(t, a.cmdList(context.Background()))

	s := out.String()
	require.Contains(t, s, "TRACKING")
	require.Contains(t, s, "TRK-20240101-A1")
	require.Contains(t, s, "In-Transit")
	// last log entry 2024-01-03 plus the In-Transit window of 3 days
	require.Contains(t, s, "2024-01-06 (est.)")
	require.Contains(t, s, "Page 1 of 1 (1 total)")
}

func TestCmdList_BackendEstimateWins(t *testing.T) {
	est := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	rows := sampleParcels()
	rows[0].EstimatedDelivery = &est

	apiFake := &fakeParcelAPI{Rows: rows, Meta: models.Meta{Total: 1}}
	a, out := newTestApp(t, models.RoleSender, apiFake, "")

	require.NoError(t, a.cmdList(context.Background()))
	require.Contains(t, out.String(), "2024-02-01")
	require.NotContains(t, out.String(), "(est.)")
}

func TestCmdList_EmptyState(t *testing.T) {
	a, out := newTestApp(t, models.RoleSender, &fakeParcelAPI{}, "")

	require.NoError(t, a.cmdList(context.Background()))
	require.Contains(t, out.String(), "Nothing here yet.")
}

func TestCmdSort_TogglesDirection(t *testing.T) {
	apiFake := &fakeParcelAPI{Rows: sampleParcels(), Meta: models.Meta{Total: 1}}
	a, _ := newTestApp(t, models.RoleSender, apiFake, "")
	ctx := context.Background()

	require.NoError(t, a.cmdSort(ctx, []string{"fee"}))
	require.Equal(t, "fee", a.parcelView.SortParam())

	require.NoError(t, a.cmdSort(ctx, []string{"fee"}))
	require.Equal(t, "-fee", a.parcelView.SortParam())

	require.NoError(t, a.cmdSort(ctx, nil))
	require.Equal(t, models.DefaultSort, a.parcelView.SortParam())
}

func TestCmdSearch_ResetsToFirstPage(t *testing.T) {
	apiFake := &fakeParcelAPI{Rows: sampleParcels(), Meta: models.Meta{Total: 40, Limit: 10}}
	a, _ := newTestApp(t, models.RoleSender, apiFake, "")
	ctx := context.Background()

	a.parcelMeta = models.Meta{Total: 40, Limit: 10}
	require.NoError(t, a.cmdNextPage(ctx))
	require.Equal(t, 1, a.parcelView.PageIndex())

	require.NoError(t, a.cmdSearch(ctx, []string{"TRK"}))
	require.Equal(t, 0, a.parcelView.PageIndex())
	require.Equal(t, "TRK", a.parcelView.AppliedSearch())
}

func TestCmdFilter_UnknownStatusListsOptions(t *testing.T) {
	a, out := newTestApp(t, models.RoleSender, &fakeParcelAPI{}, "")

	require.NoError(t, a.cmdFilter(context.Background(), []string{"Shipped"}))
	require.Contains(t, out.String(), "Unknown status")
	require.Contains(t, out.String(), "In-Transit")
}

func TestCmdColumns_HideRemovesColumnFromTable(t *testing.T) {
	apiFake := &fakeParcelAPI{Rows: sampleParcels(), Meta: models.Meta{Total: 1}}
	a, out := newTestApp(t, models.RoleSender, apiFake, "")
	ctx := context.Background()

	require.NoError(t, a.cmdColumns(ctx, []string{"hide", "fee"}))
	require.NoError(t, a.cmdList(ctx))

	s := out.String()
	require.NotContains(t, s, "FEE")
	require.Contains(t, s, "TRACKING")
}

func TestCmdTrack_RendersTimeline(t *testing.T) {
	updated := time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC)
	apiFake := &fakeParcelAPI{Track: &models.TrackInfo{
		TrackingID:    "TRK-1",
		CurrentStatus: models.StatusOutForDelivery,
		StatusLog: []models.StatusLogEntry{
			{Status: models.StatusDispatched, Location: "Dhaka hub", UpdatedAt: updated.AddDate(0, 0, -1)},
			{Status: models.StatusOutForDelivery, UpdatedAt: updated},
		},
	}}
	// tracking works logged out
	a, out := newTestApp(t, "", apiFake, "")

	require.NoError(t, a.cmdTrack(context.Background(), []string{"TRK-1"}))

	s := out.String()
	require.Contains(t, s, "TRK-1")
	require.Contains(t, s, "Dhaka hub")
	// Out for Delivery adds one day to the last update
	require.Contains(t, s, "2024-01-04 (est.)")
}

func TestCmdCancel_SendsNote(t *testing.T) {
	apiFake := &fakeParcelAPI{}
	a, out := newTestApp(t, models.RoleSender, apiFake, "no longer needed\n")

	require.NoError(t, a.cmdCancelParcel(context.Background(), []string{"p1"}))
	require.Equal(t, "no longer needed", apiFake.LastCancelNote)
	require.Contains(t, out.String(), "Parcel cancelled.")
}
