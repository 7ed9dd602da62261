package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rashedul-dev/Qourio-client/internal/client/models"
)

// fakeParcelAPI counts list fetches so cache behavior is observable.
type fakeParcelAPI struct {
	Rows   []models.Parcel
	Meta   models.Meta
	Status models.ParcelStatus
	Err    error

	SenderCalls   int
	IncomingCalls int
	AllCalls      int
	TrackCalls    int

	LastCancelID   string
	LastCancelNote string
	LastUpdate     models.DeliveryStatusUpdate
}

func (f *fakeParcelAPI) CreateParcel(ctx context.Context, in models.CreateParcelInput) (*models.Parcel, error) {
	return &models.Parcel{ID: "p-new"}, f.Err
}

func (f *fakeParcelAPI) AdminCreateParcel(ctx context.Context, in models.CreateParcelInput) (*models.Parcel, error) {
	return &models.Parcel{ID: "p-adm"}, f.Err
}

func (f *fakeParcelAPI) SenderParcels(ctx context.Context, p models.ParcelListParams) ([]models.Parcel, models.Meta, error) {
	f.SenderCalls++
	return f.Rows, f.Meta, f.Err
}

func (f *fakeParcelAPI) IncomingParcels(ctx context.Context, p models.ParcelListParams) ([]models.Parcel, models.Meta, error) {
	f.IncomingCalls++
	return f.Rows, f.Meta, f.Err
}

func (f *fakeParcelAPI) ParcelHistory(ctx context.Context, p models.ParcelListParams) ([]models.Parcel, models.Meta, error) {
	return f.Rows, f.Meta, f.Err
}

func (f *fakeParcelAPI) AllParcels(ctx context.Context, p models.ParcelListParams) ([]models.Parcel, models.Meta, error) {
	f.AllCalls++
	return f.Rows, f.Meta, f.Err
}

func (f *fakeParcelAPI) ParcelByID(ctx context.Context, id string) (*models.Parcel, error) {
	return &models.Parcel{ID: id}, f.Err
}

func (f *fakeParcelAPI) ParcelStatusLog(ctx context.Context, id string) (*models.Parcel, error) {
	return &models.Parcel{ID: id, CurrentStatus: f.Status}, f.Err
}

func (f *fakeParcelAPI) TrackParcel(ctx context.Context, trackingID string) (*models.TrackInfo, error) {
	f.TrackCalls++
	return &models.TrackInfo{TrackingID: trackingID}, f.Err
}

func (f *fakeParcelAPI) CancelParcel(ctx context.Context, id, note string) error {
	f.LastCancelID, f.LastCancelNote = id, note
	f.Status = models.StatusCancelled
	return f.Err
}

func (f *fakeParcelAPI) DeleteParcel(ctx context.Context, id string) error { return f.Err }

func (f *fakeParcelAPI) ConfirmDelivery(ctx context.Context, id string) error { return f.Err }

func (f *fakeParcelAPI) UpdateDeliveryStatus(ctx context.Context, id string, upd models.DeliveryStatusUpdate) error {
	f.LastUpdate = upd
	return f.Err
}

func (f *fakeParcelAPI) SetParcelBlocked(ctx context.Context, id string, upd models.BlockStatusUpdate) error {
	return f.Err
}

func validCreateInput() models.CreateParcelInput {
	return models.CreateParcelInput{
		Weight:        1.5,
		ReceiverEmail: "r@x.com",
	}
}

func TestSenderParcels_CachedPerQuery(t *testing.T) {
	apiFake := &fakeParcelAPI{Rows: []models.Parcel{{ID: "p1"}}, Meta: models.Meta{Total: 1}}
	svc := NewParcelService(apiFake, newCache())
	ctx := context.Background()

	p1 := models.ParcelListParams{Page: 1, Limit: 10}
	p2 := models.ParcelListParams{Page: 2, Limit: 10}

	for i := 0; i < 2; i++ {
		page, err := svc.SenderParcels(ctx, p1)
		require.NoError(t, err)
		require.Len(t, page.Rows, 1)
	}
	require.Equal(t, 1, apiFake.SenderCalls, "same query must hit the cache")

	_, err := svc.SenderParcels(ctx, p2)
	require.NoError(t, err)
	require.Equal(t, 2, apiFake.SenderCalls, "different page is a different key")
}

func TestCreate_InvalidatesSenderListsOnly(t *testing.T) {
	apiFake := &fakeParcelAPI{}
	svc := NewParcelService(apiFake, newCache())
	ctx := context.Background()

	_, err := svc.SenderParcels(ctx, models.ParcelListParams{})
	require.NoError(t, err)
	_, err = svc.IncomingParcels(ctx, models.ParcelListParams{})
	require.NoError(t, err)

	_, err = svc.Create(ctx, validCreateInput())
	require.NoError(t, err)

	_, err = svc.SenderParcels(ctx, models.ParcelListParams{})
	require.NoError(t, err)
	_, err = svc.IncomingParcels(ctx, models.ParcelListParams{})
	require.NoError(t, err)

	require.Equal(t, 2, apiFake.SenderCalls, "sender list must refetch after create")
	require.Equal(t, 1, apiFake.IncomingCalls, "receiver list stays cached")
}

func TestCreate_RejectsInvalidWeight(t *testing.T) {
	svc := NewParcelService(&fakeParcelAPI{}, newCache())

	in := validCreateInput()
	in.Weight = 12
	_, err := svc.Create(context.Background(), in)
	require.Error(t, err)
}

func TestCancel_ValidatesNoteAndInvalidates(t *testing.T) {
	apiFake := &fakeParcelAPI{}
	svc := NewParcelService(apiFake, newCache())
	ctx := context.Background()

	err := svc.Cancel(ctx, "p1", "nah")
	require.Error(t, err, "note below 5 characters must be rejected locally")
	require.Empty(t, apiFake.LastCancelID, "invalid note must not reach the backend")

	_, err = svc.SenderParcels(ctx, models.ParcelListParams{})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(ctx, "p1", "changed my mind"))
	require.Equal(t, "p1", apiFake.LastCancelID)

	_, err = svc.SenderParcels(ctx, models.ParcelListParams{})
	require.NoError(t, err)
	require.Equal(t, 2, apiFake.SenderCalls)
}

func TestCancel_InvalidatesCachedStatusLog(t *testing.T) {
	apiFake := &fakeParcelAPI{Status: models.StatusRequested}
	svc := NewParcelService(apiFake, newCache())
	ctx := context.Background()

	p, err := svc.StatusLog(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, models.StatusRequested, p.CurrentStatus)

	require.NoError(t, svc.Cancel(ctx, "p1", "changed my mind"))

	p, err = svc.StatusLog(ctx, "p1")
	require.NoError(t, err)
	require.Equal(t, models.StatusCancelled, p.CurrentStatus,
		"a cancelled parcel's status log must not be served from cache")
}

func TestUpdateDeliveryStatus_InvalidatesAllParcelLists(t *testing.T) {
	apiFake := &fakeParcelAPI{}
	svc := NewParcelService(apiFake, newCache())
	ctx := context.Background()

	_, err := svc.AllParcels(ctx, models.ParcelListParams{})
	require.NoError(t, err)

	upd := models.DeliveryStatusUpdate{CurrentStatus: models.StatusDispatched}
	require.NoError(t, svc.UpdateDeliveryStatus(ctx, "p1", upd))
	require.Equal(t, upd, apiFake.LastUpdate)

	_, err = svc.AllParcels(ctx, models.ParcelListParams{})
	require.NoError(t, err)
	require.Equal(t, 2, apiFake.AllCalls)
}

func TestTrack_NeverCached(t *testing.T) {
	apiFake := &fakeParcelAPI{}
	svc := NewParcelService(apiFake, newCache())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		info, err := svc.Track(ctx, "TRK-1")
		require.NoError(t, err)
		require.Equal(t, "TRK-1", info.TrackingID)
	}
	require.Equal(t, 3, apiFake.TrackCalls)
}
