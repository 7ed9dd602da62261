package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rashedul-dev/Qourio-client/internal/client/guard"
	"github.com/rashedul-dev/Qourio-client/internal/client/listview"
	"github.com/rashedul-dev/Qourio-client/internal/client/models"
	"github.com/rashedul-dev/Qourio-client/internal/client/query"
	"github.com/rashedul-dev/Qourio-client/internal/client/services"
	"github.com/rashedul-dev/Qourio-client/internal/logging"
)

// fakeParcelAPI backs a real ParcelService in tests.
type fakeParcelAPI struct {
	Rows []models.Parcel
	Meta models.Meta
	Err  error

	Track *models.TrackInfo

	LastCancelNote string
}

func (f *fakeParcelAPI) CreateParcel(ctx context.Context, in models.CreateParcelInput) (*models.Parcel, error) {
	return &models.Parcel{TrackingID: "TRK-NEW", Fee: 120}, f.Err
}

func (f *fakeParcelAPI) AdminCreateParcel(ctx context.Context, in models.CreateParcelInput) (*models.Parcel, error) {
	return &models.Parcel{TrackingID: "TRK-ADM"}, f.Err
}

func (f *fakeParcelAPI) SenderParcels(ctx context.Context, p models.ParcelListParams) ([]models.Parcel, models.Meta, error) {
	return f.Rows, f.Meta, f.Err
}

func (f *fakeParcelAPI) IncomingParcels(ctx context.Context, p models.ParcelListParams) ([]models.Parcel, models.Meta, error) {
	return f.Rows, f.Meta, f.Err
}

func (f *fakeParcelAPI) ParcelHistory(ctx context.Context, p models.ParcelListParams) ([]models.Parcel, models.Meta, error) {
	return f.Rows, f.Meta, f.Err
}

func (f *fakeParcelAPI) AllParcels(ctx context.Context, p models.ParcelListParams) ([]models.Parcel, models.Meta, error) {
	return f.Rows, f.Meta, f.Err
}

func (f *fakeParcelAPI) ParcelByID(ctx context.Context, id string) (*models.Parcel, error) {
	if len(f.Rows) > 0 {
		return &f.Rows[0], f.Err
	}
	return &models.Parcel{ID: id}, f.Err
}

func (f *fakeParcelAPI) ParcelStatusLog(ctx context.Context, id string) (*models.Parcel, error) {
	if len(f.Rows) > 0 {
		return &f.Rows[0], f.Err
	}
	return &models.Parcel{ID: id}, f.Err
}

func (f *fakeParcelAPI) TrackParcel(ctx context.Context, trackingID string) (*models.TrackInfo, error) {
	return f.Track, f.Err
}

func (f *fakeParcelAPI) CancelParcel(ctx context.Context, id, note string) error {
	f.LastCancelNote = note
	return f.Err
}

func (f *fakeParcelAPI) DeleteParcel(ctx context.Context, id string) error      { return f.Err }
func (f *fakeParcelAPI) ConfirmDelivery(ctx context.Context, id string) error   { return f.Err }
func (f *fakeParcelAPI) UpdateDeliveryStatus(ctx context.Context, id string, upd models.DeliveryStatusUpdate) error {
	return f.Err
}
func (f *fakeParcelAPI) SetParcelBlocked(ctx context.Context, id string, upd models.BlockStatusUpdate) error {
	return f.Err
}

// newTestApp builds an App with real services over the fake API, a scripted
// stdin, and a captured stdout.
func newTestApp(t *testing.T, role models.Role, parcelAPI *fakeParcelAPI, input string) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	cache := query.New(time.Minute, logging.Discard())

	a := &App{
		parcels:    services.NewParcelService(parcelAPI, cache),
		cache:      cache,
		log:        logging.Discard(),
		parcelView: listview.New(10),
		userView:   listview.New(10),
		reader:     bufio.NewReader(strings.NewReader(input)),
		out:        out,
	}
	if role != "" {
		a.session = guard.Session{
			State: guard.SessionActive,
			User:  &models.User{ID: "u1", Email: "u@x.com", Role: role},
		}
	} else {
		a.session = guard.Session{State: guard.SessionAnonymous}
	}
	return a, out
}
