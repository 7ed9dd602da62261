package services

import (
	"context"

	"github.com/rashedul-dev/Qourio-client/internal/client/models"
	"github.com/rashedul-dev/Qourio-client/internal/client/query"
)

// ParcelAPI is the slice of the REST client used by ParcelService.
type ParcelAPI interface {
	CreateParcel(ctx context.Context, in models.CreateParcelInput) (*models.Parcel, error)
	AdminCreateParcel(ctx context.Context, in models.CreateParcelInput) (*models.Parcel, error)
	SenderParcels(ctx context.Context, p models.ParcelListParams) ([]models.Parcel, models.Meta, error)
	IncomingParcels(ctx context.Context, p models.ParcelListParams) ([]models.Parcel, models.Meta, error)
	ParcelHistory(ctx context.Context, p models.ParcelListParams) ([]models.Parcel, models.Meta, error)
	AllParcels(ctx context.Context, p models.ParcelListParams) ([]models.Parcel, models.Meta, error)
	ParcelByID(ctx context.Context, id string) (*models.Parcel, error)
	ParcelStatusLog(ctx context.Context, id string) (*models.Parcel, error)
	TrackParcel(ctx context.Context, trackingID string) (*models.TrackInfo, error)
	CancelParcel(ctx context.Context, id, note string) error
	DeleteParcel(ctx context.Context, id string) error
	ConfirmDelivery(ctx context.Context, id string) error
	UpdateDeliveryStatus(ctx context.Context, id string, upd models.DeliveryStatusUpdate) error
	SetParcelBlocked(ctx context.Context, id string, upd models.BlockStatusUpdate) error
}

// ParcelPage is one page of a parcel list together with its pagination meta.
type ParcelPage struct {
	Rows []models.Parcel
	Meta models.Meta
}

// ParcelService wraps the parcel endpoints with caching and invalidation.
//
// List reads are cached per endpoint and query string, under the tag matching
// their audience. Mutations invalidate the tags of every list their result
// can appear in:
//
//   - create / cancel / delete        -> SENDER_PARCEL
//   - confirm delivery                -> RECEIVER_PARCEL
//   - delivery status / block / admin -> ALL_PARCEL
type ParcelService interface {
	Create(ctx context.Context, in models.CreateParcelInput) (*models.Parcel, error)
	AdminCreate(ctx context.Context, in models.CreateParcelInput) (*models.Parcel, error)
	SenderParcels(ctx context.Context, p models.ParcelListParams) (*ParcelPage, error)
	IncomingParcels(ctx context.Context, p models.ParcelListParams) (*ParcelPage, error)
	History(ctx context.Context, p models.ParcelListParams) (*ParcelPage, error)
	AllParcels(ctx context.Context, p models.ParcelListParams) (*ParcelPage, error)
	ByID(ctx context.Context, id string) (*models.Parcel, error)
	StatusLog(ctx context.Context, id string) (*models.Parcel, error)
	Track(ctx context.Context, trackingID string) (*models.TrackInfo, error)
	Cancel(ctx context.Context, id, note string) error
	Delete(ctx context.Context, id string) error
	ConfirmDelivery(ctx context.Context, id string) error
	UpdateDeliveryStatus(ctx context.Context, id string, upd models.DeliveryStatusUpdate) error
	SetBlocked(ctx context.Context, id string, upd models.BlockStatusUpdate) error
}

type parcelService struct {
	api   ParcelAPI
	cache *query.Cache
}

// NewParcelService constructs a ParcelService bound to the given API client
// and query cache.
func NewParcelService(api ParcelAPI, cache *query.Cache) ParcelService {
	return &parcelService{api: api, cache: cache}
}

// listKey builds the cache key for one page of one list endpoint. Params
// encode deterministically, so equal queries share a key.
func listKey(path string, p models.ParcelListParams) string {
	return path + "?" + p.Values().Encode()
}

func (s *parcelService) cachedList(ctx context.Context, path string, tag query.Tag, p models.ParcelListParams,
	fetch func(ctx context.Context, p models.ParcelListParams) ([]models.Parcel, models.Meta, error),
) (*ParcelPage, error) {
	return query.Fetch(ctx, s.cache, listKey(path, p), []query.Tag{tag},
		func(ctx context.Context) (*ParcelPage, error) {
			rows, meta, err := fetch(ctx, p)
			if err != nil {
				return nil, err
			}
			return &ParcelPage{Rows: rows, Meta: meta}, nil
		})
}

func (s *parcelService) SenderParcels(ctx context.Context, p models.ParcelListParams) (*ParcelPage, error) {
	return s.cachedList(ctx, "/parcels/me", query.TagSenderParcel, p, s.api.SenderParcels)
}

func (s *parcelService) IncomingParcels(ctx context.Context, p models.ParcelListParams) (*ParcelPage, error) {
	return s.cachedList(ctx, "/parcels/me/incoming", query.TagReceiverParcel, p, s.api.IncomingParcels)
}

func (s *parcelService) History(ctx context.Context, p models.ParcelListParams) (*ParcelPage, error) {
	return s.cachedList(ctx, "/parcels/me/history", query.TagReceiverParcel, p, s.api.ParcelHistory)
}

func (s *parcelService) AllParcels(ctx context.Context, p models.ParcelListParams) (*ParcelPage, error) {
	return s.cachedList(ctx, "/parcels", query.TagAllParcel, p, s.api.AllParcels)
}

func (s *parcelService) ByID(ctx context.Context, id string) (*models.Parcel, error) {
	return query.Fetch(ctx, s.cache, "/parcels/"+id+"/details", []query.Tag{query.TagAllParcel},
		func(ctx context.Context) (*models.Parcel, error) {
			return s.api.ParcelByID(ctx, id)
		})
}

// StatusLog carries both tags: the sender's own cancel/delete and an admin's
// status update each change the log, so either invalidation must drop it.
func (s *parcelService) StatusLog(ctx context.Context, id string) (*models.Parcel, error) {
	return query.Fetch(ctx, s.cache, "/parcels/"+id+"/status-log", []query.Tag{query.TagSenderParcel, query.TagAllParcel},
		func(ctx context.Context) (*models.Parcel, error) {
			return s.api.ParcelStatusLog(ctx, id)
		})
}

// Track is never cached; the tracking timeline must always be current.
func (s *parcelService) Track(ctx context.Context, trackingID string) (*models.TrackInfo, error) {
	return s.api.TrackParcel(ctx, trackingID)
}

func (s *parcelService) Create(ctx context.Context, in models.CreateParcelInput) (*models.Parcel, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p, err := s.api.CreateParcel(ctx, in)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(query.TagSenderParcel)
	return p, nil
}

func (s *parcelService) AdminCreate(ctx context.Context, in models.CreateParcelInput) (*models.Parcel, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p, err := s.api.AdminCreateParcel(ctx, in)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(query.TagAllParcel)
	return p, nil
}

func (s *parcelService) Cancel(ctx context.Context, id, note string) error {
	if err := models.ValidateCancelNote(note); err != nil {
		return err
	}
	if err := s.api.CancelParcel(ctx, id, note); err != nil {
		return err
	}
	s.cache.Invalidate(query.TagSenderParcel)
	return nil
}

func (s *parcelService) Delete(ctx context.Context, id string) error {
	if err := s.api.DeleteParcel(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(query.TagSenderParcel)
	return nil
}

func (s *parcelService) ConfirmDelivery(ctx context.Context, id string) error {
	if err := s.api.ConfirmDelivery(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(query.TagReceiverParcel)
	return nil
}

func (s *parcelService) UpdateDeliveryStatus(ctx context.Context, id string, upd models.DeliveryStatusUpdate) error {
	if err := s.api.UpdateDeliveryStatus(ctx, id, upd); err != nil {
		return err
	}
	s.cache.Invalidate(query.TagAllParcel)
	return nil
}

func (s *parcelService) SetBlocked(ctx context.Context, id string, upd models.BlockStatusUpdate) error {
	if err := s.api.SetParcelBlocked(ctx, id, upd); err != nil {
		return err
	}
	s.cache.Invalidate(query.TagAllParcel)
	return nil
}
