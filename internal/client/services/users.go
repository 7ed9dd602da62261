package services

import (
	"context"

	"github.com/rashedul-dev/Qourio-client/internal/client/models"
	"github.com/rashedul-dev/Qourio-client/internal/client/query"
)

// UserAPI is the slice of the REST client used by UserService.
type UserAPI interface {
	AllUsers(ctx context.Context, p models.UserListParams) ([]models.User, models.Meta, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	SetUserActive(ctx context.Context, id string, state models.IsActive) error
	CreateAdmin(ctx context.Context, in models.StaffInput) (*models.User, error)
	CreateDeliveryPersonnel(ctx context.Context, in models.StaffInput) (*models.User, error)
}

// UserPage is one page of the user list together with its pagination meta.
type UserPage struct {
	Rows []models.User
	Meta models.Meta
}

// UserService wraps the admin user-management endpoints with caching under
// the USER tag. Every mutation invalidates that tag.
type UserService interface {
	All(ctx context.Context, p models.UserListParams) (*UserPage, error)
	ByID(ctx context.Context, id string) (*models.User, error)
	Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	SetActive(ctx context.Context, id string, state models.IsActive) error
	CreateAdmin(ctx context.Context, in models.StaffInput) (*models.User, error)
	CreateDeliveryPersonnel(ctx context.Context, in models.StaffInput) (*models.User, error)
}

type userService struct {
	api   UserAPI
	cache *query.Cache
}

// NewUserService constructs a UserService bound to the given API client and
// query cache.
func NewUserService(api UserAPI, cache *query.Cache) UserService {
	return &userService{api: api, cache: cache}
}

func (s *userService) All(ctx context.Context, p models.UserListParams) (*UserPage, error) {
	key := "/user/all-users?" + p.Values().Encode()
	return query.Fetch(ctx, s.cache, key, []query.Tag{query.TagUser},
		func(ctx context.Context) (*UserPage, error) {
			rows, meta, err := s.api.AllUsers(ctx, p)
			if err != nil {
				return nil, err
			}
			return &UserPage{Rows: rows, Meta: meta}, nil
		})
}

func (s *userService) ByID(ctx context.Context, id string) (*models.User, error) {
	return query.Fetch(ctx, s.cache, "/user/"+id, []query.Tag{query.TagUser},
		func(ctx context.Context) (*models.User, error) {
			return s.api.UserByID(ctx, id)
		})
}

func (s *userService) Update(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	u, err := s.api.UpdateUser(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(query.TagUser)
	return u, nil
}

// SetActive blocks, unblocks, or deactivates an account. A blocked sender's
// parcels change visibility too, so the parcel lists are invalidated along
// with the user lists.
func (s *userService) SetActive(ctx context.Context, id string, state models.IsActive) error {
	if err := s.api.SetUserActive(ctx, id, state); err != nil {
		return err
	}
	s.cache.Invalidate(query.TagUser, query.TagAllParcel)
	return nil
}

func (s *userService) CreateAdmin(ctx context.Context, in models.StaffInput) (*models.User, error) {
	return s.createStaff(ctx, in, s.api.CreateAdmin)
}

func (s *userService) CreateDeliveryPersonnel(ctx context.Context, in models.StaffInput) (*models.User, error) {
	return s.createStaff(ctx, in, s.api.CreateDeliveryPersonnel)
}

func (s *userService) createStaff(ctx context.Context, in models.StaffInput,
	create func(ctx context.Context, in models.StaffInput) (*models.User, error),
) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	u, err := create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(query.TagUser)
	return u, nil
}
