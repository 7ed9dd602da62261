package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rashedul-dev/Qourio-client/internal/client/models"
)

type fakeUserAPI struct {
	Rows []models.User
	Meta models.Meta
	Err  error

	AllCalls int

	LastActiveID    string
	LastActiveState models.IsActive
	LastStaffEmail  string
}

func (f *fakeUserAPI) AllUsers(ctx context.Context, p models.UserListParams) ([]models.User, models.Meta, error) {
	f.AllCalls++
	return f.Rows, f.Meta, f.Err
}

func (f *fakeUserAPI) UserByID(ctx context.Context, id string) (*models.User, error) {
	return &models.User{ID: id}, f.Err
}

func (f *fakeUserAPI) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	return &models.User{ID: id}, f.Err
}

func (f *fakeUserAPI) SetUserActive(ctx context.Context, id string, state models.IsActive) error {
	f.LastActiveID, f.LastActiveState = id, state
	return f.Err
}

func (f *fakeUserAPI) CreateAdmin(ctx context.Context, in models.StaffInput) (*models.User, error) {
	f.LastStaffEmail = in.Email
	return &models.User{Role: models.RoleAdmin}, f.Err
}

func (f *fakeUserAPI) CreateDeliveryPersonnel(ctx context.Context, in models.StaffInput) (*models.User, error) {
	f.LastStaffEmail = in.Email
	return &models.User{Role: models.RoleDeliveryMan}, f.Err
}

func TestAllUsers_CachedPerQuery(t *testing.T) {
	apiFake := &fakeUserAPI{Rows: []models.User{{ID: "u1"}}}
	svc := NewUserService(apiFake, newCache())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		page, err := svc.All(ctx, models.UserListParams{Page: 1})
		require.NoError(t, err)
		require.Len(t, page.Rows, 1)
	}
	require.Equal(t, 1, apiFake.AllCalls)
}

func TestSetActive_InvalidatesUserLists(t *testing.T) {
	apiFake := &fakeUserAPI{}
	svc := NewUserService(apiFake, newCache())
	ctx := context.Background()

	_, err := svc.All(ctx, models.UserListParams{})
	require.NoError(t, err)

	require.NoError(t, svc.SetActive(ctx, "u1", models.Blocked))
	require.Equal(t, "u1", apiFake.LastActiveID)
	require.Equal(t, models.Blocked, apiFake.LastActiveState)

	_, err = svc.All(ctx, models.UserListParams{})
	require.NoError(t, err)
	require.Equal(t, 2, apiFake.AllCalls, "user list must refetch after a block")
}

func TestCreateStaff_ValidatesAndInvalidates(t *testing.T) {
	apiFake := &fakeUserAPI{}
	svc := NewUserService(apiFake, newCache())
	ctx := context.Background()

	_, err := svc.CreateAdmin(ctx, models.StaffInput{Name: "A", Email: "bad", Password: "12345678"})
	require.Error(t, err)
	require.Empty(t, apiFake.LastStaffEmail)

	u, err := svc.CreateDeliveryPersonnel(ctx, models.StaffInput{
		Name: "Dana", Email: "dana@x.com", Password: "12345678",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleDeliveryMan, u.Role)
	require.Equal(t, "dana@x.com", apiFake.LastStaffEmail)
}
