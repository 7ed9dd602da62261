package api

import (
	"context"
	"net/http"

	"github.com/rashedul-dev/Qourio-client/internal/client/models"
)

// Register creates a sender/receiver account. The new user still has to pass
// OTP verification before logging in.
func (c *HTTPClient) Register(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	env, err := c.do(ctx, http.MethodPost, "/user/register", nil, in)
	if err != nil {
		return nil, err
	}
	u, err := decodeData[models.User](env)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Me returns the identity behind the current session. A failure here is how
// the client learns it is not (or no longer) authenticated.
func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	env, err := c.do(ctx, http.MethodGet, "/user/me", nil, nil)
	if err != nil {
		return nil, err
	}
	u, err := decodeData[models.User](env)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// AllUsers lists accounts with pagination and role/activation filters
// (admin only).
func (c *HTTPClient) AllUsers(ctx context.Context, p models.UserListParams) ([]models.User, models.Meta, error) {
	return getList[models.User](ctx, c, "/user/all-users", p.Values())
}

// UserByID fetches one account.
func (c *HTTPClient) UserByID(ctx context.Context, id string) (*models.User, error) {
	env, err := c.do(ctx, http.MethodGet, "/user/"+id, nil, nil)
	if err != nil {
		return nil, err
	}
	u, err := decodeData[models.User](env)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUser patches profile fields of one account.
func (c *HTTPClient) UpdateUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	env, err := c.do(ctx, http.MethodPatch, "/user/"+id, nil, patch)
	if err != nil {
		return nil, err
	}
	u, err := decodeData[models.User](env)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SetUserActive changes an account's activation state (block/unblock).
func (c *HTTPClient) SetUserActive(ctx context.Context, id string, state models.IsActive) error {
	_, err := c.do(ctx, http.MethodPatch, "/user/"+id+"/block-user", nil,
		map[string]models.IsActive{"isActive": state})
	return err
}

// CreateAdmin provisions an admin account (admin only).
func (c *HTTPClient) CreateAdmin(ctx context.Context, in models.StaffInput) (*models.User, error) {
	return c.createStaff(ctx, "/user/create-admin", in)
}

// CreateDeliveryPersonnel provisions a delivery-man account (admin only).
func (c *HTTPClient) CreateDeliveryPersonnel(ctx context.Context, in models.StaffInput) (*models.User, error) {
	return c.createStaff(ctx, "/user/create-delivery-personnel", in)
}

func (c *HTTPClient) createStaff(ctx context.Context, path string, in models.StaffInput) (*models.User, error) {
	env, err := c.do(ctx, http.MethodPost, path, nil, in)
	if err != nil {
		return nil, err
	}
	u, err := decodeData[models.User](env)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
