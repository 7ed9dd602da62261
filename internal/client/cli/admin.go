package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rashedul-dev/Qourio-client/internal/client/listview"
	"github.com/rashedul-dev/Qourio-client/internal/client/models"
	"github.com/rashedul-dev/Qourio-client/internal/common"
)

var adminOnly = []models.Role{models.RoleAdmin}

// Filter names of the user table, matching the wire parameter keys.
const (
	roleFilter     = "role"
	activeFilter   = "isActive"
	verifiedFilter = "isVerified"
)

// userListParams converts the user coordinator's state into wire parameters.
func (a *App) userListParams() models.UserListParams {
	q := a.userView.Query()
	p := models.UserListParams{
		SearchTerm: q.SearchTerm,
		Page:       q.Page,
		Limit:      q.Limit,
		Sort:       q.Sort,
	}
	for _, r := range q.Filters[roleFilter] {
		p.Role = append(p.Role, models.Role(r))
	}
	for _, s := range q.Filters[activeFilter] {
		p.IsActive = append(p.IsActive, models.IsActive(s))
	}
	if vs := q.Filters[verifiedFilter]; len(vs) > 0 {
		verified := vs[0] == "true"
		p.IsVerified = &verified
	}
	return p
}

// cmdUsers lists all accounts for the admin and points the shared list
// commands at the user table. The parcel coordinator is untouched.
func (a *App) cmdUsers(ctx context.Context) error {
	a.active = listUsers
	return a.listUsers(ctx)
}

func (a *App) listUsers(ctx context.Context) error {
	return a.protected(ctx, adminOnly, func(ctx context.Context) error {
		page, err := a.users.All(ctx, a.userListParams())
		var rows int
		if page != nil {
			rows = len(page.Rows)
		}
		if state := listview.Resolve(false, err, rows); state != listview.StateLoaded {
			return a.renderListState(state, err)
		}
		a.userMeta = page.Meta
		a.renderUserTable(page.Rows, page.Meta)
		return nil
	})
}

// cmdUserFilter handles 'filter' while the user table is active:
// 'filter role SENDER', 'filter active BLOCKED', 'filter verified true'.
// Role and active values toggle; verified is single-valued. No argument
// clears every user filter.
func (a *App) cmdUserFilter(ctx context.Context, args []string) error {
	if len(args) == 0 {
		for _, name := range []string{roleFilter, activeFilter, verifiedFilter} {
			a.userView.ClearFilter(name)
		}
		return a.cmdList(ctx)
	}
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: filter role <role> | filter active <state> | filter verified <true|false>")
		return nil
	}
	switch args[0] {
	case "role":
		role, err := models.ParseRole(args[1])
		if err != nil {
			fmt.Fprintln(a.out, "Unknown role. One of:")
			for _, r := range models.Roles() {
				fmt.Fprintln(a.out, "  ", r)
			}
			return nil
		}
		a.toggleUserFilter(roleFilter, string(role))
	case "active":
		state := models.IsActive(strings.ToUpper(args[1]))
		switch state {
		case models.Active, models.Inactive, models.Blocked:
		default:
			fmt.Fprintf(a.out, "Unknown state. One of: %s, %s, %s\n",
				models.Active, models.Inactive, models.Blocked)
			return nil
		}
		a.toggleUserFilter(activeFilter, string(state))
	case "verified":
		v := strings.ToLower(args[1])
		if v != "true" && v != "false" {
			fmt.Fprintln(a.out, "Verified filter takes true or false.")
			return nil
		}
		a.userView.ClearFilter(verifiedFilter)
		a.userView.ToggleFilter(verifiedFilter, v, true)
	default:
		fmt.Fprintln(a.out, "Usage: filter role <role> | filter active <state> | filter verified <true|false>")
		return nil
	}
	return a.cmdList(ctx)
}

func (a *App) toggleUserFilter(name, value string) {
	on := true
	for _, v := range a.userView.FilterValues(name) {
		if v == value {
			on = false
			break
		}
	}
	a.userView.ToggleFilter(name, value, on)
}

// cmdSetUserActive blocks or unblocks an account.
func (a *App) cmdSetUserActive(ctx context.Context, args []string, state models.IsActive) error {
	return a.protected(ctx, adminOnly, func(ctx context.Context) error {
		id, err := a.argOrPrompt(args, "User ID")
		if err != nil {
			return err
		}
		if err := a.users.SetActive(ctx, id, state); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "User %s is now %s.\n", id, state)
		return nil
	})
}

// cmdCreateStaff creates an admin or delivery-personnel account. Only the
// super admin may mint new admins.
func (a *App) cmdCreateStaff(ctx context.Context, role models.Role) error {
	required := adminOnly
	if role == models.RoleAdmin {
		required = []models.Role{models.RoleSuperAdmin}
	}
	return a.protected(ctx, required, func(ctx context.Context) error {
		var in models.StaffInput
		var err error

		if in.Name, err = getSimpleText(a.reader, "Name", a.out); err != nil {
			return err
		}
		if in.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
			return err
		}
		password, err := getPassword(a.out, "Password")
		if err != nil {
			return err
		}
		defer common.WipeByteArray(password)
		in.Password = string(password)
		if in.Phone, err = getSimpleText(a.reader, "Phone (optional)", a.out); err != nil {
			return err
		}

		var u *models.User
		if role == models.RoleAdmin {
			u, err = a.users.CreateAdmin(ctx, in)
		} else {
			u, err = a.users.CreateDeliveryPersonnel(ctx, in)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Created %s account for %s.\n", u.Role, u.Email)
		return nil
	})
}

// cmdEditProfile lets the signed-in user change their own name, phone, or
// default address. Empty answers leave the field untouched.
func (a *App) cmdEditProfile(ctx context.Context) error {
	return a.protected(ctx, nil, func(ctx context.Context) error {
		patch, err := a.promptUserPatch()
		if err != nil {
			return err
		}
		u, err := a.users.Update(ctx, a.session.User.ID, patch)
		if err != nil {
			return err
		}
		a.session.User = u
		fmt.Fprintln(a.out, "Profile updated.")
		return nil
	})
}

// cmdEditUser is the admin variant of profile editing, for any account.
func (a *App) cmdEditUser(ctx context.Context, args []string) error {
	return a.protected(ctx, adminOnly, func(ctx context.Context) error {
		id, err := a.argOrPrompt(args, "User ID")
		if err != nil {
			return err
		}
		patch, err := a.promptUserPatch()
		if err != nil {
			return err
		}
		if _, err := a.users.Update(ctx, id, patch); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "User %s updated.\n", id)
		return nil
	})
}

func (a *App) promptUserPatch() (models.UserPatch, error) {
	var patch models.UserPatch
	for _, f := range []struct {
		prompt string
		dst    **string
	}{
		{"New name (empty to keep)", &patch.Name},
		{"New phone (empty to keep)", &patch.Phone},
		{"New default address (empty to keep)", &patch.DefaultAddress},
	} {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return patch, err
		}
		if v != "" {
			val := v
			*f.dst = &val
		}
	}
	return patch, nil
}

// cmdUpdateStatus advances a parcel through its lifecycle.
func (a *App) cmdUpdateStatus(ctx context.Context, args []string) error {
	return a.protected(ctx, adminOnly, func(ctx context.Context) error {
		id, err := a.argOrPrompt(args, "Parcel ID")
		if err != nil {
			return err
		}
		status, err := getSimpleText(a.reader, "New status", a.out)
		if err != nil {
			return err
		}
		upd := models.DeliveryStatusUpdate{CurrentStatus: models.ParcelStatus(status)}
		if !upd.CurrentStatus.Known() {
			fmt.Fprintln(a.out, "Unknown status. One of:")
			for _, s := range models.ParcelStatuses() {
				fmt.Fprintln(a.out, "  ", s)
			}
			return nil
		}
		if upd.CurrentLocation, err = getSimpleText(a.reader, "Current location (optional)", a.out); err != nil {
			return err
		}
		if upd.Note, err = getSimpleText(a.reader, "Note (optional)", a.out); err != nil {
			return err
		}
		if upd.DeliveryPersonnelID, err = getSimpleText(a.reader, "Delivery personnel ID (optional)", a.out); err != nil {
			return err
		}

		if err := a.parcels.UpdateDeliveryStatus(ctx, id, upd); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Parcel %s moved to %s.\n", id, upd.CurrentStatus)
		return nil
	})
}

func (a *App) cmdSetParcelBlocked(ctx context.Context, args []string, blocked bool) error {
	return a.protected(ctx, adminOnly, func(ctx context.Context) error {
		id, err := a.argOrPrompt(args, "Parcel ID")
		if err != nil {
			return err
		}
		note, err := getSimpleText(a.reader, "Note (optional)", a.out)
		if err != nil {
			return err
		}
		upd := models.BlockStatusUpdate{IsBlocked: blocked, Note: note}
		if err := a.parcels.SetBlocked(ctx, id, upd); err != nil {
			return err
		}
		if blocked {
			fmt.Fprintf(a.out, "Parcel %s blocked.\n", id)
		} else {
			fmt.Fprintf(a.out, "Parcel %s unblocked.\n", id)
		}
		return nil
	})
}

// cmdStats renders the parcel analytics dashboard.
func (a *App) cmdStats(ctx context.Context) error {
	return a.protected(ctx, adminOnly, func(ctx context.Context) error {
		stats, err := a.stats.ParcelStats(ctx)
		if err != nil {
			return err
		}
		a.renderStats(stats)
		return nil
	})
}

func (a *App) cmdCoupons(ctx context.Context) error {
	return a.protected(ctx, adminOnly, func(ctx context.Context) error {
		coupons, err := a.stats.Coupons(ctx)
		if err != nil {
			return err
		}
		a.renderCoupons(coupons)
		return nil
	})
}

// cmdCreateCoupon creates a discount coupon; an empty code gets a generated
// one.
func (a *App) cmdCreateCoupon(ctx context.Context) error {
	return a.protected(ctx, adminOnly, func(ctx context.Context) error {
		var in models.Coupon
		var err error

		if in.Code, err = getSimpleText(a.reader, "Code (empty to generate)", a.out); err != nil {
			return err
		}
		pc, err := getSimpleText(a.reader, "Discount percentage", a.out)
		if err != nil {
			return err
		}
		if in.DiscountPc, err = strconv.ParseFloat(pc, 64); err != nil {
			return fmt.Errorf("discount must be a number")
		}

		c, err := a.stats.CreateCoupon(ctx, in)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Coupon %s created (%.0f%% off).\n", c.Code, c.DiscountPc)
		return nil
	})
}
