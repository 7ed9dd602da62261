package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rashedul-dev/Qourio-client/internal/client/listview"
	"github.com/rashedul-dev/Qourio-client/internal/client/models"
	"github.com/rashedul-dev/Qourio-client/internal/client/services"
)

const statusFilter = "currentStatus"

// parcelListParams converts the coordinator's state into wire parameters.
func (a *App) parcelListParams() models.ParcelListParams {
	q := a.parcelView.Query()
	p := models.ParcelListParams{
		SearchTerm: q.SearchTerm,
		Page:       q.Page,
		Limit:      q.Limit,
		Sort:       q.Sort,
	}
	for _, s := range q.Filters[statusFilter] {
		p.CurrentStatus = append(p.CurrentStatus, models.ParcelStatus(s))
	}
	return p
}

// fetchParcels picks the list endpoint for the current role: senders see
// their own parcels, receivers their incoming ones, admins everything.
func (a *App) fetchParcels(ctx context.Context) (*services.ParcelPage, error) {
	p := a.parcelListParams()
	switch a.role() {
	case models.RoleSender:
		return a.parcels.SenderParcels(ctx, p)
	case models.RoleReceiver:
		return a.parcels.IncomingParcels(ctx, p)
	default:
		return a.parcels.AllParcels(ctx, p)
	}
}

// cmdList renders the current page of the active list: the role's parcel
// table, or the user table after 'users'.
func (a *App) cmdList(ctx context.Context) error {
	if a.active == listUsers {
		return a.listUsers(ctx)
	}
	return a.listParcels(ctx)
}

// cmdParcels switches the list commands back to the parcel table.
func (a *App) cmdParcels(ctx context.Context) error {
	a.active = listParcels
	return a.cmdList(ctx)
}

func (a *App) listParcels(ctx context.Context) error {
	return a.protected(ctx, nil, func(ctx context.Context) error {
		page, err := a.fetchParcels(ctx)
		if state := listview.Resolve(false, err, pageLen(page)); state != listview.StateLoaded {
			return a.renderListState(state, err)
		}
		a.parcelMeta = page.Meta
		a.renderParcelTable(page.Rows, page.Meta)
		return nil
	})
}

func pageLen(p *services.ParcelPage) int {
	if p == nil {
		return 0
	}
	return len(p.Rows)
}

func (a *App) cmdNextPage(ctx context.Context) error {
	a.activeView().NextPage(a.activeMeta())
	return a.cmdList(ctx)
}

func (a *App) cmdPrevPage(ctx context.Context) error {
	a.activeView().PrevPage()
	return a.cmdList(ctx)
}

// cmdSort toggles sorting: first call on a column sorts ascending, second
// descending; without an argument the default ordering is restored.
func (a *App) cmdSort(ctx context.Context, args []string) error {
	view := a.activeView()
	if len(args) == 0 {
		view.ClearSort()
		return a.cmdList(ctx)
	}
	col := args[0]
	view.Sort(col, view.SortParam() == col)
	return a.cmdList(ctx)
}

// cmdSearch commits a new search term; with no argument it clears the search.
func (a *App) cmdSearch(ctx context.Context, args []string) error {
	view := a.activeView()
	if len(args) == 0 {
		view.ClearSearch()
	} else {
		view.SetSearchInput(strings.Join(args, " "))
		view.CommitSearch()
	}
	return a.cmdList(ctx)
}

// cmdFilter adjusts the active list's filters. On the parcel table the
// argument is a status to toggle; the user table takes a field and a value
// (see cmdUserFilter). No argument clears every filter of the active list.
func (a *App) cmdFilter(ctx context.Context, args []string) error {
	if a.active == listUsers {
		return a.cmdUserFilter(ctx, args)
	}
	if len(args) == 0 {
		a.parcelView.ClearFilter(statusFilter)
		return a.cmdList(ctx)
	}
	status := models.ParcelStatus(args[0])
	if !status.Known() {
		fmt.Fprintln(a.out, "Unknown status. One of:")
		for _, s := range models.ParcelStatuses() {
			fmt.Fprintln(a.out, "  ", s)
		}
		return nil
	}
	active := false
	for _, v := range a.parcelView.FilterValues(statusFilter) {
		if v == string(status) {
			active = true
			break
		}
	}
	a.parcelView.ToggleFilter(statusFilter, string(status), !active)
	return a.cmdList(ctx)
}

// cmdColumns shows or changes column visibility on the active list.
// Visibility never changes the current page.
func (a *App) cmdColumns(ctx context.Context, args []string) error {
	view, cols := a.activeView(), parcelColumns
	if a.active == listUsers {
		cols = userColumns
	}
	if len(args) < 2 {
		for _, col := range cols {
			state := "shown"
			if !view.ColumnVisible(col) {
				state = "hidden"
			}
			fmt.Fprintf(a.out, "  %-20s %s\n", col, state)
		}
		return nil
	}
	visible := args[0] == "show"
	view.SetColumnVisible(args[1], visible)
	return nil
}

func (a *App) cmdLimit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: limit <n>")
		return nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n <= 0 {
		fmt.Fprintln(a.out, "Page size must be a positive number.")
		return nil
	}
	a.activeView().SetPageSize(n)
	return a.cmdList(ctx)
}

// cmdCreateParcel collects the parcel form. Admins create on behalf of a
// sender and are asked for the sender email as well.
func (a *App) cmdCreateParcel(ctx context.Context) error {
	return a.protected(ctx, []models.Role{models.RoleSender, models.RoleAdmin}, func(ctx context.Context) error {
		var in models.CreateParcelInput
		var err error

		if in.ReceiverEmail, err = getSimpleText(a.reader, "Receiver email", a.out); err != nil {
			return err
		}
		weight, err := getSimpleText(a.reader, "Weight in kg (0.1 - 10)", a.out)
		if err != nil {
			return err
		}
		if in.Weight, err = strconv.ParseFloat(weight, 64); err != nil {
			return fmt.Errorf("weight must be a number")
		}
		typ, err := getTextWithDefault(a.reader, "Type (package/document/fragile)", string(models.TypePackage), a.out)
		if err != nil {
			return err
		}
		in.Type = models.ParcelType(typ)
		shipping, err := getTextWithDefault(a.reader, "Shipping (standard/express)", string(models.ShippingStandard), a.out)
		if err != nil {
			return err
		}
		in.ShippingType = models.ShippingType(shipping)
		if in.PickupAddress, err = getSimpleText(a.reader, "Pickup address (optional)", a.out); err != nil {
			return err
		}
		if in.DeliveryAddress, err = getSimpleText(a.reader, "Delivery address (optional)", a.out); err != nil {
			return err
		}
		if in.CouponCode, err = getSimpleText(a.reader, "Coupon code (optional)", a.out); err != nil {
			return err
		}

		var p *models.Parcel
		if a.role() == models.RoleSender {
			p, err = a.parcels.Create(ctx, in)
		} else {
			if in.SenderEmail, err = getSimpleText(a.reader, "Sender email", a.out); err != nil {
				return err
			}
			p, err = a.parcels.AdminCreate(ctx, in)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Parcel created. Tracking ID: %s, fee: %.2f\n", p.TrackingID, p.Fee)
		return nil
	})
}

// cmdCancelParcel cancels one of the sender's parcels. A note is mandatory.
func (a *App) cmdCancelParcel(ctx context.Context, args []string) error {
	return a.protected(ctx, []models.Role{models.RoleSender}, func(ctx context.Context) error {
		id, err := a.argOrPrompt(args, "Parcel ID")
		if err != nil {
			return err
		}
		note, err := getSimpleText(a.reader, "Cancellation note (5-200 characters)", a.out)
		if err != nil {
			return err
		}
		if err := a.parcels.Cancel(ctx, id, note); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Parcel cancelled.")
		return nil
	})
}

func (a *App) cmdDeleteParcel(ctx context.Context, args []string) error {
	return a.protected(ctx, []models.Role{models.RoleSender}, func(ctx context.Context) error {
		id, err := a.argOrPrompt(args, "Parcel ID")
		if err != nil {
			return err
		}
		if err := a.parcels.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Parcel deleted.")
		return nil
	})
}

func (a *App) cmdConfirmDelivery(ctx context.Context, args []string) error {
	return a.protected(ctx, []models.Role{models.RoleReceiver}, func(ctx context.Context) error {
		id, err := a.argOrPrompt(args, "Parcel ID")
		if err != nil {
			return err
		}
		if err := a.parcels.ConfirmDelivery(ctx, id); err != nil {
			return err
		}
		fmt.Fprintln(a.out, "Delivery confirmed. Thanks!")
		return nil
	})
}

// cmdHistory lists the receiver's delivered parcels.
func (a *App) cmdHistory(ctx context.Context) error {
	return a.protected(ctx, []models.Role{models.RoleReceiver}, func(ctx context.Context) error {
		page, err := a.parcels.History(ctx, a.parcelListParams())
		if state := listview.Resolve(false, err, pageLen(page)); state != listview.StateLoaded {
			return a.renderListState(state, err)
		}
		a.parcelMeta = page.Meta
		a.renderParcelTable(page.Rows, page.Meta)
		return nil
	})
}

func (a *App) cmdParcelDetail(ctx context.Context, args []string) error {
	return a.protected(ctx, nil, func(ctx context.Context) error {
		id, err := a.argOrPrompt(args, "Parcel ID")
		if err != nil {
			return err
		}
		p, err := a.parcels.ByID(ctx, id)
		if err != nil {
			return err
		}
		a.renderParcelDetail(p)
		return nil
	})
}

func (a *App) cmdStatusLog(ctx context.Context, args []string) error {
	return a.protected(ctx, nil, func(ctx context.Context) error {
		id, err := a.argOrPrompt(args, "Parcel ID")
		if err != nil {
			return err
		}
		p, err := a.parcels.StatusLog(ctx, id)
		if err != nil {
			return err
		}
		a.renderStatusLog(p.StatusLog)
		return nil
	})
}

// cmdTrack is the public tracking lookup; it works logged out.
func (a *App) cmdTrack(ctx context.Context, args []string) error {
	id, err := a.argOrPrompt(args, "Tracking ID")
	if err != nil {
		return err
	}
	info, err := a.parcels.Track(ctx, id)
	if err != nil {
		return err
	}
	a.renderTrackInfo(info)
	return nil
}

func (a *App) argOrPrompt(args []string, prompt string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return getSimpleText(a.reader, prompt, a.out)
}
