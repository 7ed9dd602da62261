package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/rashedul-dev/Qourio-client/internal/client/api"
	"github.com/rashedul-dev/Qourio-client/internal/client/eta"
	"github.com/rashedul-dev/Qourio-client/internal/client/listview"
	"github.com/rashedul-dev/Qourio-client/internal/client/models"
	"github.com/rashedul-dev/Qourio-client/internal/common"
)

// parcelColumns are the toggleable columns of the parcel table, in render
// order.
var parcelColumns = []string{"trackingId", "currentStatus", "type", "fee", "estimatedDelivery", "createdAt"}

// userColumns are the toggleable columns of the user table. The ID column is
// always shown; it is what the user-management commands take as argument.
var userColumns = []string{"name", "email", "role", "isActive", "isVerified"}

const dateLayout = "2006-01-02"

// renderListState prints the non-loaded list states. A fetch error still
// returns nil: the message on screen is the handling.
func (a *App) renderListState(state listview.FetchState, err error) error {
	switch state {
	case listview.StateEmpty:
		fmt.Fprintln(a.out, "Nothing here yet.")
	case listview.StateError:
		fmt.Fprintln(a.out, "Could not load the list:", api.ServerMessage(err, "unexpected error"))
	default:
		fmt.Fprintln(a.out, "Loading...")
	}
	return nil
}

// estimatedDeliveryText prefers the backend's own estimate and falls back to
// the locally derived one.
func estimatedDeliveryText(status models.ParcelStatus, estimated *time.Time, lastUpdated time.Time) string {
	if estimated != nil {
		return estimated.Format(dateLayout)
	}
	if s := eta.DeliveryDateString(status, lastUpdated); s != "" {
		return s + " (est.)"
	}
	return "-"
}

func (a *App) renderParcelTable(rows []models.Parcel, meta models.Meta) {
	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)

	for _, col := range parcelColumns {
		if a.parcelView.ColumnVisible(col) {
			fmt.Fprintf(w, "%s\t", parcelColumnTitle(col))
		}
	}
	fmt.Fprintln(w)

	for _, p := range rows {
		lastUpdated := p.UpdatedAt
		if entry := p.LastStatusLog(); entry != nil {
			lastUpdated = entry.UpdatedAt
		}
		for _, col := range parcelColumns {
			if !a.parcelView.ColumnVisible(col) {
				continue
			}
			switch col {
			case "trackingId":
				fmt.Fprintf(w, "%s\t", p.TrackingID)
			case "currentStatus":
				fmt.Fprintf(w, "%s\t", p.CurrentStatus)
			case "type":
				fmt.Fprintf(w, "%s\t", p.Type)
			case "fee":
				fmt.Fprintf(w, "%.2f\t", p.Fee)
			case "estimatedDelivery":
				fmt.Fprintf(w, "%s\t", estimatedDeliveryText(p.CurrentStatus, p.EstimatedDelivery, lastUpdated))
			case "createdAt":
				fmt.Fprintf(w, "%s\t", p.CreatedAt.Format(dateLayout))
			}
		}
		fmt.Fprintln(w)
	}
	_ = w.Flush()

	fmt.Fprintf(a.out, "Page %d of %d (%d total)\n",
		a.parcelView.PageIndex()+1, meta.PageCount(), meta.Total)
}

func parcelColumnTitle(col string) string {
	switch col {
	case "trackingId":
		return "TRACKING"
	case "currentStatus":
		return "STATUS"
	case "type":
		return "TYPE"
	case "fee":
		return "FEE"
	case "estimatedDelivery":
		return "EST. DELIVERY"
	case "createdAt":
		return "CREATED"
	default:
		return col
	}
}

func (a *App) renderParcelDetail(p *models.Parcel) {
	fmt.Fprintln(a.out, "Tracking ID:     ", p.TrackingID)
	fmt.Fprintln(a.out, "Status:          ", p.CurrentStatus)
	fmt.Fprintln(a.out, "Type:            ", p.Type, "/", p.ShippingType)
	fmt.Fprintf(a.out, "Weight / fee:     %.1f kg / %.2f\n", p.Weight, p.Fee)
	fmt.Fprintln(a.out, "Sender:          ", p.Sender.Name, "<"+p.Sender.Email+">")
	fmt.Fprintln(a.out, "Receiver:        ", p.Receiver.Name, "<"+p.Receiver.Email+">")
	if p.PickupAddress != "" {
		fmt.Fprintln(a.out, "Pickup:          ", p.PickupAddress)
	}
	if p.DeliveryAddress != "" {
		fmt.Fprintln(a.out, "Delivery:        ", p.DeliveryAddress)
	}

	lastUpdated := p.UpdatedAt
	if entry := p.LastStatusLog(); entry != nil {
		lastUpdated = entry.UpdatedAt
	}
	fmt.Fprintln(a.out, "Est. delivery:   ", estimatedDeliveryText(p.CurrentStatus, p.EstimatedDelivery, lastUpdated))
	if p.IsBlocked {
		fmt.Fprintln(a.out, "This parcel is blocked.")
	}
}

func (a *App) renderStatusLog(log []models.StatusLogEntry) {
	if len(log) == 0 {
		fmt.Fprintln(a.out, "No status history yet.")
		return
	}
	for _, entry := range log {
		line := fmt.Sprintf("%s  %s", entry.UpdatedAt.Format("2006-01-02 15:04"), entry.Status)
		if entry.Location != "" {
			line += "  @ " + entry.Location
		}
		if entry.Note != "" {
			line += "  (" + common.Truncate(entry.Note, 60) + ")"
		}
		fmt.Fprintln(a.out, line)
	}
}

func (a *App) renderTrackInfo(info *models.TrackInfo) {
	fmt.Fprintln(a.out, "Tracking ID:  ", info.TrackingID)
	fmt.Fprintln(a.out, "Status:       ", info.CurrentStatus)
	if info.DeliveredAt != nil {
		fmt.Fprintln(a.out, "Delivered at: ", info.DeliveredAt.Format(dateLayout))
	} else {
		lastUpdated := info.UpdatedAt
		if entry := info.LastStatusLog(); entry != nil {
			lastUpdated = entry.UpdatedAt
		}
		fmt.Fprintln(a.out, "Est. delivery:", estimatedDeliveryText(info.CurrentStatus, info.EstimatedDelivery, lastUpdated))
	}
	fmt.Fprintln(a.out, "Route:        ", info.PickupAddress, "->", info.DeliveryAddress)
	fmt.Fprintln(a.out)
	a.renderStatusLog(info.StatusLog)
}

func (a *App) renderUserProfile(u *models.User) {
	fmt.Fprintln(a.out, "Name:    ", u.Name)
	fmt.Fprintln(a.out, "Email:   ", u.Email)
	fmt.Fprintln(a.out, "Role:    ", u.Role)
	fmt.Fprintln(a.out, "Status:  ", u.IsActive)
	if u.Phone != "" {
		fmt.Fprintln(a.out, "Phone:   ", u.Phone)
	}
	if u.DefaultAddress != "" {
		fmt.Fprintln(a.out, "Address: ", u.DefaultAddress)
	}
}

func (a *App) renderUserTable(rows []models.User, meta models.Meta) {
	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)

	fmt.Fprint(w, "ID\t")
	for _, col := range userColumns {
		if a.userView.ColumnVisible(col) {
			fmt.Fprintf(w, "%s\t", userColumnTitle(col))
		}
	}
	fmt.Fprintln(w)

	for _, u := range rows {
		fmt.Fprintf(w, "%s\t", u.ID)
		for _, col := range userColumns {
			if !a.userView.ColumnVisible(col) {
				continue
			}
			switch col {
			case "name":
				fmt.Fprintf(w, "%s\t", u.Name)
			case "email":
				fmt.Fprintf(w, "%s\t", u.Email)
			case "role":
				fmt.Fprintf(w, "%s\t", u.Role)
			case "isActive":
				fmt.Fprintf(w, "%s\t", u.IsActive)
			case "isVerified":
				fmt.Fprintf(w, "%t\t", u.IsVerified)
			}
		}
		fmt.Fprintln(w)
	}
	_ = w.Flush()

	fmt.Fprintf(a.out, "Page %d of %d (%d total)\n",
		a.userView.PageIndex()+1, meta.PageCount(), meta.Total)
}

func userColumnTitle(col string) string {
	switch col {
	case "name":
		return "NAME"
	case "email":
		return "EMAIL"
	case "role":
		return "ROLE"
	case "isActive":
		return "ACTIVE"
	case "isVerified":
		return "VERIFIED"
	}
	return col
}

func (a *App) renderStats(s *models.ParcelStats) {
	fmt.Fprintln(a.out, "Total parcels:         ", s.TotalParcel)
	fmt.Fprintln(a.out, "Created last 7 days:   ", s.CreatedInLast7Days)
	fmt.Fprintln(a.out, "Created last 30 days:  ", s.CreatedInLast30Days)

	if len(s.TotalParcelByStatus) > 0 {
		fmt.Fprintln(a.out, "By status:")
		for _, b := range s.TotalParcelByStatus {
			fmt.Fprintf(a.out, "  %-20s %d\n", b.Key, b.Count)
		}
	}
	if len(s.ParcelPerType) > 0 {
		fmt.Fprintln(a.out, "By type:")
		for _, b := range s.ParcelPerType {
			fmt.Fprintf(a.out, "  %-20s %d\n", b.Key, b.Count)
		}
	}
}

func (a *App) renderCoupons(coupons []models.Coupon) {
	if len(coupons) == 0 {
		fmt.Fprintln(a.out, "No coupons yet.")
		return
	}
	w := tabwriter.NewWriter(a.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tDISCOUNT\tACTIVE\tEXPIRES")
	for _, c := range coupons {
		expires := "-"
		if c.ExpiresAt != nil {
			expires = c.ExpiresAt.Format(dateLayout)
		}
		fmt.Fprintf(w, "%s\t%.0f%%\t%t\t%s\n", c.Code, c.DiscountPc, c.IsActive, expires)
	}
	_ = w.Flush()
}
