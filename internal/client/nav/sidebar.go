// Package nav defines the role-scoped dashboard navigation. The sidebar is
// derived by an exhaustive switch over the closed role set, so adding a role
// forces a decision here instead of silently showing an empty menu.
package nav

import (
	"github.com/rashedul-dev/Qourio-client/internal/client/guard"
	"github.com/rashedul-dev/Qourio-client/internal/client/models"
)

// Item is one navigable dashboard screen.
type Item struct {
	Title string
	Route string
}

// Section groups items under a heading.
type Section struct {
	Title string
	Items []Item
}

// SidebarItems returns the dashboard navigation for a role. Delivery
// personnel have no dashboard yet and get an empty sidebar.
func SidebarItems(role models.Role) []Section {
	switch role {
	case models.RoleSuperAdmin, models.RoleAdmin:
		return []Section{
			{
				Title: "Parcels",
				Items: []Item{
					{Title: "Parcels Statistics", Route: guard.RouteAdminHome},
					{Title: "Manage Parcels", Route: "/admin/parcels"},
				},
			},
			{
				Title: "Users",
				Items: []Item{
					{Title: "Manage Users", Route: "/admin/all-users"},
				},
			},
		}
	case models.RoleSender:
		return []Section{
			{
				Title: "Parcels",
				Items: []Item{
					{Title: "My Parcels", Route: guard.RouteSenderHome},
				},
			},
		}
	case models.RoleReceiver:
		return []Section{
			{
				Title: "Parcels",
				Items: []Item{
					{Title: "Incoming Parcels", Route: guard.RouteReceiverHome},
					{Title: "Delivery History", Route: "/receiver/me/history"},
				},
			},
		}
	case models.RoleDeliveryMan:
		return nil
	default:
		return nil
	}
}
