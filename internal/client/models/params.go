package models

import (
	"net/url"
	"strconv"
)

// DefaultSort is used by every list view when no column sort is active.
const DefaultSort = "-createdAt"

// ParcelListParams are the query parameters of the role-scoped parcel lists.
// Page is 1-based on the wire; Sort uses a leading '-' for descending.
type ParcelListParams struct {
	SearchTerm    string
	Page          int
	Limit         int
	Sort          string
	CurrentStatus []ParcelStatus
}

// Values encodes the parameters for the request URL. Multi-value filters use
// the key[] convention. Encoding is deterministic (url.Values sorts keys), so
// the encoded form doubles as a cache key.
func (p ParcelListParams) Values() url.Values {
	v := url.Values{}
	putCommon(v, p.SearchTerm, p.Page, p.Limit, p.Sort)
	for _, s := range p.CurrentStatus {
		v.Add("currentStatus[]", string(s))
	}
	return v
}

// UserListParams are the query parameters of GET /user/all-users.
type UserListParams struct {
	SearchTerm string
	Page       int
	Limit      int
	Sort       string
	Role       []Role
	IsActive   []IsActive
	IsVerified *bool
}

func (p UserListParams) Values() url.Values {
	v := url.Values{}
	putCommon(v, p.SearchTerm, p.Page, p.Limit, p.Sort)
	for _, r := range p.Role {
		v.Add("role[]", string(r))
	}
	for _, a := range p.IsActive {
		v.Add("isActive[]", string(a))
	}
	if p.IsVerified != nil {
		v.Set("isVerified", strconv.FormatBool(*p.IsVerified))
	}
	return v
}

func putCommon(v url.Values, search string, page, limit int, sort string) {
	if search != "" {
		v.Set("searchTerm", search)
	}
	if page > 0 {
		v.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	if sort == "" {
		sort = DefaultSort
	}
	v.Set("sort", sort)
}
