package models

// Meta is the pagination block shared by every list endpoint.
type Meta struct {
	Page      int `json:"page"`
	Limit     int `json:"limit"`
	Total     int `json:"total"`
	TotalPage int `json:"totalPage"`
}

// PageCount returns the number of pages the pagination control should expose.
// The backend's totalPage wins when present; otherwise it is derived as
// ceil(total/limit).
func (m Meta) PageCount() int {
	if m.TotalPage > 0 {
		return m.TotalPage
	}
	if m.Limit <= 0 || m.Total <= 0 {
		return 0
	}
	return (m.Total + m.Limit - 1) / m.Limit
}

// Response is the single-object/mutation envelope returned by the backend.
// List endpoints additionally carry Meta.
type Response[T any] struct {
	StatusCode int    `json:"statusCode"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Meta       *Meta  `json:"meta,omitempty"`
	Data       T      `json:"data"`
}
