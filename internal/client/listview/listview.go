// Package listview implements the coordinator shared by every resource table:
// pagination, single-column sorting, multi-value filters, a two-phase search
// box, and per-column visibility. The coordinator owns interactive state and
// derives the query parameters handed to the data layer; fetching and caching
// are someone else's job.
package listview

import (
	"sort"

	"github.com/rashedul-dev/Qourio-client/internal/client/models"
)

// Coordinator holds the interactive state of one list view.
//
// Invariant: any change to the sort, a filter, or the applied search term
// resets the page index to 0. Changing the page size also resets, since the
// old index addresses different rows under a new size.
//
// The search term is two-phase: SetSearchInput updates the pending text on
// every keystroke without side effects; CommitSearch applies it (explicit
// submit or Enter). Only the applied term reaches the backend.
type Coordinator struct {
	pageIndex int
	pageSize  int

	sortColumn string
	sortDesc   bool

	filters map[string][]string

	searchInput   string
	appliedSearch string

	visibility map[string]bool
}

// Option customizes a new Coordinator.
type Option func(*Coordinator)

// WithHiddenColumns marks columns hidden by default. Defaults vary per table
// and are not persisted across sessions.
func WithHiddenColumns(cols ...string) Option {
	return func(c *Coordinator) {
		for _, col := range cols {
			c.visibility[col] = false
		}
	}
}

// New creates a coordinator on the first page with the given page size.
func New(pageSize int, opts ...Option) *Coordinator {
	if pageSize <= 0 {
		pageSize = 10
	}
	c := &Coordinator{
		pageSize:   pageSize,
		filters:    make(map[string][]string),
		visibility: make(map[string]bool),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// PageIndex is the 0-based page currently displayed.
func (c *Coordinator) PageIndex() int { return c.pageIndex }

// PageSize is the number of rows requested per page.
func (c *Coordinator) PageSize() int { return c.pageSize }

// SetPageIndex moves to the given 0-based page. Negative values clamp to 0.
func (c *Coordinator) SetPageIndex(i int) {
	if i < 0 {
		i = 0
	}
	c.pageIndex = i
}

// SetPageSize changes the page size and resets to the first page.
func (c *Coordinator) SetPageSize(n int) {
	if n <= 0 {
		return
	}
	c.pageSize = n
	c.pageIndex = 0
}

// NextPage advances one page, clamped to the page count derived from meta.
func (c *Coordinator) NextPage(meta models.Meta) {
	if last := meta.PageCount() - 1; c.pageIndex < last {
		c.pageIndex++
	}
}

// PrevPage goes back one page, clamped to the first.
func (c *Coordinator) PrevPage() {
	if c.pageIndex > 0 {
		c.pageIndex--
	}
}

// Sort sets a single-column sort and resets to the first page.
func (c *Coordinator) Sort(column string, desc bool) {
	c.sortColumn = column
	c.sortDesc = desc
	c.pageIndex = 0
}

// ClearSort removes the active sort (falling back to the default order) and
// resets to the first page.
func (c *Coordinator) ClearSort() {
	c.sortColumn = ""
	c.sortDesc = false
	c.pageIndex = 0
}

// SortParam encodes the sort for the backend: the column id, prefixed with
// '-' when descending. Without an active sort it is models.DefaultSort.
func (c *Coordinator) SortParam() string {
	if c.sortColumn == "" {
		return models.DefaultSort
	}
	if c.sortDesc {
		return "-" + c.sortColumn
	}
	return c.sortColumn
}

// ToggleFilter adds or removes one value of a named filter and resets to the
// first page. Removing a value that is not present is a no-op on the values
// but still resets the page (the user acted on the filter UI).
func (c *Coordinator) ToggleFilter(name, value string, on bool) {
	values := c.filters[name]
	if on {
		for _, v := range values {
			if v == value {
				c.pageIndex = 0
				return
			}
		}
		c.filters[name] = append(values, value)
	} else {
		next := values[:0]
		for _, v := range values {
			if v != value {
				next = append(next, v)
			}
		}
		if len(next) == 0 {
			delete(c.filters, name)
		} else {
			c.filters[name] = next
		}
	}
	c.pageIndex = 0
}

// ClearFilter removes every value of a named filter and resets the page.
func (c *Coordinator) ClearFilter(name string) {
	delete(c.filters, name)
	c.pageIndex = 0
}

// FilterValues returns the active values of a named filter in insertion order.
func (c *Coordinator) FilterValues(name string) []string {
	vals := c.filters[name]
	out := make([]string, len(vals))
	copy(out, vals)
	return out
}

// FilterNames lists the filters that currently have values, sorted.
func (c *Coordinator) FilterNames() []string {
	names := make([]string, 0, len(c.filters))
	for n := range c.filters {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// SetSearchInput updates the pending search text. It does not touch the
// applied term or the page.
func (c *Coordinator) SetSearchInput(s string) { c.searchInput = s }

// SearchInput is the pending (not yet applied) search text.
func (c *Coordinator) SearchInput() string { return c.searchInput }

// AppliedSearch is the term actually sent to the backend.
func (c *Coordinator) AppliedSearch() string { return c.appliedSearch }

// CommitSearch applies the pending search text and resets to the first page.
func (c *Coordinator) CommitSearch() {
	c.appliedSearch = c.searchInput
	c.pageIndex = 0
}

// ClearSearch empties both the pending and applied terms and resets the page.
func (c *Coordinator) ClearSearch() {
	c.searchInput = ""
	c.appliedSearch = ""
	c.pageIndex = 0
}

// SetColumnVisible shows or hides a column. Visibility is independent of the
// pagination/sort state and never resets the page.
func (c *Coordinator) SetColumnVisible(column string, visible bool) {
	c.visibility[column] = visible
}

// ColumnVisible reports whether a column is shown. Columns default to
// visible unless hidden via WithHiddenColumns or SetColumnVisible.
func (c *Coordinator) ColumnVisible(column string) bool {
	v, ok := c.visibility[column]
	if !ok {
		return true
	}
	return v
}

// Query is the derived query-parameter object. Page is 1-based, matching the
// wire format of the list endpoints.
type Query struct {
	SearchTerm string
	Page       int
	Limit      int
	Sort       string
	Filters    map[string][]string
}

// Query derives the parameter object for the current state.
func (c *Coordinator) Query() Query {
	filters := make(map[string][]string, len(c.filters))
	for name, vals := range c.filters {
		cp := make([]string, len(vals))
		copy(cp, vals)
		filters[name] = cp
	}
	return Query{
		SearchTerm: c.appliedSearch,
		Page:       c.pageIndex + 1,
		Limit:      c.pageSize,
		Sort:       c.SortParam(),
		Filters:    filters,
	}
}
