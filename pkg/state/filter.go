package state

import (
	"strconv"

	"taskdeck/pkg/api"
)

// DefaultPageSize matches the web client's table page size.
const DefaultPageSize = 10

// Sort keys accepted by the server.
const (
	SortByDueDate   = "dueDate"
	SortByCreatedAt = "createdAt"
	SortByPriority  = "priority"
	SortByTitle     = "title"
)

// Sort directions accepted by the server.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Filters holds the current query parameters for a collection view. The
// zero value of every filter field means "no filter" and is omitted from
// the outgoing request. Role, IsActive and UserID only apply to the
// admin views; the todo endpoints ignore them.
type Filters struct {
	Search   string
	Status   string
	Category string
	Priority string

	SortBy    string
	SortOrder string

	Page     int
	PageSize int

	Role     string
	IsActive string
	UserID   string
}

// Params renders the filters as query parameters. Empty values are left
// out entirely; the server treats the presence of a parameter as a
// filter, not its emptiness.
func (f Filters) Params() map[string]string {
	params := map[string]string{
		"page":      strconv.Itoa(f.Page),
		"limit":     strconv.Itoa(f.PageSize),
		"search":    f.Search,
		"status":    f.Status,
		"category":  f.Category,
		"priority":  f.Priority,
		"sortBy":    f.SortBy,
		"sortOrder": f.SortOrder,
		"role":      f.Role,
		"isActive":  f.IsActive,
		"userId":    f.UserID,
	}
	for k, v := range params {
		if v == "" {
			delete(params, k)
		}
	}
	return params
}

// Controller owns the filters for one collection view and guards against
// out-of-order fetch completion with a generation counter. It is created
// when a screen mounts and discarded on navigation.
type Controller struct {
	filters    Filters
	generation uint64
	pagination api.Pagination
}

// NewController returns a controller starting at page 1 with the given
// page size (DefaultPageSize if zero or negative).
func NewController(pageSize int) *Controller {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Controller{
		filters: Filters{Page: 1, PageSize: pageSize},
	}
}

// Filters returns a copy of the current filters.
func (c *Controller) Filters() Filters {
	return c.filters
}

// Pagination returns the paging metadata from the most recent accepted
// response. It is server-derived, never computed locally.
func (c *Controller) Pagination() api.Pagination {
	return c.pagination
}

// setFilter mutates a non-page field. Any filter change resets the page
// to 1 so a narrowed result set never shows an out-of-range page.
func (c *Controller) setFilter(apply func(*Filters)) {
	apply(&c.filters)
	c.filters.Page = 1
}

// SetSearch sets the free-text search filter.
func (c *Controller) SetSearch(search string) {
	c.setFilter(func(f *Filters) { f.Search = search })
}

// SetStatus sets the status filter ("" clears it).
func (c *Controller) SetStatus(status string) {
	c.setFilter(func(f *Filters) { f.Status = status })
}

// SetCategory sets the category filter ("" clears it).
func (c *Controller) SetCategory(category string) {
	c.setFilter(func(f *Filters) { f.Category = category })
}

// SetPriority sets the priority filter ("" clears it).
func (c *Controller) SetPriority(priority string) {
	c.setFilter(func(f *Filters) { f.Priority = priority })
}

// SetSort sets the sort key and direction.
func (c *Controller) SetSort(sortBy, sortOrder string) {
	c.setFilter(func(f *Filters) {
		f.SortBy = sortBy
		f.SortOrder = sortOrder
	})
}

// SetRole sets the admin users role filter ("" clears it).
func (c *Controller) SetRole(role string) {
	c.setFilter(func(f *Filters) { f.Role = role })
}

// SetIsActive sets the admin users active filter ("true"/"false"/"").
func (c *Controller) SetIsActive(isActive string) {
	c.setFilter(func(f *Filters) { f.IsActive = isActive })
}

// SetUserID sets the admin todos owner filter ("" clears it).
func (c *Controller) SetUserID(userID string) {
	c.setFilter(func(f *Filters) { f.UserID = userID })
}

// SetPage moves to the given page without touching the filters.
func (c *Controller) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	c.filters.Page = page
}

// NextPage advances one page if the server metadata says one exists.
func (c *Controller) NextPage() {
	if c.pagination.PageSize <= 0 {
		return
	}
	last := (c.pagination.Total + c.pagination.PageSize - 1) / c.pagination.PageSize
	if c.filters.Page < last {
		c.filters.Page++
	}
}

// PrevPage moves back one page, stopping at 1.
func (c *Controller) PrevPage() {
	if c.filters.Page > 1 {
		c.filters.Page--
	}
}

// Begin starts a fetch for the current parameter set. It bumps the
// generation, superseding any fetch still in flight, and returns the
// generation together with the rendered query params. The caller must
// pass the generation back to Accept before applying the response.
func (c *Controller) Begin() (uint64, map[string]string) {
	c.generation++
	return c.generation, c.filters.Params()
}

// Accept reports whether a response for the given generation is still
// current. Responses for superseded parameter sets must be discarded so
// a slow fetch never overwrites newer state.
func (c *Controller) Accept(generation uint64) bool {
	return generation == c.generation
}

// Apply records server pagination metadata for a response, rejecting
// stale generations. It returns whether the response may be displayed.
func (c *Controller) Apply(generation uint64, p api.Pagination) bool {
	if !c.Accept(generation) {
		return false
	}
	c.pagination = p
	return true
}
