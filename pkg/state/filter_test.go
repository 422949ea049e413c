package state

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"taskdeck/pkg/api"
)

func TestParamsOmitEmptyValues(t *testing.T) {
	f := Filters{Page: 2, PageSize: 10, Status: "pending"}

	got := f.Params()
	want := map[string]string{
		"page":   "2",
		"limit":  "10",
		"status": "pending",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("params mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterChangeResetsPage(t *testing.T) {
	c := NewController(10)
	c.SetPage(5)

	c.SetStatus("completed")

	require.Equal(t, 1, c.Filters().Page)
	require.Equal(t, "completed", c.Filters().Status)
}

func TestEveryFilterSetterResetsPage(t *testing.T) {
	setters := map[string]func(*Controller){
		"search":   func(c *Controller) { c.SetSearch("x") },
		"status":   func(c *Controller) { c.SetStatus("pending") },
		"category": func(c *Controller) { c.SetCategory("Work") },
		"priority": func(c *Controller) { c.SetPriority("High") },
		"sort":     func(c *Controller) { c.SetSort(SortByDueDate, SortDesc) },
		"role":     func(c *Controller) { c.SetRole("admin") },
		"isActive": func(c *Controller) { c.SetIsActive("true") },
		"userID":   func(c *Controller) { c.SetUserID("u1") },
	}

	for name, set := range setters {
		t.Run(name, func(t *testing.T) {
			c := NewController(10)
			c.SetPage(3)
			set(c)
			require.Equal(t, 1, c.Filters().Page)
		})
	}
}

func TestClearingFilterAlsoResetsPage(t *testing.T) {
	c := NewController(10)
	c.SetStatus("completed")
	c.SetPage(4)

	c.SetStatus("")

	require.Equal(t, 1, c.Filters().Page)
	require.Empty(t, c.Filters().Status)
}

func TestPagingDoesNotTouchFilters(t *testing.T) {
	c := NewController(10)
	c.SetCategory("Work")
	gen, _ := c.Begin()
	require.True(t, c.Apply(gen, api.Pagination{Total: 35, Current: 1, PageSize: 10}))

	c.SetPage(2)
	c.NextPage()

	require.Equal(t, 3, c.Filters().Page)
	require.Equal(t, "Work", c.Filters().Category)
}

func TestNextPageStopsAtServerLastPage(t *testing.T) {
	c := NewController(10)
	gen, _ := c.Begin()
	require.True(t, c.Apply(gen, api.Pagination{Total: 25, Current: 1, PageSize: 10}))

	c.SetPage(3)
	c.NextPage()
	require.Equal(t, 3, c.Filters().Page)
}

func TestNextPageWithoutMetadataIsNoop(t *testing.T) {
	c := NewController(10)
	c.NextPage()
	require.Equal(t, 1, c.Filters().Page)
}

func TestPrevPageStopsAtOne(t *testing.T) {
	c := NewController(10)
	c.PrevPage()
	require.Equal(t, 1, c.Filters().Page)
}

func TestStaleGenerationIsRejected(t *testing.T) {
	c := NewController(10)

	stale, _ := c.Begin()
	current, _ := c.Begin()

	require.False(t, c.Accept(stale))
	require.True(t, c.Accept(current))

	// A stale response must not install pagination either.
	require.False(t, c.Apply(stale, api.Pagination{Total: 99, Current: 9, PageSize: 10}))
	require.Zero(t, c.Pagination().Total)

	require.True(t, c.Apply(current, api.Pagination{Total: 12, Current: 1, PageSize: 10}))
	require.Equal(t, 12, c.Pagination().Total)
}

func TestBeginRendersCurrentFilters(t *testing.T) {
	c := NewController(10)
	c.SetSearch("report")
	c.SetSort(SortByDueDate, SortAsc)

	_, params := c.Begin()

	require.Equal(t, "report", params["search"])
	require.Equal(t, SortByDueDate, params["sortBy"])
	require.Equal(t, SortAsc, params["sortOrder"])
	require.Equal(t, "1", params["page"])
	require.NotContains(t, params, "status")
}
