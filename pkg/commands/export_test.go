package commands

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskdeck/pkg/api"
)

func TestFormatTodosJSON(t *testing.T) {
	due := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	tasks := []api.Todo{
		{ID: "a", Title: "write report", Status: api.StatusPending, Priority: "High", DueDate: &due},
	}

	content, err := FormatTodos(tasks, "json")
	require.NoError(t, err)

	var decoded []api.Todo
	require.NoError(t, json.Unmarshal(content, &decoded))
	require.Len(t, decoded, 1)
	require.Equal(t, "write report", decoded[0].Title)
}

func TestFormatTodosTxtGroupsByDate(t *testing.T) {
	due := time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	tasks := []api.Todo{
		{Title: "buy milk", Status: api.StatusCompleted, Priority: "Low", DueDate: &due},
		{Title: "write report", Status: api.StatusPending, Priority: "High", DueDate: &due},
		{Title: "someday", Status: api.StatusPending, Priority: "Medium"},
	}

	content, err := FormatTodos(tasks, "txt")
	require.NoError(t, err)

	text := string(content)
	require.Contains(t, text, "05.09.2026:")
	require.Contains(t, text, "- [x] buy milk (Low)")
	require.Contains(t, text, "- [ ] write report (High)")
	require.Contains(t, text, "no due date:")
	require.Contains(t, text, "- [ ] someday (Medium)")
}

func TestFormatTodosUnknownType(t *testing.T) {
	_, err := FormatTodos(nil, "xml")
	require.Error(t, err)
}

func TestExtractCategoryMatchesKnownCategories(t *testing.T) {
	require.Equal(t, "Work", extractCategory("finish deck +work"))
	require.Equal(t, "", extractCategory("finish deck +sideproject"))
	require.Equal(t, "finish deck", removeCategoryTags("finish deck +work"))
}
