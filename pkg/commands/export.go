package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"taskdeck/pkg/api"
)

// HandleExportCommand processes --export commands
func HandleExportCommand(client *api.Client, filename, exportType, status string) {
	tasks, err := fetchAllTodos(client, status)
	if err != nil {
		fmt.Printf("Error loading tasks: %v\n", err)
		os.Exit(1)
	}

	// Ensure directory exists
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Printf("Error creating directory: %v\n", err)
		os.Exit(1)
	}

	content, err := FormatTodos(tasks, exportType)
	if err != nil {
		fmt.Printf("Error formatting tasks: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(filename, content, 0644); err != nil {
		fmt.Printf("Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully exported %d task(s) to %s\n", len(tasks), filename)
}

// FormatTodos renders todos as json or txt export content.
func FormatTodos(tasks []api.Todo, exportType string) ([]byte, error) {
	switch exportType {
	case "json":
		return json.MarshalIndent(tasks, "", "  ")
	case "txt":
		var lines []string
		var lastDate string
		for _, task := range tasks {
			dateStr := "no due date"
			if task.DueDate != nil {
				dateStr = task.DueDate.Format("02.01.2006")
			}
			if dateStr != lastDate {
				lines = append(lines, fmt.Sprintf("\n%s:", dateStr))
				lastDate = dateStr
			}

			check := " "
			if task.Completed() {
				check = "x"
			}
			lines = append(lines, fmt.Sprintf("- [%s] %s (%s)", check, task.Title, task.Priority))
		}
		return []byte(strings.TrimSpace(strings.Join(lines, "\n"))), nil
	default:
		return nil, fmt.Errorf("unknown export type: %s", exportType)
	}
}

// fetchAllTodos pages through the list endpoint until the server runs out.
func fetchAllTodos(client *api.Client, status string) ([]api.Todo, error) {
	ctx := context.Background()
	var all []api.Todo

	page := 1
	for {
		params := map[string]string{
			"page":  fmt.Sprintf("%d", page),
			"limit": "100",
		}
		if status != "" {
			params["status"] = status
		}

		res, err := client.ListTodos(ctx, params)
		if err != nil {
			return nil, err
		}
		all = append(all, res.Todos...)

		if len(res.Todos) == 0 || len(all) >= res.Pagination.Total {
			return all, nil
		}
		page++
	}
}
