package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"taskdeck/pkg/api"
)

// HandlePurgeCommand deletes matching tasks through the API, one by one.
// There is no bulk-delete endpoint.
func HandlePurgeCommand(client *api.Client, status string, skipConfirm bool) {
	tasks, err := fetchAllTodos(client, status)
	if err != nil {
		fmt.Printf("Error loading tasks: %v\n", err)
		os.Exit(1)
	}

	if len(tasks) == 0 {
		fmt.Println("No matching tasks.")
		return
	}

	// Show confirmation unless --yes flag is used
	if !skipConfirm {
		fmt.Printf("Are you sure you want to delete %d task(s)? (y/N): ", len(tasks))
		var response string
		fmt.Scanln(&response)
		if strings.ToLower(response) != "y" && strings.ToLower(response) != "yes" {
			fmt.Println("Operation cancelled.")
			return
		}
	}

	ctx := context.Background()
	var deleted int
	for _, task := range tasks {
		if err := client.DeleteTodo(ctx, task.ID); err != nil {
			fmt.Printf("Error deleting task '%s': %v\n", task.Title, err)
			continue
		}
		deleted++
	}

	fmt.Printf("Successfully deleted %d task(s)\n", deleted)
}
