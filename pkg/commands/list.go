package commands

import (
	"fmt"
	"os"
	"time"

	"taskdeck/pkg/api"
)

// HandleListCommand prints matching tasks to stdout
func HandleListCommand(client *api.Client, status string) {
	tasks, err := fetchAllTodos(client, status)
	if err != nil {
		fmt.Printf("Error loading tasks: %v\n", err)
		os.Exit(1)
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return
	}

	now := time.Now()
	for _, task := range tasks {
		check := " "
		if task.Completed() {
			check = "x"
		}

		due := ""
		if task.DueDate != nil {
			due = " due " + task.DueDate.Format("2006-01-02")
			if task.Overdue(now) {
				due += " (overdue)"
			}
		}

		fmt.Printf("[%s] %-40s %s/%s%s\n", check, task.Title, task.Category, task.Priority, due)
	}
}
