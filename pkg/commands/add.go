package commands

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"taskdeck/pkg/api"
)

// HandleAddTask processes the --add command
func HandleAddTask(client *api.Client, taskText, dateStr, priority, category string) {
	var dueDate *time.Time

	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			fmt.Printf("Error parsing date: %v\n", err)
			os.Exit(1)
		}
		dueDate = &parsed
	}

	// The flag wins over a +Category tag embedded in the task text
	if category == "" {
		category = extractCategory(taskText)
	}

	// Remove category tags from title for clean display
	title := removeCategoryTags(taskText)
	if title == "" {
		fmt.Println("Task title is empty")
		os.Exit(1)
	}

	input := api.TodoInput{
		Title:   &title,
		DueDate: dueDate,
	}
	if category != "" {
		input.Category = &category
	}
	if priority != "" {
		input.Priority = &priority
	}

	todo, err := client.CreateTodo(context.Background(), input)
	if err != nil {
		fmt.Printf("Error adding task: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Task added: %s\n", todo.Title)
}

// extractCategory finds the first +Category tag matching a known category
func extractCategory(text string) string {
	re := regexp.MustCompile(`\+(\w+)`)
	for _, match := range re.FindAllStringSubmatch(text, -1) {
		for _, cat := range api.Categories {
			if strings.EqualFold(match[1], cat) {
				return cat
			}
		}
	}
	return ""
}

// removeCategoryTags removes +tag markers from text for clean title
func removeCategoryTags(text string) string {
	re := regexp.MustCompile(`\s*\+\w+\s*`)
	return strings.TrimSpace(re.ReplaceAllString(text, " "))
}
