package commands

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"taskdeck/pkg/api"
)

// HandleImportCommand processes --import commands
func HandleImportCommand(client *api.Client, filename string) {
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	lines := strings.Split(string(content), "\n")
	var currentDate *time.Time
	var tasksAdded int

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Check if line contains a date (DD.MM.YYYY: or YYYY-MM-DD: format)
		dateRegex := regexp.MustCompile(`(?:(\d{2})\.(\d{2})\.(\d{4})|(\d{4})-(\d{2})-(\d{2})):?`)
		if dateMatch := dateRegex.FindStringSubmatch(line); dateMatch != nil {
			var day, month, year int
			if dateMatch[1] != "" {
				day, _ = strconv.Atoi(dateMatch[1])
				month, _ = strconv.Atoi(dateMatch[2])
				year, _ = strconv.Atoi(dateMatch[3])
			} else {
				year, _ = strconv.Atoi(dateMatch[4])
				month, _ = strconv.Atoi(dateMatch[5])
				day, _ = strconv.Atoi(dateMatch[6])
			}
			d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
			currentDate = &d
			continue
		}

		// Check if line is a task (starts with -)
		if strings.HasPrefix(line, "- ") || strings.HasPrefix(line, " - ") {
			taskText := strings.TrimPrefix(strings.TrimSpace(line), "- ")
			if taskText == "" {
				continue
			}

			completed := false
			if strings.HasPrefix(taskText, "[x]") {
				completed = true
				taskText = strings.TrimSpace(strings.TrimPrefix(taskText, "[x]"))
			} else if strings.HasPrefix(taskText, "[ ]") {
				taskText = strings.TrimSpace(strings.TrimPrefix(taskText, "[ ]"))
			}

			category := extractCategory(taskText)
			title := removeCategoryTags(taskText)
			if title == "" {
				continue
			}

			input := api.TodoInput{
				Title:   &title,
				DueDate: currentDate,
			}
			if category != "" {
				input.Category = &category
			}
			if completed {
				status := api.StatusCompleted
				input.Status = &status
			}

			if _, err := client.CreateTodo(ctx, input); err != nil {
				fmt.Printf("Error adding task '%s': %v\n", title, err)
				continue
			}
			tasksAdded++
		}
	}

	fmt.Printf("Successfully imported %d task(s) from %s\n", tasksAdded, filename)
}
