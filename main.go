package main

import (
	"fmt"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/pkg/api"
	"taskdeck/pkg/auth"
	"taskdeck/pkg/cli"
	"taskdeck/pkg/config"
	"taskdeck/pkg/ui"
	"taskdeck/pkg/utils"
)

func main() {
	// Parse command line flags
	args := cli.ParseArgs()

	// Initialize logging
	utils.InitLogger(args.Verbose)
	defer utils.CloseLogger()

	// Load configuration
	cfg, styles, err := config.Load(args.ConfigPath, args.APIURL)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Open the persisted token store
	tokens, err := auth.NewStore(cfg.TokenFile)
	if err != nil {
		fmt.Printf("Error opening token store: %v\n", err)
		os.Exit(1)
	}

	// The program pointer is set before Run, so the expiry callback can
	// deliver the event into the running UI.
	var program *tea.Program

	client := api.New(api.Config{
		BaseURL:    cfg.APIBaseURL,
		HTTPClient: &http.Client{Timeout: cfg.Timeout()},
		Tokens:     tokens,
		OnAuthExpired: func() {
			if program != nil {
				program.Send(ui.AuthExpiredMsg{})
			}
		},
	})

	// Handle one-shot CLI commands
	if cli.HandleCommands(client, tokens, args) {
		return
	}

	// Create and run the Bubble Tea program
	program = tea.NewProgram(ui.NewModel(client, tokens, cfg, styles), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
