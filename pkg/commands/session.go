package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"taskdeck/pkg/api"
	"taskdeck/pkg/auth"
)

// HandleLoginCommand prompts for credentials and persists the token
func HandleLoginCommand(client *api.Client, tokens *auth.Store) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Username: ")
	username, _ := reader.ReadString('\n')
	fmt.Print("Password: ")
	password, _ := reader.ReadString('\n')

	creds := api.Credentials{
		Username: strings.TrimSpace(username),
		Password: strings.TrimSpace(password),
	}
	if creds.Username == "" || creds.Password == "" {
		fmt.Println("Username and password are required")
		os.Exit(1)
	}

	session, err := client.Login(context.Background(), creds)
	if err != nil {
		fmt.Printf("Login failed: %v\n", err)
		os.Exit(1)
	}

	if err := tokens.Save(session.Token); err != nil {
		fmt.Printf("Error saving token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Logged in as %s\n", session.User.Username)
}

// HandleLogoutCommand forgets the persisted token
func HandleLogoutCommand(tokens *auth.Store) {
	if err := tokens.Clear(); err != nil {
		fmt.Printf("Error clearing token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Logged out")
}
