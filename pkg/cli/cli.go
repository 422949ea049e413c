package cli

import (
	"flag"

	"taskdeck/pkg/api"
	"taskdeck/pkg/auth"
	"taskdeck/pkg/commands"
)

// Args represents parsed command line arguments
type Args struct {
	ConfigPath string
	APIURL     string
	Verbose    bool

	// Session operations
	LoginFlag  bool
	LogoutFlag bool

	// Task operations
	AddTask      string
	DateFlag     string
	PriorityFlag string
	CategoryFlag string
	ListFlag     bool
	StatusFlag   string
	PurgeFlag    bool
	YesFlag      bool

	// Import/Export operations
	ImportFile string
	ExportFile string
	TypeFlag   string
}

// ParseArgs parses command line arguments and returns Args struct
func ParseArgs() *Args {
	args := &Args{}

	// Define command line flags
	flag.StringVar(&args.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&args.APIURL, "api-url", "", "Override the API base URL")
	flag.BoolVar(&args.Verbose, "verbose", false, "Enable verbose logging")

	// Session operations
	flag.BoolVar(&args.LoginFlag, "login", false, "Log in and store the session token")
	flag.BoolVar(&args.LogoutFlag, "logout", false, "Forget the stored session token")

	// Task operations
	flag.StringVar(&args.AddTask, "add", "", "Add a new task")
	flag.StringVar(&args.DateFlag, "date", "", "Due date for task (YYYY-MM-DD format)")
	flag.StringVar(&args.PriorityFlag, "priority", "", "Priority for task (Low, Medium, High)")
	flag.StringVar(&args.CategoryFlag, "category", "", "Category for task (Work, Personal, Health, Education, Shopping, Other)")
	flag.BoolVar(&args.ListFlag, "list", false, "List tasks")
	flag.StringVar(&args.StatusFlag, "status", "", "Filter by status (pending, in-progress, completed)")
	flag.BoolVar(&args.PurgeFlag, "purge", false, "Delete matching tasks")
	flag.BoolVar(&args.YesFlag, "yes", false, "Skip confirmation")

	// Import/Export operations
	flag.StringVar(&args.ImportFile, "import", "", "Import tasks from file")
	flag.StringVar(&args.ExportFile, "export", "", "Export tasks to file")
	flag.StringVar(&args.TypeFlag, "type", "json", "Export file type (json, txt)")

	flag.Parse()
	return args
}

// HandleCommands processes CLI commands and returns true if a command was handled
func HandleCommands(client *api.Client, tokens *auth.Store, args *Args) bool {
	if args.LoginFlag {
		commands.HandleLoginCommand(client, tokens)
		return true
	}

	if args.LogoutFlag {
		commands.HandleLogoutCommand(tokens)
		return true
	}

	if args.AddTask != "" {
		commands.HandleAddTask(client, args.AddTask, args.DateFlag, args.PriorityFlag, args.CategoryFlag)
		return true
	}

	if args.ListFlag {
		commands.HandleListCommand(client, args.StatusFlag)
		return true
	}

	if args.PurgeFlag {
		commands.HandlePurgeCommand(client, args.StatusFlag, args.YesFlag)
		return true
	}

	if args.ImportFile != "" {
		commands.HandleImportCommand(client, args.ImportFile)
		return true
	}

	if args.ExportFile != "" {
		commands.HandleExportCommand(client, args.ExportFile, args.TypeFlag, args.StatusFlag)
		return true
	}

	// No CLI command was handled
	return false
}
