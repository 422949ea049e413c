package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"taskdeck/pkg/keymaps"
)

// Config holds the application configuration
type Config struct {
	APIBaseURL     string            `mapstructure:"api_base_url"`
	TokenFile      string            `mapstructure:"token_file"`
	RequestTimeout int               `mapstructure:"request_timeout_seconds"`
	KeyMap         map[string]string `mapstructure:"keymap"`
	StylesFile     string            `mapstructure:"styles_file"`
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.RequestTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.RequestTimeout) * time.Second
}

// Styles holds the application colors and styling information
type Styles struct {
	// UI element colors
	BorderColor string `json:"border_color"`
	AccentColor string `json:"accent_color"`

	// Text colors
	NormalTextColor   string `json:"normal_text_color"`
	SelectedTextColor string `json:"selected_text_color"`
	SelectedBgColor   string `json:"selected_bg_color"`
	ErrorColor        string `json:"error_color"`
	SuccessColor      string `json:"success_color"`

	// Status colors for table tags and kanban columns
	PendingColor    string `json:"pending_color"`
	InProgressColor string `json:"in_progress_color"`
	CompletedColor  string `json:"completed_color"`
	OverdueColor    string `json:"overdue_color"`

	// Priority colors
	LowPriorityColor    string `json:"low_priority_color"`
	MediumPriorityColor string `json:"medium_priority_color"`
	HighPriorityColor   string `json:"high_priority_color"`
}

// DefaultStyles returns the built-in color scheme.
func DefaultStyles() Styles {
	return Styles{
		BorderColor:         "240",
		AccentColor:         "205",
		NormalTextColor:     "86",
		SelectedTextColor:   "229",
		SelectedBgColor:     "57",
		ErrorColor:          "9",
		SuccessColor:        "10",
		PendingColor:        "246",
		InProgressColor:     "214",
		CompletedColor:      "10",
		OverdueColor:        "9",
		LowPriorityColor:    "2",
		MediumPriorityColor: "3",
		HighPriorityColor:   "1",
	}
}

// Load reads the application configuration. Precedence, lowest to
// highest: built-in defaults, config file (created on first run), the
// TASKDECK_API_URL environment variable, the --api-url flag.
func Load(configPath, apiURLFlag string) (Config, Styles, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, Styles{}, err
	}

	configDir := filepath.Join(homeDir, ".config", "taskdeck")
	defaultConfigPath := filepath.Join(configDir, "config.json")

	config := Config{
		APIBaseURL:     "https://m-s-t-b.onrender.com/api",
		TokenFile:      filepath.Join(configDir, "token"),
		RequestTimeout: 10,
		KeyMap:         keymaps.GetDefaultKeyMappings(),
		StylesFile:     filepath.Join(configDir, "styles.json"),
	}

	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return config, Styles{}, fmt.Errorf("read config: %w", err)
			}
		}
		// Config file not found, create it with the defaults.
		if err := writeDefaultConfig(configPath, config); err != nil {
			return config, Styles{}, err
		}
	} else {
		if err := v.Unmarshal(&config); err != nil {
			return config, Styles{}, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment and flag override the configured base URL.
	if envURL := os.Getenv("TASKDECK_API_URL"); envURL != "" {
		config.APIBaseURL = envURL
	}
	if apiURLFlag != "" {
		config.APIBaseURL = apiURLFlag
	}

	if config.StylesFile == "" {
		config.StylesFile = filepath.Join(configDir, "styles.json")
	}

	styles, err := loadStyles(config.StylesFile)
	if err != nil {
		return config, styles, fmt.Errorf("error loading styles: %w", err)
	}

	return config, styles, nil
}

// writeDefaultConfig creates the config file with default values.
func writeDefaultConfig(configPath string, config Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	defaults := map[string]any{
		"api_base_url":            config.APIBaseURL,
		"token_file":              config.TokenFile,
		"request_timeout_seconds": config.RequestTimeout,
		"keymap":                  config.KeyMap,
		"styles_file":             config.StylesFile,
	}

	data, err := json.MarshalIndent(defaults, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// loadStyles loads the application styles from the specified path
func loadStyles(stylesPath string) (Styles, error) {
	defaultStyles := DefaultStyles()

	stylesData, err := os.ReadFile(stylesPath)
	if err != nil {
		// If the file doesn't exist, create it with default values
		if os.IsNotExist(err) {
			if err := os.MkdirAll(filepath.Dir(stylesPath), 0755); err != nil {
				return defaultStyles, err
			}

			stylesData, err = json.MarshalIndent(defaultStyles, "", "  ")
			if err != nil {
				return defaultStyles, err
			}

			if err := os.WriteFile(stylesPath, stylesData, 0644); err != nil {
				return defaultStyles, err
			}

			return defaultStyles, nil
		}
		return defaultStyles, err
	}

	var loadedStyles Styles
	if err := json.Unmarshal(stylesData, &loadedStyles); err != nil {
		return defaultStyles, err
	}

	return loadedStyles, nil
}
