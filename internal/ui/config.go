package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stagehandapp/stagehand/internal/config"
	"github.com/stagehandapp/stagehand/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  stagehand config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(cfg)

	// Ask if user wants to edit
	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	reader := bufio.NewReader(os.Stdin)

	cfg.API.BaseURL = promptValue(reader, "API base URL", cfg.API.BaseURL)
	cfg.Event.ActiveID = promptValue(reader, "Active event id (empty to clear)", cfg.Event.ActiveID)
	cfg.Grid.SnapMinutes = promptInt(reader, "Drag snap (minutes)", cfg.Grid.SnapMinutes)
	cfg.Grid.PlacementSnapMinutes = promptInt(reader, "Placement snap (minutes)", cfg.Grid.PlacementSnapMinutes)
	cfg.Grid.MinDurationMinutes = promptInt(reader, "Minimum session duration (minutes)", cfg.Grid.MinDurationMinutes)
	cfg.Grid.DefaultDurationMinutes = promptInt(reader, "Default session duration (minutes)", cfg.Grid.DefaultDurationMinutes)
	cfg.Storage.DBPath = promptValue(reader, "Snapshot database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Println(colorOK.Sprint("\nConfiguration saved."))
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println(colorHeader.Sprint("Current configuration:"))
	fmt.Printf("  API base URL:       %s\n", cfg.API.BaseURL)
	token := "(not set)"
	if cfg.API.Token != "" {
		token = "(set)"
	}
	fmt.Printf("  API token:          %s\n", token)
	fmt.Printf("  Active event:       %s\n", orDash(cfg.Event.ActiveID))
	fmt.Printf("  Drag snap:          %d min\n", cfg.Grid.SnapMinutes)
	fmt.Printf("  Placement snap:     %d min\n", cfg.Grid.PlacementSnapMinutes)
	fmt.Printf("  Min duration:       %d min\n", cfg.Grid.MinDurationMinutes)
	fmt.Printf("  Default duration:   %d min\n", cfg.Grid.DefaultDurationMinutes)
	fmt.Printf("  Time labels every:  %d min\n", cfg.Grid.TimeLabelInterval)
	fmt.Printf("  Snapshot database:  %s\n", cfg.Storage.DBPath)
	fmt.Printf("  Theme:              %s\n", cfg.UI.Theme)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func promptValue(reader *bufio.Reader, label, current string) string {
	fmt.Printf("%s [%s]: ", label, current)
	input, err := reader.ReadString('\n')
	if err != nil {
		return current
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	raw := promptValue(reader, label, strconv.Itoa(current))
	n, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Println(colorWarn.Sprintf("not a number, keeping %d", current))
		return current
	}
	return n
}

func promptTheme(reader *bufio.Reader, current string) string {
	label := fmt.Sprintf("Theme (%s)", strings.Join(theme.Available(), ", "))
	for {
		value := promptValue(reader, label, current)
		if theme.IsAvailable(value) {
			return value
		}
		fmt.Println(colorWarn.Sprintf("unknown theme %q", value))
	}
}

func promptYesNo(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	input, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	input = strings.ToLower(strings.TrimSpace(input))
	return input == "y" || input == "yes"
}
