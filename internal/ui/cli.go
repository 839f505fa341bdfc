// Package ui implements the stagehand command line interface. The bare
// command opens the schedule grid; subcommands cover the management surface
// that does not need a full screen.
package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stagehandapp/stagehand/internal/api"
	"github.com/stagehandapp/stagehand/internal/cache"
	"github.com/stagehandapp/stagehand/internal/config"
	"github.com/stagehandapp/stagehand/internal/event"
	"github.com/stagehandapp/stagehand/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	client *api.Client
	store  *cache.Store
	config *config.Config
	root   *cobra.Command
	debug  bool // Enable debug logging
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{
		client: api.New(cfg.API.BaseURL, cfg.API.Token),
		config: cfg,
	}

	a.root = &cobra.Command{
		Use:   "stagehand",
		Short: "An event admin console for the terminal",
		Long: `Stagehand is a terminal admin console for event organizers.

Run it bare to open the schedule grid: drag sessions between rooms and
time slots, resize them at the edges, click empty space to add one.
Subcommands manage events, rooms, sessions, speakers and team members.`,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			eventID, err := a.activeEvent()
			if err != nil {
				return err
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			return tui.RunWithDebug(a.client, store, a.config, eventID, a.debug)
		},
	}

	// Add global flags
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (logs to stagehand-debug.log)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.loginCmd())
	a.root.AddCommand(a.whoamiCmd())
	a.root.AddCommand(a.eventsCmd())
	a.root.AddCommand(a.roomsCmd())
	a.root.AddCommand(a.sessionsCmd())
	a.root.AddCommand(a.speakersCmd())
	a.root.AddCommand(a.teamCmd())
	a.root.AddCommand(a.inviteCmd())
	a.root.AddCommand(a.importCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("stagehand %s (commit: %s)\n", Version, Commit)
		},
	}
}

// activeEvent resolves the event the command should act on.
func (a *App) activeEvent() (string, error) {
	if a.config.Event.ActiveID == "" {
		return "", fmt.Errorf("%w: run 'stagehand events use <id>' first", event.ErrNoActiveEvent)
	}
	return a.config.Event.ActiveID, nil
}

// openStore opens the snapshot store on first use.
func (a *App) openStore() (*cache.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	store, err := cache.Open(a.config.Storage.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot store: %w", err)
	}
	a.store = store
	return store, nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases resources held by the app.
func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}
