package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stagehandapp/stagehand/internal/event"
)

func (a *App) eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List and select events",
	}
	cmd.AddCommand(a.eventsListCmd())
	cmd.AddCommand(a.eventsUseCmd())
	return cmd
}

func (a *App) eventsListCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your events",
		Long: `List the events your account manages.

A successful fetch refreshes the local snapshot; --offline reads the
snapshot without touching the network.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx := context.Background()
			events, err := a.listEvents(ctx, offline)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Println("No events found.")
				return nil
			}

			for _, ev := range events {
				marker := " "
				if ev.ID == a.config.Event.ActiveID {
					marker = colorOK.Sprint("*")
				}
				fmt.Printf("  %s %s  %s", marker, colorAccent.Sprint(ev.ID), colorHeader.Sprint(ev.Name))
				if ev.Date != "" {
					fmt.Printf("  %s", colorMuted.Sprint(ev.Date))
				}
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Read the local snapshot instead of the backend")
	return cmd
}

// listEvents fetches the event list and refreshes the snapshot, or serves
// the snapshot directly when offline is requested.
func (a *App) listEvents(ctx context.Context, offline bool) ([]event.Event, error) {
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}

	if offline {
		cached, err := store.ListEvents(ctx)
		if err != nil {
			return nil, fmt.Errorf("reading snapshot: %w", err)
		}
		return cached, nil
	}

	events, err := a.client.ListMyEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	if err := store.PutEvents(ctx, events); err != nil {
		return nil, fmt.Errorf("refreshing snapshot: %w", err)
	}
	return events, nil
}

func (a *App) eventsUseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "use <event-id>",
		Short: "Select the active event",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			a.config.Event.ActiveID = args[0]
			if err := a.config.Save(); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			fmt.Printf("Active event: %s\n", colorAccent.Sprint(args[0]))
			return nil
		},
	}
}
