package ui

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/stagehandapp/stagehand/internal/event"
)

func (a *App) sessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List and delete sessions",
	}
	cmd.AddCommand(a.sessionsListCmd())
	cmd.AddCommand(a.sessionsDeleteCmd())
	return cmd
}

func (a *App) sessionsListCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the active event's sessions",
		Long: `List the active event's sessions ordered by start time.

A successful fetch refreshes the schedule snapshot; --offline renders
the last snapshot without touching the network.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			eventID, err := a.activeEvent()
			if err != nil {
				return err
			}
			sched, err := a.loadSchedule(context.Background(), eventID, offline)
			if err != nil {
				return err
			}
			if len(sched.Sessions) == 0 {
				fmt.Println("No sessions scheduled.")
				return nil
			}

			sessions := append([]*event.Session(nil), sched.Sessions...)
			sort.SliceStable(sessions, func(i, j int) bool {
				return sessions[i].StartsAt.Before(sessions[j].StartsAt)
			})

			names := roomNameByID(sched.Rooms)
			width := sessionDescWidth()
			for _, s := range sessions {
				printSessionRow(s, names[s.RoomID], width)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "Render the local snapshot instead of fetching")
	return cmd
}

// loadSchedule fetches the schedule and refreshes the snapshot, or decodes
// the stored snapshot when offline is requested.
func (a *App) loadSchedule(ctx context.Context, eventID string, offline bool) (*event.Schedule, error) {
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}

	if offline {
		payload, fetchedAt, err := store.GetSchedule(ctx, eventID)
		if err != nil {
			return nil, fmt.Errorf("reading snapshot: %w", err)
		}
		sched, err := event.ParseSchedule(payload)
		if err != nil {
			return nil, fmt.Errorf("decoding snapshot: %w", err)
		}
		fmt.Println(colorWarn.Sprintf("offline: snapshot from %s", fetchedAt.Local().Format("2006-01-02 15:04")))
		return sched, nil
	}

	sched, raw, err := a.client.FetchSchedule(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("fetching schedule: %w", err)
	}
	_ = store.PutSchedule(ctx, eventID, raw)
	return sched, nil
}

func (a *App) sessionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <session-id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			eventID, err := a.activeEvent()
			if err != nil {
				return err
			}
			if err := a.client.DeleteSession(context.Background(), eventID, args[0]); err != nil {
				return fmt.Errorf("deleting session: %w", err)
			}
			fmt.Println(colorOK.Sprint("Session deleted."))
			return nil
		},
	}
}
