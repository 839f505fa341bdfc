package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stagehandapp/stagehand/internal/api"
	"github.com/stagehandapp/stagehand/internal/event"
)

func (a *App) roomsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "Manage the active event's rooms",
	}
	cmd.AddCommand(a.roomsListCmd())
	cmd.AddCommand(a.roomsAddCmd())
	cmd.AddCommand(a.roomsUpdateCmd())
	cmd.AddCommand(a.roomsBookableCmd())
	cmd.AddCommand(a.roomsDeleteCmd())
	return cmd
}

func (a *App) roomsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List rooms",
		RunE: func(_ *cobra.Command, _ []string) error {
			eventID, err := a.activeEvent()
			if err != nil {
				return err
			}
			sched, _, err := a.client.FetchSchedule(context.Background(), eventID)
			if err != nil {
				return fmt.Errorf("fetching schedule: %w", err)
			}
			if len(sched.Rooms) == 0 {
				fmt.Println("No rooms yet.")
				return nil
			}
			for _, r := range sched.Rooms {
				printRoomRow(r)
			}
			return nil
		},
	}
}

func (a *App) roomsAddCmd() *cobra.Command {
	var (
		capacity    int
		description string
		directions  string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a room",
		Args:  cobra.ExactArgs(1),
		Example: `  stagehand rooms add "Main Hall" --capacity 300
  stagehand rooms add "Workshop B" --capacity 40 --directions "2nd floor, left"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := a.activeEvent()
			if err != nil {
				return err
			}
			room := &event.Room{
				Name:          args[0],
				Description:   description,
				HowToGetThere: directions,
			}
			if cmd.Flags().Changed("capacity") {
				room.Capacity = &capacity
			}
			if err := a.client.CreateRoom(context.Background(), eventID, room); err != nil {
				return fmt.Errorf("creating room: %w", err)
			}
			fmt.Println(colorOK.Sprintf("Room %q created.", args[0]))
			return nil
		},
	}

	cmd.Flags().IntVar(&capacity, "capacity", 0, "Seating capacity")
	cmd.Flags().StringVar(&description, "description", "", "Room description")
	cmd.Flags().StringVar(&directions, "directions", "", "How to get there")
	return cmd
}

func (a *App) roomsUpdateCmd() *cobra.Command {
	var (
		name        string
		capacity    int
		description string
		directions  string
	)

	cmd := &cobra.Command{
		Use:   "update <room-id>",
		Short: "Update a room",
		Long:  "Update a room. Only the given flags are sent; everything else stays as is.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var upd api.RoomUpdate
			if cmd.Flags().Changed("name") {
				upd.Name = name
			}
			if cmd.Flags().Changed("capacity") {
				upd.Capacity = &capacity
			}
			if cmd.Flags().Changed("description") {
				upd.Description = description
			}
			if cmd.Flags().Changed("directions") {
				upd.HowToGetThere = directions
			}
			if err := a.client.UpdateRoom(context.Background(), args[0], upd); err != nil {
				return fmt.Errorf("updating room: %w", err)
			}
			fmt.Println(colorOK.Sprint("Room updated."))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Room name")
	cmd.Flags().IntVar(&capacity, "capacity", 0, "Seating capacity")
	cmd.Flags().StringVar(&description, "description", "", "Room description")
	cmd.Flags().StringVar(&directions, "directions", "", "How to get there")
	return cmd
}

func (a *App) roomsBookableCmd() *cobra.Command {
	var off bool

	cmd := &cobra.Command{
		Use:   "bookable <room-id>",
		Short: "Mark a room bookable or not",
		Long: `Mark a room bookable or, with --off, not bookable.

Not-bookable rooms stay visible on the grid and keep their sessions,
but are excluded from attendee booking flows.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.client.SetRoomBookable(context.Background(), args[0], !off); err != nil {
				return fmt.Errorf("updating room: %w", err)
			}
			if off {
				fmt.Println(colorWarn.Sprint("Room is no longer bookable."))
			} else {
				fmt.Println(colorOK.Sprint("Room is bookable."))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&off, "off", false, "Make the room not bookable")
	return cmd
}

func (a *App) roomsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <room-id>",
		Short: "Delete a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.client.DeleteRoom(context.Background(), args[0]); err != nil {
				return fmt.Errorf("deleting room: %w", err)
			}
			fmt.Println(colorOK.Sprint("Room deleted."))
			return nil
		},
	}
}
