package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stagehandapp/stagehand/internal/event"
)

func (a *App) speakersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "speakers",
		Short: "Manage the active event's speakers",
	}
	cmd.AddCommand(a.speakersListCmd())
	cmd.AddCommand(a.speakersAddCmd())
	cmd.AddCommand(a.speakersDeleteCmd())
	return cmd
}

func (a *App) speakersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List speakers",
		RunE: func(_ *cobra.Command, _ []string) error {
			eventID, err := a.activeEvent()
			if err != nil {
				return err
			}
			speakers, err := a.client.ListSpeakers(context.Background(), eventID)
			if err != nil {
				return fmt.Errorf("listing speakers: %w", err)
			}
			if len(speakers) == 0 {
				fmt.Println("No speakers yet.")
				return nil
			}
			for _, sp := range speakers {
				star := " "
				if sp.IsTopSpeaker {
					star = colorWarn.Sprint("★")
				}
				fmt.Printf("  %s %s  %s", star, colorAccent.Sprint(sp.ID), colorHeader.Sprint(sp.FullName()))
				if sp.TagLine != "" {
					fmt.Printf("  %s", colorMuted.Sprint(truncate(sp.TagLine, 48)))
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func (a *App) speakersAddCmd() *cobra.Command {
	var (
		lastName string
		bio      string
		tagLine  string
	)

	cmd := &cobra.Command{
		Use:   "add <first-name>",
		Short: "Add a speaker",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			eventID, err := a.activeEvent()
			if err != nil {
				return err
			}
			sp := &event.Speaker{
				FirstName: args[0],
				LastName:  lastName,
				Bio:       bio,
				TagLine:   tagLine,
			}
			created, err := a.client.CreateSpeaker(context.Background(), eventID, sp)
			if err != nil {
				return fmt.Errorf("creating speaker: %w", err)
			}
			fmt.Println(colorOK.Sprintf("Speaker %s created (%s).", created.FullName(), created.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&bio, "bio", "", "Biography")
	cmd.Flags().StringVar(&tagLine, "tagline", "", "One-line tagline")
	return cmd
}

func (a *App) speakersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <speaker-id>",
		Short: "Delete a speaker",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			eventID, err := a.activeEvent()
			if err != nil {
				return err
			}
			if err := a.client.DeleteSpeaker(context.Background(), eventID, args[0]); err != nil {
				return fmt.Errorf("deleting speaker: %w", err)
			}
			fmt.Println(colorOK.Sprint("Speaker deleted."))
			return nil
		},
	}
}

func (a *App) teamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage the active event's team",
	}
	cmd.AddCommand(a.teamListCmd())
	cmd.AddCommand(a.teamAddCmd())
	cmd.AddCommand(a.teamRemoveCmd())
	return cmd
}

func (a *App) teamListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List team members",
		RunE: func(_ *cobra.Command, _ []string) error {
			eventID, err := a.activeEvent()
			if err != nil {
				return err
			}
			members, err := a.client.ListTeamMembers(context.Background(), eventID)
			if err != nil {
				return fmt.Errorf("listing team: %w", err)
			}
			if len(members) == 0 {
				fmt.Println("No team members yet.")
				return nil
			}
			for _, m := range members {
				name := joinNonEmpty(" ", m.Name, m.LastName)
				fmt.Printf("  %s  %s %s\n",
					colorAccent.Sprint(m.UserID),
					colorHeader.Sprint(name),
					colorMuted.Sprintf("<%s>", m.Email),
				)
			}
			return nil
		},
	}
}

func (a *App) teamAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <email>",
		Short: "Add a team member by email",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			eventID, err := a.activeEvent()
			if err != nil {
				return err
			}
			m, err := a.client.AddTeamMember(context.Background(), eventID, args[0])
			if err != nil {
				return fmt.Errorf("adding team member: %w", err)
			}
			fmt.Println(colorOK.Sprintf("Added %s.", joinNonEmpty(" ", m.Name, m.LastName)))
			return nil
		},
	}
}

func (a *App) teamRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <user-id>",
		Short: "Remove a team member",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			eventID, err := a.activeEvent()
			if err != nil {
				return err
			}
			if err := a.client.RemoveTeamMember(context.Background(), eventID, args[0]); err != nil {
				return fmt.Errorf("removing team member: %w", err)
			}
			fmt.Println(colorOK.Sprint("Team member removed."))
			return nil
		},
	}
}

func (a *App) inviteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invite",
		Short: "Send and list attendee invitations",
	}
	cmd.AddCommand(a.inviteSendCmd())
	cmd.AddCommand(a.inviteListCmd())
	return cmd
}

func (a *App) inviteSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <email> [email...]",
		Short: "Send invitations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			eventID, err := a.activeEvent()
			if err != nil {
				return err
			}
			res, err := a.client.SendInvitations(context.Background(), eventID, args)
			if err != nil {
				return fmt.Errorf("sending invitations: %w", err)
			}
			fmt.Println(colorOK.Sprintf("Sent %d invitation(s).", res.Sent))
			if len(res.Failed) > 0 {
				fmt.Println(colorWarn.Sprintf("Failed: %v", res.Failed))
			}
			return nil
		},
	}
}

func (a *App) inviteListCmd() *cobra.Command {
	var (
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invitations",
		RunE: func(_ *cobra.Command, _ []string) error {
			eventID, err := a.activeEvent()
			if err != nil {
				return err
			}
			result, err := a.client.ListInvitations(context.Background(), eventID, page, pageSize)
			if err != nil {
				return fmt.Errorf("listing invitations: %w", err)
			}
			if len(result.Items) == 0 {
				fmt.Println("No invitations.")
				return nil
			}
			for _, inv := range result.Items {
				status := colorMuted.Sprint("pending")
				if inv.SentAt != nil {
					status = colorOK.Sprintf("sent %s", inv.SentAt.Local().Format("2006-01-02"))
				}
				fmt.Printf("  %s  %s\n", inv.Email, status)
			}
			if result.Pagination.TotalPages > 1 {
				fmt.Println(colorMuted.Sprintf("page %d of %d", result.Pagination.Page, result.Pagination.TotalPages))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 50, "Results per page")
	return cmd
}
