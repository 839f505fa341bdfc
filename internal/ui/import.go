package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import schedule data from external sources",
	}
	cmd.AddCommand(a.importSessionizeCmd())
	return cmd
}

func (a *App) importSessionizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessionize <sessionize-id>",
		Short: "Import sessions and speakers from Sessionize",
		Long: `Import sessions and speakers from a Sessionize event.

The id is the API id from the Sessionize embed settings. The backend
pulls the whole program: speakers, sessions, rooms and time slots.`,
		Example: `  stagehand import sessionize abcd1234`,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			eventID, err := a.activeEvent()
			if err != nil {
				return err
			}
			if err := a.client.ImportSessionize(context.Background(), eventID, args[0]); err != nil {
				return fmt.Errorf("importing from sessionize: %w", err)
			}
			fmt.Println(colorOK.Sprint("Import finished. Run 'stagehand sessions list' to inspect."))
			return nil
		},
	}
}
