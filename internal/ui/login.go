package ui

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func (a *App) loginCmd() *cobra.Command {
	var (
		email    string
		password bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the stagehand backend",
		Long: `Authenticate and store the API token in the config file.

The default flow is passwordless: a one-time code is mailed to the
address and prompted for. Use --password for the password flow.`,
		Example: `  stagehand login --email ana@example.com
  stagehand login --email ana@example.com --password`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if email == "" {
				return fmt.Errorf("--email is required")
			}
			ctx := context.Background()

			var token string
			var err error
			if password {
				token, err = a.passwordLogin(ctx, email)
			} else {
				token, err = a.codeLogin(ctx, email)
			}
			if err != nil {
				return err
			}

			a.config.API.Token = token
			a.client.SetToken(token)
			if err := a.config.Save(); err != nil {
				return fmt.Errorf("saving token: %w", err)
			}
			fmt.Println(colorOK.Sprint("Logged in."))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email address")
	cmd.Flags().BoolVar(&password, "password", false, "Use the password flow instead of a mailed code")

	return cmd
}

func (a *App) codeLogin(ctx context.Context, email string) (string, error) {
	if err := a.client.RequestLoginCode(ctx, email); err != nil {
		return "", fmt.Errorf("requesting login code: %w", err)
	}
	fmt.Printf("A login code was sent to %s.\n", email)

	fmt.Print("Code: ")
	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading code: %w", err)
	}

	resp, err := a.client.VerifyLoginCode(ctx, email, strings.TrimSpace(code))
	if err != nil {
		return "", fmt.Errorf("verifying code: %w", err)
	}
	return resp.Token, nil
}

func (a *App) passwordLogin(ctx context.Context, email string) (string, error) {
	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}

	resp, err := a.client.Login(ctx, email, string(raw))
	if err != nil {
		return "", fmt.Errorf("logging in: %w", err)
	}
	return resp.Token, nil
}

func (a *App) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated account",
		RunE: func(_ *cobra.Command, _ []string) error {
			u, err := a.client.CurrentUser(context.Background())
			if err != nil {
				return fmt.Errorf("fetching account: %w", err)
			}
			name := joinNonEmpty(" ", u.Name, u.LastName)
			fmt.Printf("%s %s\n", colorHeader.Sprint(name), colorMuted.Sprintf("<%s>", u.Email))
			if u.Role != "" {
				fmt.Printf("  role: %s\n", u.Role)
			}
			return nil
		},
	}
}
