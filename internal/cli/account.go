// internal/cli/account.go
//
// Leaderboard account commands.
//   - signup / login → store the returned token under the data directory.
//   - logout         → remove it.
//   - leaderboard    → winners of a day (default: today).

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/robalobadob/kelime/internal/api"
)

var (
	usernameFlag string
	passwordFlag string
	dayFlag      int
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the leaderboard and store the token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return authenticate(cmd, (*api.Client).Login)
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a leaderboard account and store the token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return authenticate(cmd, (*api.Client).Signup)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.Remove(cfg.TokenPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Çıkış yapıldı.")
		return nil
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the winners of a day (default: today)",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c := apiClient()
		day := dayFlag
		if day <= 0 {
			p, err := c.Today(ctx)
			if err != nil {
				return fmt.Errorf("today's puzzle: %w", err)
			}
			day = p.Count
		}
		lb, err := c.Leaderboard(ctx, day)
		if err != nil {
			return fmt.Errorf("leaderboard: %w", err)
		}
		out := cmd.OutOrStdout()
		if len(lb.Top) == 0 {
			fmt.Fprintf(out, "%d. gün için henüz kazanan yok.\n", lb.Day)
			return nil
		}
		rows := pterm.TableData{{"#", "Kullanıcı", "Tahmin"}}
		for i, r := range lb.Top {
			rows = append(rows, []string{strconv.Itoa(i + 1), r.Username, strconv.Itoa(r.Guesses)})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d. gün\n%s\n", lb.Day, table)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, signupCmd} {
		c.Flags().StringVarP(&usernameFlag, "username", "u", "", "Username (prompted when empty)")
		c.Flags().StringVar(&passwordFlag, "password", "", "Password (prompted when empty)")
	}
	leaderboardCmd.Flags().IntVar(&dayFlag, "day", 0, "Puzzle day number")
	RootCmd.AddCommand(loginCmd, signupCmd, logoutCmd, leaderboardCmd)
}

type authFunc func(c *api.Client, ctx context.Context, username, password string) (api.Session, error)

// authenticate prompts for missing credentials, calls fn and stores the
// returned token.
func authenticate(cmd *cobra.Command, fn authFunc) error {
	if offlineFlag {
		return errors.New("accounts need the backend; drop --offline")
	}
	username, password := usernameFlag, passwordFlag
	var err error
	if username == "" {
		if username, err = pterm.DefaultInteractiveTextInput.WithDefaultText("Kullanıcı adı").Show(); err != nil {
			return err
		}
	}
	if password == "" {
		if password, err = pterm.DefaultInteractiveTextInput.WithDefaultText("Şifre").WithMask("*").Show(); err != nil {
			return err
		}
	}

	sess, err := fn(apiClient(), cmd.Context(), username, password)
	if err != nil {
		var se *api.StatusError
		if errors.As(err, &se) {
			return fmt.Errorf("%s failed (%d): %s", cmd.Name(), se.Code, se.Body)
		}
		return err
	}
	if err := saveToken(sess.Token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Hoş geldiniz, %s!\n", sess.Username)
	return nil
}
