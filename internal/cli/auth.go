package cli

import (
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/ssh/terminal"

	"erepo/internal/session"
	"erepo/pkg/domain"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, nim, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email or NIM/NIDN",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" && nim == "" {
				return fmt.Errorf("provide --email or --nim")
			}
			if password == "" {
				var err error
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}
			user, err := app.session.Login(cmd.Context(), domain.Credentials{
				Email:    email,
				NIMNIDN:  nim,
				Password: password,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", user.Name, user.Role)
			if user.UserType == domain.TypeLecturer && !user.IsApproved {
				fmt.Fprintln(cmd.OutOrStdout(), "note: lecturer account pending approval; some actions are gated")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&nim, "nim", "", "NIM/NIDN identifier")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.session.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			user := app.session.CurrentUser()
			if user == nil {
				fmt.Fprintln(out, "not signed in")
				return nil
			}
			fmt.Fprintf(out, "name:     %s\n", user.Name)
			fmt.Fprintf(out, "email:    %s\n", user.Email)
			fmt.Fprintf(out, "role:     %s\n", user.Role)
			fmt.Fprintf(out, "type:     %s\n", user.UserType)
			if user.UserType == domain.TypeLecturer {
				fmt.Fprintf(out, "approved: %t\n", user.IsApproved)
			}
			if exp, err := session.TokenExpiry(app.session.Token()); err == nil {
				fmt.Fprintf(out, "token expires: %s\n", formatTime(exp))
			}
			return nil
		},
	}
}

func newRegisterCmd(app *App) *cobra.Command {
	var reg domain.Registration
	var userType, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch domain.UserType(userType) {
			case domain.TypeStudent, domain.TypeLecturer:
				reg.UserType = domain.UserType(userType)
			default:
				return fmt.Errorf("--type must be student or lecturer")
			}
			if password == "" {
				var err error
				password, err = promptPassword("Password: ")
				if err != nil {
					return err
				}
			}
			reg.Password = password
			user, err := app.session.Register(cmd.Context(), reg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "registered %s\n", user.Email)
			if user.UserType == domain.TypeLecturer {
				fmt.Fprintln(cmd.OutOrStdout(), "lecturer accounts require admin approval before publishing")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&reg.Name, "name", "", "full name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&userType, "type", "student", "account type: student or lecturer")
	cmd.Flags().StringVar(&reg.NIMNIDN, "nim", "", "NIM/NIDN identifier")
	cmd.Flags().StringVar(&reg.Faculty, "faculty", "", "faculty name")
	cmd.Flags().IntVar(&reg.DepartmentID, "department", 0, "department id")
	cmd.Flags().StringVar(&reg.Address, "address", "", "postal address")
	cmd.Flags().StringVar(&reg.ProfilePicture, "picture", "", "profile picture path")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("nim")
	return cmd
}

// promptPassword reads a password without echo when stdin is a terminal,
// and falls back to a plain line read for piped input.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	if terminal.IsTerminal(int(syscall.Stdin)) {
		data, err := terminal.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(data), nil
	}
	var line string
	if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}
