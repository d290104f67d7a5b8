package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"erepo/internal/api"
	"erepo/internal/controller"
	"erepo/pkg/domain"
)

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts (admin)",
	}
	cmd.AddCommand(
		newUsersListCmd(app),
		newUsersApproveCmd(app),
		newUsersUpdateCmd(app),
		newUsersDeleteCmd(app),
		newUsersAddCmd(app),
	)
	return cmd
}

func newUsersListCmd(app *App) *cobra.Command {
	var query string
	var page int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users with search and pagination",
		RunE: func(cmd *cobra.Command, args []string) error {
			list := controller.NewList(app.client.ListUsers, app.cfg.PageLimit)
			list.SetQuery(query)
			if err := list.SubmitSearch(cmd.Context()); err != nil {
				return err
			}
			if page > 1 {
				if err := list.GoToPage(cmd.Context(), page); err != nil {
					return err
				}
			}
			renderUsers(cmd.OutOrStdout(), list.Items())
			renderPageFooter(cmd.OutOrStdout(), list.Page(), list.TotalPages(), list.Total())
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "search text")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	return cmd
}

func newUsersApproveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			if err := app.client.ApproveUser(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "approved user %d\n", id)
			return nil
		},
	}
}

func newUsersUpdateCmd(app *App) *cobra.Command {
	var role, status string
	var approved bool
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a user's role, status or approval",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			upd := api.UserUpdate{}
			if cmd.Flags().Changed("role") {
				upd.Role = domain.UserRole(role)
			}
			if cmd.Flags().Changed("status") {
				upd.Status = domain.UserStatus(status)
			}
			if cmd.Flags().Changed("approved") {
				upd.IsApproved = &approved
			}
			user, err := app.client.UpdateUser(cmd.Context(), id, upd)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated user %d (%s, role %s, approved %t)\n",
				user.ID, user.Email, user.Role, user.IsApproved)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", "", "role: admin or user")
	cmd.Flags().StringVar(&status, "status", "", "status: pending, active or inactive")
	cmd.Flags().BoolVar(&approved, "approved", false, "approval flag")
	return cmd
}

func newUsersDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete one or more user accounts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBulkDelete(cmd, args, app, app.client.DeleteUser)
		},
	}
}

func newUsersAddCmd(app *App) *cobra.Command {
	var reg api.AdminRegistration
	var role, userType string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register an account on someone's behalf",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg.Role = domain.UserRole(role)
			reg.UserType = domain.UserType(userType)
			user, err := app.client.AdminRegister(cmd.Context(), reg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %d (%s)\n", user.ID, user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&reg.Name, "name", "", "full name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "email address")
	cmd.Flags().StringVar(&reg.Password, "password", "", "initial password")
	cmd.Flags().StringVar(&role, "role", "user", "role: admin or user")
	cmd.Flags().StringVar(&userType, "type", "student", "account type: student or lecturer")
	cmd.Flags().StringVar(&reg.NIMNIDN, "nim", "", "NIM/NIDN identifier")
	cmd.Flags().StringVar(&reg.Faculty, "faculty", "", "faculty name")
	cmd.Flags().IntVar(&reg.DepartmentID, "department", 0, "department id")
	cmd.Flags().StringVar(&reg.Address, "address", "", "postal address")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLecturersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lecturers",
		Short: "Lecturer approval workflow (admin)",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "pending",
			Short: "List lecturer accounts awaiting approval",
			RunE: func(cmd *cobra.Command, args []string) error {
				users, err := app.client.PendingLecturers(cmd.Context())
				if err != nil {
					return err
				}
				if len(users) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "no pending lecturers")
					return nil
				}
				renderUsers(cmd.OutOrStdout(), users)
				return nil
			},
		},
		&cobra.Command{
			Use:   "approve <id>",
			Short: "Approve a pending lecturer",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				id, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid user id %q", args[0])
				}
				if err := app.client.ApproveLecturer(cmd.Context(), id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "approved lecturer %d\n", id)
				return nil
			},
		},
	)
	return cmd
}
