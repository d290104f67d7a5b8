package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"erepo/pkg/domain"
)

func newStatsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Citation and usage statistics",
	}
	cmd.AddCommand(
		newStatsOverviewCmd(app),
		newStatsMonthlyCmd(app),
	)
	return cmd
}

func newStatsOverviewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Show the dashboard counters (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := app.client.Stats(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "books:     %d\n", stats.TotalBooks)
			fmt.Fprintf(out, "papers:    %d\n", stats.TotalPapers)
			fmt.Fprintf(out, "downloads: %d\n", stats.TotalDownloads)
			fmt.Fprintf(out, "citations: %d\n", stats.TotalCitations)
			if stats.TotalUsers > 0 {
				fmt.Fprintf(out, "users:     %d\n", stats.TotalUsers)
			}
			return nil
		},
	}
}

func newStatsMonthlyCmd(app *App) *cobra.Command {
	var userID int
	cmd := &cobra.Command{
		Use:   "monthly <users|downloads|citations|books|papers>",
		Short: "Show a per-month series",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := monthlySeries(cmd.Context(), app, args[0], userID)
			if err != nil {
				return err
			}
			renderMonthly(cmd.OutOrStdout(), series)
			return nil
		},
	}
	cmd.Flags().IntVar(&userID, "user", 0, "scope downloads/citations to one user")
	return cmd
}

func monthlySeries(ctx context.Context, app *App, kind string, userID int) ([]domain.MonthlyCount, error) {
	switch kind {
	case "users":
		return app.client.UsersPerMonth(ctx)
	case "downloads":
		if userID > 0 {
			return app.client.UserDownloadsPerMonth(ctx, userID)
		}
		return app.client.DownloadsPerMonth(ctx)
	case "citations":
		if userID > 0 {
			return app.client.UserCitationsPerMonth(ctx, userID)
		}
		return app.client.CitationsPerMonth(ctx)
	case "books":
		return app.client.BooksPerMonth(ctx)
	case "papers":
		return app.client.PapersPerMonth(ctx)
	default:
		return nil, fmt.Errorf("unknown series %q", kind)
	}
}
