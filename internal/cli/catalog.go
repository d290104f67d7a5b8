package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"erepo/internal/citation"
	"erepo/internal/controller"
)

func newSearchCmd(app *App) *cobra.Command {
	var page int
	var kind string
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search books and papers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if kind == "book" || kind == "both" {
				list := controller.NewList(app.client.ListBooks, app.cfg.PageLimit)
				list.SetQuery(args[0])
				if err := list.SubmitSearch(cmd.Context()); err != nil {
					return err
				}
				if page > 1 {
					if err := list.GoToPage(cmd.Context(), page); err != nil {
						return err
					}
				}
				fmt.Fprintln(out, "books:")
				renderBooks(out, list.Items())
				renderPageFooter(out, list.Page(), list.TotalPages(), list.Total())
			}
			if kind == "paper" || kind == "both" {
				list := controller.NewList(app.client.ListPapers, app.cfg.PageLimit)
				list.SetQuery(args[0])
				if err := list.SubmitSearch(cmd.Context()); err != nil {
					return err
				}
				if page > 1 {
					if err := list.GoToPage(cmd.Context(), page); err != nil {
						return err
					}
				}
				fmt.Fprintln(out, "papers:")
				renderPapers(out, list.Items())
				renderPageFooter(out, list.Page(), list.TotalPages(), list.Total())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	cmd.Flags().StringVar(&kind, "type", "both", "record type: book, paper or both")
	return cmd
}

func newDepartmentsCmd(app *App) *cobra.Command {
	var faculty string
	cmd := &cobra.Command{
		Use:   "departments",
		Short: "List departments, optionally by faculty",
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, err := app.client.Departments(cmd.Context(), faculty)
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNAME\tFACULTY")
			for _, d := range deps {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", d.ID, d.Name, d.Faculty)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&faculty, "faculty", "", "filter by faculty")
	return cmd
}

func newCategoriesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List bibliographic categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			cats, err := app.client.Categories(cmd.Context())
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tNAME\tTYPE\tDESCRIPTION")
			for _, c := range cats {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, c.Name, c.Type, truncate(c.Description, 48))
			}
			return tw.Flush()
		},
	}
	return cmd
}

func newAuthorsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "authors",
		Short: "Browse the author index",
	}
	cmd.AddCommand(
		newAuthorsSearchCmd(app),
		newAuthorsWorksCmd(app),
	)
	return cmd
}

func newAuthorsSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search authors by name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			authors, err := app.client.SearchAuthors(cmd.Context(), query)
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "NAME\tBOOKS\tPAPERS")
			for _, a := range authors {
				fmt.Fprintf(tw, "%s\t%d\t%d\n", a.Name, a.BookCount, a.PaperCount)
			}
			return tw.Flush()
		},
	}
}

func newAuthorsWorksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "works <name>",
		Short: "Show an author's works and citation impact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			detail, err := app.client.AuthorWorks(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			counts := citation.WorkCounts(detail)
			fmt.Fprintf(out, "%s: %d works, h-index %d, i10-index %d\n",
				detail.Name, len(counts), citation.HIndex(counts), citation.I10Index(counts))
			if len(detail.Books) > 0 {
				fmt.Fprintln(out, "books:")
				renderBooks(out, detail.Books)
			}
			if len(detail.Papers) > 0 {
				fmt.Fprintln(out, "papers:")
				renderPapers(out, detail.Papers)
			}
			return nil
		},
	}
}

func newCiteCmd(app *App) *cobra.Command {
	var style string
	cmd := &cobra.Command{
		Use:   "cite <book|paper> <id>",
		Short: "Render a citation for a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := citation.Style(style)
			switch st {
			case citation.APA, citation.MLA, citation.Chicago:
			default:
				return fmt.Errorf("unknown style %q (want apa, mla or chicago)", style)
			}
			id, err := parseID(args[1])
			if err != nil {
				return err
			}
			switch args[0] {
			case "book":
				book, err := app.client.GetBook(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), citation.Book(book, st))
			case "paper":
				paper, err := app.client.GetPaper(cmd.Context(), id)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), citation.Paper(paper, st))
			default:
				return fmt.Errorf("unknown record kind %q (want book or paper)", args[0])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&style, "style", string(citation.APA), "citation style: apa, mla or chicago")
	return cmd
}

func parseID(arg string) (int, error) {
	var id int
	if _, err := fmt.Sscanf(arg, "%d", &id); err != nil || id < 1 {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}
