package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"erepo/internal/citation"
	"erepo/internal/controller"
	"erepo/internal/download"
	"erepo/internal/upload"
)

func newBooksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "Browse and manage books",
	}
	cmd.AddCommand(
		newBooksListCmd(app),
		newBooksGetCmd(app),
		newBooksAddCmd(app),
		newBooksUpdateCmd(app),
		newBooksDeleteCmd(app),
		newBooksDownloadCmd(app),
	)
	return cmd
}

func newBooksListCmd(app *App) *cobra.Command {
	var query string
	var page int
	var mine bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List books with search and pagination",
		RunE: func(cmd *cobra.Command, args []string) error {
			fetch := app.client.ListBooks
			if mine {
				fetch = app.client.ListOwnBooks
			}
			list := controller.NewList(fetch, app.cfg.PageLimit)
			list.SetQuery(query)
			if err := list.SubmitSearch(cmd.Context()); err != nil {
				return err
			}
			if page > 1 {
				if err := list.GoToPage(cmd.Context(), page); err != nil {
					return err
				}
			}
			renderBooks(cmd.OutOrStdout(), list.Items())
			renderPageFooter(cmd.OutOrStdout(), list.Page(), list.TotalPages(), list.Total())
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "search text")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	cmd.Flags().BoolVar(&mine, "mine", false, "only records scoped to the signed-in user")
	return cmd
}

func newBooksGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid book id %q", args[0])
			}
			book, err := app.client.GetBook(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "title:     %s\n", book.Title)
			fmt.Fprintf(out, "author:    %s\n", bookAuthor(book))
			fmt.Fprintf(out, "publisher: %s\n", book.Publisher)
			fmt.Fprintf(out, "year:      %s\n", orDash(book.PublishedYear))
			fmt.Fprintf(out, "isbn:      %s\n", book.ISBN)
			fmt.Fprintf(out, "pages:     %s\n", orDash(book.Pages))
			if book.Summary != "" {
				fmt.Fprintf(out, "summary:   %s\n", book.Summary)
			}
			if book.FileURL != "" {
				fmt.Fprintf(out, "file:      %s\n", app.client.FileURL(book.FileURL))
			}
			fmt.Fprintf(out, "citation:  %s\n", citation.Book(book, citation.APA))
			return nil
		},
	}
}

// bookFormFlags binds the shared create/update flags onto a form.
type bookFormFlags struct {
	title, publisher, year, isbn, subject, language, pages, summary string
	authors                                                         []string
	file, cover                                                     string
}

func (f *bookFormFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "book title")
	cmd.Flags().StringArrayVar(&f.authors, "author", nil, "author name (repeatable, ordered)")
	cmd.Flags().StringVar(&f.publisher, "publisher", "", "publisher")
	cmd.Flags().StringVar(&f.year, "year", "", "published year")
	cmd.Flags().StringVar(&f.isbn, "isbn", "", "ISBN")
	cmd.Flags().StringVar(&f.subject, "subject", "", "subject")
	cmd.Flags().StringVar(&f.language, "language", "", "language")
	cmd.Flags().StringVar(&f.pages, "pages", "", "page count")
	cmd.Flags().StringVar(&f.summary, "summary", "", "summary")
	cmd.Flags().StringVar(&f.file, "file", "", "document to attach (.pdf/.doc/.docx)")
	cmd.Flags().StringVar(&f.cover, "cover", "", "cover image to attach")
}

func (f *bookFormFlags) apply(cmd *cobra.Command, form *controller.BookForm) error {
	set := cmd.Flags().Changed
	if set("title") {
		form.Title = f.title
	}
	if set("publisher") {
		form.Publisher = f.publisher
	}
	if set("year") {
		form.PublishedYear = f.year
	}
	if set("isbn") {
		form.ISBN = f.isbn
	}
	if set("subject") {
		form.Subject = f.subject
	}
	if set("language") {
		form.Language = f.language
	}
	if set("pages") {
		form.Pages = f.pages
	}
	if set("summary") {
		form.Summary = f.summary
	}
	if set("author") {
		form.Authors.Reset()
		for _, name := range f.authors {
			form.Authors.SetDraft(name)
			if err := form.Authors.Add(); err != nil {
				return err
			}
		}
	}
	if f.file != "" {
		doc, err := upload.Open(f.file)
		if err != nil {
			return err
		}
		if err := form.AttachDocument(doc); err != nil {
			doc.Close()
			return err
		}
	}
	if f.cover != "" {
		img, err := upload.Open(f.cover)
		if err != nil {
			return err
		}
		form.AttachCover(img)
	}
	return nil
}

func newBooksAddCmd(app *App) *cobra.Command {
	flags := &bookFormFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a book",
		RunE: func(cmd *cobra.Command, args []string) error {
			form := controller.NewBookForm(app.client)
			if err := flags.apply(cmd, form); err != nil {
				return err
			}
			book, err := form.Submit(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created book %d: %s\n", book.ID, book.Title)
			return nil
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newBooksUpdateCmd(app *App) *cobra.Command {
	flags := &bookFormFlags{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid book id %q", args[0])
			}
			existing, err := app.client.GetBook(cmd.Context(), id)
			if err != nil {
				return err
			}
			form := controller.NewBookForm(app.client)
			form.SetBook(existing)
			if err := flags.apply(cmd, form); err != nil {
				return err
			}
			book, err := form.Submit(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated book %d: %s\n", book.ID, book.Title)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newBooksDeleteCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete one or more books",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBulkDelete(cmd, args, app, app.client.DeleteBook)
		},
	}
	return cmd
}

// runBulkDelete drives the selection controller for delete commands.
func runBulkDelete(cmd *cobra.Command, args []string, app *App, deleteOne func(context.Context, int) error) error {
	sel := controller.NewSelection(deleteOne, nil)
	sel.SetConcurrency(app.cfg.BulkConcurrency)
	for _, arg := range args {
		id, err := strconv.Atoi(arg)
		if err != nil {
			return fmt.Errorf("invalid id %q", arg)
		}
		sel.Toggle(id)
	}
	res, err := sel.BulkDelete(cmd.Context())
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %d, failed %d\n", res.Deleted, res.Failed)
	return err
}

func newBooksDownloadCmd(app *App) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "download <id>",
		Short: "Download a book file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid book id %q", args[0])
			}
			book, err := app.client.GetBook(cmd.Context(), id)
			if err != nil {
				return err
			}
			stream, err := app.client.DownloadBook(cmd.Context(), id)
			if err != nil {
				return err
			}
			defer stream.Body.Close()
			name := download.Filename(stream.ContentDisposition, book.Title, book.FileURL)
			if dir == "" {
				dir = app.cfg.DownloadDir
			}
			path, err := download.Save(dir, name, stream.Body)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "target directory (defaults to downloadDir)")
	return cmd
}
