package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"erepo/internal/citation"
	"erepo/internal/controller"
	"erepo/internal/download"
	"erepo/internal/upload"
)

func newPapersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "papers",
		Short: "Browse and manage academic papers",
	}
	cmd.AddCommand(
		newPapersListCmd(app),
		newPapersGetCmd(app),
		newPapersAddCmd(app),
		newPapersUpdateCmd(app),
		newPapersDeleteCmd(app),
		newPapersDownloadCmd(app),
	)
	return cmd
}

func newPapersListCmd(app *App) *cobra.Command {
	var query string
	var page int
	var mine bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List papers with search and pagination",
		RunE: func(cmd *cobra.Command, args []string) error {
			fetch := app.client.ListPapers
			if mine {
				fetch = app.client.ListOwnPapers
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
			renderPapers(cmd.OutOrStdout(), list.Items())
			renderPageFooter(cmd.OutOrStdout(), list.Page(), list.TotalPages(), list.Total())
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "search text")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	cmd.Flags().BoolVar(&mine, "mine", false, "only records scoped to the signed-in user")
	return cmd
}

func newPapersGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one paper",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid paper id %q", args[0])
			}
			paper, err := app.client.GetPaper(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "title:    %s\n", paper.Title)
			fmt.Fprintf(out, "author:   %s\n", paperAuthor(paper))
			fmt.Fprintf(out, "journal:  %s\n", paper.Journal)
			fmt.Fprintf(out, "year:     %s\n", orDash(paper.Year))
			fmt.Fprintf(out, "doi:      %s\n", paper.DOI)
			fmt.Fprintf(out, "abstract: %s\n", paper.Abstract)
			if paper.FileURL != "" {
				fmt.Fprintf(out, "file:     %s\n", app.client.FileURL(paper.FileURL))
			}
			fmt.Fprintf(out, "citation: %s\n", citation.Paper(paper, citation.APA))
			return nil
		},
	}
}

type paperFormFlags struct {
	title, abstract, keywords, journal, volume, issue, pages, year string
	doi, issn, advisor, university, department                     string
	authors                                                        []string
	file, cover                                                    string
}

func (f *paperFormFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "paper title")
	cmd.Flags().StringArrayVar(&f.authors, "author", nil, "author name (repeatable, ordered)")
	cmd.Flags().StringVar(&f.abstract, "abstract", "", "abstract")
	cmd.Flags().StringVar(&f.keywords, "keywords", "", "keywords")
	cmd.Flags().StringVar(&f.journal, "journal", "", "journal")
	cmd.Flags().StringVar(&f.volume, "volume", "", "volume")
	cmd.Flags().StringVar(&f.issue, "issue", "", "issue")
	cmd.Flags().StringVar(&f.pages, "pages", "", "page range, e.g. 12-34")
	cmd.Flags().StringVar(&f.year, "year", "", "publication year")
	cmd.Flags().StringVar(&f.doi, "doi", "", "DOI")
	cmd.Flags().StringVar(&f.issn, "issn", "", "ISSN")
	cmd.Flags().StringVar(&f.advisor, "advisor", "", "advisor")
	cmd.Flags().StringVar(&f.university, "university", "", "university")
	cmd.Flags().StringVar(&f.department, "department", "", "department")
	cmd.Flags().StringVar(&f.file, "file", "", "document to attach (.pdf/.doc/.docx)")
	cmd.Flags().StringVar(&f.cover, "cover", "", "cover image to attach")
}

func (f *paperFormFlags) apply(cmd *cobra.Command, form *controller.PaperForm) error {
	set := cmd.Flags().Changed
	if set("title") {
		form.Title = f.title
	}
	if set("abstract") {
		form.Abstract = f.abstract
	}
	if set("keywords") {
		form.Keywords = f.keywords
	}
	if set("journal") {
		form.Journal = f.journal
	}
	if set("volume") {
		form.Volume = f.volume
	}
	if set("issue") {
		form.Issue = f.issue
	}
	if set("pages") {
		form.Pages = f.pages
	}
	if set("year") {
		form.Year = f.year
	}
	if set("doi") {
		form.DOI = f.doi
	}
	if set("issn") {
		form.ISSN = f.issn
	}
	if set("advisor") {
		form.Advisor = f.advisor
	}
	if set("university") {
		form.University = f.university
	}
	if set("department") {
		form.Department = f.department
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

func newPapersAddCmd(app *App) *cobra.Command {
	flags := &paperFormFlags{}
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a paper",
		RunE: func(cmd *cobra.Command, args []string) error {
			form := controller.NewPaperForm(app.client)
			if err := flags.apply(cmd, form); err != nil {
				return err
			}
			paper, err := form.Submit(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created paper %d: %s\n", paper.ID, paper.Title)
			return nil
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("abstract")
	return cmd
}

func newPapersUpdateCmd(app *App) *cobra.Command {
	flags := &paperFormFlags{}
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a paper",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid paper id %q", args[0])
			}
			existing, err := app.client.GetPaper(cmd.Context(), id)
			if err != nil {
				return err
			}
			form := controller.NewPaperForm(app.client)
			form.SetPaper(existing)
			if err := flags.apply(cmd, form); err != nil {
				return err
			}
			paper, err := form.Submit(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated paper %d: %s\n", paper.ID, paper.Title)
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newPapersDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete one or more papers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBulkDelete(cmd, args, app, app.client.DeletePaper)
		},
	}
}

func newPapersDownloadCmd(app *App) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "download <id>",
		Short: "Download a paper file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid paper id %q", args[0])
			}
			paper, err := app.client.GetPaper(cmd.Context(), id)
			if err != nil {
				return err
			}
			stream, err := app.client.DownloadPaper(cmd.Context(), id)
			if err != nil {
				return err
			}
			defer stream.Body.Close()
			name := download.Filename(stream.ContentDisposition, paper.Title, paper.FileURL)
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
