package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"erepo/internal/citation"
	"erepo/pkg/domain"
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
}

func renderBooks(out io.Writer, books []domain.Book) {
	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tYEAR\tPUBLISHER")
	for _, b := range books {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			b.ID, truncate(b.Title, 48), bookAuthor(b), orDash(b.PublishedYear), truncate(b.Publisher, 24))
	}
	tw.Flush()
}

func renderPapers(out io.Writer, papers []domain.Paper) {
	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tYEAR\tJOURNAL")
	for _, p := range papers {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			p.ID, truncate(p.Title, 48), paperAuthor(p), orDash(p.Year), truncate(p.Journal, 24))
	}
	tw.Flush()
}

func renderUsers(out io.Writer, users []domain.User) {
	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tROLE\tTYPE\tAPPROVED")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%t\n",
			u.ID, truncate(u.Name, 32), u.Email, u.Role, u.UserType, u.IsApproved)
	}
	tw.Flush()
}

func renderPageFooter(out io.Writer, page, totalPages, total int) {
	fmt.Fprintf(out, "page %d of %d (%d records)\n", page, totalPages, total)
}

func renderMonthly(out io.Writer, points []domain.MonthlyCount) {
	tw := newTable(out)
	fmt.Fprintln(tw, "MONTH\tCOUNT")
	for _, p := range points {
		fmt.Fprintf(tw, "%s\t%d\n", p.Label(), p.Count)
	}
	tw.Flush()
}

func bookAuthor(b domain.Book) string {
	name := citation.FormatAuthors(authorNames(b.Authors), citation.APA)
	if name == "" {
		name = b.Author
	}
	return truncate(name, 32)
}

func paperAuthor(p domain.Paper) string {
	name := citation.FormatAuthors(authorNames(p.Authors), citation.APA)
	if name == "" {
		name = p.Author
	}
	return truncate(name, 32)
}

func authorNames(authors []domain.WorkAuthor) []string {
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		names = append(names, a.AuthorName)
	}
	return names
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return strings.TrimSpace(s[:max-1]) + "…"
}

func orDash(n int) string {
	if n == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", n)
}
