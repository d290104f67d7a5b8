// Package citation renders bibliographic citations in APA, MLA and Chicago
// styles and computes the citation-impact indexes shown on profile pages.
package citation

import (
	"fmt"
	"strings"

	"erepo/pkg/domain"
)

// Style selects a citation format.
type Style string

const (
	APA     Style = "apa"
	MLA     Style = "mla"
	Chicago Style = "chicago"
)

// FormatAuthors joins author names the way the chosen style expects.
// APA: "A, B, & C". MLA: "A and B", three or more "A, et al.".
// Chicago: "A and B", "A, B, and C", five or more "A et al.".
func FormatAuthors(names []string, style Style) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	switch style {
	case MLA:
		if len(names) >= 3 {
			return names[0] + ", et al."
		}
		return names[0] + " and " + names[1]
	case Chicago:
		if len(names) >= 5 {
			return names[0] + " et al."
		}
		if len(names) == 2 {
			return names[0] + " and " + names[1]
		}
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	default: // APA
		return strings.Join(names[:len(names)-1], ", ") + ", & " + names[len(names)-1]
	}
}

func workAuthors(authors []domain.WorkAuthor, legacy string, style Style) string {
	if len(authors) == 0 {
		return legacy
	}
	names := make([]string, 0, len(authors))
	for _, a := range authors {
		names = append(names, a.AuthorName)
	}
	return FormatAuthors(names, style)
}

// Book renders a book citation.
func Book(b domain.Book, style Style) string {
	author := workAuthors(b.Authors, b.Author, style)
	year := "n.d."
	if b.PublishedYear > 0 {
		year = fmt.Sprintf("%d", b.PublishedYear)
	}
	publisher := b.Publisher
	if publisher == "" {
		publisher = "Unknown Publisher"
	}
	isbn := ""
	if b.ISBN != "" {
		isbn = " ISBN: " + b.ISBN
	}
	switch style {
	case MLA:
		return fmt.Sprintf("%s. %q %s, %s.%s", author, b.Title+".", publisher, year, isbn)
	case Chicago:
		return fmt.Sprintf("%s. %s. %s, %s.%s", author, b.Title, publisher, year, isbn)
	default: // APA
		return fmt.Sprintf("%s. (%s). %s. %s.%s", author, year, b.Title, publisher, isbn)
	}
}

// Paper renders a paper citation. Journal metadata (volume, issue, pages)
// is included when present, with the joiners each style uses.
func Paper(p domain.Paper, style Style) string {
	author := workAuthors(p.Authors, p.Author, style)
	year := "n.d."
	if p.Year > 0 {
		year = fmt.Sprintf("%d", p.Year)
	}

	var b strings.Builder
	switch style {
	case MLA:
		fmt.Fprintf(&b, "%s. %q", author, p.Title+".")
		if p.Journal != "" {
			b.WriteString(" " + p.Journal)
			if p.Volume > 0 {
				fmt.Fprintf(&b, ", vol. %d", p.Volume)
			}
			if p.Issue > 0 {
				fmt.Fprintf(&b, ", no. %d", p.Issue)
			}
			if p.Pages != "" {
				fmt.Fprintf(&b, ", pp. %s", p.Pages)
			}
		}
		writeAffiliation(&b, p)
		fmt.Fprintf(&b, " %s.", year)
	case Chicago:
		fmt.Fprintf(&b, "%s. %q", author, p.Title+".")
		if p.Journal != "" {
			b.WriteString(" " + p.Journal)
			if p.Volume > 0 {
				fmt.Fprintf(&b, " %d", p.Volume)
			}
			if p.Issue > 0 {
				fmt.Fprintf(&b, ", no. %d", p.Issue)
			}
			if p.Pages != "" {
				fmt.Fprintf(&b, " (%s)", p.Pages)
			}
		}
		writeAffiliation(&b, p)
		fmt.Fprintf(&b, " %s.", year)
	default: // APA
		fmt.Fprintf(&b, "%s. (%s). %s.", author, year, p.Title)
		if p.Journal != "" {
			b.WriteString(" " + p.Journal)
			if p.Volume > 0 {
				fmt.Fprintf(&b, ", %d", p.Volume)
			}
			if p.Issue > 0 {
				fmt.Fprintf(&b, "(%d)", p.Issue)
			}
			if p.Pages != "" {
				fmt.Fprintf(&b, ", %s", p.Pages)
			}
			b.WriteString(".")
		}
		writeAffiliation(&b, p)
	}
	if p.DOI != "" {
		fmt.Fprintf(&b, " https://doi.org/%s", p.DOI)
	}
	if p.ISSN != "" {
		fmt.Fprintf(&b, " ISSN: %s", p.ISSN)
	}
	return b.String()
}

func writeAffiliation(b *strings.Builder, p domain.Paper) {
	if p.University != "" {
		fmt.Fprintf(b, " %s,", p.University)
	}
	if p.Department != "" {
		fmt.Fprintf(b, " %s,", p.Department)
	}
}
