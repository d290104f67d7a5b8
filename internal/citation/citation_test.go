package citation

import (
	"strings"
	"testing"

	"erepo/pkg/domain"
)

func TestFormatAuthors(t *testing.T) {
	cases := []struct {
		names []string
		style Style
		want  string
	}{
		{nil, APA, ""},
		{[]string{"Doe, J."}, APA, "Doe, J."},
		{[]string{"Doe, J.", "Smith, A."}, APA, "Doe, J., & Smith, A."},
		{[]string{"Doe, J.", "Smith, A.", "Lee, K."}, APA, "Doe, J., Smith, A., & Lee, K."},
		{[]string{"Doe", "Smith"}, MLA, "Doe and Smith"},
		{[]string{"Doe", "Smith", "Lee"}, MLA, "Doe, et al."},
		{[]string{"Doe", "Smith"}, Chicago, "Doe and Smith"},
		{[]string{"Doe", "Smith", "Lee"}, Chicago, "Doe, Smith, and Lee"},
		{[]string{"A", "B", "C", "D", "E"}, Chicago, "A et al."},
	}
	for _, tc := range cases {
		if got := FormatAuthors(tc.names, tc.style); got != tc.want {
			t.Fatalf("FormatAuthors(%v, %s) = %q, want %q", tc.names, tc.style, got, tc.want)
		}
	}
}

func TestBookCitation(t *testing.T) {
	b := domain.Book{
		Title: "Clean Architecture",
		Authors: []domain.WorkAuthor{
			{AuthorName: "Martin, R."},
		},
		Publisher:     "Prentice Hall",
		PublishedYear: 2017,
		ISBN:          "9780134494166",
	}

	apa := Book(b, APA)
	want := "Martin, R.. (2017). Clean Architecture. Prentice Hall. ISBN: 9780134494166"
	if apa != want {
		t.Fatalf("APA = %q, want %q", apa, want)
	}

	chicago := Book(b, Chicago)
	if !strings.HasPrefix(chicago, "Martin, R.. Clean Architecture. Prentice Hall, 2017.") {
		t.Fatalf("Chicago = %q", chicago)
	}
}

func TestBookCitationDefaults(t *testing.T) {
	b := domain.Book{Title: "Untitled Draft", Author: "Anon"}
	got := Book(b, APA)
	if !strings.Contains(got, "(n.d.)") {
		t.Fatalf("missing-year placeholder absent: %q", got)
	}
	if !strings.Contains(got, "Unknown Publisher") {
		t.Fatalf("missing-publisher placeholder absent: %q", got)
	}
	if strings.Contains(got, "ISBN") {
		t.Fatalf("empty ISBN must add no suffix: %q", got)
	}
}

func TestPaperCitationAPA(t *testing.T) {
	p := domain.Paper{
		Title: "A Relational Model of Data",
		Authors: []domain.WorkAuthor{
			{AuthorName: "Codd, E. F."},
		},
		Journal: "Communications of the ACM",
		Volume:  13,
		Issue:   6,
		Pages:   "377-387",
		Year:    1970,
		DOI:     "10.1145/362384.362685",
	}
	got := Paper(p, APA)
	want := "Codd, E. F.. (1970). A Relational Model of Data." +
		" Communications of the ACM, 13(6), 377-387." +
		" https://doi.org/10.1145/362384.362685"
	if got != want {
		t.Fatalf("APA = %q, want %q", got, want)
	}
}

func TestPaperCitationMLAJoiners(t *testing.T) {
	p := domain.Paper{
		Title:   "Some Paper",
		Author:  "Doe",
		Journal: "Journal of Things",
		Volume:  4,
		Issue:   2,
		Pages:   "10-20",
		Year:    2001,
	}
	got := Paper(p, MLA)
	for _, frag := range []string{"vol. 4", "no. 2", "pp. 10-20", "2001."} {
		if !strings.Contains(got, frag) {
			t.Fatalf("MLA citation %q missing %q", got, frag)
		}
	}
}

func TestPaperCitationFallsBackToLegacyAuthor(t *testing.T) {
	p := domain.Paper{Title: "T", Author: "Solo Author", Year: 2020}
	got := Paper(p, APA)
	if !strings.HasPrefix(got, "Solo Author.") {
		t.Fatalf("legacy author not used: %q", got)
	}
}

func TestHIndex(t *testing.T) {
	cases := []struct {
		counts []int
		want   int
	}{
		{nil, 0},
		{[]int{0, 0}, 0},
		{[]int{10}, 1},
		{[]int{3, 0, 6, 1, 5}, 3},
		{[]int{25, 8, 5, 4, 3}, 4},
		{[]int{1, 1, 1, 1, 1}, 1},
	}
	for _, tc := range cases {
		if got := HIndex(tc.counts); got != tc.want {
			t.Fatalf("HIndex(%v) = %d, want %d", tc.counts, got, tc.want)
		}
	}
}

func TestI10Index(t *testing.T) {
	if got := I10Index([]int{10, 9, 11, 0, 100}); got != 3 {
		t.Fatalf("I10Index = %d, want 3", got)
	}
	if got := I10Index(nil); got != 0 {
		t.Fatalf("I10Index(nil) = %d, want 0", got)
	}
}

func TestWorkCounts(t *testing.T) {
	detail := domain.AuthorDetail{
		Books: []domain.Book{
			{CitationCount: 12},
			{CitationCount: 3},
		},
		Papers: []domain.Paper{
			{CitationCount: 7},
		},
	}
	counts := WorkCounts(detail)
	if len(counts) != 3 {
		t.Fatalf("counts %v", counts)
	}
	if HIndex(counts) != 2 {
		t.Fatalf("HIndex over author works = %d, want 2", HIndex(counts))
	}
}
