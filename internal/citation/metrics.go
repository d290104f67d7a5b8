package citation

import (
	"sort"

	"erepo/pkg/domain"
)

// HIndex computes the h-index: the largest h such that h works have at
// least h citations each.
func HIndex(counts []int) int {
	sorted := make([]int, len(counts))
	copy(sorted, counts)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	h := 0
	for i, c := range sorted {
		if c >= i+1 {
			h = i + 1
		}
	}
	return h
}

// I10Index counts works with at least ten citations.
func I10Index(counts []int) int {
	n := 0
	for _, c := range counts {
		if c >= 10 {
			n++
		}
	}
	return n
}

// WorkCounts collects the citation counts of an author's aggregated books
// and papers, the input to the index calculations on profile pages.
func WorkCounts(detail domain.AuthorDetail) []int {
	counts := make([]int, 0, len(detail.Books)+len(detail.Papers))
	for _, b := range detail.Books {
		counts = append(counts, b.CitationCount)
	}
	for _, p := range detail.Papers {
		counts = append(counts, p.CitationCount)
	}
	return counts
}
