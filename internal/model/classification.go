package model

import "sort"

// Classification is the language model's verdict on a single paper.
// Error and Response are only set when the verdict could not be obtained.
type Classification struct {
	Model     string
	Rating    Rating
	Reasoning string
	Error     string
	Response  string
}

// IsError reports whether the classification is an error record.
func (c Classification) IsError() bool {
	return c.Error != ""
}

// ClassifiedPaper is a paper together with its classification.
type ClassifiedPaper struct {
	Classification
	Paper
}

// SortByRelevance orders papers by descending rating severity.
// Papers with equal severity keep their relative order.
func SortByRelevance(papers []ClassifiedPaper) {
	sort.SliceStable(papers, func(i, j int) bool {
		return papers[i].Rating.Severity() > papers[j].Rating.Severity()
	})
}

// FilterByRating returns the papers whose rating equals r, in order.
func FilterByRating(papers []ClassifiedPaper, r Rating) []ClassifiedPaper {
	var out []ClassifiedPaper
	for _, p := range papers {
		if p.Rating == r {
			out = append(out, p)
		}
	}
	return out
}
