package pipeline

import (
	"fmt"
	"time"

	"github.com/Veraticus/papertrail/internal/model"
)

// RunDate is the UTC calendar date that names a run's files.
func RunDate(now time.Time) string {
	return now.UTC().Format(model.DateLayout)
}

// ClassificationDir is the directory holding the table for date.
func ClassificationDir(date string) string {
	return "paper_classifications_" + date
}

// TableName is the file name of the table for date.
func TableName(date string) string {
	return fmt.Sprintf("classified_papers_%s.csv", date)
}

// TablePath is the repository path of the table for date.
func TablePath(date string) string {
	return ClassificationDir(date) + "/" + TableName(date)
}

// TableCandidates are the paths probed, in order, when looking for the table for date.
func TableCandidates(date string) []string {
	dir := ClassificationDir(date)
	return []string{dir, dir + ".csv"}
}

// WebpageDir is the directory receiving the pages generated on date.
func WebpageDir(date string) string {
	return "paper_webpages_" + date
}
