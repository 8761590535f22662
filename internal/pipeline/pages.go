package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/papertrail/internal/model"
	"github.com/Veraticus/papertrail/internal/render"
	"github.com/Veraticus/papertrail/internal/table"
)

// PageRun publishes one HTML page per highly relevant paper in today's table.
type PageRun struct {
	Reader    TableReader
	Publisher Publisher
	Logger    *slog.Logger
	Now       func() time.Time
	// Date overrides the run date when set (YYYY-MM-DD).
	Date string
}

// PageReport summarizes a page generation run.
type PageReport struct {
	Date       string
	TablePath  string
	Failed     []string
	Selected   int
	Published  int
	Found      bool
	Unreadable bool
}

// Summary describes the outcome in one line.
func (r *PageReport) Summary() string {
	if !r.Found {
		return fmt.Sprintf("Could not find a classification table for %s.", r.Date)
	}
	if r.Unreadable {
		return fmt.Sprintf("Could not process the classification table %s.", r.TablePath)
	}
	return fmt.Sprintf("Successfully committed %d out of %d webpages for %s.", r.Published, r.Selected, r.Date)
}

// Run locates today's table and publishes the pages. A missing or unreadable
// table is not an error: the report says so and nothing is written.
func (r *PageRun) Run(ctx context.Context) (*PageReport, error) {
	logger := r.logger()
	date := r.Date
	if date == "" {
		date = RunDate(r.now())
	}
	report := &PageReport{Date: date}

	if lister, ok := r.Reader.(RootLister); ok {
		if paths, err := lister.ListRoot(ctx); err != nil {
			logger.Debug("could not list repository root", "error", err)
		} else {
			logger.Debug("repository root", "paths", paths)
		}
	}

	content, tablePath, found := r.findTable(ctx, date)
	if !found {
		logger.Warn("no classification table found for date; check that the classify run published one and that the token can read the repository",
			"date", date,
			"candidates", TableCandidates(date))
		return report, nil
	}
	report.Found = true
	report.TablePath = tablePath
	logger.Info("found classification table", "path", tablePath)

	papers, err := table.Decode(content)
	if err != nil {
		logger.Error("could not process classification table", "path", tablePath, "error", err)
		report.Unreadable = true
		return report, nil
	}

	selected := model.FilterByRating(papers, model.HighlyRelevant)
	report.Selected = len(selected)
	logger.Info("found highly relevant papers", "count", len(selected))

	dir := WebpageDir(date)
	for _, paper := range selected {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		path := dir + "/" + render.FileName(paper.Title)
		if err := r.publishPage(ctx, path, paper); err != nil {
			logger.Error("failed to publish page", "path", path, "error", err)
			report.Failed = append(report.Failed, path)
			continue
		}
		report.Published++
	}

	logger.Info("finished processing webpages",
		"committed", report.Published,
		"attempted", report.Selected,
		"date", date,
		"directory", dir)

	return report, nil
}

func (r *PageRun) findTable(ctx context.Context, date string) (string, string, bool) {
	for _, path := range TableCandidates(date) {
		content, err := r.Reader.ReadTable(ctx, path)
		if err != nil {
			r.logger().Info("table not at candidate path", "path", path, "error", err)
			continue
		}
		return content, path, true
	}
	return "", "", false
}

func (r *PageRun) publishPage(ctx context.Context, path string, paper model.ClassifiedPaper) error {
	html, err := render.Page(paper)
	if err != nil {
		return err
	}
	return r.Publisher.Publish(ctx, path, html, "Add webpage for paper: "+paper.Title)
}

func (r *PageRun) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

func (r *PageRun) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
