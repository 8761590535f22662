package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/Veraticus/papertrail/internal/model"
	"github.com/Veraticus/papertrail/internal/table"
)

// DefaultMaxResults is the number of papers classified per run.
const DefaultMaxResults = 30

// ClassificationRun fetches recent papers, rates each one and publishes the
// sorted table under today's date.
type ClassificationRun struct {
	Source     PaperSource
	Classifier RelevanceClassifier
	Publisher  Publisher
	Logger     *slog.Logger
	Progress   io.Writer
	Now        func() time.Time
	MaxResults int
}

// ClassificationReport summarizes a finished classification run.
type ClassificationReport struct {
	Date   string
	Path   string
	Papers []model.ClassifiedPaper
	Errors int
}

// Run executes the run. Papers are classified one at a time; a paper whose
// classification fails is kept as an error record and sorts last.
func (r *ClassificationRun) Run(ctx context.Context) (*ClassificationReport, error) {
	logger := r.logger()
	now := r.now()
	date := RunDate(now)

	logger.Info("starting classification run",
		"started_at", now.UTC().Format("2006-01-02 15:04:05 UTC"))

	maxResults := r.MaxResults
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	papers, err := r.Source.Recent(ctx, maxResults)
	if err != nil {
		logger.Error("failed to fetch papers", "error", err)
		return nil, fmt.Errorf("failed to fetch papers: %w", err)
	}

	classified, errCount, err := r.classifyAll(ctx, papers)
	if err != nil {
		return nil, err
	}
	model.SortByRelevance(classified)

	content, err := table.Encode(classified)
	if err != nil {
		return nil, fmt.Errorf("failed to encode table: %w", err)
	}

	path := TablePath(date)
	message := fmt.Sprintf("Publish %s", TableName(date))
	if err := r.Publisher.Publish(ctx, path, content, message); err != nil {
		logger.Error("failed to publish table", "path", path, "error", err)
		return nil, fmt.Errorf("failed to publish table: %w", err)
	}

	logger.Info("classification run complete",
		"date", date,
		"path", path,
		"papers", len(classified),
		"errors", errCount)

	return &ClassificationReport{
		Date:   date,
		Path:   path,
		Papers: classified,
		Errors: errCount,
	}, nil
}

func (r *ClassificationRun) classifyAll(ctx context.Context, papers []model.Paper) ([]model.ClassifiedPaper, int, error) {
	progress := r.Progress
	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(len(papers),
		progressbar.OptionSetWriter(progress),
		progressbar.OptionSetDescription("Classifying papers"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(progress)
		}),
	)

	classified := make([]model.ClassifiedPaper, 0, len(papers))
	errCount := 0
	for _, paper := range papers {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		result := r.Classifier.Classify(ctx, paper.Title, paper.Abstract)
		if result.IsError() {
			errCount++
		}
		classified = append(classified, model.ClassifiedPaper{
			Paper:          paper,
			Classification: result,
		})

		if err := bar.Add(1); err != nil {
			r.logger().Warn("failed to update progress bar", "error", err)
		}
	}

	return classified, errCount, nil
}

func (r *ClassificationRun) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

func (r *ClassificationRun) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
