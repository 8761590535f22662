// Package pipeline wires the classification and page generation runs.
package pipeline

import (
	"context"

	"github.com/Veraticus/papertrail/internal/model"
)

// PaperSource lists recently submitted papers.
type PaperSource interface {
	Recent(ctx context.Context, maxResults int) ([]model.Paper, error)
}

// RelevanceClassifier rates one paper. Failures are reported as error records.
type RelevanceClassifier interface {
	Classify(ctx context.Context, title, abstract string) model.Classification
}

// Publisher creates or updates a file in the remote repository.
type Publisher interface {
	Publish(ctx context.Context, path string, content []byte, message string) error
}

// TableReader returns the text of a classification table.
type TableReader interface {
	ReadTable(ctx context.Context, path string) (string, error)
}

// RootLister is implemented by readers that can list the repository root.
type RootLister interface {
	ListRoot(ctx context.Context) ([]string, error)
}
