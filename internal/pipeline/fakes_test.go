package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/papertrail/internal/common"
	"github.com/Veraticus/papertrail/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeSource struct {
	err           error
	papers        []model.Paper
	gotMaxResults int
}

func (f *fakeSource) Recent(_ context.Context, maxResults int) ([]model.Paper, error) {
	f.gotMaxResults = maxResults
	if f.err != nil {
		return nil, f.err
	}
	if len(f.papers) > maxResults {
		return f.papers[:maxResults], nil
	}
	return f.papers, nil
}

// fakeClassifier rates papers by looking up their title.
type fakeClassifier struct {
	ratings map[string]model.Rating
	failing map[string]bool
	calls   []string
}

func (f *fakeClassifier) Classify(_ context.Context, title, _ string) model.Classification {
	f.calls = append(f.calls, title)
	if f.failing[title] {
		return model.Classification{Model: "fake", Error: "Invalid JSON response", Response: "???"}
	}
	return model.Classification{Model: "fake", Rating: f.ratings[title], Reasoning: "because " + title}
}

type publishedFile struct {
	Path    string
	Content string
	Message string
}

type fakePublisher struct {
	failPaths map[string]bool
	published []publishedFile
	attempts  int
}

func (f *fakePublisher) Publish(_ context.Context, path string, content []byte, message string) error {
	f.attempts++
	if f.failPaths[path] {
		return errors.New("502 bad gateway")
	}
	f.published = append(f.published, publishedFile{Path: path, Content: string(content), Message: message})
	return nil
}

type fakeReader struct {
	files map[string]string
	reads []string
	root  []string
}

func (f *fakeReader) ReadTable(_ context.Context, path string) (string, error) {
	f.reads = append(f.reads, path)
	if content, ok := f.files[path]; ok {
		return content, nil
	}
	return "", common.ErrNotFound
}

func (f *fakeReader) ListRoot(_ context.Context) ([]string, error) {
	return f.root, nil
}

func csvTable(rows ...string) string {
	return "title,authors,abstract,pdf_url,published,Model,Rating,Reasoning,Error,Response\n" +
		strings.Join(rows, "\n") + "\n"
}
