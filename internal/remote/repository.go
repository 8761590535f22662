// Package remote publishes files to and reads files from a GitHub repository
// through the contents API.
package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"github.com/Veraticus/papertrail/internal/common"
)

// Config identifies the target repository and the credentials to reach it.
type Config struct {
	Token      string
	Repository string // "owner/name"
	Branch     string // empty means the default branch
}

// Validate checks that the token and an owner/name pair are present.
func (c Config) Validate() error {
	if c.Token == "" {
		return fmt.Errorf("%w: GitHub token", common.ErrMissingConfig)
	}
	if _, _, err := splitRepository(c.Repository); err != nil {
		return err
	}
	return nil
}

// Repository is a GitHub repository used as the pipeline's storage.
type Repository struct {
	client *github.Client
	logger *slog.Logger
	owner  string
	name   string
	branch string
}

// NewRepository authenticates with a static token and binds to cfg.Repository.
func NewRepository(ctx context.Context, cfg Config, logger *slog.Logger) (*Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
	client := github.NewClient(oauth2.NewClient(ctx, ts))

	return newRepository(client, cfg, logger)
}

func newRepository(client *github.Client, cfg Config, logger *slog.Logger) (*Repository, error) {
	owner, name, err := splitRepository(cfg.Repository)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Repository{
		client: client,
		logger: logger.With("repository", cfg.Repository),
		owner:  owner,
		name:   name,
		branch: cfg.Branch,
	}, nil
}

// Publish creates path with content, or updates it in place if it already
// exists. Updates carry the current blob SHA so a concurrent change is
// rejected instead of overwritten.
func (r *Repository) Publish(ctx context.Context, path string, content []byte, message string) error {
	existing, _, resp, err := r.client.Repositories.GetContents(ctx, r.owner, r.name, path, r.refOptions())

	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: content,
	}
	if r.branch != "" {
		opts.Branch = github.String(r.branch)
	}

	switch {
	case isNotFound(resp, err):
		if _, _, err := r.client.Repositories.CreateFile(ctx, r.owner, r.name, path, opts); err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		r.logger.Info("created file", "path", path)
		return nil

	case err != nil:
		return fmt.Errorf("failed to check %s: %w", path, err)

	case existing == nil:
		return fmt.Errorf("failed to update %s: path is a directory", path)
	}

	opts.SHA = existing.SHA
	if _, _, err := r.client.Repositories.UpdateFile(ctx, r.owner, r.name, path, opts); err != nil {
		return fmt.Errorf("failed to update %s: %w", path, err)
	}
	r.logger.Info("updated file", "path", path)
	return nil
}

// ReadTable returns the text of the CSV at path. If path is a directory the
// first entry ending in ".csv" is read instead.
func (r *Repository) ReadTable(ctx context.Context, path string) (string, error) {
	file, dir, _, err := r.client.Repositories.GetContents(ctx, r.owner, r.name, path, r.refOptions())
	if err != nil {
		return "", fmt.Errorf("failed to get %s: %w", path, err)
	}

	if file == nil {
		var csvPath string
		for _, entry := range dir {
			if entry.GetType() == "file" && strings.HasSuffix(entry.GetName(), ".csv") {
				csvPath = entry.GetPath()
				break
			}
		}
		if csvPath == "" {
			return "", fmt.Errorf("no CSV file found in %s: %w", path, common.ErrNotFound)
		}

		file, _, _, err = r.client.Repositories.GetContents(ctx, r.owner, r.name, csvPath, r.refOptions())
		if err != nil {
			return "", fmt.Errorf("failed to get %s: %w", csvPath, err)
		}
		if file == nil {
			return "", fmt.Errorf("%s is not a file: %w", csvPath, common.ErrNotFound)
		}
	}

	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", file.GetPath(), err)
	}
	return content, nil
}

// ListRoot returns the paths at the top level of the repository.
func (r *Repository) ListRoot(ctx context.Context) ([]string, error) {
	_, dir, _, err := r.client.Repositories.GetContents(ctx, r.owner, r.name, "", r.refOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to list repository root: %w", err)
	}

	paths := make([]string, 0, len(dir))
	for _, entry := range dir {
		paths = append(paths, entry.GetPath())
	}
	return paths, nil
}

func (r *Repository) refOptions() *github.RepositoryContentGetOptions {
	if r.branch == "" {
		return nil
	}
	return &github.RepositoryContentGetOptions{Ref: r.branch}
}

func isNotFound(resp *github.Response, err error) bool {
	if err == nil {
		return false
	}
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return true
	}
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}

func splitRepository(full string) (string, string, error) {
	owner, name, ok := strings.Cut(full, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("%w: repository must be owner/name, got %q", common.ErrInvalidConfig, full)
	}
	return owner, name, nil
}
