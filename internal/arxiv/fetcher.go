// Package arxiv fetches recently submitted papers from the arXiv listing API.
package arxiv

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed/atom"

	"github.com/Veraticus/papertrail/internal/model"
)

// DefaultBaseURL is the arXiv query endpoint.
const DefaultBaseURL = "https://export.arxiv.org/api/query"

// DefaultCategories are the subject categories queried when none are configured.
var DefaultCategories = []string{"cs.CL", "cs.AI"}

// Config holds the listing query settings.
type Config struct {
	BaseURL    string
	Categories []string
	Timeout    time.Duration
}

// Fetcher retrieves the newest submissions for a fixed set of categories.
type Fetcher struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	categories []string
}

// NewFetcher creates a fetcher, filling unset fields with defaults.
func NewFetcher(cfg Config, logger *slog.Logger) *Fetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if len(cfg.Categories) == 0 {
		cfg.Categories = DefaultCategories
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Fetcher{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		baseURL:    cfg.BaseURL,
		categories: cfg.Categories,
	}
}

// Recent returns up to maxResults papers, newest submission first.
func (f *Fetcher) Recent(ctx context.Context, maxResults int) ([]model.Paper, error) {
	if maxResults <= 0 {
		return nil, fmt.Errorf("max results must be positive, got %d", maxResults)
	}

	queryURL, err := f.queryURL(maxResults)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "papertrail/1.0")

	f.logger.Debug("querying arxiv", "url", queryURL)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arxiv request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("arxiv returned %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	parser := &atom.Parser{}
	feed, err := parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse arxiv feed: %w", err)
	}

	papers := make([]model.Paper, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		if len(papers) == maxResults {
			break
		}
		papers = append(papers, paperFromEntry(entry))
	}

	f.logger.Info("fetched papers from arxiv",
		"requested", maxResults,
		"returned", len(papers))

	return papers, nil
}

func (f *Fetcher) queryURL(maxResults int) (string, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid arxiv base url %q: %w", f.baseURL, err)
	}

	q := u.Query()
	q.Set("search_query", searchQuery(f.categories))
	q.Set("sortBy", "submittedDate")
	q.Set("sortOrder", "descending")
	q.Set("start", "0")
	q.Set("max_results", strconv.Itoa(maxResults))
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// searchQuery ORs the categories together: "cat:cs.CL OR cat:cs.AI".
func searchQuery(categories []string) string {
	terms := make([]string, 0, len(categories))
	for _, c := range categories {
		terms = append(terms, "cat:"+c)
	}
	return strings.Join(terms, " OR ")
}

func paperFromEntry(entry *atom.Entry) model.Paper {
	authors := make([]string, 0, len(entry.Authors))
	for _, a := range entry.Authors {
		if a == nil {
			continue
		}
		if name := collapseSpace(a.Name); name != "" {
			authors = append(authors, name)
		}
	}

	var published time.Time
	if entry.PublishedParsed != nil {
		p := entry.PublishedParsed.UTC()
		published = time.Date(p.Year(), p.Month(), p.Day(), 0, 0, 0, 0, time.UTC)
	}

	return model.Paper{
		Title:     collapseSpace(entry.Title),
		Authors:   authors,
		Abstract:  collapseSpace(entry.Summary),
		PDFURL:    pdfURL(entry),
		Published: published,
	}
}

// pdfURL prefers the link titled "pdf" and otherwise derives it from the abs id.
func pdfURL(entry *atom.Entry) string {
	for _, l := range entry.Links {
		if l != nil && l.Title == "pdf" {
			return l.Href
		}
	}
	for _, l := range entry.Links {
		if l != nil && l.Type == "application/pdf" {
			return l.Href
		}
	}
	if strings.Contains(entry.ID, "/abs/") {
		return strings.Replace(entry.ID, "/abs/", "/pdf/", 1)
	}
	return ""
}

// collapseSpace joins the line-wrapped text arXiv returns into single spaces.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
