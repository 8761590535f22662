package remote

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-github/v66/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/papertrail/internal/common"
)

const contentsPrefix = "/repos/octo/papers/contents/"

type storedFile struct {
	sha     string
	content string
}

type putRequest struct {
	Path    string
	Message string
	Content string
	SHA     string
	Branch  string
}

// fakeGitHub serves a minimal contents API backed by an in-memory file map.
type fakeGitHub struct {
	files     map[string]storedFile
	getStatus int
	puts      []putRequest
	refs      []string
	mu        sync.Mutex
}

func newFakeGitHub(files map[string]string) *fakeGitHub {
	f := &fakeGitHub{files: make(map[string]storedFile)}
	for path, content := range files {
		f.files[path] = storedFile{sha: "sha-" + path, content: content}
	}
	return f
}

func (f *fakeGitHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !strings.HasPrefix(r.URL.Path, contentsPrefix) && r.URL.Path != strings.TrimSuffix(contentsPrefix, "/") {
		http.NotFound(w, r)
		return
	}
	path := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, strings.TrimSuffix(contentsPrefix, "/")), "/")

	switch r.Method {
	case http.MethodGet:
		f.refs = append(f.refs, r.URL.Query().Get("ref"))
		if f.getStatus != 0 {
			w.WriteHeader(f.getStatus)
			_, _ = fmt.Fprint(w, `{"message": "Server Error"}`)
			return
		}
		f.serveGet(w, path)
	case http.MethodPut:
		f.servePut(w, r, path)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (f *fakeGitHub) serveGet(w http.ResponseWriter, path string) {
	if file, ok := f.files[path]; ok {
		writeJSON(w, http.StatusOK, fileJSON(path, file))
		return
	}

	prefix := path + "/"
	if path == "" {
		prefix = ""
	}
	seen := map[string]bool{}
	var entries []map[string]any
	for p := range f.files {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		rest := strings.TrimPrefix(p, prefix)
		name, _, isDir := strings.Cut(rest, "/")
		if seen[name] {
			continue
		}
		seen[name] = true
		typ := "file"
		if isDir {
			typ = "dir"
		}
		entries = append(entries, map[string]any{"type": typ, "name": name, "path": prefix + name})
	}
	if len(entries) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "Not Found"})
		return
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i]["name"].(string) < entries[j]["name"].(string)
	})
	writeJSON(w, http.StatusOK, entries)
}

func (f *fakeGitHub) servePut(w http.ResponseWriter, r *http.Request, path string) {
	var body struct {
		Message string `json:"message"`
		Content []byte `json:"content"`
		SHA     string `json:"sha"`
		Branch  string `json:"branch"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	f.puts = append(f.puts, putRequest{
		Path:    path,
		Message: body.Message,
		Content: string(body.Content),
		SHA:     body.SHA,
		Branch:  body.Branch,
	})

	existing, exists := f.files[path]
	if exists && body.SHA != existing.sha {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "sha mismatch"})
		return
	}

	stored := storedFile{sha: fmt.Sprintf("sha-%d", len(f.puts)), content: string(body.Content)}
	f.files[path] = stored

	status := http.StatusCreated
	if exists {
		status = http.StatusOK
	}
	writeJSON(w, status, map[string]any{
		"content": map[string]any{"type": "file", "name": path, "path": path, "sha": stored.sha},
		"commit":  map[string]any{"sha": "commit-sha", "message": body.Message},
	})
}

func fileJSON(path string, file storedFile) map[string]any {
	name := path[strings.LastIndex(path, "/")+1:]
	return map[string]any{
		"type":     "file",
		"encoding": "base64",
		"name":     name,
		"path":     path,
		"sha":      file.sha,
		"content":  base64.StdEncoding.EncodeToString([]byte(file.content)),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestRepository(t *testing.T, fake *fakeGitHub, branch string) *Repository {
	t.Helper()

	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	client := github.NewClient(nil)
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	client.BaseURL = baseURL

	repo, err := newRepository(client, Config{Token: "t", Repository: "octo/papers", Branch: branch},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return repo
}

func TestPublishCreatesMissingFile(t *testing.T) {
	fake := newFakeGitHub(nil)
	repo := newTestRepository(t, fake, "")

	err := repo.Publish(context.Background(), "paper_webpages_2024-07-16/a.html", []byte("<html></html>"), "Add webpage for paper: A")
	require.NoError(t, err)

	require.Len(t, fake.puts, 1)
	put := fake.puts[0]
	assert.Equal(t, "paper_webpages_2024-07-16/a.html", put.Path)
	assert.Equal(t, "Add webpage for paper: A", put.Message)
	assert.Equal(t, "<html></html>", put.Content)
	assert.Empty(t, put.SHA, "create must not send a sha")
}

func TestPublishUpdatesExistingFileWithSHA(t *testing.T) {
	fake := newFakeGitHub(map[string]string{"dir/table.csv": "old"})
	repo := newTestRepository(t, fake, "main")

	err := repo.Publish(context.Background(), "dir/table.csv", []byte("new"), "Update table.csv")
	require.NoError(t, err)

	require.Len(t, fake.puts, 1)
	assert.Equal(t, "sha-dir/table.csv", fake.puts[0].SHA)
	assert.Equal(t, "main", fake.puts[0].Branch)
	assert.Equal(t, "new", fake.files["dir/table.csv"].content)
	assert.Equal(t, []string{"main"}, fake.refs)
}

func TestPublishFailsOnExistenceCheckError(t *testing.T) {
	fake := newFakeGitHub(nil)
	fake.getStatus = http.StatusInternalServerError
	repo := newTestRepository(t, fake, "")

	err := repo.Publish(context.Background(), "a.html", []byte("x"), "msg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to check a.html")
	assert.Empty(t, fake.puts, "no write after a failed existence check")
}

func TestPublishRejectsDirectoryPath(t *testing.T) {
	fake := newFakeGitHub(map[string]string{"dir/a.csv": "x"})
	repo := newTestRepository(t, fake, "")

	err := repo.Publish(context.Background(), "dir", []byte("x"), "msg")
	require.Error(t, err)
	assert.Empty(t, fake.puts)
}

func TestReadTable(t *testing.T) {
	fake := newFakeGitHub(map[string]string{
		"paper_classifications_2024-07-16/README.md":                        "notes",
		"paper_classifications_2024-07-16/classified_papers_2024-07-16.csv": "title,Rating\nA,highly relevant\n",
		"paper_classifications_2024-07-17.csv":                              "title,Rating\nB,somewhat relevant\n",
		"paper_classifications_2024-07-18/notes.txt":                        "none here",
	})
	repo := newTestRepository(t, fake, "")
	ctx := context.Background()

	t.Run("directory resolves to its csv", func(t *testing.T) {
		content, err := repo.ReadTable(ctx, "paper_classifications_2024-07-16")
		require.NoError(t, err)
		assert.Equal(t, "title,Rating\nA,highly relevant\n", content)
	})

	t.Run("file path", func(t *testing.T) {
		content, err := repo.ReadTable(ctx, "paper_classifications_2024-07-17.csv")
		require.NoError(t, err)
		assert.Equal(t, "title,Rating\nB,somewhat relevant\n", content)
	})

	t.Run("directory without csv", func(t *testing.T) {
		_, err := repo.ReadTable(ctx, "paper_classifications_2024-07-18")
		require.Error(t, err)
		assert.True(t, errors.Is(err, common.ErrNotFound))
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := repo.ReadTable(ctx, "paper_classifications_2024-07-19")
		require.Error(t, err)
		var ghErr *github.ErrorResponse
		assert.True(t, errors.As(err, &ghErr))
	})
}

func TestListRoot(t *testing.T) {
	fake := newFakeGitHub(map[string]string{
		"README.md":  "hi",
		"dir/a.csv":  "x",
		"dir/b.html": "y",
	})
	repo := newTestRepository(t, fake, "")

	paths, err := repo.ListRoot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "dir"}, paths)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"valid", Config{Token: "t", Repository: "octo/papers"}, nil},
		{"missing token", Config{Repository: "octo/papers"}, common.ErrMissingConfig},
		{"missing repository", Config{Token: "t"}, common.ErrInvalidConfig},
		{"no owner", Config{Token: "t", Repository: "/papers"}, common.ErrInvalidConfig},
		{"too many parts", Config{Token: "t", Repository: "a/b/c"}, common.ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestNewRepositoryValidates(t *testing.T) {
	_, err := NewRepository(context.Background(), Config{Repository: "octo/papers"}, nil)
	require.Error(t, err)

	repo, err := NewRepository(context.Background(), Config{Token: "t", Repository: "octo/papers"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "octo", repo.owner)
	assert.Equal(t, "papers", repo.name)
}
