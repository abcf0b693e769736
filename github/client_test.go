package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := newClient("test-token", server.URL)
	if err != nil {
		t.Fatalf("newClient() error = %v", err)
	}
	return client
}

func TestSplitRepoFullName(t *testing.T) {
	tests := []struct {
		name      string
		fullName  string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{name: "valid", fullName: "owner/repo", wantOwner: "owner", wantRepo: "repo"},
		{name: "empty", fullName: "", wantErr: true},
		{name: "no slash", fullName: "repo", wantErr: true},
		{name: "missing owner", fullName: "/repo", wantErr: true},
		{name: "missing repo", fullName: "owner/", wantErr: true},
		{name: "too many parts", fullName: "a/b/c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := SplitRepoFullName(tt.fullName)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRepoName) {
					t.Errorf("SplitRepoFullName() error = %v, want ErrInvalidRepoName", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("SplitRepoFullName() unexpected error = %v", err)
			}
			if owner != tt.wantOwner || repo != tt.wantRepo {
				t.Errorf("SplitRepoFullName() = %q, %q, want %q, %q", owner, repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}

func TestGetPullRequest(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/pulls/42", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"number": 42,
			"title": "feat: add awesome feature",
			"body": null,
			"html_url": "https://github.com/owner/repo/pull/42",
			"head": {"sha": "abc123"},
			"base": {"sha": "def456"}
		}`))
	})
	mux.HandleFunc("/repos/owner/repo/pulls/404", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
	})
	client := newTestClient(t, mux)

	t.Run("success", func(t *testing.T) {
		pr, err := client.GetPullRequest(context.Background(), "owner/repo", 42)
		if err != nil {
			t.Fatalf("GetPullRequest() error = %v", err)
		}
		want := PullRequestRef{
			RepoFullName: "owner/repo",
			Number:       42,
			HeadSHA:      "abc123",
			BaseSHA:      "def456",
			Title:        "feat: add awesome feature",
			Body:         "",
			HTMLURL:      "https://github.com/owner/repo/pull/42",
		}
		if *pr != want {
			t.Errorf("GetPullRequest() = %+v, want %+v", *pr, want)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if _, err := client.GetPullRequest(context.Background(), "owner/repo", 404); err == nil {
			t.Error("GetPullRequest() expected error for 404")
		}
	})

	t.Run("invalid repo name", func(t *testing.T) {
		if _, err := client.GetPullRequest(context.Background(), "not-a-repo", 42); !errors.Is(err, ErrInvalidRepoName) {
			t.Errorf("GetPullRequest() error = %v, want ErrInvalidRepoName", err)
		}
	})
}

func TestListFiles(t *testing.T) {
	var serverURL string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/pulls/1/files", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "2" {
			_, _ = w.Write([]byte(`[{"filename": "image.png", "status": "added", "additions": 0, "deletions": 0, "changes": 0}]`))
			return
		}
		if got := r.URL.Query().Get("per_page"); got != "100" {
			t.Errorf("per_page = %q, want 100", got)
		}
		w.Header().Set("Link", fmt.Sprintf(`<%s/repos/owner/repo/pulls/1/files?page=2&per_page=100>; rel="next"`, serverURL))
		_, _ = w.Write([]byte(`[
			{"filename": "main.go", "status": "modified", "additions": 3, "deletions": 1, "changes": 4, "patch": "@@ -1 +1 @@\n-a\n+b"},
			{"filename": "old.go", "status": "removed", "additions": 0, "deletions": 10, "changes": 10, "patch": "@@ -1,10 +0,0 @@"}
		]`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()
	serverURL = server.URL

	client, err := newClient("test-token", server.URL)
	if err != nil {
		t.Fatalf("newClient() error = %v", err)
	}

	files, err := client.ListFiles(context.Background(), "owner/repo", 1)
	if err != nil {
		t.Fatalf("ListFiles() error = %v", err)
	}

	want := []FileChange{
		{Filename: "main.go", Status: "modified", Additions: 3, Deletions: 1, Changes: 4, Patch: "@@ -1 +1 @@\n-a\n+b"},
		{Filename: "old.go", Status: "removed", Additions: 0, Deletions: 10, Changes: 10, Patch: "@@ -1,10 +0,0 @@"},
		{Filename: "image.png", Status: "added"},
	}
	if len(files) != len(want) {
		t.Fatalf("ListFiles() returned %d files, want %d", len(files), len(want))
	}
	for i := range want {
		if files[i] != want[i] {
			t.Errorf("files[%d] = %+v, want %+v", i, files[i], want[i])
		}
	}
}

func TestPullRequestHandle(t *testing.T) {
	var issueBodies []string
	var reviewComments []map[string]any

	mux := http.NewServeMux()
	mux.HandleFunc("/repos/owner/repo/issues/5/comments", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		issueBodies = append(issueBodies, body["body"])
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 1}`))
	})
	mux.HandleFunc("/repos/owner/repo/pulls/5/comments", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		reviewComments = append(reviewComments, body)
		if body["line"] == float64(999) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"Validation Failed"}`))
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 2}`))
	})
	client := newTestClient(t, mux)

	handle, err := client.PullRequest(&PullRequestRef{RepoFullName: "owner/repo", Number: 5, HeadSHA: "head-sha"})
	if err != nil {
		t.Fatalf("PullRequest() error = %v", err)
	}

	if err := handle.CreateIssueComment(context.Background(), "summary"); err != nil {
		t.Fatalf("CreateIssueComment() error = %v", err)
	}
	if len(issueBodies) != 1 || issueBodies[0] != "summary" {
		t.Errorf("issue comments = %v, want [summary]", issueBodies)
	}

	if err := handle.CreateReviewComment(context.Background(), "main.go", 12, "nit"); err != nil {
		t.Fatalf("CreateReviewComment() error = %v", err)
	}
	if len(reviewComments) != 1 {
		t.Fatalf("review comments = %d, want 1", len(reviewComments))
	}
	got := reviewComments[0]
	if got["path"] != "main.go" || got["line"] != float64(12) || got["commit_id"] != "head-sha" || got["side"] != "RIGHT" || got["body"] != "nit" {
		t.Errorf("review comment payload = %v", got)
	}

	if err := handle.CreateReviewComment(context.Background(), "main.go", 999, "nit"); err == nil {
		t.Error("CreateReviewComment() expected error for rejected line")
	}

	if _, err := client.PullRequest(&PullRequestRef{RepoFullName: "bad"}); !errors.Is(err, ErrInvalidRepoName) {
		t.Errorf("PullRequest() error = %v, want ErrInvalidRepoName", err)
	}
}
