package github

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v66/github"
)

// ErrInvalidRepoName indicates a repository full name that is not "owner/name".
var ErrInvalidRepoName = errors.New("invalid repository full name")

// Client provides the pull request operations the bot needs, authenticated for one installation.
type Client struct {
	gh *gh.Client
}

func newClient(token, baseURL string) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	client := gh.NewClient(nil).WithAuthToken(token)
	client.BaseURL = u
	return &Client{gh: client}, nil
}

// SplitRepoFullName splits "owner/name" into its parts.
func SplitRepoFullName(fullName string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(fullName, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidRepoName, fullName)
	}
	return owner, repo, nil
}

// GetPullRequest fetches a pull request by number.
func (c *Client) GetPullRequest(ctx context.Context, repoFullName string, number int) (*PullRequestRef, error) {
	owner, repo, err := SplitRepoFullName(repoFullName)
	if err != nil {
		return nil, err
	}

	pr, _, err := c.gh.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch pull request: %w", err)
	}

	return &PullRequestRef{
		RepoFullName: repoFullName,
		Number:       pr.GetNumber(),
		HeadSHA:      pr.GetHead().GetSHA(),
		BaseSHA:      pr.GetBase().GetSHA(),
		Title:        pr.GetTitle(),
		Body:         pr.GetBody(),
		HTMLURL:      pr.GetHTMLURL(),
	}, nil
}

// ListFiles fetches every file changed in a pull request, following pagination.
// Order is the order the API returns.
func (c *Client) ListFiles(ctx context.Context, repoFullName string, number int) ([]FileChange, error) {
	owner, repo, err := SplitRepoFullName(repoFullName)
	if err != nil {
		return nil, err
	}

	files := []FileChange{}
	opts := &gh.ListOptions{PerPage: 100}
	for {
		page, resp, err := c.gh.PullRequests.ListFiles(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list pull request files: %w", err)
		}

		for _, f := range page {
			files = append(files, FileChange{
				Filename:  f.GetFilename(),
				Status:    f.GetStatus(),
				Additions: f.GetAdditions(),
				Deletions: f.GetDeletions(),
				Changes:   f.GetChanges(),
				Patch:     f.GetPatch(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return files, nil
}

// PullRequest returns a handle for posting comments on the given pull request.
func (c *Client) PullRequest(ref *PullRequestRef) (*PullRequestHandle, error) {
	owner, repo, err := SplitRepoFullName(ref.RepoFullName)
	if err != nil {
		return nil, err
	}
	return &PullRequestHandle{
		client:  c,
		owner:   owner,
		repo:    repo,
		number:  ref.Number,
		headSHA: ref.HeadSHA,
	}, nil
}

// PullRequestHandle posts comments on one pull request.
type PullRequestHandle struct {
	client  *Client
	owner   string
	repo    string
	number  int
	headSHA string
}

// CreateIssueComment posts a comment on the PR conversation (via the issues API).
func (h *PullRequestHandle) CreateIssueComment(ctx context.Context, body string) error {
	_, _, err := h.client.gh.Issues.CreateComment(ctx, h.owner, h.repo, h.number, &gh.IssueComment{
		Body: gh.String(body),
	})
	if err != nil {
		return fmt.Errorf("failed to create issue comment: %w", err)
	}
	return nil
}

// CreateReviewComment posts an inline comment anchored at path/line on the head commit.
func (h *PullRequestHandle) CreateReviewComment(ctx context.Context, path string, line int, body string) error {
	_, _, err := h.client.gh.PullRequests.CreateComment(ctx, h.owner, h.repo, h.number, &gh.PullRequestComment{
		Body:     gh.String(body),
		CommitID: gh.String(h.headSHA),
		Path:     gh.String(path),
		Line:     gh.Int(line),
		Side:     gh.String("RIGHT"),
	})
	if err != nil {
		return fmt.Errorf("failed to create review comment: %w", err)
	}
	return nil
}
