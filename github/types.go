// Package github provides GitHub App authentication, the REST client, and webhook handling for the bot.
package github

// WebhookEvent is the subset of a pull_request webhook payload the bot consumes.
// Optional objects are pointers so absent fields decode to nil instead of failing.
type WebhookEvent struct {
	Action       string        `json:"action"`
	Number       int           `json:"number"`
	PullRequest  *PullRequest  `json:"pull_request,omitempty"`
	Installation *Installation `json:"installation,omitempty"`
}

// InstallationID returns the installation id and whether it was present and non-zero.
func (e *WebhookEvent) InstallationID() (int64, bool) {
	if e == nil || e.Installation == nil || e.Installation.ID == 0 {
		return 0, false
	}
	return e.Installation.ID, true
}

// PullRequest represents the pull_request object of a webhook payload.
type PullRequest struct {
	Number  int     `json:"number"`
	Title   string  `json:"title"`
	Body    *string `json:"body"`
	HTMLURL string  `json:"html_url"`
	Head    *Ref    `json:"head"`
	Base    *Ref    `json:"base"`
}

// RepoFullName returns base.repo.full_name, or "" when any part is missing.
func (pr *PullRequest) RepoFullName() string {
	if pr == nil || pr.Base == nil || pr.Base.Repo == nil {
		return ""
	}
	return pr.Base.Repo.FullName
}

// Ref represents a git reference (branch/commit).
type Ref struct {
	Ref  string      `json:"ref"`
	SHA  string      `json:"sha"`
	Repo *Repository `json:"repo,omitempty"`
}

// Repository represents a GitHub repository.
type Repository struct {
	Name     string `json:"name"`
	FullName string `json:"full_name"`
}

// Installation represents a GitHub App installation.
type Installation struct {
	ID int64 `json:"id"`
}

// PullRequestRef is a read-only snapshot of a pull request fetched from the API.
type PullRequestRef struct {
	RepoFullName string
	Number       int
	HeadSHA      string
	BaseSHA      string
	Title        string
	Body         string
	HTMLURL      string
}

// FileChange represents a file changed in a pull request.
type FileChange struct {
	Filename  string
	Status    string // added, removed, modified, renamed, copied, changed, unchanged
	Additions int
	Deletions int
	Changes   int
	Patch     string // empty for binary or oversized files
}
