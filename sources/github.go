package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/owasp-blt/showcase/models"
)

const perPage = 100

// GithubClient talks to the GitHub REST API for one repository.
// Every call goes to the network; nothing is cached between calls, so a
// rebuild always reflects the tracker's current state.
type GithubClient struct {
	logger     *slog.Logger
	httpClient *http.Client
	apiBase    string
	repo       string // owner/repo
	token      string
}

func NewGithubClient(logger *slog.Logger, httpClient *http.Client, apiBase, repo, token string) *GithubClient {
	return &GithubClient{
		logger:     logger,
		httpClient: httpClient,
		apiBase:    strings.TrimRight(apiBase, "/"),
		repo:       repo,
		token:      token,
	}
}

// ListIssues returns all issues in the given state, optionally filtered by
// label. Pages are fetched until the API returns a short page.
func (c *GithubClient) ListIssues(ctx context.Context, state, label string) ([]models.Issue, error) {
	path := fmt.Sprintf("/repos/%s/issues?state=%s", c.repo, url.QueryEscape(state))
	if label != "" {
		path += "&labels=" + url.QueryEscape(label)
	}
	return listPages[models.Issue](ctx, c, path)
}

// ListReactions aggregates the reactions on one issue into per-content
// totals. Unknown reaction contents are ignored.
func (c *GithubClient) ListReactions(ctx context.Context, issueNumber int) (models.ReactionTotals, error) {
	path := fmt.Sprintf("/repos/%s/issues/%d/reactions", c.repo, issueNumber)
	reactions, err := listPages[models.Reaction](ctx, c, path)
	if err != nil {
		return nil, err
	}

	totals := models.ReactionTotals{}
	for _, reaction := range reactions {
		for _, rc := range models.ReactionContents {
			if reaction.Content == rc.Content {
				totals[reaction.Content]++
				break
			}
		}
	}
	return totals, nil
}

// LastComment returns the newest comment on an issue, or nil when the issue
// has none.
func (c *GithubClient) LastComment(ctx context.Context, issueNumber int) (*models.Comment, error) {
	path := fmt.Sprintf("/repos/%s/issues/%d/comments", c.repo, issueNumber)
	comments, err := listPages[models.Comment](ctx, c, path)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return nil, nil
	}
	return &comments[len(comments)-1], nil
}

func listPages[T any](ctx context.Context, c *GithubClient, path string) ([]T, error) {
	var results []T
	for page := 1; ; page++ {
		sep := "?"
		if strings.Contains(path, "?") {
			sep = "&"
		}
		pageURL := fmt.Sprintf("%s%s%sper_page=%d&page=%d", c.apiBase, path, sep, perPage, page)

		batch, err := getJSON[[]T](ctx, c, pageURL)
		if err != nil {
			return nil, err
		}
		results = append(results, batch...)
		c.logger.Debug("fetched page", "path", path, "page", page, "records", len(batch))
		if len(batch) < perPage {
			return results, nil
		}
	}
}

func getJSON[T any](ctx context.Context, c *GithubClient, requestURL string) (T, error) {
	var out T

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return out, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	req.Header.Set("User-Agent", "blt-showcase-builder")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		msg := strings.TrimSpace(string(body))
		if len(msg) > 300 {
			msg = msg[:300] + "..."
		}
		return out, fmt.Errorf("github returned status %d for %s: %s", resp.StatusCode, requestURL, msg)
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}
