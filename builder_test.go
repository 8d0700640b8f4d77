package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/owasp-blt/showcase/contests"
	"github.com/owasp-blt/showcase/enums"
	"github.com/owasp-blt/showcase/metrics"
	"github.com/owasp-blt/showcase/models"
	"github.com/owasp-blt/showcase/renderers"
	"github.com/owasp-blt/showcase/sources"
)

var testContests = []contests.Contest{{
	ID:              "blt-redesign",
	Name:            "BLT App Redesign",
	Label:           "design-submission",
	TitlePrefix:     "[Design]",
	Template:        "design-submission.yml",
	Description:     "Redesign the OWASP BLT application interface.",
	Prize:           "$25",
	Deadline:        time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	DeadlineDisplay: "June 1, 2026",
	Icon:            "fa-solid fa-palette",
}}

func issue(number int, title, login string, labels ...string) models.Issue {
	iss := models.Issue{
		Number:    number,
		Title:     title,
		Body:      fmt.Sprintf("### Preview Image URL\n\nhttps://example.com/%d.png", number),
		HTMLURL:   fmt.Sprintf("https://github.com/owner/repo/issues/%d", number),
		CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(number) * time.Hour),
		User:      models.User{Login: login, HTMLURL: "https://github.com/" + login},
	}
	for _, l := range labels {
		iss.Labels = append(iss.Labels, models.Label{Name: l})
	}
	return iss
}

// fakeGithub serves the three endpoints a build touches.
type fakeGithub struct {
	labelled  []models.Issue
	allOpen   []models.Issue
	reactions map[int][]models.Reaction
}

func (f *fakeGithub) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/owner/repo/issues", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("labels") == "" {
			writeJSON(t, w, f.allOpen)
			return
		}
		writeJSON(t, w, f.labelled)
	})
	mux.HandleFunc("GET /repos/owner/repo/issues/{number}/reactions", func(w http.ResponseWriter, r *http.Request) {
		var number int
		fmt.Sscanf(r.PathValue("number"), "%d", &number)
		writeJSON(t, w, f.reactions[number])
	})
	mux.HandleFunc("GET /repos/owner/repo/issues/{number}/comments", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, []models.Comment{})
	})
	return mux
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if v == nil {
		fmt.Fprint(w, "[]")
		return
	}
	assert.NoError(t, json.NewEncoder(w).Encode(v))
}

func newTestBuilder(t *testing.T, handler http.Handler) (*Builder, string) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	out := filepath.Join(t.TempDir(), "index.html")
	client := sources.NewGithubClient(slog.Default(), server.Client(), server.URL, "owner/repo", "")
	renderer := renderers.NewPageRenderer("owner/repo", out, enums.RankModeThumbs)
	return NewBuilder(slog.Default(), client, renderer, metrics.NewRecorder(), testContests), out
}

func thumbs(n int) []models.Reaction {
	reactions := make([]models.Reaction, n)
	for i := range reactions {
		reactions[i] = models.Reaction{Content: "+1"}
	}
	return reactions
}

func TestBuild_RendersSortedSubmissions(t *testing.T) {
	fake := &fakeGithub{
		labelled: []models.Issue{
			issue(1, "[Design] Alpha", "alice", "design-submission"),
			issue(2, "[Design] Beta", "bob", "design-submission"),
			issue(3, "[Design] Gamma", "carol", "design-submission"),
		},
		reactions: map[int][]models.Reaction{
			1: thumbs(5),
			2: thumbs(5),
			3: thumbs(2),
		},
	}
	builder, out := newTestBuilder(t, fake.handler(t))

	assert.NoError(t, builder.Build(context.Background()))

	content, err := os.ReadFile(out)
	assert.NoError(t, err)
	html := string(content)

	// Equal counts keep creation order; fewer reactions sort last.
	aliceAt := strings.Index(html, "alice")
	bobAt := strings.Index(html, "bob")
	carolAt := strings.Index(html, "carol")
	assert.True(t, aliceAt > 0 && bobAt > aliceAt && carolAt > bobAt,
		"expected alice < bob < carol, got %d %d %d", aliceAt, bobAt, carolAt)
}

func TestBuild_SkipsMalformedIssueKeepsValid(t *testing.T) {
	fake := &fakeGithub{
		labelled: []models.Issue{
			issue(1, "[Design] Good", "alice", "design-submission"),
			issue(2, "[Design] Broken", "", "design-submission"),
		},
		reactions: map[int][]models.Reaction{},
	}
	builder, out := newTestBuilder(t, fake.handler(t))

	assert.NoError(t, builder.Build(context.Background()))

	content, err := os.ReadFile(out)
	assert.NoError(t, err)
	assert.Contains(t, string(content), "alice")
	assert.NotContains(t, string(content), "Broken")
}

func TestBuild_RateLimitAbortsWithoutWriting(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"API rate limit exceeded"}`)
	})
	builder, out := newTestBuilder(t, handler)

	err := builder.Build(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "403")
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "output must not be written on fetch failure")
}

func TestBuild_PicksUpUnlabelledIssueByTitlePrefix(t *testing.T) {
	fake := &fakeGithub{
		labelled: []models.Issue{
			issue(1, "[Design] Labelled", "alice", "design-submission"),
		},
		allOpen: []models.Issue{
			issue(1, "[Design] Labelled", "alice", "design-submission"),
			issue(2, "[Design] Forgot the label", "bob"),
			issue(3, "Unrelated issue", "mallory"),
		},
		reactions: map[int][]models.Reaction{},
	}
	builder, out := newTestBuilder(t, fake.handler(t))

	assert.NoError(t, builder.Build(context.Background()))

	content, err := os.ReadFile(out)
	assert.NoError(t, err)
	html := string(content)
	assert.Contains(t, html, "alice")
	assert.Contains(t, html, "bob")
	assert.NotContains(t, html, "mallory")
	// Deduplicated: the labelled issue renders exactly one card.
	assert.Equal(t, 1, strings.Count(html, "Contest submission: Labelled"))
}

func TestBuild_WinnerPinnedFirst(t *testing.T) {
	fake := &fakeGithub{
		labelled: []models.Issue{
			issue(1, "[Design] Popular", "alice", "design-submission"),
			issue(2, "[Design] Chosen", "winnie", "design-submission", "winner"),
		},
		reactions: map[int][]models.Reaction{
			1: thumbs(10),
		},
	}
	builder, out := newTestBuilder(t, fake.handler(t))

	assert.NoError(t, builder.Build(context.Background()))

	content, err := os.ReadFile(out)
	assert.NoError(t, err)
	html := string(content)
	assert.Contains(t, html, "Winner")
	assert.Less(t, strings.Index(html, "winnie"), strings.Index(html, "alice"),
		"winner card must precede higher-reaction cards")
}

func TestBuild_NoSubmissionsStillSucceeds(t *testing.T) {
	fake := &fakeGithub{reactions: map[int][]models.Reaction{}}
	builder, out := newTestBuilder(t, fake.handler(t))

	assert.NoError(t, builder.Build(context.Background()))

	content, err := os.ReadFile(out)
	assert.NoError(t, err)
	assert.Contains(t, string(content), "No submissions yet")
}
