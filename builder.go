package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/owasp-blt/showcase/contests"
	"github.com/owasp-blt/showcase/metrics"
	"github.com/owasp-blt/showcase/models"
	"github.com/owasp-blt/showcase/parsers"
	"github.com/owasp-blt/showcase/renderers"
	"github.com/owasp-blt/showcase/sources"
)

// Builder runs one showcase build: fetch the submission issues for every
// contest, parse them, render the page, write it out. The pipeline is
// strictly linear; any fetch or write failure aborts the build and leaves
// the previous page untouched.
type Builder struct {
	logger   *slog.Logger
	client   *sources.GithubClient
	renderer *renderers.PageRenderer
	recorder *metrics.Recorder
	contests []contests.Contest
}

func NewBuilder(logger *slog.Logger, client *sources.GithubClient, renderer *renderers.PageRenderer, recorder *metrics.Recorder, contestList []contests.Contest) *Builder {
	return &Builder{
		logger:   logger,
		client:   client,
		renderer: renderer,
		recorder: recorder,
		contests: contestList,
	}
}

func (b *Builder) Build(ctx context.Context) error {
	fetchStart := time.Now()

	// Fetched once so unlabelled submissions can be picked up by title
	// prefix across every contest.
	allOpen, err := b.client.ListIssues(ctx, "open", "")
	if err != nil {
		return errors.Wrap(err, "build: list open issues")
	}
	b.logger.Info("fetched open issues", "count", len(allOpen))

	sections := make([]renderers.ContestSection, 0, len(b.contests))
	for _, contest := range b.contests {
		issues, err := b.client.ListIssues(ctx, "open", contest.Label)
		if err != nil {
			return errors.Wrapf(err, "build: list issues for contest %s", contest.ID)
		}
		issues = b.mergeByTitlePrefix(issues, allOpen, contest.TitlePrefix)
		b.logger.Info("collected contest submissions", "contest", contest.ID, "count", len(issues))

		subs := make([]models.Submission, 0, len(issues))
		for _, issue := range issues {
			reactions, err := b.client.ListReactions(ctx, issue.Number)
			if err != nil {
				return errors.Wrapf(err, "build: reactions for issue #%d", issue.Number)
			}
			lastComment, err := b.client.LastComment(ctx, issue.Number)
			if err != nil {
				return errors.Wrapf(err, "build: comments for issue #%d", issue.Number)
			}

			winner := issue.HasLabel(contests.WinnerLabel)
			sub, reason := parsers.FromIssue(issue, reactions, lastComment, contest.TitlePrefix, winner)
			if reason != models.SkipNone {
				b.logger.Warn("skipping submission", "issue", issue.Number, "reason", string(reason))
				b.recorder.Skipped(string(reason))
				continue
			}
			subs = append(subs, sub)
		}

		sections = append(sections, b.renderer.Section(contest, subs))
		b.recorder.Rendered(contest.ID, len(subs))
	}
	b.recorder.FetchDuration(time.Since(fetchStart))

	now := time.Now()
	if err := b.renderer.WritePage(sections, now); err != nil {
		return errors.Wrap(err, "build: write page")
	}
	b.recorder.BuildSucceeded(now)
	b.logger.Info("showcase written", "contests", len(sections))
	return nil
}

// mergeByTitlePrefix adds open issues whose title carries the contest's
// prefix but are missing its label, deduplicated by issue number.
func (b *Builder) mergeByTitlePrefix(labelled, allOpen []models.Issue, prefix string) []models.Issue {
	if prefix == "" {
		return labelled
	}

	seen := make(map[int]bool, len(labelled))
	for _, issue := range labelled {
		seen[issue.Number] = true
	}
	for _, issue := range allOpen {
		if seen[issue.Number] || !strings.HasPrefix(issue.Title, prefix) {
			continue
		}
		labelled = append(labelled, issue)
		seen[issue.Number] = true
		b.logger.Info("picked up unlabelled issue", "issue", issue.Number, "title", issue.Title)
	}
	return labelled
}
