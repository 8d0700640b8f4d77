package models

import "time"

// Submission is one parsed, renderable design-contest entry.
// Submissions are rebuilt from the issue tracker on every run and never
// mutated after construction.
type Submission struct {
	Author       string
	AuthorURL    string
	AuthorAvatar string
	Title        string
	IssueNumber  int
	IssueURL     string
	CreatedAt    time.Time
	PreviewURL   string
	DesignURL    string
	Category     string
	Description  string
	Reactions    ReactionTotals
	CommentCount int
	LastComment  *CommentSnippet
	Winner       bool
}

// CommentSnippet is the trimmed latest comment shown on a card.
type CommentSnippet struct {
	Author       string
	AuthorURL    string
	AuthorAvatar string
	Body         string
}

// SkipReason explains why an issue was excluded from the showcase.
// SkipNone means the submission is valid. Skips are warnings, never
// build failures.
type SkipReason string

const (
	SkipNone          SkipReason = ""
	SkipMissingAuthor SkipReason = "missing author"
	SkipNoLinks       SkipReason = "no usable links"
)

// Validate checks the render invariant: a submission needs an author and
// at least one link (preview image, design file, or issue page).
func (s Submission) Validate() SkipReason {
	if s.Author == "" {
		return SkipMissingAuthor
	}
	if s.PreviewURL == "" && s.DesignURL == "" && s.IssueURL == "" {
		return SkipNoLinks
	}
	return SkipNone
}
