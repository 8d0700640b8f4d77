package parsers

import (
	"strings"

	"github.com/owasp-blt/showcase/models"
)

// FromIssue builds a Submission from one raw issue plus its aggregated
// reactions and latest comment. The second return value is SkipNone for a
// renderable submission and a reason otherwise; a skip is never an error.
func FromIssue(issue models.Issue, reactions models.ReactionTotals, lastComment *models.Comment, titlePrefix string, winner bool) (models.Submission, models.SkipReason) {
	fields := ParseBody(issue.Body)

	title := strings.TrimSpace(strings.Replace(issue.Title, titlePrefix+" ", "", 1))
	if title == "" {
		title = "Untitled"
	}
	if reactions == nil {
		reactions = models.ReactionTotals{}
	}

	sub := models.Submission{
		Author:       issue.User.Login,
		AuthorURL:    issue.User.HTMLURL,
		AuthorAvatar: issue.User.AvatarURL,
		Title:        title,
		IssueNumber:  issue.Number,
		IssueURL:     issue.HTMLURL,
		CreatedAt:    issue.CreatedAt,
		PreviewURL:   ExtractPreviewURL(fields, issue.Body),
		DesignURL:    ExtractDesignURL(fields),
		Category:     ExtractCategory(fields),
		Description:  ExtractDescription(fields),
		Reactions:    reactions,
		CommentCount: issue.Comments,
		LastComment:  CommentSnippet(lastComment),
		Winner:       winner,
	}

	if reason := sub.Validate(); reason != models.SkipNone {
		return models.Submission{}, reason
	}
	return sub, models.SkipNone
}
