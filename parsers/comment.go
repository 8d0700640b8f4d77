package parsers

import (
	"regexp"
	"strings"

	"github.com/owasp-blt/showcase/models"
)

const maxCommentLength = 120

var (
	commentImageRe = regexp.MustCompile(`!\[.*?\]\(.*?\)`)
	commentLinkRe  = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
)

// CommentSnippet trims a comment down to the short text shown on a card:
// markdown images are dropped, links keep their label only. Returns nil when
// nothing readable remains.
func CommentSnippet(comment *models.Comment) *models.CommentSnippet {
	if comment == nil {
		return nil
	}

	body := strings.TrimSpace(comment.Body)
	body = commentImageRe.ReplaceAllString(body, "")
	body = commentLinkRe.ReplaceAllString(body, "$1")
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}

	return &models.CommentSnippet{
		Author:       comment.User.Login,
		AuthorURL:    comment.User.HTMLURL,
		AuthorAvatar: comment.User.AvatarURL,
		Body:         truncate(body, maxCommentLength),
	}
}
