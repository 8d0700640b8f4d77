package models

import "time"

type Issue struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	State     string    `json:"state"`
	HTMLURL   string    `json:"html_url"`
	Comments  int       `json:"comments"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `json:"user"`
	Labels    []Label   `json:"labels"`
}

type User struct {
	Login     string `json:"login"`
	HTMLURL   string `json:"html_url"`
	AvatarURL string `json:"avatar_url"`
}

type Label struct {
	Name string `json:"name"`
}

type Reaction struct {
	Content string `json:"content"`
	User    User   `json:"user"`
}

type Comment struct {
	Body      string    `json:"body"`
	HTMLURL   string    `json:"html_url"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `json:"user"`
}

func (i Issue) HasLabel(name string) bool {
	for _, label := range i.Labels {
		if label.Name == name {
			return true
		}
	}
	return false
}

// ReactionContent pairs a GitHub reaction content keyword with its emoji.
// The slice order is the order reaction pills render in.
type ReactionContent struct {
	Content string
	Emoji   string
}

var ReactionContents = []ReactionContent{
	{"+1", "👍"},
	{"-1", "👎"},
	{"laugh", "😄"},
	{"hooray", "🎉"},
	{"confused", "😕"},
	{"heart", "❤️"},
	{"rocket", "🚀"},
	{"eyes", "👀"},
}

// ReactionTotals maps a reaction content keyword to its count on one issue.
// Unknown content keywords are never stored.
type ReactionTotals map[string]int

func (t ReactionTotals) Thumbs() int {
	return t["+1"]
}

func (t ReactionTotals) Total() int {
	sum := 0
	for _, rc := range ReactionContents {
		sum += t[rc.Content]
	}
	return sum
}
