package renderers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/owasp-blt/showcase/contests"
	"github.com/owasp-blt/showcase/enums"
	"github.com/owasp-blt/showcase/models"
)

//go:embed templates/showcase.html
var pageTemplates embed.FS

// Badge colour per submission category; unknown categories fall back to grey.
var categoryColours = map[string]string{
	"UI / Website Redesign":    "bg-blue-100 text-blue-700 dark:bg-blue-900 dark:text-blue-200",
	"Logo / Brand Identity":    "bg-purple-100 text-purple-700 dark:bg-purple-900 dark:text-purple-200",
	"Banner / Marketing":       "bg-yellow-100 text-yellow-700 dark:bg-yellow-900 dark:text-yellow-200",
	"Icon Set":                 "bg-green-100 text-green-700 dark:bg-green-900 dark:text-green-200",
	"Mobile App":               "bg-indigo-100 text-indigo-700 dark:bg-indigo-900 dark:text-indigo-200",
	"T-Shirt / Apparel Design": "bg-pink-100 text-pink-700 dark:bg-pink-900 dark:text-pink-200",
}

var showcaseTemplate = template.Must(template.New("showcase").Funcs(template.FuncMap{
	"plural": func(n int) string {
		if n == 1 {
			return ""
		}
		return "s"
	},
	"isoDate": func(t time.Time) string {
		return t.UTC().Format("2006-01-02")
	},
	"catColour": func(category string) string {
		if colour, ok := categoryColours[category]; ok {
			return colour
		}
		return "bg-gray-100 text-gray-700 dark:bg-gray-700 dark:text-gray-200"
	},
}).ParseFS(pageTemplates, "templates/*.html"))

// ContestSection is one rendered contest tab: its configuration plus the
// sorted submissions.
type ContestSection struct {
	Contest     contests.Contest
	Submissions []models.Submission
	WinnerCount int
	SubmitURL   string
}

type pageData struct {
	RepoURL          string
	LastUpdated      string
	Year             int
	TotalAll         int
	ContestCount     int
	EarliestDeadline string
	FirstSubmitURL   string
	Sections         []ContestSection
	ReactionContents []models.ReactionContent
}

type PageRenderer struct {
	repo       string
	outputPath string
	rankMode   enums.RankMode
}

func NewPageRenderer(repo, outputPath string, rankMode enums.RankMode) *PageRenderer {
	return &PageRenderer{
		repo:       repo,
		outputPath: outputPath,
		rankMode:   rankMode,
	}
}

// Section builds one contest tab from its parsed submissions. Winners are
// pinned first in fetch order; everything else sorts by the ranking signal,
// descending, with creation time then issue number breaking ties so rebuilds
// of the same issue set order identically.
func (r *PageRenderer) Section(contest contests.Contest, subs []models.Submission) ContestSection {
	sorted := SortSubmissions(subs, r.rankMode)
	winners := 0
	for _, s := range sorted {
		if s.Winner {
			winners++
		}
	}
	return ContestSection{
		Contest:     contest,
		Submissions: sorted,
		WinnerCount: winners,
		SubmitURL:   fmt.Sprintf("https://github.com/%s/issues/new?template=%s", r.repo, contest.Template),
	}
}

func SortSubmissions(subs []models.Submission, mode enums.RankMode) []models.Submission {
	rank := func(s models.Submission) int {
		if mode == enums.RankModeAll {
			return s.Reactions.Total()
		}
		return s.Reactions.Thumbs()
	}

	var winners, rest []models.Submission
	for _, s := range subs {
		if s.Winner {
			winners = append(winners, s)
		} else {
			rest = append(rest, s)
		}
	}

	sort.SliceStable(rest, func(i, j int) bool {
		ri, rj := rank(rest[i]), rank(rest[j])
		if ri != rj {
			return ri > rj
		}
		if !rest[i].CreatedAt.Equal(rest[j].CreatedAt) {
			return rest[i].CreatedAt.Before(rest[j].CreatedAt)
		}
		return rest[i].IssueNumber < rest[j].IssueNumber
	})

	return append(winners, rest...)
}

// Render produces the complete page. The clock is passed in so identical
// sections and a fixed time always yield byte-identical output.
func (r *PageRenderer) Render(sections []ContestSection, now time.Time) ([]byte, error) {
	data := pageData{
		RepoURL:          "https://github.com/" + r.repo,
		LastUpdated:      now.UTC().Format("02 Jan 2006 15:04 UTC"),
		Year:             now.UTC().Year(),
		ContestCount:     len(sections),
		Sections:         sections,
		ReactionContents: models.ReactionContents,
	}
	for _, s := range sections {
		data.TotalAll += len(s.Submissions)
	}

	earliest := ""
	for _, s := range sections {
		d := s.Contest.Deadline.UTC().Format(time.RFC3339)
		if earliest == "" || d < earliest {
			earliest = d
		}
	}
	data.EarliestDeadline = earliest

	if len(sections) > 0 {
		data.FirstSubmitURL = sections[0].SubmitURL
	} else {
		data.FirstSubmitURL = data.RepoURL + "/issues/new"
	}

	var buf bytes.Buffer
	if err := showcaseTemplate.ExecuteTemplate(&buf, "showcase.html", data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WritePage renders and writes the page with a temp-file-then-rename so a
// reader never observes a partial file. The previous page is untouched if
// rendering fails.
func (r *PageRenderer) WritePage(sections []ContestSection, now time.Time) error {
	page, err := r.Render(sections, now)
	if err != nil {
		return err
	}

	dir := filepath.Dir(r.outputPath)
	tmp, err := os.CreateTemp(dir, ".showcase-*.html")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(page); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), r.outputPath)
}
