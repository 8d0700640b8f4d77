package parsers

import (
	"regexp"
	"strings"
)

var sectionRe = regexp.MustCompile(`\n###\s+`)

// ParseBody extracts the answers from a GitHub issue-form body.
// Issue forms render as markdown with a "### Field Label" heading above
// each answer, so the body splits into sections on those headings.
// Keys are normalized: lowercased, "/" and spaces collapsed to underscores.
func ParseBody(body string) map[string]string {
	fields := map[string]string{}
	if body == "" {
		return fields
	}

	sections := sectionRe.Split("\n"+body, -1)
	for _, section := range sections {
		lines := strings.Split(strings.TrimSpace(section), "\n")
		if len(lines) == 0 || lines[0] == "" {
			continue
		}
		heading := strings.TrimSpace(lines[0])
		value := strings.TrimSpace(strings.Join(lines[1:], "\n"))
		fields[normalizeKey(heading)] = value
	}
	return fields
}

func normalizeKey(heading string) string {
	key := strings.ToLower(heading)
	key = strings.ReplaceAll(key, "/", " ")
	key = strings.ReplaceAll(key, " ", "_")
	return strings.Trim(key, "_")
}
