package parsers

import (
	"regexp"
	"strings"
)

const maxDescriptionLength = 200

var (
	markdownImageRe = regexp.MustCompile(`!\[.*?\]\((https?://[^)]+)\)`)
	htmlImageRe     = regexp.MustCompile(`(?i)<img\s[^>]*src="(https?://[^"]+)"`)
	bareImageURLRe  = regexp.MustCompile(`(?i)(https?://\S+\.(?:png|jpg|jpeg|gif|webp|svg))`)

	codeFenceRe = regexp.MustCompile("(?sm)^```[^\n]*\n(.*?)^```\\s*$")
	loneFenceRe = regexp.MustCompile("(?m)^```\\w*\\s*$")
	checkboxRe  = regexp.MustCompile(`(?m)^[-*]\s+\[[ x]\].*$`)
)

var previewKeys = []string{"preview_image_url", "preview_url", "preview_image"}

// ExtractPreviewURL finds the preview image URL from the parsed fields,
// falling back to the first image reference anywhere in the raw body.
func ExtractPreviewURL(fields map[string]string, body string) string {
	for _, key := range previewKeys {
		val := strings.TrimSpace(fields[key])
		if val == "" {
			continue
		}
		if strings.HasPrefix(val, "http") {
			return val
		}
		// The answer may wrap the URL in ![alt](url) or <img src="url">
		if m := markdownImageRe.FindStringSubmatch(val); m != nil {
			return m[1]
		}
		if m := htmlImageRe.FindStringSubmatch(val); m != nil {
			return m[1]
		}
	}

	if m := markdownImageRe.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	if m := htmlImageRe.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	if m := bareImageURLRe.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	return ""
}

var designKeys = []string{"design_prototype_link", "design_url", "prototype_link"}

func ExtractDesignURL(fields map[string]string) string {
	for _, key := range designKeys {
		val := strings.TrimSpace(fields[key])
		if val != "" && strings.HasPrefix(val, "http") {
			return val
		}
	}
	return ""
}

func ExtractCategory(fields map[string]string) string {
	if cat, ok := fields["design_category"]; ok {
		return strings.TrimSpace(cat)
	}
	if cat, ok := fields["category"]; ok {
		return strings.TrimSpace(cat)
	}
	return "Other"
}

// ExtractDescription cleans the description answer: matched code fences are
// unwrapped, stray fence markers and markdown checkboxes are removed, and the
// text is truncated to a card-sized snippet. Escaping is left to the template.
func ExtractDescription(fields map[string]string) string {
	desc := strings.TrimSpace(fields["description"])
	desc = codeFenceRe.ReplaceAllString(desc, "$1")
	desc = loneFenceRe.ReplaceAllString(desc, "")
	desc = checkboxRe.ReplaceAllString(desc, "")
	desc = strings.TrimSpace(desc)
	return truncate(desc, maxDescriptionLength)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "…"
}
