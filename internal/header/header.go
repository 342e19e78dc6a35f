package header

import (
	"regexp"
	"strings"
)

var (
	titleLine       = regexp.MustCompile(`(?im)^Title:[ \t]*(.*)$`)
	descriptionLine = regexp.MustCompile(`(?im)^Description:[ \t]*(.*)$`)
)

// Header holds the labelled fields found at the top of an article file.
type Header struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Parse returns the first "Title:" and "Description:" lines of document.
// Labels are case-insensitive; a missing field is the empty string.
func Parse(document string) Header {
	return Header{
		Title:       firstValue(titleLine, document),
		Description: firstValue(descriptionLine, document),
	}
}

func firstValue(re *regexp.Regexp, document string) string {
	m := re.FindStringSubmatch(document)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
