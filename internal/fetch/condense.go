package fetch

import (
	"regexp"
	"strings"
)

// MaxSummarySentences caps how much of an abstract becomes the display
// summary.
const MaxSummarySentences = 3

var spaceExpr = regexp.MustCompile(`\s+`)

// CollapseSpace trims the text and flattens runs of whitespace to single
// spaces.
func CollapseSpace(text string) string {
	return spaceExpr.ReplaceAllString(strings.TrimSpace(text), " ")
}

// Condense flattens whitespace and cuts the text after at most max
// sentences, so multi-paragraph abstracts become a short display summary.
func Condense(text string, max int) string {
	text = CollapseSpace(text)

	count := 0
	for i := 0; i < len(text)-1; i++ {
		switch text[i] {
		case '.', '!', '?':
			if text[i+1] != ' ' {
				continue
			}
			count++
			if count >= max {
				return text[:i+1]
			}
		}
	}
	return text
}
