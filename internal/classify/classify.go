// Package classify decides where a paper's metadata can come from by
// inspecting its URL, and hosts the URL-based year heuristics shared by the
// fetchers.
package classify

import (
	"regexp"
	"strconv"
	"strings"

	"KnowledgeBase/internal/domain"
)

const anthologyHost = "aclanthology.org"

var (
	arxivIDExpr = regexp.MustCompile(`arxiv\.org/(?:abs|pdf|html)/(\d+\.\d+)(?:v\d+)?`)

	// Anthology volume ids: /2024.emnlp-main.557 or the old /D15-1013 form.
	volumeYearExpr = regexp.MustCompile(`/(\d{4})\.\w+`)
	oldVolumeExpr  = regexp.MustCompile(`/[A-Z](\d{2})-\d+`)

	delimYearExpr    = regexp.MustCompile(`[/\-_.](\d{4})[/\-_.]`)
	trailingYearExpr = regexp.MustCompile(`/(\d{4})/?$`)
)

// Classify maps an item's URL and type onto a source kind. It is total: every
// paper resolves to exactly one of arxiv, anthology or other-paper, and every
// non-paper type resolves to non-paper regardless of URL shape.
func Classify(rawURL string, typ domain.ItemType) domain.SourceKind {
	if typ != domain.TypePaper {
		return domain.KindNonPaper
	}
	if _, ok := ArxivID(rawURL); ok {
		return domain.KindArxiv
	}
	if strings.Contains(rawURL, anthologyHost) {
		return domain.KindAnthology
	}
	return domain.KindOtherPaper
}

// ArxivID extracts the numeric arxiv identifier from an abs/pdf/html URL,
// dropping any version suffix.
func ArxivID(rawURL string) (string, bool) {
	m := arxivIDExpr.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// AnthologyYear reads the publication year out of an anthology URL path.
// Old single-letter volume ids carry a two-digit year: D15-1013 is 2015.
func AnthologyYear(rawURL string) (string, bool) {
	if m := volumeYearExpr.FindStringSubmatch(rawURL); m != nil {
		return m[1], true
	}
	if m := oldVolumeExpr.FindStringSubmatch(rawURL); m != nil {
		yr, _ := strconv.Atoi(m[1])
		if yr < 50 {
			return strconv.Itoa(2000 + yr), true
		}
		return strconv.Itoa(1900 + yr), true
	}
	return "", false
}

// YearFromURL scans any paper URL for a plausible publication year. Generic
// four-digit matches are only accepted inside 1990-2030 to avoid picking up
// identifiers.
func YearFromURL(rawURL string) (string, bool) {
	if year, ok := AnthologyYear(rawURL); ok {
		return year, true
	}
	for _, m := range delimYearExpr.FindAllStringSubmatch(rawURL, -1) {
		if year, ok := plausibleYear(m[1]); ok {
			return year, true
		}
	}
	if m := trailingYearExpr.FindStringSubmatch(rawURL); m != nil {
		if year, ok := plausibleYear(m[1]); ok {
			return year, true
		}
	}
	return "", false
}

func plausibleYear(digits string) (string, bool) {
	yr, err := strconv.Atoi(digits)
	if err != nil || yr < 1990 || yr > 2030 {
		return "", false
	}
	return digits, true
}
