package service

// article_derived.go
// Pure projection functions for the Article cached fields. They run at the
// write boundary (see articleService.recomputeDerived), never as implicit
// hooks, so each one is testable on its own.

import (
	"fmt"
	"strings"

	"github.com/sjwaight/gu/internal/model"
)

// calcByline generates the byline from the author slots. A non-empty
// Article.Byline overrides the generated value. With links=true each name is
// wrapped in an author anchor.
func calcByline(a *model.Article, links bool) string {
	if a.Byline != "" {
		return a.Byline
	}
	var names []string
	for _, author := range a.AuthorSlots() {
		if links {
			names = append(names, fmt.Sprintf("<a rel=\"author\" href='/author/%s'>%s</a>",
				author.ID, author.FullName()))
		} else {
			names = append(names, author.FullName())
		}
	}
	switch len(names) {
	case 0:
		return ""
	case 1:
		return "By " + names[0]
	case 2:
		return "By " + names[0] + " and " + names[1]
	default:
		return "By " + strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}

// calcSummaryText picks the article summary: the explicit summary text, else
// the subtitle, else the first paragraph of the body with tags stripped.
//
// The paragraph extraction is deliberately naive string partitioning — a full
// HTML parse proved too slow on large article bodies.
func calcSummaryText(a *model.Article) string {
	if a.SummaryText != "" {
		return a.SummaryText
	}
	if a.Subtitle != "" {
		return a.Subtitle
	}

	_, rest, found := strings.Cut(a.Body, "<p")
	if !found {
		return ""
	}
	_, rest, found = strings.Cut(rest, ">")
	if !found {
		return ""
	}
	para, _, found := strings.Cut(rest, "</p>")
	if !found {
		return ""
	}
	return stripTags(para)
}

// stripTags removes anything between '<' and '>'. Unterminated tags are
// dropped to the end of the string.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
