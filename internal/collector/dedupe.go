package collector

import (
	"strings"

	"stockintel/internal/model"
)

// Deduplicate removes near-duplicate articles in a single greedy pass,
// preserving first-seen order. A later article is dropped when its
// normalized URL or its normalized title matches any earlier kept article.
// Articles with an empty URL or title cannot be deduplicated safely and
// are dropped unconditionally.
func Deduplicate(articles []model.Article) []model.Article {
	seenURLs := make(map[string]struct{}, len(articles))
	seenTitles := make(map[string]struct{}, len(articles))

	unique := make([]model.Article, 0, len(articles))
	for _, a := range articles {
		if a.URL == "" || a.Title == "" {
			continue
		}

		urlKey := strings.ToLower(strings.TrimSpace(a.URL))
		titleKey := strings.ToLower(strings.TrimSpace(a.Title))

		if _, ok := seenURLs[urlKey]; ok {
			continue
		}
		if _, ok := seenTitles[titleKey]; ok {
			continue
		}

		seenURLs[urlKey] = struct{}{}
		seenTitles[titleKey] = struct{}{}
		unique = append(unique, a)
	}

	return unique
}
