package collector

import (
	"testing"

	"stockintel/internal/model"

	"github.com/go-playground/assert/v2"
)

func article(id, url, title string) model.Article {
	return model.Article{
		ID:          id,
		Source:      "Test",
		Title:       title,
		URL:         url,
		PublishedAt: "2026-02-26T00:00:00Z",
		IngestedAt:  "2026-02-26T00:00:00Z",
		Language:    "en",
	}
}

func TestDeduplicate_SameURLDifferentTitle(t *testing.T) {
	articles := []model.Article{
		article("1", "http://a.com", "T1"),
		article("2", "http://a.com", "T2"),
		article("3", "http://b.com", "T3"),
	}

	unique := Deduplicate(articles)

	assert.Equal(t, 2, len(unique))
	assert.Equal(t, "1", unique[0].ID)
	assert.Equal(t, "3", unique[1].ID)
}

func TestDeduplicate_SameTitleDifferentURL(t *testing.T) {
	articles := []model.Article{
		article("1", "http://a.com", "Same Headline"),
		article("2", "http://b.com", "Same Headline"),
	}

	unique := Deduplicate(articles)

	assert.Equal(t, 1, len(unique))
	assert.Equal(t, "1", unique[0].ID)
}

func TestDeduplicate_NormalizesCaseAndWhitespace(t *testing.T) {
	articles := []model.Article{
		article("1", "http://a.com", "Breaking News"),
		article("2", "  HTTP://A.COM  ", "Other"),
		article("3", "http://c.com", " breaking news "),
	}

	unique := Deduplicate(articles)

	assert.Equal(t, 1, len(unique))
}

func TestDeduplicate_DropsEmptyURLOrTitle(t *testing.T) {
	articles := []model.Article{
		article("1", "", "Has Title"),
		article("2", "http://a.com", ""),
		article("3", "http://b.com", "Valid"),
	}

	unique := Deduplicate(articles)

	assert.Equal(t, 1, len(unique))
	assert.Equal(t, "3", unique[0].ID)
}

func TestDeduplicate_Idempotent(t *testing.T) {
	articles := []model.Article{
		article("1", "http://a.com", "T1"),
		article("2", "http://a.com", "T2"),
		article("3", "http://b.com", "T3"),
		article("4", "", ""),
	}

	once := Deduplicate(articles)
	twice := Deduplicate(once)

	assert.Equal(t, len(once), len(twice))
	assert.Equal(t, once, twice)
}

func TestDeduplicate_PreservesOrder(t *testing.T) {
	articles := []model.Article{
		article("3", "http://c.com", "C"),
		article("1", "http://a.com", "A"),
		article("2", "http://b.com", "B"),
	}

	unique := Deduplicate(articles)

	assert.Equal(t, 3, len(unique))
	assert.Equal(t, "3", unique[0].ID)
	assert.Equal(t, "1", unique[1].ID)
	assert.Equal(t, "2", unique[2].ID)
}
