package seo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWebSiteSearchAction(t *testing.T) {
	got := JSON(WebSite("NutriGlow Wellness", "https://example.com", "https://example.com/blog?q="))
	require.JSONEq(t, `{
		"@context": "https://schema.org",
		"@type": "WebSite",
		"name": "NutriGlow Wellness",
		"url": "https://example.com",
		"potentialAction": {
			"@type": "SearchAction",
			"target": "https://example.com/blog?q={search_term_string}",
			"query-input": "required name=search_term_string"
		}
	}`, got)
}

func TestBreadcrumbPositions(t *testing.T) {
	got := BreadcrumbList([]BreadcrumbItem{
		{Name: "Home", Item: "https://example.com/"},
		{Name: "Resources", Item: "https://example.com/blog"},
	})
	items := got["itemListElement"].([]map[string]any)
	require.Len(t, items, 2)
	require.Equal(t, 1, items[0]["position"])
	require.Equal(t, 2, items[1]["position"])
}

func TestArticleOmitsEmptyFields(t *testing.T) {
	got := Article("Title", "", "", "", "")
	require.NotContains(t, got, "url")
	require.NotContains(t, got, "author")
	require.Equal(t, "Title", got["headline"])
}

func TestServiceOffers(t *testing.T) {
	got := JSON(Service("Programs", "Coaching", "", []Offer{{Name: "Essential", Price: 79, Unit: "/month"}}))
	require.Contains(t, got, `"priceCurrency":"USD"`)
	require.Contains(t, got, `"price":79`)
}
