// Package blog filters articles and assembles the resources sidebar.
package blog

import (
	"net/url"
	"sort"
	"strings"

	"github.com/Abhinavgupta8977/dietitian-website/internal/content"
)

// All is the sentinel for "no category/tag restriction".
const All = "all"

// Criteria are the three independent article filters, combined with AND.
type Criteria struct {
	Search   string
	Category string
	Tag      string
}

// FromQuery reads q, category and tag. The search term is kept verbatim,
// surrounding spaces included.
func FromQuery(q url.Values) Criteria {
	return Criteria{
		Search:   q.Get("q"),
		Category: strings.TrimSpace(q.Get("category")),
		Tag:      strings.TrimSpace(q.Get("tag")),
	}.normalized()
}

func (c Criteria) normalized() Criteria {
	if strings.EqualFold(c.Category, All) {
		c.Category = ""
	}
	if strings.EqualFold(c.Tag, All) {
		c.Tag = ""
	}
	return c
}

// Active reports whether any predicate restricts the list.
func (c Criteria) Active() bool {
	c = c.normalized()
	return c.Search != "" || c.Category != "" || c.Tag != ""
}

// Reset returns the empty criteria, which match every article.
func (c Criteria) Reset() Criteria { return Criteria{} }

// CategoryOrAll returns the selected category or "all".
func (c Criteria) CategoryOrAll() string {
	if c = c.normalized(); c.Category == "" {
		return All
	}
	return c.Category
}

// TagOrAll returns the selected tag or "all".
func (c Criteria) TagOrAll() string {
	if c = c.normalized(); c.Tag == "" {
		return All
	}
	return c.Tag
}

// Query encodes the active criteria, omitting empty values.
func (c Criteria) Query() url.Values {
	c = c.normalized()
	q := url.Values{}
	if c.Search != "" {
		q.Set("q", c.Search)
	}
	if c.Category != "" {
		q.Set("category", c.Category)
	}
	if c.Tag != "" {
		q.Set("tag", c.Tag)
	}
	return q
}

// Matches reports whether a satisfies every active predicate. Search is a
// case-insensitive substring over title or excerpt; category and tag are exact.
func (c Criteria) Matches(a content.Article) bool {
	c = c.normalized()
	if s := strings.ToLower(c.Search); s != "" {
		if !strings.Contains(strings.ToLower(a.Title), s) && !strings.Contains(strings.ToLower(a.Excerpt), s) {
			return false
		}
	}
	if c.Category != "" && a.Category != c.Category {
		return false
	}
	if c.Tag != "" && !a.HasTag(c.Tag) {
		return false
	}
	return true
}

// Filter returns the articles matching c in their original order. The input
// is never modified.
func Filter(articles []content.Article, c Criteria) []content.Article {
	out := make([]content.Article, 0, len(articles))
	for _, a := range articles {
		if c.Matches(a) {
			out = append(out, a)
		}
	}
	return out
}

// CategoryCount is a category with the number of articles filed under it.
type CategoryCount struct {
	ID    string
	Label string
	Count int
}

// CategoryCounts counts articles per declared category. The first entry is
// "all" with the total.
func CategoryCounts(site *content.Site) []CategoryCount {
	counts := map[string]int{}
	for _, a := range site.Articles {
		counts[a.Category]++
	}
	out := make([]CategoryCount, 0, len(site.Blog.Categories)+1)
	out = append(out, CategoryCount{ID: All, Label: "All Categories", Count: len(site.Articles)})
	for _, cat := range site.Blog.Categories {
		out = append(out, CategoryCount{ID: cat.ID, Label: cat.Label, Count: counts[cat.ID]})
	}
	return out
}

// Sidebar groups the secondary article lists.
type Sidebar struct {
	Featured    []content.Article
	Popular     []content.Article
	Recommended []content.Article
	Categories  []CategoryCount
}

// BuildSidebar assembles the sidebar lists.
func BuildSidebar(site *content.Site) Sidebar {
	return Sidebar{
		Featured:    Featured(site.Articles, 2),
		Popular:     Popular(site.Articles, site.Blog.PopularCount),
		Recommended: Recommended(site),
		Categories:  CategoryCounts(site),
	}
}

// Featured returns up to n featured articles in original order. n <= 0 means all.
func Featured(articles []content.Article, n int) []content.Article {
	var out []content.Article
	for _, a := range articles {
		if a.Featured {
			out = append(out, a)
			if n > 0 && len(out) == n {
				break
			}
		}
	}
	return out
}

// Popular returns the n most viewed articles, most viewed first.
func Popular(articles []content.Article, n int) []content.Article {
	out := append([]content.Article(nil), articles...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Views > out[j].Views })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Recommended returns the curated articles in curated order.
func Recommended(site *content.Site) []content.Article {
	out := make([]content.Article, 0, len(site.Blog.Recommended))
	for _, id := range site.Blog.Recommended {
		if a, ok := site.ArticleByID(id); ok {
			out = append(out, a)
		}
	}
	return out
}

// Related returns up to n other articles sharing the category or a tag.
func Related(articles []content.Article, of content.Article, n int) []content.Article {
	var out []content.Article
	for _, a := range articles {
		if a.ID == of.ID {
			continue
		}
		related := a.Category == of.Category
		for _, t := range of.Tags {
			if a.HasTag(t) {
				related = true
				break
			}
		}
		if related {
			out = append(out, a)
			if len(out) == n {
				break
			}
		}
	}
	return out
}
