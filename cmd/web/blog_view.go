package main

import (
	"github.com/Abhinavgupta8977/dietitian-website/internal/blog"
	"github.com/Abhinavgupta8977/dietitian-website/internal/content"
	"github.com/Abhinavgupta8977/dietitian-website/internal/nav"
)

// BlogView is the resource list payload.
type BlogView struct {
	Criteria   blog.Criteria
	Articles   []ArticleCard
	Total      int
	Categories []blog.CategoryCount
	Tags       []TagOption
	Sidebar    SidebarView
	// Query is the encoded criteria, empty when nothing is selected.
	Query string
}

// TagOption is a tag filter choice.
type TagOption struct {
	ID    string
	Label string
}

// ArticleCard is an article with its resolved category label.
type ArticleCard struct {
	content.Article
	CategoryLabel string
}

// SidebarView mirrors blog.Sidebar with cards.
type SidebarView struct {
	Featured    []ArticleCard
	Popular     []ArticleCard
	Recommended []ArticleCard
	Categories  []blog.CategoryCount
}

// ArticleView is the article detail payload.
type ArticleView struct {
	Article ArticleCard
	Related []ArticleCard
	Tags    []TagOption
}

func cards(site *content.Site, list []content.Article) []ArticleCard {
	out := make([]ArticleCard, 0, len(list))
	for _, a := range list {
		out = append(out, ArticleCard{Article: a, CategoryLabel: site.BlogCategoryLabel(a.Category)})
	}
	return out
}

func tagOptions(tags []string) []TagOption {
	out := make([]TagOption, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagOption{ID: t, Label: nav.TitleFromSlug(t)})
	}
	return out
}

func buildBlogView(site *content.Site, c blog.Criteria) BlogView {
	sb := blog.BuildSidebar(site)
	return BlogView{
		Criteria:   c,
		Articles:   cards(site, blog.Filter(site.Articles, c)),
		Total:      len(site.Articles),
		Categories: sb.Categories,
		Tags:       tagOptions(site.Blog.Tags),
		Sidebar: SidebarView{
			Featured:    cards(site, sb.Featured),
			Popular:     cards(site, sb.Popular),
			Recommended: cards(site, sb.Recommended),
			Categories:  sb.Categories,
		},
		Query: c.Query().Encode(),
	}
}

func buildArticleView(site *content.Site, a content.Article) ArticleView {
	return ArticleView{
		Article: ArticleCard{Article: a, CategoryLabel: site.BlogCategoryLabel(a.Category)},
		Related: cards(site, blog.Related(site.Articles, a, 3)),
		Tags:    tagOptions(a.Tags),
	}
}
