package main

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Abhinavgupta8977/dietitian-website/internal/blog"
	"github.com/Abhinavgupta8977/dietitian-website/internal/content"
	mw "github.com/Abhinavgupta8977/dietitian-website/internal/middleware"
	"github.com/Abhinavgupta8977/dietitian-website/internal/observability"
	"github.com/Abhinavgupta8977/dietitian-website/internal/seo"
)

// BlogHandler renders the resource list with the filter from the query.
func BlogHandler(w http.ResponseWriter, r *http.Request) {
	site, ok := loadSite(w, r)
	if !ok {
		return
	}
	lang := mw.Lang(r)
	title := i18nOrDefault(lang, "blog.title", "Blog")
	desc := i18nOrDefault(lang, "blog.description", "Evidence-based nutrition articles, recipes and meal prep guides from our dietitians.")

	vm := newPageData(r, site, r.URL.Path, title, desc)
	criteria := blog.FromQuery(r.URL.Query())
	vm.Blog = buildBlogView(site, criteria)
	if criteria.Active() {
		// Filtered listings point at the unfiltered canonical.
		vm.SEO.Robots = "noindex, follow"
	}
	renderPage(w, r, "blog", vm)
}

// BlogArticlesFrag renders the filtered article grid and mirrors the
// criteria into the address bar.
func BlogArticlesFrag(w http.ResponseWriter, r *http.Request) {
	site, ok := loadSite(w, r)
	if !ok {
		return
	}
	view := buildBlogView(site, blog.FromQuery(r.URL.Query()))
	push := "/blog"
	if view.Query != "" {
		push += "?" + view.Query
	}
	mw.PushURL(w, push)
	renderTemplate(w, r, "frag_blog_articles", view)
}

// ArticleHandler renders one article.
func ArticleHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	a, err := siteContent.Article(r.Context(), slug)
	if errors.Is(err, content.ErrNotFound) {
		NotFoundHandler(w, r)
		return
	}
	if err != nil {
		observability.FromContext(r.Context()).Error("article lookup failed", zap.String("slug", slug), zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "article unavailable")
		return
	}
	site, ok := loadSite(w, r)
	if !ok {
		return
	}

	vm := newPageData(r, site, r.URL.Path, a.Title, a.Excerpt)
	vm.Article = buildArticleView(site, a)
	if len(vm.Breadcrumbs) > 0 {
		vm.Breadcrumbs[len(vm.Breadcrumbs)-1].Label = a.Title
		vm.SEO.JSONLD = []string{seo.JSON(breadcrumbLD(vm.Breadcrumbs))}
	}
	vm.SEO.OG.Type = "article"
	vm.SEO.OG.Image = a.Image.URL
	vm.SEO.Twitter.Image = a.Image.URL
	vm.SEO.JSONLD = append(vm.SEO.JSONLD,
		seo.JSON(seo.Article(a.Title, vm.SEO.Canonical, a.Image.URL, a.Author, a.PublishedAt.Format("2006-01-02"))))
	renderPage(w, r, "article", vm)
}
