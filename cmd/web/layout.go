package main

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Abhinavgupta8977/dietitian-website/internal/content"
	handlersPkg "github.com/Abhinavgupta8977/dietitian-website/internal/handlers"
	mw "github.com/Abhinavgupta8977/dietitian-website/internal/middleware"
	"github.com/Abhinavgupta8977/dietitian-website/internal/nav"
	"github.com/Abhinavgupta8977/dietitian-website/internal/observability"
	"github.com/Abhinavgupta8977/dietitian-website/internal/seo"
	"github.com/Abhinavgupta8977/dietitian-website/internal/viewstate"
)

// loadSite returns the current site data or answers 500.
func loadSite(w http.ResponseWriter, r *http.Request) (*content.Site, bool) {
	site, err := siteContent.Site(r.Context())
	if err != nil {
		observability.FromContext(r.Context()).Error("site data unavailable", zap.Error(err))
		mw.WriteError(w, r, http.StatusInternalServerError, "site data unavailable")
		return nil, false
	}
	return site, true
}

// sessionState returns the page-local state of the visitor session.
func sessionState(w http.ResponseWriter, r *http.Request) (*viewstate.Entry, bool) {
	entry, err := viewStore.Get(mw.GetSession(r).ID)
	if err != nil {
		observability.FromContext(r.Context()).Error("view state unavailable", zap.Error(err))
		mw.WriteError(w, r, http.StatusServiceUnavailable, "view state unavailable")
		return nil, false
	}
	return entry, true
}

func brandName(site *content.Site) string {
	return strings.TrimSpace(site.Brand.Name + " " + site.Brand.Suffix)
}

func localizeItems(lang string, items []nav.RenderedItem) []nav.RenderedItem {
	for i := range items {
		if items[i].Label == "" && items[i].LabelKey != "" {
			items[i].Label = i18nOrDefault(lang, items[i].LabelKey, nav.TitleFromSlug(string(items[i].Page)))
		}
	}
	return items
}

func localizeCrumbs(lang string, crumbs []nav.Crumb) []nav.Crumb {
	for i := range crumbs {
		if crumbs[i].LabelKey != "" {
			crumbs[i].Label = i18nOrDefault(lang, crumbs[i].LabelKey, crumbs[i].Label)
		}
	}
	return crumbs
}

// newPageData fills the layout fields shared by every page. path is the
// path whose navigation state is shown; it differs from the request path
// only when an unknown URL falls back to the home view.
func newPageData(r *http.Request, site *content.Site, path, title, desc string) handlersPkg.PageData {
	lang := mw.Lang(r)
	sess := mw.GetSession(r)
	brand := brandName(site)

	vm := handlersPkg.PageData{
		Title:       title,
		Lang:        lang,
		Analytics:   handlersPkg.AnalyticsFromConfig(appConfig.Analytics),
		Page:        nav.PageFor(path),
		Path:        path,
		Nav:         localizeItems(lang, nav.Build(path, site.Services.Categories)),
		Footer:      localizeItems(lang, nav.BuildFooter(path)),
		Breadcrumbs: localizeCrumbs(lang, nav.Breadcrumbs(path)),
		Theme:       mw.ThemeMode(r),
		CSRFToken:   sess.CSRFToken,
		Brand:       site.Brand,
		Newsletter:  newsletterView(site, sess, "", ""),
	}

	vm.SEO.Title = title + " | " + brand
	if path == "/" {
		vm.SEO.Title = brand + " | " + site.Brand.Tagline
	}
	vm.SEO.Description = desc
	vm.SEO.Canonical = absoluteURLFor(path)
	vm.SEO.OG.URL = vm.SEO.Canonical
	vm.SEO.OG.SiteName = brand
	vm.SEO.OG.Title = vm.SEO.Title
	vm.SEO.OG.Description = vm.SEO.Description
	vm.SEO.OG.Type = "website"
	if len(site.Home.HeroImages) > 0 {
		vm.SEO.OG.Image = site.Home.HeroImages[0].URL
	}
	vm.SEO.Twitter.Card = "summary_large_image"
	vm.SEO.Twitter.Image = vm.SEO.OG.Image
	vm.SEO.Alternates = buildAlternates(r)
	vm.SEO.JSONLD = []string{seo.JSON(breadcrumbLD(vm.Breadcrumbs))}
	return vm
}

func breadcrumbLD(crumbs []nav.Crumb) map[string]any {
	items := make([]seo.BreadcrumbItem, 0, len(crumbs))
	for _, c := range crumbs {
		items = append(items, seo.BreadcrumbItem{Name: c.Label, Item: absoluteURLFor(c.Href)})
	}
	return seo.BreadcrumbList(items)
}

func newsletterView(site *content.Site, sess *mw.SessionData, email, errMsg string) handlersPkg.NewsletterView {
	return handlersPkg.NewsletterView{
		Newsletter: site.Newsletter,
		Email:      email,
		Subscribed: sess.Newsletter != "",
		Error:      errMsg,
		CSRFToken:  sess.CSRFToken,
	}
}

func socialLinks(site *content.Site) []string {
	out := make([]string, 0, len(site.Brand.Social))
	for _, l := range site.Brand.Social {
		out = append(out, l.Href)
	}
	return out
}
