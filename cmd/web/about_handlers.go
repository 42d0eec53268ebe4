package main

import (
	"net/http"

	mw "github.com/Abhinavgupta8977/dietitian-website/internal/middleware"
)

// AboutHandler renders the dietitian profile page.
func AboutHandler(w http.ResponseWriter, r *http.Request) {
	site, ok := loadSite(w, r)
	if !ok {
		return
	}
	lang := mw.Lang(r)
	title := i18nOrDefault(lang, "about.title", "About Us")
	desc := i18nOrDefault(lang, "about.description", "Meet the registered dietitian behind NutriGlow: credentials, milestones and client results.")

	vm := newPageData(r, site, r.URL.Path, title, desc)
	vm.About = buildAboutView(site, queryInt(r, "i"))
	if img := site.About.Portrait.URL; img != "" {
		vm.SEO.OG.Image = img
		vm.SEO.Twitter.Image = img
	}
	renderPage(w, r, "about", vm)
}

// TimelineFrag renders the timeline with entry ?i= highlighted.
func TimelineFrag(w http.ResponseWriter, r *http.Request) {
	site, ok := loadSite(w, r)
	if !ok {
		return
	}
	renderTemplate(w, r, "frag_timeline", buildTimelineView(site.About.Timeline, queryInt(r, "i")))
}
