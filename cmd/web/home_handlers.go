package main

import (
	"net/http"
	"strconv"
	"strings"

	mw "github.com/Abhinavgupta8977/dietitian-website/internal/middleware"
	"github.com/Abhinavgupta8977/dietitian-website/internal/seo"
)

// HomeHandler renders the landing page.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	renderHome(w, r, http.StatusOK)
}

// NotFoundHandler answers unknown paths with the home view.
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	if mw.IsHTMX(r.Context()) {
		mw.WriteError(w, r, http.StatusNotFound, "not found")
		return
	}
	renderHome(w, r, http.StatusNotFound)
}

func renderHome(w http.ResponseWriter, r *http.Request, status int) {
	site, ok := loadSite(w, r)
	if !ok {
		return
	}
	lang := mw.Lang(r)
	title := i18nOrDefault(lang, "home.title", "Home")
	desc := i18nOrDefault(lang, "home.description", "Personalized nutrition coaching and science-based meal plans from a registered dietitian.")

	vm := newPageData(r, site, "/", title, desc)
	vm.Home = buildHomeView(site, queryInt(r, "t"))
	vm.Chat = buildChatWidget(r, site)
	vm.SEO.JSONLD = append(vm.SEO.JSONLD,
		seo.JSON(seo.WebSite(brandName(site), absoluteURLFor("/"), absoluteURLFor("/blog")+"?q={search_term_string}")),
		seo.JSON(seo.HealthBusiness(brandName(site), absoluteURLFor("/"), site.Brand.Phone, site.Brand.Email, site.Brand.Address, socialLinks(site))),
	)
	if status == http.StatusNotFound {
		vm.SEO.Robots = "noindex"
	}
	renderPageStatus(w, r, status, "home", vm)
}

// TestimonialFrag renders one carousel slide; the slide schedules the next.
func TestimonialFrag(w http.ResponseWriter, r *http.Request) {
	site, ok := loadSite(w, r)
	if !ok {
		return
	}
	renderTemplate(w, r, "frag_testimonial", buildTestimonialView(site.Home.Testimonials, queryInt(r, "t")))
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(key)))
	if err != nil {
		return 0
	}
	return n
}

func itoa(n int) string { return strconv.Itoa(n) }
