package main

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	mw "github.com/Abhinavgupta8977/dietitian-website/internal/middleware"
	"github.com/Abhinavgupta8977/dietitian-website/internal/nav"
	"github.com/Abhinavgupta8977/dietitian-website/internal/observability"
	"github.com/Abhinavgupta8977/dietitian-website/internal/submission"
	"github.com/Abhinavgupta8977/dietitian-website/internal/theme"
)

// ThemeToggleHandler flips the light/dark preference and persists it.
func ThemeToggleHandler(w http.ResponseWriter, r *http.Request) {
	next := mw.ThemeMode(r).Toggle()
	http.SetCookie(w, theme.Cookie(next, mw.SecureCookies()))
	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, backTo(r), http.StatusSeeOther)
		return
	}
	mw.Trigger(w, map[string]any{"theme:changed": map[string]bool{"dark": next.IsDark()}})
	renderTemplate(w, r, "frag_theme_toggle", map[string]any{
		"Theme":     next,
		"Dark":      next.IsDark(),
		"CSRFToken": mw.CSRFToken(r),
		"Lang":      mw.Lang(r),
	})
}

// NewsletterHandler subscribes the posted email address.
func NewsletterHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	site, ok := loadSite(w, r)
	if !ok {
		return
	}
	lang := mw.Lang(r)
	sess := mw.GetSession(r)
	email := strings.ToLower(strings.TrimSpace(r.PostForm.Get("email")))

	errMsg := ""
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		errMsg = i18nOrDefault(lang, "newsletter.error.email", "Please enter a valid email address.")
	} else if _, err := intake.Newsletter(r.Context(), email, submission.NewIdempotencyKey()); err != nil {
		observability.FromContext(r.Context()).Warn("newsletter delivery failed", zap.Error(err))
		errMsg = i18nOrDefault(lang, "newsletter.error.unavailable", "We couldn't subscribe you right now. Please try again.")
	} else {
		sess.Newsletter = email
		sess.MarkDirty()
	}

	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, backTo(r), http.StatusSeeOther)
		return
	}
	renderTemplate(w, r, "frag_newsletter", newsletterView(site, sess, email, errMsg))
}

// GoHandler navigates to a page by identifier; unknown identifiers go home.
func GoHandler(w http.ResponseWriter, r *http.Request) {
	target := nav.PathFor(nav.Resolve(chi.URLParam(r, "page")))
	if mw.IsHTMX(r.Context()) {
		w.Header().Set("HX-Location", fmt.Sprintf(`{"path":%q,"target":"body"}`, target))
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RobotsHandler serves robots.txt pointing at the sitemap.
func RobotsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "User-agent: *\nAllow: /\nDisallow: /api/\nDisallow: /chat/\n\nSitemap: %s\n", absoluteURLFor("/sitemap.xml"))
}

type sitemapURL struct {
	Loc     string `xml:"loc"`
	LastMod string `xml:"lastmod,omitempty"`
}

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// SitemapHandler lists every page and article.
func SitemapHandler(w http.ResponseWriter, r *http.Request) {
	site, ok := loadSite(w, r)
	if !ok {
		return
	}
	set := sitemapURLSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, p := range sitePaths(site) {
		u := sitemapURL{Loc: absoluteURLFor(p)}
		if slug, ok := strings.CutPrefix(p, "/blog/"); ok {
			if a, found := site.ArticleBySlug(slug); found {
				u.LastMod = a.PublishedAt.Format("2006-01-02")
			}
		}
		set.URLs = append(set.URLs, u)
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write([]byte(xml.Header))
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		observability.FromContext(r.Context()).Error("sitemap encode", zap.Error(err))
	}
}
