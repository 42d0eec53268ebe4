// Package handlers holds the view models shared by every page template.
package handlers

import (
	"github.com/Abhinavgupta8977/dietitian-website/internal/content"
	"github.com/Abhinavgupta8977/dietitian-website/internal/nav"
	"github.com/Abhinavgupta8977/dietitian-website/internal/theme"
)

// PageData is a generic view model for pages using the shared layout.
type PageData struct {
	Title     string
	Lang      string
	SEO       SEOData
	Analytics Analytics

	Page        nav.Page
	Path        string
	Nav         []nav.RenderedItem
	Footer      []nav.RenderedItem
	Breadcrumbs []nav.Crumb
	Theme       theme.Mode
	CSRFToken   string

	Brand      content.Brand
	Newsletter NewsletterView
	Chat       any

	// Optional per-page view model payloads
	Home     any
	About    any
	Services any
	Blog     any
	Article  any
	Contact  any
}

// Dark reports whether the dark presentation flag is set on <html>.
func (p PageData) Dark() bool { return p.Theme.IsDark() }

// NewsletterView feeds the "Join the Glow" form in the footer and sidebar.
type NewsletterView struct {
	content.Newsletter
	Email      string
	Subscribed bool
	Error      string
	CSRFToken  string
}
