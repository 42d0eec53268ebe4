package main

import (
	"encoding/json"
	"net/http"

	mw "github.com/Abhinavgupta8977/dietitian-website/internal/middleware"
	"github.com/Abhinavgupta8977/dietitian-website/internal/pricing"
	"github.com/Abhinavgupta8977/dietitian-website/internal/seo"
)

// ServicesHandler renders the programs and pricing page.
func ServicesHandler(w http.ResponseWriter, r *http.Request) {
	site, ok := loadSite(w, r)
	if !ok {
		return
	}
	lang := mw.Lang(r)
	view := buildServicesView(site, r.URL.Query())
	title := i18nOrDefault(lang, "services.title", "Services")
	desc := i18nOrDefault(lang, "services.description", "Nutrition programs for weight management, muscle gain, diabetes, PCOS and general wellness, with monthly or yearly pricing.")

	vm := newPageData(r, site, r.URL.Path, title, desc)
	vm.Services = view

	offers := make([]seo.Offer, 0, len(view.Prices))
	for _, p := range view.Prices {
		offers = append(offers, seo.Offer{Name: p.Plan.Name, Price: p.Amount, Unit: p.Unit})
	}
	vm.SEO.JSONLD = append(vm.SEO.JSONLD, seo.JSON(seo.Service(title, desc, vm.SEO.Canonical, offers)))
	renderPage(w, r, "services", vm)
}

// PlansFrag renders the filter bar, pricing cards and period toggle.
func PlansFrag(w http.ResponseWriter, r *http.Request) {
	site, ok := loadSite(w, r)
	if !ok {
		return
	}
	view := buildServicesView(site, r.URL.Query())
	push := "/services"
	if view.Query != "" {
		push += "?" + view.Query
	}
	mw.PushURL(w, push)
	renderTemplate(w, r, "frag_services_plans", view)
}

type planPayload struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Popular     bool          `json:"popular"`
	Categories  []string      `json:"categories"`
	Features    []string      `json:"features"`
	Price       pricing.Price `json:"price"`
}

// PlansAPIHandler answers the filtered, priced plans as JSON.
func PlansAPIHandler(w http.ResponseWriter, r *http.Request) {
	site, ok := loadSite(w, r)
	if !ok {
		return
	}
	view := buildServicesView(site, r.URL.Query())
	out := make([]planPayload, 0, len(view.Prices))
	for _, p := range view.Prices {
		out = append(out, planPayload{
			ID:          p.Plan.ID,
			Name:        p.Plan.Name,
			Description: p.Plan.Description,
			Popular:     p.Plan.Popular,
			Categories:  p.Plan.Categories,
			Features:    p.Plan.Features,
			Price:       p,
		})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"category": view.Category,
		"period":   view.Period,
		"plans":    out,
	})
}
