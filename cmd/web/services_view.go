package main

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/Abhinavgupta8977/dietitian-website/internal/content"
	"github.com/Abhinavgupta8977/dietitian-website/internal/pricing"
)

// ServicesView is the programs and pricing payload.
type ServicesView struct {
	Category      string
	CategoryLabel string
	Period        pricing.Period
	Categories    []pricing.CategoryCount
	Showcase      []content.Showcase
	Prices        []pricing.Price
	Columns       []pricing.Column
	Sections      []pricing.MatrixSection
	// Query is the encoded category and period selection.
	Query string
}

// ToggleHref links the page with the other billing period selected.
func (v ServicesView) ToggleHref() template.URL {
	return servicesURL("/services", v.Category, v.Period.Toggle())
}

// TogglePlansURL is the fragment equivalent of ToggleHref.
func (v ServicesView) TogglePlansURL() template.URL {
	return servicesURL("/services/plans", v.Category, v.Period.Toggle())
}

// CategoryHref links the page with category id and the current period.
func (v ServicesView) CategoryHref(id string) template.URL {
	return servicesURL("/services", id, v.Period)
}

// CategoryPlansURL is the fragment equivalent of CategoryHref.
func (v ServicesView) CategoryPlansURL(id string) template.URL {
	return servicesURL("/services/plans", id, v.Period)
}

// servicesURL joins path and the encoded selection. The query is encoded
// here, so templates must not escape it again.
func servicesURL(path, category string, period pricing.Period) template.URL {
	if q := servicesQuery(category, period); q != "" {
		path += "?" + q
	}
	return template.URL(path)
}

func servicesQuery(category string, period pricing.Period) string {
	q := url.Values{}
	if category != "" && category != "all" {
		q.Set("category", category)
	}
	if period.IsYearly() {
		q.Set("period", period.String())
	}
	return q.Encode()
}

func buildServicesView(site *content.Site, q url.Values) ServicesView {
	category := strings.ToLower(strings.TrimSpace(q.Get("category")))
	if category == "" {
		category = "all"
	}
	if category != "all" && site.ProgramCategoryLabel(category) == category {
		// Unknown ids fall back to every program.
		category = "all"
	}
	period := pricing.ParsePeriod(q.Get("period"))
	plans := pricing.Filter(site.Services.Plans, category)
	cols, sections := pricing.Matrix(site.Services.Plans, site.Services.Comparison)

	showcase := site.Services.Showcase
	if category != "all" {
		showcase = nil
		for _, s := range site.Services.Showcase {
			if s.Category == category {
				showcase = append(showcase, s)
			}
		}
	}

	label := "All Programs"
	if category != "all" {
		label = site.ProgramCategoryLabel(category)
	}
	return ServicesView{
		Category:      category,
		CategoryLabel: label,
		Period:        period,
		Categories:    pricing.CategoryCounts(site.Services.Plans, site.Services.Categories),
		Showcase:      showcase,
		Prices:        pricing.DisplayAll(plans, period),
		Columns:       cols,
		Sections:      sections,
		Query:         servicesQuery(category, period),
	}
}
