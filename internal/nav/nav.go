package nav

import (
	"net/url"
	"path"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Abhinavgupta8977/dietitian-website/internal/content"
)

// Page identifies one of the top-level views.
type Page string

const (
	Home     Page = "home"
	About    Page = "about"
	Services Page = "services"
	Blog     Page = "blog"
	Contact  Page = "contact"
)

// Item represents a top-level navigation item.
type Item struct {
	Page     Page
	Path     string // e.g. "/services"
	LabelKey string // i18n key, e.g. "nav.services"
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Page     Page
	Href     string
	LabelKey string
	Label    string
	Active   bool
	Dropdown []RenderedItem
}

// Crumb represents a breadcrumb entry. If LabelKey is empty, use Label.
type Crumb struct {
	Href     string
	LabelKey string
	Label    string
	Active   bool
}

// Main is the primary navigation definition, in display order.
var Main = []Item{
	{Page: Home, Path: "/", LabelKey: "nav.home"},
	{Page: About, Path: "/about", LabelKey: "nav.about"},
	{Page: Services, Path: "/services", LabelKey: "nav.services"},
	{Page: Blog, Path: "/blog", LabelKey: "nav.blog"},
	{Page: Contact, Path: "/contact", LabelKey: "nav.contact"},
}

// Footer lists the quick links shown in the footer.
var Footer = []Item{
	{Page: Home, Path: "/", LabelKey: "footer.home"},
	{Page: About, Path: "/about", LabelKey: "footer.about"},
	{Page: Services, Path: "/services", LabelKey: "footer.services"},
	{Page: Blog, Path: "/blog", LabelKey: "footer.blog"},
	{Page: Contact, Path: "/contact", LabelKey: "footer.contact"},
}

// Resolve maps an identifier to a page. Unknown identifiers resolve to Home.
func Resolve(id string) Page {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, it := range Main {
		if string(it.Page) == id {
			return it.Page
		}
	}
	return Home
}

// Known reports whether id names a page.
func Known(id string) bool {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, it := range Main {
		if string(it.Page) == id {
			return true
		}
	}
	return false
}

// PathFor returns the canonical path of a page.
func PathFor(p Page) string {
	for _, it := range Main {
		if it.Page == p {
			return it.Path
		}
	}
	return "/"
}

// PageFor returns the page owning currentPath. Paths outside every section
// belong to Home.
func PageFor(currentPath string) Page {
	for _, it := range Main {
		if it.Path != "/" && isActive(it.Path, currentPath) {
			return it.Page
		}
	}
	return Home
}

// Build renders navigation items with active state given the current path.
// programs populates the Programs dropdown under the services item.
func Build(currentPath string, programs []content.ProgramCategory) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := make([]RenderedItem, 0, len(Main))
	for _, it := range Main {
		ri := RenderedItem{
			Page:     it.Page,
			Href:     it.Path,
			LabelKey: it.LabelKey,
			Active:   isActive(it.Path, currentPath),
		}
		if it.Page == Services {
			ri.Dropdown = ProgramLinks(programs)
		}
		items = append(items, ri)
	}
	return items
}

// BuildFooter renders the footer quick links.
func BuildFooter(currentPath string) []RenderedItem {
	items := make([]RenderedItem, 0, len(Footer))
	for _, it := range Footer {
		items = append(items, RenderedItem{
			Page:     it.Page,
			Href:     it.Path,
			LabelKey: it.LabelKey,
			Active:   isActive(it.Path, currentPath),
		})
	}
	return items
}

// ProgramLinks links each program category to the filtered services page.
func ProgramLinks(programs []content.ProgramCategory) []RenderedItem {
	out := make([]RenderedItem, 0, len(programs))
	for _, p := range programs {
		label := p.NavLabel
		if label == "" {
			label = p.Label
		}
		out = append(out, RenderedItem{
			Page:  Services,
			Href:  "/services?category=" + url.QueryEscape(p.ID),
			Label: label,
		})
	}
	return out
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	if currentPath == itemPath {
		return true
	}
	return strings.HasPrefix(currentPath, itemPath+"/")
}

// Breadcrumbs builds breadcrumb entries from the current path.
// Rules:
// - Always start with Home
// - For known top-level sections, use nav label keys
// - For deeper segments, use a prettified segment label
func Breadcrumbs(currentPath string) []Crumb {
	if currentPath == "" {
		currentPath = "/"
	}
	crumbs := []Crumb{{Href: "/", LabelKey: "nav.home", Active: currentPath == "/"}}
	if currentPath == "/" {
		return crumbs
	}

	clean := path.Clean("/" + strings.TrimPrefix(currentPath, "/"))
	parts := strings.Split(strings.TrimPrefix(clean, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return crumbs
	}

	top := "/" + parts[0]
	labelKey := ""
	for _, it := range Main {
		if it.Path == top {
			labelKey = it.LabelKey
			break
		}
	}
	crumbs = append(crumbs, Crumb{Href: top, LabelKey: labelKey, Label: TitleFromSlug(parts[0]), Active: len(parts) == 1})

	href := top
	for i := 1; i < len(parts); i++ {
		href = href + "/" + parts[i]
		crumbs = append(crumbs, Crumb{
			Href:   href,
			Label:  TitleFromSlug(parts[i]),
			Active: i == len(parts)-1,
		})
	}
	return crumbs
}

// TitleFromSlug turns "heart-health" into "Heart Health".
func TitleFromSlug(seg string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(seg)
	// cases.Caser is stateful, so build one per call.
	return cases.Title(language.English).String(strings.TrimSpace(s))
}
