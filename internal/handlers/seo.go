package handlers

// SEOData carries the head metadata of one page. JSON-LD blocks are
// pre-encoded by the seo package.
type SEOData struct {
	Title       string
	Description string
	Canonical   string
	// Robots is empty for indexable pages.
	Robots     string
	OG         OpenGraph
	Twitter    TwitterCard
	Alternates []Alternate
	JSONLD     []string
}

// OpenGraph is the og:* property set. Type is "website" or "article".
type OpenGraph struct {
	Title       string
	Description string
	Image       string
	Type        string
	URL         string
	SiteName    string
}

// TwitterCard is the twitter:* meta set.
type TwitterCard struct {
	Card  string
	Site  string
	Image string
}

// Alternate is an hreflang link.
type Alternate struct {
	Href     string
	Hreflang string
}
