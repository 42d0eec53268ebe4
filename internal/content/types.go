// Package content holds the static reference data behind every page:
// articles, plans, testimonials, credentials and contact details.
package content

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Image is an absolute external image URL with its alternative text.
type Image struct {
	URL string `yaml:"url"`
	Alt string `yaml:"alt"`
}

// Link is a labelled external href.
type Link struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// Option is a select option.
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Article is a blog post record.
type Article struct {
	ID          int      `yaml:"id"`
	Slug        string   `yaml:"slug"`
	Title       string   `yaml:"title"`
	Excerpt     string   `yaml:"excerpt"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags"`
	Author      string   `yaml:"author"`
	Published   string   `yaml:"published"`
	ReadMinutes int      `yaml:"read_minutes"`
	Views       int      `yaml:"views"`
	Likes       int      `yaml:"likes"`
	Featured    bool     `yaml:"featured"`
	Image       Image    `yaml:"image"`
	Body        string   `yaml:"body"`

	// Filled in by Load.
	PublishedAt time.Time `yaml:"-"`
	BodyHTML    string    `yaml:"-"`
}

// HasTag reports whether the article carries the tag.
func (a Article) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// ReadTime renders the reading time label, e.g. "5 min read".
func (a Article) ReadTime() string {
	return fmt.Sprintf("%d min read", a.ReadMinutes)
}

// Category is a labelled blog category.
type Category struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// ProgramCategory is a services filter category. NavLabel is the name used
// in the Programs dropdown.
type ProgramCategory struct {
	ID       string `yaml:"id"`
	Label    string `yaml:"label"`
	NavLabel string `yaml:"nav_label"`
}

// Plan is a pricing tier.
type Plan struct {
	ID           string   `yaml:"id"`
	Name         string   `yaml:"name"`
	Categories   []string `yaml:"categories"`
	Popular      bool     `yaml:"popular"`
	MonthlyPrice int      `yaml:"monthly_price"`
	YearlyPrice  int      `yaml:"yearly_price"`
	Description  string   `yaml:"description"`
	Features     []string `yaml:"features"`
}

// InCategory reports whether the plan belongs to the category.
func (p Plan) InCategory(id string) bool {
	for _, c := range p.Categories {
		if c == id {
			return true
		}
	}
	return false
}

// Cell is one comparison matrix value: either a yes/no flag or free text.
type Cell struct {
	IsFlag bool
	Flag   bool
	Text   string
}

// UnmarshalYAML accepts booleans and strings.
func (c *Cell) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("comparison cell at line %d: expected scalar", node.Line)
	}
	if node.Tag == "!!bool" {
		var b bool
		if err := node.Decode(&b); err != nil {
			return err
		}
		*c = Cell{IsFlag: true, Flag: b}
		return nil
	}
	*c = Cell{Text: strings.TrimSpace(node.Value)}
	return nil
}

// MarshalYAML writes the cell back as a bare boolean or string.
func (c Cell) MarshalYAML() (any, error) {
	if c.IsFlag {
		return c.Flag, nil
	}
	return c.Text, nil
}

// ComparisonRow is one feature line of the comparison matrix, keyed by plan id.
type ComparisonRow struct {
	Name  string          `yaml:"name"`
	Cells map[string]Cell `yaml:"cells"`
}

// ComparisonSection groups comparison rows under a heading.
type ComparisonSection struct {
	Category string          `yaml:"category"`
	Rows     []ComparisonRow `yaml:"rows"`
}

// Showcase is a program card on the services page.
type Showcase struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Category    string `yaml:"category"`
	Image       Image  `yaml:"image"`
}

// Testimonial is a client quote shown in the home carousel.
type Testimonial struct {
	Name    string `yaml:"name"`
	Role    string `yaml:"role"`
	Content string `yaml:"content"`
	Rating  int    `yaml:"rating"`
	Image   Image  `yaml:"image"`
}

// Stat is an animated counter target.
type Stat struct {
	Label  string `yaml:"label"`
	Value  int    `yaml:"value"`
	Suffix string `yaml:"suffix"`
}

// Service is a card in the home services grid.
type Service struct {
	Icon        string `yaml:"icon"`
	Tone        string `yaml:"tone"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// TimelineEntry is a milestone on the about page.
type TimelineEntry struct {
	Year        string `yaml:"year"`
	Icon        string `yaml:"icon"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

type Credential struct {
	Title        string `yaml:"title"`
	Organization string `yaml:"organization"`
}

type Achievement struct {
	Icon   string `yaml:"icon"`
	Number string `yaml:"number"`
	Label  string `yaml:"label"`
}

type GalleryItem struct {
	Title string `yaml:"title"`
	Image Image  `yaml:"image"`
}

// ContactCard is one of the contact information cards.
type ContactCard struct {
	Icon     string `yaml:"icon"`
	Title    string `yaml:"title"`
	Details  string `yaml:"details"`
	Subtitle string `yaml:"subtitle"`
}

type OfficeFeature struct {
	Icon  string `yaml:"icon"`
	Label string `yaml:"label"`
}

type Brand struct {
	Name           string   `yaml:"name"`
	Suffix         string   `yaml:"suffix"`
	Tagline        string   `yaml:"tagline"`
	Address        string   `yaml:"address"`
	Phone          string   `yaml:"phone"`
	Email          string   `yaml:"email"`
	Social         []Link   `yaml:"social"`
	FooterServices []string `yaml:"footer_services"`
}

type Newsletter struct {
	Title     string `yaml:"title"`
	Body      string `yaml:"body"`
	Button    string `yaml:"button"`
	FinePrint string `yaml:"fine_print"`
}

type Home struct {
	HeroImages     []Image       `yaml:"hero_images"`
	ApproachImages []Image       `yaml:"approach_images"`
	Stats          []Stat        `yaml:"stats"`
	Services       []Service     `yaml:"services"`
	Testimonials   []Testimonial `yaml:"testimonials"`
}

type About struct {
	Name         string          `yaml:"name"`
	Title        string          `yaml:"title"`
	Portrait     Image           `yaml:"portrait"`
	Bio          string          `yaml:"bio"`
	Timeline     []TimelineEntry `yaml:"timeline"`
	Credentials  []Credential    `yaml:"credentials"`
	Achievements []Achievement   `yaml:"achievements"`
	Impact       []Stat          `yaml:"impact"`
	Gallery      []GalleryItem   `yaml:"gallery"`
}

type Blog struct {
	Categories   []Category `yaml:"categories"`
	Tags         []string   `yaml:"tags"`
	Recommended  []int      `yaml:"recommended"`
	PopularCount int        `yaml:"popular_count"`
}

type Services struct {
	Categories []ProgramCategory   `yaml:"categories"`
	Showcase   []Showcase          `yaml:"showcase"`
	Plans      []Plan              `yaml:"plans"`
	Comparison []ComparisonSection `yaml:"comparison"`
}

type Contact struct {
	Cards          []ContactCard   `yaml:"cards"`
	OfficeFeatures []OfficeFeature `yaml:"office_features"`
	Services       []string        `yaml:"services"`
	PreferredTimes []Option        `yaml:"preferred_times"`
	Urgencies      []Option        `yaml:"urgencies"`
}

type Chat struct {
	Greeting       string   `yaml:"greeting"`
	Replies        []string `yaml:"replies"`
	QuickQuestions []string `yaml:"quick_questions"`
}

// Site is the complete static data set.
type Site struct {
	Brand      Brand      `yaml:"brand"`
	Newsletter Newsletter `yaml:"newsletter"`
	Home       Home       `yaml:"home"`
	About      About      `yaml:"about"`
	Blog       Blog       `yaml:"blog"`
	Services   Services   `yaml:"services"`
	Contact    Contact    `yaml:"contact"`
	Chat       Chat       `yaml:"chat"`
	Articles   []Article  `yaml:"articles"`
}

// ArticleBySlug looks up an article.
func (s *Site) ArticleBySlug(slug string) (Article, bool) {
	for _, a := range s.Articles {
		if a.Slug == slug {
			return a, true
		}
	}
	return Article{}, false
}

// ArticleByID looks up an article by numeric id.
func (s *Site) ArticleByID(id int) (Article, bool) {
	for _, a := range s.Articles {
		if a.ID == id {
			return a, true
		}
	}
	return Article{}, false
}

// BlogCategoryLabel returns the label for a blog category id, or the id itself.
func (s *Site) BlogCategoryLabel(id string) string {
	for _, c := range s.Blog.Categories {
		if c.ID == id {
			return c.Label
		}
	}
	return id
}

// ProgramCategoryLabel returns the label for a program category id, or the id itself.
func (s *Site) ProgramCategoryLabel(id string) string {
	for _, c := range s.Services.Categories {
		if c.ID == id {
			return c.Label
		}
	}
	return id
}

// PlanByID looks up a plan.
func (s *Site) PlanByID(id string) (Plan, bool) {
	for _, p := range s.Services.Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}
