package content

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalid wraps every data validation failure.
var ErrInvalid = errors.New("content: invalid site data")

// Validate checks cross references and required fields. Invalid data is a
// startup error.
func (s *Site) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}
	checkImage := func(where string, img Image) {
		if err := validImage(img); err != nil {
			fail("%s: %v", where, err)
		}
	}

	if strings.TrimSpace(s.Brand.Name) == "" {
		fail("brand.name is required")
	}

	blogCategories := map[string]bool{}
	for _, c := range s.Blog.Categories {
		if c.ID == "" || c.ID == "all" || blogCategories[c.ID] {
			fail("blog category %q: empty, reserved or duplicate id", c.ID)
		}
		blogCategories[c.ID] = true
	}
	tags := map[string]bool{}
	for _, t := range s.Blog.Tags {
		if t == "" || t == "all" || tags[t] {
			fail("blog tag %q: empty, reserved or duplicate", t)
		}
		tags[t] = true
	}

	ids := map[int]bool{}
	slugs := map[string]bool{}
	for _, a := range s.Articles {
		where := fmt.Sprintf("article %d", a.ID)
		if a.ID <= 0 || ids[a.ID] {
			fail("%s: id must be positive and unique", where)
		}
		ids[a.ID] = true
		if a.Slug == "" || slugs[a.Slug] || a.Slug != strings.ToLower(a.Slug) || strings.ContainsAny(a.Slug, " /?#") {
			fail("%s: slug %q must be unique, lower case and url safe", where, a.Slug)
		}
		slugs[a.Slug] = true
		if strings.TrimSpace(a.Title) == "" || strings.TrimSpace(a.Excerpt) == "" {
			fail("%s: title and excerpt are required", where)
		}
		if !blogCategories[a.Category] {
			fail("%s: unknown category %q", where, a.Category)
		}
		for _, t := range a.Tags {
			// Tags may also name a category; "meal-prep" is used both ways.
			if !tags[t] && !blogCategories[t] {
				fail("%s: unknown tag %q", where, t)
			}
		}
		if a.Views < 0 || a.Likes < 0 {
			fail("%s: metrics must be non-negative", where)
		}
		checkImage(where+" image", a.Image)
	}
	for _, id := range s.Blog.Recommended {
		if !ids[id] {
			fail("blog.recommended: unknown article %d", id)
		}
	}

	programCategories := map[string]bool{}
	for _, c := range s.Services.Categories {
		if c.ID == "" || c.ID == "all" || programCategories[c.ID] {
			fail("program category %q: empty, reserved or duplicate id", c.ID)
		}
		programCategories[c.ID] = true
	}
	planIDs := map[string]bool{}
	for _, p := range s.Services.Plans {
		where := fmt.Sprintf("plan %q", p.ID)
		if p.ID == "" || planIDs[p.ID] {
			fail("%s: id must be unique", where)
		}
		planIDs[p.ID] = true
		if p.MonthlyPrice <= 0 || p.YearlyPrice <= 0 {
			fail("%s: prices must be positive", where)
		}
		if p.YearlyPrice > p.MonthlyPrice*12 {
			fail("%s: yearly price %d exceeds twelve monthly payments", where, p.YearlyPrice)
		}
		if len(p.Categories) == 0 {
			fail("%s: at least one category is required", where)
		}
		for _, c := range p.Categories {
			if !programCategories[c] {
				fail("%s: unknown category %q", where, c)
			}
		}
	}
	for _, sec := range s.Services.Comparison {
		for _, row := range sec.Rows {
			for id := range planIDs {
				if _, ok := row.Cells[id]; !ok {
					fail("comparison %q/%q: missing value for plan %q", sec.Category, row.Name, id)
				}
			}
			for id := range row.Cells {
				if !planIDs[id] {
					fail("comparison %q/%q: unknown plan %q", sec.Category, row.Name, id)
				}
			}
		}
	}
	for _, sc := range s.Services.Showcase {
		if !programCategories[sc.Category] {
			fail("showcase %q: unknown category %q", sc.Title, sc.Category)
		}
		checkImage("showcase "+sc.Title, sc.Image)
	}

	for _, t := range s.Home.Testimonials {
		if t.Rating < 1 || t.Rating > 5 {
			fail("testimonial %q: rating must be 1..5", t.Name)
		}
		checkImage("testimonial "+t.Name, t.Image)
	}
	for i, img := range s.Home.HeroImages {
		checkImage(fmt.Sprintf("home hero image %d", i), img)
	}
	for i, img := range s.Home.ApproachImages {
		checkImage(fmt.Sprintf("home approach image %d", i), img)
	}
	for _, st := range append(append([]Stat{}, s.Home.Stats...), s.About.Impact...) {
		if st.Value <= 0 {
			fail("stat %q: value must be positive", st.Label)
		}
	}
	checkImage("about portrait", s.About.Portrait)
	for _, g := range s.About.Gallery {
		checkImage("gallery "+g.Title, g.Image)
	}
	if len(s.About.Timeline) == 0 {
		fail("about.timeline must not be empty")
	}

	if len(s.Contact.Services) == 0 {
		fail("contact.services must not be empty")
	}
	if !hasOption(s.Contact.Urgencies, "normal") {
		fail("contact.urgencies must include the default %q", "normal")
	}

	if strings.TrimSpace(s.Chat.Greeting) == "" {
		fail("chat.greeting is required")
	}
	if len(s.Chat.Replies) == 0 {
		fail("chat.replies must not be empty")
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

func validImage(img Image) error {
	u, err := url.Parse(img.URL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("url %q must be absolute", img.URL)
	}
	if strings.TrimSpace(img.Alt) == "" {
		return errors.New("alt text is required")
	}
	return nil
}

func hasOption(opts []Option, value string) bool {
	for _, o := range opts {
		if o.Value == value {
			return true
		}
	}
	return false
}
