package main

import (
	"time"

	"github.com/Abhinavgupta8977/dietitian-website/internal/content"
	"github.com/Abhinavgupta8977/dietitian-website/internal/counter"
)

const testimonialInterval = 5 * time.Second

// HomeView is the home page payload.
type HomeView struct {
	Hero        []content.Image
	Approach    []content.Image
	Stats       []counter.Counter
	Services    []content.Service
	Testimonial TestimonialView
}

// TestimonialView is one carousel slide plus its neighbours.
type TestimonialView struct {
	Item  content.Testimonial
	Index int
	Count int
	Prev  int
	Next  int
	// Advance is the htmx delay before the next slide loads, e.g. "5s".
	Advance string
}

// Stars lists one entry per rating point.
func (t TestimonialView) Stars() []int {
	out := make([]int, t.Item.Rating)
	for i := range out {
		out[i] = i
	}
	return out
}

// Dots lists every slide index for the carousel indicators.
func (t TestimonialView) Dots() []int {
	out := make([]int, t.Count)
	for i := range out {
		out[i] = i
	}
	return out
}

// wrapIndex maps any integer onto 0..n-1.
func wrapIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func buildTestimonialView(list []content.Testimonial, i int) TestimonialView {
	if len(list) == 0 {
		return TestimonialView{}
	}
	i = wrapIndex(i, len(list))
	return TestimonialView{
		Item:    list[i],
		Index:   i,
		Count:   len(list),
		Prev:    wrapIndex(i-1, len(list)),
		Next:    wrapIndex(i+1, len(list)),
		Advance: htmxDelay(testimonialInterval),
	}
}

func buildHomeView(site *content.Site, slide int) HomeView {
	stats := make([]counter.Counter, 0, len(site.Home.Stats))
	for _, s := range site.Home.Stats {
		stats = append(stats, counter.New(s.Label, s.Value, s.Suffix, counter.HomeSteps, counter.HomeInterval))
	}
	return HomeView{
		Hero:        site.Home.HeroImages,
		Approach:    site.Home.ApproachImages,
		Stats:       stats,
		Services:    site.Home.Services,
		Testimonial: buildTestimonialView(site.Home.Testimonials, slide),
	}
}

// htmxDelay formats d for an hx-trigger delay modifier.
func htmxDelay(d time.Duration) string {
	if d%time.Second == 0 {
		return itoa(int(d/time.Second)) + "s"
	}
	return itoa(int(d/time.Millisecond)) + "ms"
}
