package main

import (
	"time"

	"github.com/Abhinavgupta8977/dietitian-website/internal/content"
	"github.com/Abhinavgupta8977/dietitian-website/internal/counter"
)

const timelineInterval = 3 * time.Second

// AboutView is the about page payload.
type AboutView struct {
	Profile      content.About
	Timeline     TimelineView
	Impact       []counter.Counter
	Achievements []content.Achievement
}

// TimelineView is the milestone list with one highlighted entry.
type TimelineView struct {
	Entries []content.TimelineEntry
	Active  int
	Next    int
	Advance string
}

func buildTimelineView(entries []content.TimelineEntry, i int) TimelineView {
	i = wrapIndex(i, len(entries))
	return TimelineView{
		Entries: entries,
		Active:  i,
		Next:    wrapIndex(i+1, len(entries)),
		Advance: htmxDelay(timelineInterval),
	}
}

func buildAboutView(site *content.Site, active int) AboutView {
	impact := make([]counter.Counter, 0, len(site.About.Impact))
	for _, s := range site.About.Impact {
		impact = append(impact, counter.New(s.Label, s.Value, s.Suffix, counter.AboutSteps, counter.AboutInterval))
	}
	return AboutView{
		Profile:      site.About,
		Timeline:     buildTimelineView(site.About.Timeline, active),
		Impact:       impact,
		Achievements: site.About.Achievements,
	}
}
