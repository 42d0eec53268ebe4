package handlers

import "github.com/Abhinavgupta8977/dietitian-website/internal/config"

// Analytics holds client instrumentation configuration surfaced to templates.
type Analytics struct {
	GA4MeasurementID string // e.g. G-XXXXXXXXXX
	GTMContainerID   string // e.g. GTM-XXXXXXX
	SegmentWriteKey  string // Segment browser key
	Debug            bool
}

// AnalyticsFromConfig copies the analytics section of the configuration.
func AnalyticsFromConfig(c config.Analytics) Analytics {
	return Analytics{
		GA4MeasurementID: c.GA4MeasurementID,
		GTMContainerID:   c.GTMContainerID,
		SegmentWriteKey:  c.SegmentWriteKey,
		Debug:            c.Debug,
	}
}

// Enabled reports whether any tag should be rendered.
func (a Analytics) Enabled() bool {
	return a.GA4MeasurementID != "" || a.GTMContainerID != "" || a.SegmentWriteKey != ""
}
