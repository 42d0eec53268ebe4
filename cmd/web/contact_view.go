package main

import (
	"net/http"
	"time"

	"github.com/Abhinavgupta8977/dietitian-website/internal/contact"
	"github.com/Abhinavgupta8977/dietitian-website/internal/content"
	mw "github.com/Abhinavgupta8977/dietitian-website/internal/middleware"
)

// pendingResetPoll is how soon the thank-you fragment asks again when it
// arrives before the reset fired.
const pendingResetPoll = 250 * time.Millisecond

// ContactView is the contact page payload.
type ContactView struct {
	Form       ContactFormView
	Cards      []content.ContactCard
	Features   []content.OfficeFeature
	Chat       ChatView
	Brand      content.Brand
	MapAddress string
}

// ContactFormView feeds the consultation form fragment.
type ContactFormView struct {
	Form           contact.Form
	Errors         map[string]string
	Submitted      bool
	SubmitError    string
	IdempotencyKey string
	// PollAfter is the htmx delay before the reset form is fetched.
	PollAfter      string
	Services       []string
	PreferredTimes []content.Option
	Urgencies      []content.Option
	CSRFToken      string
	Lang           string
}

// HasError reports whether field failed validation.
func (v ContactFormView) HasError(field string) bool {
	_, ok := v.Errors[field]
	return ok
}

func contactOptions(site *content.Site) contact.Options {
	return contact.Options{
		Services:       site.Contact.Services,
		PreferredTimes: optionValues(site.Contact.PreferredTimes),
		Urgencies:      optionValues(site.Contact.Urgencies),
	}
}

func optionValues(opts []content.Option) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Value)
	}
	return out
}

func buildContactFormView(r *http.Request, site *content.Site, f contact.Form, submitted bool, pollAfter time.Duration) ContactFormView {
	return ContactFormView{
		Form:           f,
		Submitted:      submitted,
		PollAfter:      htmxDelay(pollAfter),
		Services:       site.Contact.Services,
		PreferredTimes: site.Contact.PreferredTimes,
		Urgencies:      site.Contact.Urgencies,
		CSRFToken:      mw.CSRFToken(r),
		Lang:           mw.Lang(r),
	}
}

func buildContactView(site *content.Site, form ContactFormView, chatView ChatView) ContactView {
	return ContactView{
		Form:       form,
		Cards:      site.Contact.Cards,
		Features:   site.Contact.OfficeFeatures,
		Chat:       chatView,
		Brand:      site.Brand,
		MapAddress: site.Brand.Address,
	}
}
