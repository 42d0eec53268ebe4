package main

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/Abhinavgupta8977/dietitian-website/internal/contact"
	"github.com/Abhinavgupta8977/dietitian-website/internal/content"
	mw "github.com/Abhinavgupta8977/dietitian-website/internal/middleware"
	"github.com/Abhinavgupta8977/dietitian-website/internal/observability"
	"github.com/Abhinavgupta8977/dietitian-website/internal/submission"
)

const idempotencyField = "idempotency_key"

// ContactHandler renders the contact page with the session's form state.
func ContactHandler(w http.ResponseWriter, r *http.Request) {
	site, ok := loadSite(w, r)
	if !ok {
		return
	}
	entry, ok := sessionState(w, r)
	if !ok {
		return
	}
	state := entry.Contact()
	f, submitted := state.Snapshot()
	form := buildContactFormView(r, site, f, submitted, state.ResetDelay())
	renderContactPage(w, r, site, http.StatusOK, form)
}

func renderContactPage(w http.ResponseWriter, r *http.Request, site *content.Site, status int, form ContactFormView) {
	lang := mw.Lang(r)
	title := i18nOrDefault(lang, "contact.title", "Contact")
	desc := i18nOrDefault(lang, "contact.description", "Book a consultation, ask a question or visit our office.")

	vm := newPageData(r, site, "/contact", title, desc)
	vm.Contact = buildContactView(site, form, buildChatWidget(r, site))
	renderPageStatus(w, r, status, "contact", vm)
}

// ContactSubmitHandler validates and delivers the consultation request.
func ContactSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		mw.WriteError(w, r, http.StatusBadRequest, "invalid form")
		return
	}
	site, ok := loadSite(w, r)
	if !ok {
		return
	}
	entry, ok := sessionState(w, r)
	if !ok {
		return
	}
	state := entry.Contact()
	lang := mw.Lang(r)
	logger := observability.FromContext(r.Context())

	f := contact.FromValues(r.PostForm)
	key := strings.TrimSpace(r.PostForm.Get(idempotencyField))
	if key == "" {
		key = submission.NewIdempotencyKey()
	}
	view := buildContactFormView(r, site, f, false, state.ResetDelay())
	view.IdempotencyKey = key

	view.Errors = contact.Validate(f, contactOptions(site), func(k, def string) string {
		return i18nOrDefault(lang, k, def)
	})
	if len(view.Errors) > 0 {
		state.Edit(f)
		respondContactForm(w, r, site, http.StatusUnprocessableEntity, view)
		return
	}

	receipt, err := intake.Contact(r.Context(), f, key)
	if err != nil {
		logger.Warn("contact delivery failed", zap.String("idempotency_key", key), zap.Error(err))
		state.Edit(f)
		status := http.StatusServiceUnavailable
		view.SubmitError = i18nOrDefault(lang, "contact.error.unavailable", "We couldn't send your request right now. Please try again.")
		if errors.Is(err, submission.ErrRejected) {
			status = http.StatusUnprocessableEntity
			view.SubmitError = i18nOrDefault(lang, "contact.error.rejected", "Your request could not be accepted. Please check the details and try again.")
		}
		respondContactForm(w, r, site, status, view)
		return
	}
	logger.Info("contact request received",
		zap.String("receipt_id", receipt.ID),
		zap.Bool("local", receipt.Local),
		zap.String("service", f.Service),
		zap.String("urgency", f.Urgency))

	state.Submit(f)
	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, "/contact", http.StatusSeeOther)
		return
	}
	current, _ := state.Snapshot()
	renderTemplate(w, r, "frag_contact_form", buildContactFormView(r, site, current, true, state.ResetDelay()))
}

// respondContactForm re-renders the form with errors. htmx swaps only 2xx
// answers by default, so fragments go out as 200.
func respondContactForm(w http.ResponseWriter, r *http.Request, site *content.Site, status int, view ContactFormView) {
	if mw.IsHTMX(r.Context()) {
		renderTemplate(w, r, "frag_contact_form", view)
		return
	}
	renderContactPage(w, r, site, status, view)
}

// ContactFormFrag renders the form in its current state. The thank-you
// fragment polls this after the reset delay.
func ContactFormFrag(w http.ResponseWriter, r *http.Request) {
	site, ok := loadSite(w, r)
	if !ok {
		return
	}
	entry, ok := sessionState(w, r)
	if !ok {
		return
	}
	state := entry.Contact()
	f, submitted := state.Snapshot()
	poll := state.ResetDelay()
	if submitted {
		poll = pendingResetPoll
	}
	renderTemplate(w, r, "frag_contact_form", buildContactFormView(r, site, f, submitted, poll))
}
