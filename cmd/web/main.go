package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Abhinavgupta8977/dietitian-website/internal/chat"
	"github.com/Abhinavgupta8977/dietitian-website/internal/config"
	"github.com/Abhinavgupta8977/dietitian-website/internal/contact"
	"github.com/Abhinavgupta8977/dietitian-website/internal/content"
	"github.com/Abhinavgupta8977/dietitian-website/internal/format"
	handlersPkg "github.com/Abhinavgupta8977/dietitian-website/internal/handlers"
	"github.com/Abhinavgupta8977/dietitian-website/internal/i18n"
	mw "github.com/Abhinavgupta8977/dietitian-website/internal/middleware"
	"github.com/Abhinavgupta8977/dietitian-website/internal/observability"
	"github.com/Abhinavgupta8977/dietitian-website/internal/sched"
	"github.com/Abhinavgupta8977/dietitian-website/internal/seo"
	"github.com/Abhinavgupta8977/dietitian-website/internal/submission"
	"github.com/Abhinavgupta8977/dietitian-website/internal/viewstate"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	// devMode watches templatesDir and reparses on change.
	devMode bool

	tmplMu    sync.RWMutex
	tmplCache *templateSet

	appConfig   = config.DefaultConfig()
	baseLogger  = zap.NewNop()
	i18nBundle  *i18n.Bundle
	siteContent = content.NewClient("")
	intake      = submission.NewClient("", 0)
	viewStore   *viewstate.Store
	appClock    = sched.RealClock()
)

func main() {
	exitOnError(Execute())
}

// setupApp wires the package level dependencies from configuration.
func setupApp(cfg *config.Config, logger *zap.Logger, clock sched.Clock) error {
	if logger == nil {
		logger = observability.NoopLogger()
	}
	if clock == nil {
		clock = sched.RealClock()
	}
	appConfig = cfg
	baseLogger = logger
	appClock = clock
	templatesDir = cfg.Server.TemplatesDir
	publicDir = cfg.Server.PublicDir
	devMode = cfg.Server.Dev

	bundle, err := i18n.Load(cfg.Server.LocalesDir, cfg.Site.DefaultLang, []string{cfg.Site.DefaultLang})
	if err != nil {
		return fmt.Errorf("load i18n: %w", err)
	}
	i18nBundle = bundle

	siteContent = content.NewClient(cfg.Content.BaseURL,
		content.WithCacheTTL(cfg.Content.CacheTTL),
		content.WithHTTPClient(&http.Client{Timeout: cfg.Content.Timeout}),
	)
	// Embedded data is the fallback for every remote failure, so it must be valid.
	if _, err := siteContent.Embedded(); err != nil {
		return err
	}
	intake = submission.NewClient(cfg.Submission.BaseURL, cfg.Submission.Timeout)

	if viewStore != nil {
		viewStore.Close()
	}
	viewStore = viewstate.New(viewstate.Factory{
		Chat:    newTranscript,
		Contact: func() *contact.State { return contact.NewState(appClock, appConfig.Contact.ResetDelay) },
	}, cfg.ViewState.TTL, clock)

	mw.ConfigureSession(cfg.Session.SigningKey, cfg.Production(), logger)

	set, err := parseTemplates()
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	storeTemplates(set)
	return nil
}

func newTranscript() (*chat.Transcript, error) {
	site, err := siteContent.Embedded()
	if err != nil {
		return nil, err
	}
	return chat.New(chat.Deps{
		Greeting: site.Chat.Greeting,
		Replies:  site.Chat.Replies,
		Delay:    appConfig.Chat.ReplyDelay,
		Clock:    appClock,
	})
}

// templateSet holds one template per page (layout + partials + page) and
// the shared set used for fragments.
type templateSet struct {
	pages map[string]*template.Template
	frags *template.Template
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"now": time.Now,
		"t": func(lang, key string) string {
			return i18nOrDefault(lang, key, key)
		},
		"dollars": func(n int) string { return format.FmtDollars(n, "en") },
		"number":  func(n int) string { return format.FmtNumber(n, "en") },
		"compact": format.FmtCompact,
		"date":    format.FmtDate,
		"jsonld":  func(s string) template.JS { return template.JS(s) },
		"json":    seo.JSON,
		"add":     func(a, b int) int { return a + b },
		"sub":     func(a, b int) int { return a - b },
		// Article bodies are sanitized by the content package at load time.
		"trustedHTML": func(s string) template.HTML { return template.HTML(s) },
		"dict": func(kv ...any) (map[string]any, error) {
			if len(kv)%2 != 0 {
				return nil, fmt.Errorf("dict: odd number of arguments")
			}
			m := make(map[string]any, len(kv)/2)
			for i := 0; i < len(kv); i += 2 {
				k, ok := kv[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict: key %v is not a string", kv[i])
				}
				m[k] = kv[i+1]
			}
			return m, nil
		},
		"seq": func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i
			}
			return out
		},
		"initial": func(s string) string {
			for _, r := range strings.TrimSpace(s) {
				return strings.ToUpper(string(r))
			}
			return ""
		},
		"csrfField": func() string { return mw.CSRFFieldName },
	}
}

func parseTemplates() (*templateSet, error) {
	// Recursively discover all .tmpl files. Note: ParseGlob doesn't support **.
	var shared, pages []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".tmpl") {
			return nil
		}
		if filepath.Base(filepath.Dir(path)) == "pages" {
			pages = append(pages, path)
		} else {
			shared = append(shared, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(shared) == 0 || len(pages) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	root, err := template.New("_root").Funcs(templateFuncs()).ParseFiles(shared...)
	if err != nil {
		return nil, err
	}
	set := &templateSet{pages: map[string]*template.Template{}, frags: root}
	for _, p := range pages {
		t, err := root.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFiles(p); err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		set.pages[strings.TrimSuffix(filepath.Base(p), ".tmpl")] = t
	}
	return set, nil
}

func storeTemplates(set *templateSet) {
	tmplMu.Lock()
	tmplCache = set
	tmplMu.Unlock()
}

func currentTemplates() (*templateSet, error) {
	tmplMu.RLock()
	set := tmplCache
	tmplMu.RUnlock()
	if set != nil {
		return set, nil
	}
	set, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	storeTemplates(set)
	return set, nil
}

// renderPage executes the base layout with the named page.
func renderPage(w http.ResponseWriter, r *http.Request, name string, data any) {
	renderPageStatus(w, r, http.StatusOK, name, data)
}

func renderPageStatus(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	set, err := currentTemplates()
	if err != nil {
		templateError(w, r, "parse", err)
		return
	}
	t, ok := set.pages[name]
	if !ok {
		templateError(w, r, "lookup", fmt.Errorf("page %q not found", name))
		return
	}
	writeTemplate(w, r, status, t, "base", data)
}

// renderTemplate executes a single named template, typically an htmx fragment.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	set, err := currentTemplates()
	if err != nil {
		templateError(w, r, "parse", err)
		return
	}
	writeTemplate(w, r, http.StatusOK, set.frags, name, data)
}

func writeTemplate(w http.ResponseWriter, r *http.Request, status int, t *template.Template, name string, data any) {
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		templateError(w, r, "exec", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func templateError(w http.ResponseWriter, r *http.Request, stage string, err error) {
	observability.FromContext(r.Context()).Error("template "+stage+" error", zap.Error(err))
	mw.WriteError(w, r, http.StatusInternalServerError, "template "+stage+" error")
}

// i18nOrDefault returns the translation for key, or def when it is missing.
func i18nOrDefault(lang, key, def string) string {
	if i18nBundle == nil || !i18nBundle.Has(lang, key) {
		return def
	}
	return i18nBundle.T(lang, key)
}

// absoluteURL returns the canonical URL of the request path.
func absoluteURL(r *http.Request) string {
	return absoluteURLFor(r.URL.Path)
}

func absoluteURLFor(path string) string {
	base := strings.TrimRight(appConfig.Site.BaseURL, "/")
	if path == "" {
		path = "/"
	}
	return base + path
}

// buildAlternates lists hreflang links for every supported language.
func buildAlternates(r *http.Request) []handlersPkg.Alternate {
	if i18nBundle == nil {
		return nil
	}
	canonical := absoluteURL(r)
	out := make([]handlersPkg.Alternate, 0, len(i18nBundle.Supported())+1)
	for _, lang := range i18nBundle.Supported() {
		out = append(out, handlersPkg.Alternate{Href: canonical + "?hl=" + url.QueryEscape(lang), Hreflang: lang})
	}
	out = append(out, handlersPkg.Alternate{Href: canonical, Hreflang: "x-default"})
	return out
}

func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
