package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/Abhinavgupta8977/dietitian-website/internal/chat"
	"github.com/Abhinavgupta8977/dietitian-website/internal/config"
	"github.com/Abhinavgupta8977/dietitian-website/internal/sched"
)

var testStart = time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

// newTestRouter wires the app against the repo's templates and locales with
// a manual clock driving chat replies and form resets.
func newTestRouter(t *testing.T, overrides ...func(*config.Config)) (http.Handler, *sched.ManualClock) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Server.TemplatesDir = "../../templates"
	cfg.Server.PublicDir = "../../public"
	cfg.Server.LocalesDir = "../../locales"
	cfg.Session.SigningKey = "test-signing-key"
	cfg.Site.BaseURL = "https://nutriglow.test"
	for _, o := range overrides {
		o(cfg)
	}

	clock := sched.NewManualClock(testStart)
	if err := setupApp(cfg, nil, clock); err != nil {
		t.Fatalf("setupApp: %v", err)
	}
	t.Cleanup(func() { viewStore.Close() })
	return newRouter(), clock
}

// client keeps cookies between requests like a browser would.
type client struct {
	t       *testing.T
	h       http.Handler
	cookies map[string]*http.Cookie
	csrf    string
}

func newClient(t *testing.T, h http.Handler) *client {
	return &client{t: t, h: h, cookies: map[string]*http.Cookie{}}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	for _, ck := range rec.Result().Cookies() {
		c.cookies[ck.Name] = ck
	}
	return rec
}

func (c *client) get(path string, htmx bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return c.do(req)
}

func (c *client) post(path string, form url.Values, htmx bool) *httptest.ResponseRecorder {
	c.t.Helper()
	if c.csrf == "" {
		doc := parseHTML(c.t, c.get("/contact", false))
		c.csrf = doc.Find(`input[name="csrf_token"]`).First().AttrOr("value", "")
		require.NotEmpty(c.t, c.csrf)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-CSRF-Token", c.csrf)
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	return c.do(req)
}

func parseHTML(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	return doc
}

func TestHealthzOK(t *testing.T) {
	srv, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d; body=%s", rec.Code, rec.Body.String())
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "ok" {
		t.Fatalf("expected body 'ok', got %q", got)
	}
}

func TestPagesRenderWithActiveNav(t *testing.T) {
	srv, _ := newTestRouter(t)
	cases := []struct {
		path   string
		active string
		title  string
	}{
		{"/", "Home", "NutriGlow Wellness | "},
		{"/about", "About Us", "About Us | NutriGlow Wellness"},
		{"/services", "Services", "Services | NutriGlow Wellness"},
		{"/blog", "Blog", "Blog | NutriGlow Wellness"},
		{"/contact", "Contact", "Contact | NutriGlow Wellness"},
		{"/blog/budget-friendly-nutrition", "Blog", "Budget"},
	}
	for _, tc := range cases {
		t.Run(tc.path, func(t *testing.T) {
			rec := newClient(t, srv).get(tc.path, false)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			doc := parseHTML(t, rec)
			require.Contains(t, doc.Find("title").Text(), tc.title)
			active := doc.Find(`.main-nav a[aria-current="page"]`)
			require.Equal(t, 1, active.Length())
			require.Equal(t, tc.active, strings.TrimSpace(active.Text()))
			require.Equal(t, "https://nutriglow.test"+tc.path, doc.Find(`link[rel="canonical"]`).AttrOr("href", ""))
		})
	}
}

func TestUnknownPathRendersHome(t *testing.T) {
	srv, _ := newTestRouter(t)
	rec := newClient(t, srv).get("/no-such-page", false)
	require.Equal(t, http.StatusNotFound, rec.Code)
	doc := parseHTML(t, rec)
	require.Equal(t, "home", doc.Find("html").AttrOr("data-page", ""))
	require.Equal(t, "Home", strings.TrimSpace(doc.Find(`.main-nav a[aria-current="page"]`).Text()))
	require.Equal(t, 1, doc.Find("section.hero").Length())
	require.Equal(t, "noindex", doc.Find(`meta[name="robots"]`).AttrOr("content", ""))
}

func TestGoResolvesPageIdentifiers(t *testing.T) {
	srv, _ := newTestRouter(t)
	c := newClient(t, srv)
	for id, want := range map[string]string{
		"blog":     "/blog",
		"SERVICES": "/services",
		"home":     "/",
		"pricing":  "/",
	} {
		rec := c.get("/go/"+id, false)
		require.Equal(t, http.StatusSeeOther, rec.Code, id)
		require.Equal(t, want, rec.Header().Get("Location"), id)
	}
}

func TestProgramsDropdownLinksToFilteredServices(t *testing.T) {
	srv, _ := newTestRouter(t)
	doc := parseHTML(t, newClient(t, srv).get("/", false))
	var hrefs []string
	doc.Find(".dropdown a").Each(func(_ int, s *goquery.Selection) {
		hrefs = append(hrefs, s.AttrOr("href", ""))
	})
	want := []string{
		"/services?category=weight-loss",
		"/services?category=muscle-gain",
		"/services?category=diabetes",
		"/services?category=pcos",
		"/services?category=wellness",
	}
	if diff := cmp.Diff(want, hrefs); diff != "" {
		t.Fatalf("dropdown links mismatch (-want +got):\n%s", diff)
	}
}

func TestThemeToggleIsInvolutive(t *testing.T) {
	srv, _ := newTestRouter(t)
	c := newClient(t, srv)

	doc := parseHTML(t, c.get("/", false))
	require.False(t, doc.Find("html").HasClass("dark"))

	rec := c.post("/theme/toggle", url.Values{}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "dark", c.cookies["theme"].Value)
	var trigger map[string]map[string]bool
	require.NoError(t, json.Unmarshal([]byte(rec.Header().Get("HX-Trigger")), &trigger))
	require.True(t, trigger["theme:changed"]["dark"])

	doc = parseHTML(t, c.get("/about", false))
	require.True(t, doc.Find("html").HasClass("dark"))

	rec = c.post("/theme/toggle", url.Values{}, false)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "light", c.cookies["theme"].Value)
	doc = parseHTML(t, c.get("/about", false))
	require.False(t, doc.Find("html").HasClass("dark"))
}

func TestThemeFollowsClientHintWithoutCookie(t *testing.T) {
	srv, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Sec-CH-Prefers-Color-Scheme", "dark")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.True(t, parseHTML(t, rec).Find("html").HasClass("dark"))
	require.Equal(t, "Sec-CH-Prefers-Color-Scheme", rec.Header().Get("Accept-CH"))
}

func TestThemeToggleRequiresCSRF(t *testing.T) {
	srv, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/theme/toggle", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestBlogFilterFragment(t *testing.T) {
	srv, _ := newTestRouter(t)
	c := newClient(t, srv)

	rec := c.get("/blog/articles?category=heart-health", true)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "/blog?category=heart-health", rec.Header().Get("HX-Push-Url"))
	doc := parseHTML(t, rec)
	require.Equal(t, 1, doc.Find(".article-card").Length())
	require.Contains(t, doc.Find(".article-card h3").Text(), "Heart")

	rec = c.get("/blog/articles?q=zzzz", true)
	doc = parseHTML(t, rec)
	require.Equal(t, 0, doc.Find(".article-card").Length())
	require.Contains(t, doc.Find(".empty h3").Text(), "No articles found")
	clear := doc.Find("[data-clear-filters]")
	require.Equal(t, "/blog", clear.AttrOr("href", ""))

	// Following the clear action restores the full list.
	rec = c.get(clear.AttrOr("hx-get", ""), true)
	require.Equal(t, "/blog", rec.Header().Get("HX-Push-Url"))
	require.Equal(t, 6, parseHTML(t, rec).Find(".article-card").Length())
}

func TestBlogPageKeepsFilterInputs(t *testing.T) {
	srv, _ := newTestRouter(t)
	doc := parseHTML(t, newClient(t, srv).get("/blog?q=breakfast&tag=beginner-friendly", false))
	require.Equal(t, "breakfast", doc.Find(`input[name="q"]`).AttrOr("value", ""))
	require.Equal(t, "beginner-friendly", doc.Find(`select[name="tag"] option[selected]`).AttrOr("value", ""))
	require.Equal(t, "all", doc.Find(`select[name="category"] option[selected]`).AttrOr("value", ""))
	require.Equal(t, "noindex, follow", doc.Find(`meta[name="robots"]`).AttrOr("content", ""))
	require.Equal(t, 1, doc.Find("#articles .article-card").Length())
}

func TestUnknownArticleFallsBackToHome(t *testing.T) {
	srv, _ := newTestRouter(t)
	rec := newClient(t, srv).get("/blog/no-such-article", false)
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "home", parseHTML(t, rec).Find("html").AttrOr("data-page", ""))
}

func TestServicesPeriodToggle(t *testing.T) {
	srv, _ := newTestRouter(t)
	c := newClient(t, srv)

	doc := parseHTML(t, c.get("/services", false))
	essential := doc.Find(`[data-plan="basic"]`)
	require.Equal(t, "$79", essential.Find(".amount").Text())
	require.Equal(t, "/month", essential.Find(".unit").Text())
	require.Equal(t, 0, essential.Find(".savings").Length())

	toggle := doc.Find(`.period-toggle [role="switch"]`).AttrOr("hx-get", "")
	rec := c.get(toggle, true)
	require.Equal(t, "/services?period=yearly", rec.Header().Get("HX-Push-Url"))
	essential = parseHTML(t, rec).Find(`[data-plan="basic"]`)
	require.Equal(t, "$790", essential.Find(".amount").Text())
	require.Equal(t, "/year", essential.Find(".unit").Text())
	require.Contains(t, essential.Find(".savings").Text(), "$158")

	back := parseHTML(t, rec).Find(`.period-toggle [role="switch"]`).AttrOr("hx-get", "")
	essential = parseHTML(t, c.get(back, true)).Find(`[data-plan="basic"]`)
	require.Equal(t, "$79", essential.Find(".amount").Text())
}

func TestServicesCategoryFilterAndMatrix(t *testing.T) {
	srv, _ := newTestRouter(t)
	doc := parseHTML(t, newClient(t, srv).get("/services?category=pcos", false))
	require.Equal(t, 1, doc.Find(".plan-card").Length())
	require.Equal(t, "/services?category=pcos", doc.Find(`.filter-bar .chip.active`).AttrOr("href", ""))
	require.Equal(t, 3, doc.Find(".comparison-table thead th").Length()-1)
	require.Greater(t, doc.Find(".comparison-table .cell-yes").Length(), 0)
	require.Greater(t, doc.Find(".comparison-table .cell-no").Length(), 0)
}

func TestServicesLinksWorkAsPlainNavigation(t *testing.T) {
	srv, _ := newTestRouter(t)
	c := newClient(t, srv)

	doc := parseHTML(t, c.get("/services", false))
	var pcosHref string
	doc.Find(".filter-bar a.chip").Each(func(_ int, s *goquery.Selection) {
		if strings.HasPrefix(strings.TrimSpace(s.Text()), "PCOS") {
			pcosHref = s.AttrOr("href", "")
		}
	})
	require.Equal(t, "/services?category=pcos", pcosHref)
	require.Equal(t, "/services?period=yearly", doc.Find(`.period-toggle [role="switch"]`).AttrOr("href", ""))

	// Following the href without htmx must select the category.
	doc = parseHTML(t, c.get(pcosHref, false))
	require.Equal(t, pcosHref, doc.Find(".filter-bar .chip.active").AttrOr("href", ""))
	require.Equal(t, 1, doc.Find(".plan-card").Length())

	yearly := doc.Find(`.period-toggle [role="switch"]`).AttrOr("href", "")
	require.Equal(t, "/services?category=pcos&period=yearly", yearly)
	require.Equal(t, "/services/plans?category=pcos&period=yearly", doc.Find(`.period-toggle [role="switch"]`).AttrOr("hx-get", ""))

	doc = parseHTML(t, c.get(yearly, false))
	require.Equal(t, "true", doc.Find(`.period-toggle [role="switch"]`).AttrOr("aria-checked", ""))
	require.Equal(t, "/year", doc.Find(".plan-card .unit").First().Text())
	require.Equal(t, "/services?category=pcos&period=yearly", doc.Find(".filter-bar .chip.active").AttrOr("href", ""))
}

func TestPlansAPIIsCORSEnabled(t *testing.T) {
	srv, _ := newTestRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/plans?category=pcos&period=yearly", nil)
	req.Header.Set("Origin", "https://partner.example")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var body struct {
		Category string `json:"category"`
		Period   string `json:"period"`
		Plans    []struct {
			ID    string `json:"id"`
			Price struct {
				Amount  int    `json:"amount"`
				Unit    string `json:"unit"`
				Savings int    `json:"savings"`
			} `json:"price"`
		} `json:"plans"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "pcos", body.Category)
	require.Equal(t, "yearly", body.Period)
	require.Len(t, body.Plans, 1)
	require.Equal(t, "/year", body.Plans[0].Price.Unit)
	require.Positive(t, body.Plans[0].Price.Savings)
}

func TestHomeCountersAndTestimonialCarousel(t *testing.T) {
	srv, _ := newTestRouter(t)
	c := newClient(t, srv)
	doc := parseHTML(t, c.get("/", false))

	counters := doc.Find("[data-counter]")
	require.Equal(t, 4, counters.Length())
	first := counters.First()
	require.Equal(t, "40", first.AttrOr("data-counter-interval", ""))
	frames := strings.Split(first.AttrOr("data-counter-frames", ""), ",")
	require.Len(t, frames, 50)
	require.Equal(t, "1000", frames[len(frames)-1])
	require.Equal(t, "1,000", first.Find("[data-counter-value]").Text())

	slide := doc.Find("#testimonial")
	require.Equal(t, "/testimonials?t=1", slide.AttrOr("hx-get", ""))
	require.Equal(t, "load delay:5s", slide.AttrOr("hx-trigger", ""))

	doc = parseHTML(t, c.get("/testimonials?t=-1", true))
	require.Contains(t, doc.Find("figcaption strong").Text(), "Emily Rodriguez")
	require.Equal(t, "/testimonials?t=0", doc.Find("#testimonial").AttrOr("hx-get", ""))
}

func TestAboutTimelineRotates(t *testing.T) {
	srv, _ := newTestRouter(t)
	c := newClient(t, srv)
	doc := parseHTML(t, c.get("/about", false))
	require.Equal(t, "30", doc.Find("[data-counter]").First().AttrOr("data-counter-interval", ""))
	tl := doc.Find("#timeline")
	require.Equal(t, "load delay:3s", tl.AttrOr("hx-trigger", ""))
	require.Equal(t, "/about/timeline?i=1", tl.AttrOr("hx-get", ""))

	doc = parseHTML(t, c.get("/about/timeline?i=4", true))
	require.Contains(t, doc.Find(".timeline-entry.active").Text(), "2024")
	require.Equal(t, "/about/timeline?i=0", doc.Find("#timeline").AttrOr("hx-get", ""))
}

func TestContactSubmitThenResetsAfterDelay(t *testing.T) {
	srv, clock := newTestRouter(t)
	c := newClient(t, srv)

	form := url.Values{
		"name":          {"Ada Lovelace"},
		"email":         {"Ada@Example.com"},
		"phone":         {"555-0100"},
		"service":       {"Custom Meal Planning"},
		"message":       {"Looking for a plan"},
		"preferredTime": {"morning"},
		"urgency":       {"normal"},
	}
	rec := c.post("/contact", form, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	doc := parseHTML(t, rec)
	success := doc.Find(".alert-success")
	require.Contains(t, success.Text(), "Thank you, Ada Lovelace")
	require.Equal(t, "load delay:3s", success.AttrOr("hx-trigger", ""))

	// Polled before the delay: still showing thanks, asks again soon.
	doc = parseHTML(t, c.get("/contact/form", true))
	require.Equal(t, "load delay:250ms", doc.Find(".alert-success").AttrOr("hx-trigger", ""))

	clock.Advance(3 * time.Second)
	doc = parseHTML(t, c.get("/contact/form", true))
	require.Equal(t, 0, doc.Find(".alert-success").Length())
	require.Equal(t, "", doc.Find(`input[name="name"]`).AttrOr("value", "x"))
	require.Equal(t, "", doc.Find(`textarea[name="message"]`).Text())
	require.Equal(t, "normal", doc.Find(`input[name="urgency"][checked]`).AttrOr("value", ""))
}

func TestContactValidationKeepsValues(t *testing.T) {
	srv, _ := newTestRouter(t)
	c := newClient(t, srv)

	rec := c.post("/contact", url.Values{"name": {"Ada"}, "email": {"not-an-email"}}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parseHTML(t, rec)
	require.Equal(t, "Ada", doc.Find(`input[name="name"]`).AttrOr("value", ""))
	require.Contains(t, doc.Find(".field.invalid").Text(), "Please enter a valid email address.")
	require.Contains(t, doc.Find(".field.invalid").Text(), "Please choose a service.")
	require.NotEmpty(t, doc.Find(`input[name="idempotency_key"]`).AttrOr("value", ""))

	rec = c.post("/contact", url.Values{"name": {"Ada"}}, false)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestContactDeliveryFailureOffersRetry(t *testing.T) {
	intakeSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer intakeSrv.Close()

	srv, _ := newTestRouter(t, func(cfg *config.Config) {
		cfg.Submission.BaseURL = intakeSrv.URL
	})
	c := newClient(t, srv)
	rec := c.post("/contact", url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"service": {"Custom Meal Planning"},
	}, true)
	doc := parseHTML(t, rec)
	require.Contains(t, doc.Find(".alert-error").Text(), "couldn't send")
	require.Equal(t, "Ada", doc.Find(`input[name="name"]`).AttrOr("value", ""))
	require.Equal(t, "contact", doc.Find(".alert-error button").AttrOr("form", ""))
}

func TestChatSendThenScriptedReply(t *testing.T) {
	srv, clock := newTestRouter(t)
	c := newClient(t, srv)

	rec := c.post("/chat/messages", url.Values{"message": {"  Do you accept <b>insurance</b>?  "}}, true)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	doc := parseHTML(t, rec)
	msgs := doc.Find(".chat-msg[data-id]")
	require.Equal(t, 2, msgs.Length())
	require.Equal(t, "Do you accept insurance?", strings.TrimSpace(msgs.Last().Find("p").Text()))
	require.True(t, msgs.Last().HasClass("from-user"))
	typing := doc.Find(".typing")
	require.Equal(t, "load delay:1s", typing.AttrOr("hx-trigger", ""))

	// Blank messages change nothing.
	doc = parseHTML(t, c.post("/chat/messages", url.Values{"message": {"   "}}, true))
	require.Equal(t, 2, doc.Find(".chat-msg[data-id]").Length())

	clock.Advance(time.Second)
	doc = parseHTML(t, c.get("/chat/messages", true))
	msgs = doc.Find(".chat-msg[data-id]")
	require.Equal(t, 3, msgs.Length())
	require.True(t, msgs.Last().HasClass("from-bot"))
	require.Equal(t, 0, doc.Find(".typing").Length())
}

func TestChatWebSocket(t *testing.T) {
	h, clock := newTestRouter(t)
	srv := httptest.NewServer(h)
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/chat/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	read := func() chat.Entry {
		t.Helper()
		var ev chatEvent
		require.NoError(t, conn.ReadJSON(&ev))
		require.Equal(t, "entry", ev.Type)
		require.NotNil(t, ev.Entry)
		return *ev.Entry
	}

	greeting := read()
	require.Equal(t, chat.Assistant, greeting.Sender)

	require.NoError(t, conn.WriteJSON(chatRequest{Text: "hello"}))
	user := read()
	require.Equal(t, chat.User, user.Sender)
	require.Equal(t, "hello", user.Text)

	clock.Advance(time.Second)
	reply := read()
	require.Equal(t, chat.Assistant, reply.Sender)
	require.NotEmpty(t, reply.Text)
}

func TestNewsletterSubscribe(t *testing.T) {
	srv, _ := newTestRouter(t)
	c := newClient(t, srv)

	doc := parseHTML(t, c.post("/newsletter", url.Values{"email": {"nope"}}, true))
	require.Contains(t, doc.Find(".field-error").Text(), "valid email")

	doc = parseHTML(t, c.post("/newsletter", url.Values{"email": {"glow@example.com"}}, true))
	require.Equal(t, 1, doc.Find(".newsletter.subscribed").Length())

	// The session remembers the subscription on later pages.
	doc = parseHTML(t, c.get("/blog", false))
	require.Equal(t, 2, doc.Find(".newsletter.subscribed").Length())
}

func TestSitemapAndRobots(t *testing.T) {
	srv, _ := newTestRouter(t)
	c := newClient(t, srv)

	rec := c.get("/robots.txt", false)
	require.Contains(t, rec.Body.String(), "Sitemap: https://nutriglow.test/sitemap.xml")

	rec = c.get("/sitemap.xml", false)
	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rec.Body.String()))
	require.NoError(t, err)
	var locs []string
	doc.Find("loc").Each(func(_ int, s *goquery.Selection) { locs = append(locs, s.Text()) })
	require.Len(t, locs, 11)
	if diff := cmp.Diff([]string{
		"https://nutriglow.test/",
		"https://nutriglow.test/about",
		"https://nutriglow.test/services",
		"https://nutriglow.test/blog",
		"https://nutriglow.test/contact",
	}, locs[:5]); diff != "" {
		t.Fatalf("sitemap pages mismatch (-want +got):\n%s", diff)
	}
}

func TestExportWritesStaticSite(t *testing.T) {
	srv, _ := newTestRouter(t)
	site, err := siteContent.Embedded()
	require.NoError(t, err)

	out := t.TempDir()
	n, err := exportSite(srv, site, out)
	require.NoError(t, err)
	require.GreaterOrEqual(t, n, 13)

	for _, p := range []string{"index.html", "about/index.html", "blog/five-minute-breakfast-ideas/index.html", "sitemap.xml", "assets/css/site.css"} {
		_, err := os.Stat(filepath.Join(out, p))
		require.NoError(t, err, p)
	}
}

func TestAssetsServedWithETag(t *testing.T) {
	srv, _ := newTestRouter(t)
	rec := newClient(t, srv).get("/assets/js/site.js", false)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Header().Get("ETag"))
}
