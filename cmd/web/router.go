package main

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	mw "github.com/Abhinavgupta8977/dietitian-website/internal/middleware"
)

// newRouter builds the HTTP handler from the wired package state.
func newRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	// If deployed behind a trusted reverse proxy/load balancer, RealIP will use
	// X-Forwarded-For to determine the client IP. Ensure only trusted proxies
	// can set these headers in production environments.
	r.Use(chimw.RealIP)
	r.Use(mw.Logger(baseLogger))
	r.Use(chimw.Recoverer)

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})

	// Static assets under /assets/
	r.Handle("/assets/*", mw.AssetsWithCache(os.DirFS(filepath.Join(publicDir, "assets")), "/assets"))
	r.Get("/robots.txt", RobotsHandler)
	r.Get("/sitemap.xml", SitemapHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: appConfig.CORS.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         appConfig.CORS.MaxAge,
		}))
		r.Get("/plans", PlansAPIHandler)
	})

	pageStack := chi.Middlewares{mw.HTMX, mw.Session, mw.Theme, mw.Locale(i18nBundle), mw.CSRF}
	// Unknown paths render the home view, so they need the page middleware too.
	r.NotFound(pageStack.HandlerFunc(NotFoundHandler).ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(pageStack...)

		// Long lived; kept outside the compression and timeout wrappers.
		r.Get("/chat/ws", ChatSocketHandler)

		r.Group(func(r chi.Router) {
			r.Use(chimw.Compress(5))
			r.Use(chimw.Timeout(appConfig.Server.RequestTimeout))

			r.Get("/", HomeHandler)
			r.Get("/testimonials", TestimonialFrag)

			r.Get("/about", AboutHandler)
			r.Get("/about/timeline", TimelineFrag)

			r.Get("/services", ServicesHandler)
			r.Get("/services/plans", PlansFrag)

			r.Get("/blog", BlogHandler)
			r.Get("/blog/articles", BlogArticlesFrag)
			r.Get("/blog/{slug}", ArticleHandler)

			r.Get("/contact", ContactHandler)
			r.Post("/contact", ContactSubmitHandler)
			r.Get("/contact/form", ContactFormFrag)

			r.Get("/chat/messages", ChatMessagesFrag)
			r.Post("/chat/messages", ChatSendHandler)

			r.Post("/theme/toggle", ThemeToggleHandler)
			r.Post("/newsletter", NewsletterHandler)
			r.Get("/go/{page}", GoHandler)
		})
	})
	return r
}
