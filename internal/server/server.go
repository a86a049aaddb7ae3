package server

import (
	"net/http"

	"github.com/claude/coachtip/internal/catalog"
	"github.com/claude/coachtip/internal/coaching"
	"github.com/claude/coachtip/internal/ingest/alpha"
	"github.com/claude/coachtip/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Options configures a Server.
type Options struct {
	APIKey string
	// MaxCues bounds the form cues in the components detail.
	MaxCues int
	// AllowedOrigins for CORS. Empty allows any origin.
	AllowedOrigins []string
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    storage.Store
	plans    *alpha.Annotator
	importer *catalog.Importer
	composer coaching.Composer
	log      zerolog.Logger
	opts     Options
	whois    WhoIser
	router   chi.Router
}

// New creates a new Server with all routes configured.
func New(store storage.Store, opts Options, log zerolog.Logger) *Server {
	s := &Server{
		store:    store,
		plans:    alpha.NewAnnotator(store, log),
		importer: catalog.New(store, log, false),
		composer: coaching.Composer{MaxCues: opts.MaxCues},
		log:      log,
		opts:     opts,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetTailscale enables tailnet identity lookups for incoming requests.
func (s *Server) SetTailscale(w WhoIser) {
	s.whois = w
}

// Handle attaches an extra handler, such as the MCP endpoint, behind the
// same middleware stack.
func (s *Server) Handle(pattern string, h http.Handler) {
	s.router.Handle(pattern, h)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log)...)
	s.router.Use(middleware.Recoverer)
	s.router.Use(CORS(s.opts.AllowedOrigins))
	s.router.Use(s.identity)

	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/me", s.handleMe)

		r.Post("/tips", s.handleTip)
		r.Post("/tips/batch", s.handleTipBatch)
		r.Post("/avoid", s.handleAvoid)
		r.Post("/plans/alpha", s.handleAlphaPlan)

		r.Get("/reference/rpe", s.handleRPEScale)
		r.Get("/reference/tempo", s.handleTempoNotation)

		r.Get("/exercises", s.handleSearchExercises)
		r.Get("/exercises/{id}/tip", s.handleExerciseTip)
		r.Get("/clients/{id}", s.handleGetClient)
		r.Get("/clients/{id}/exercises/{exerciseID}/tip", s.handleClientExerciseTip)
		r.Get("/imports", s.handleImportLogs)

		// Mutating endpoints (API key required)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.opts.APIKey))
			r.Post("/clients", s.handleUpsertClient)
			r.Post("/exercises/import", s.handleImportCatalog)
		})
	})
}
