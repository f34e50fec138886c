package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/dayfacts/internal/session"
	"github.com/ppiankov/dayfacts/internal/util"
)

// CookieName holds the visitor's session id
const CookieName = "dayfacts_session"

// Options configures the HTTP surface
type Options struct {
	Addr       string
	SessionTTL time.Duration
	FadeOut    time.Duration
	FadeIn     time.Duration
	Session    session.Options // Template for every visitor session
	Loader     session.Loader
	Now        func() time.Time // nil uses time.Now
}

// visitor is one browser's session. The mutex serialises its requests.
type visitor struct {
	mu   sync.Mutex
	day  string // YYYY-MM-DD the session was loaded for
	sess *session.Session
}

// Server serves the fact page and its JSON API
type Server struct {
	opts       Options
	router     chi.Router
	httpServer *http.Server

	visitors *gocache.Cache
	mu       sync.Mutex // guards visitor creation
}

// New creates a server
func New(opts Options) *Server {
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 30 * time.Minute
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		opts:     opts,
		visitors: gocache.New(opts.SessionTTL, opts.SessionTTL),
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: util.Log, NoColor: true}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", s.handlePage)
	r.Post("/next", s.handleNextForm)
	r.Post("/category/{name}", s.handleCategoryForm)

	r.Route("/api", func(r chi.Router) {
		r.Get("/fact", s.handleFact)
		r.Post("/next", s.handleNext)
		r.Post("/category/{name}", s.handleCategory)
		r.Get("/sidebars", s.handleSidebars)
	})

	return r
}

// Handler returns the router, for tests and embedding
func (s *Server) Handler() http.Handler { return s.router }

// Start begins listening on the configured address
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	util.Log.WithField("addr", s.opts.Addr).Info("dayfacts server listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// withVisitor resolves the caller's session, loading today's facts on first
// use, after the date rolls over, or on the next GET after a failed load, and
// runs fn under the session lock.
func (s *Server) withVisitor(w http.ResponseWriter, r *http.Request, fn func(*session.Session)) error {
	v, id, err := s.visitorFor(r)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.opts.SessionTTL.Seconds()),
	})

	v.mu.Lock()
	defer v.mu.Unlock()

	now := s.opts.Now()
	today := now.Format(time.DateOnly)
	retry := v.sess != nil && !v.sess.Loaded() && r.Method == http.MethodGet
	if v.sess == nil || v.day != today || retry {
		sess, err := session.New(s.opts.Session)
		if err != nil {
			return err
		}
		// A failed load is shown through the session view
		_ = sess.Load(r.Context(), s.opts.Loader, now)
		v.sess = sess
		v.day = today
	}

	fn(v.sess)
	return nil
}

// visitorFor returns the session for the request cookie, creating one when
// the cookie is missing or unknown. Every hit slides the expiry.
func (s *Server) visitorFor(r *http.Request) (*visitor, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, err := r.Cookie(CookieName); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			if cached, found := s.visitors.Get(c.Value); found {
				v := cached.(*visitor)
				s.visitors.SetDefault(c.Value, v)
				return v, c.Value, nil
			}
		}
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return nil, "", err
	}
	v := &visitor{}
	s.visitors.SetDefault(id.String(), v)
	util.Log.WithField("session", id.String()).Debug("new visitor session")
	return v, id.String(), nil
}

// Sessions returns the number of live visitor sessions
func (s *Server) Sessions() int {
	return s.visitors.ItemCount()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
