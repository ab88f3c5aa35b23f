package mockserver

import (
	"bytes"
	"embed"
	"encoding/json"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"github.com/klauspost/compress/gzip"

	"github.com/goliatone/go-checkout/internal/logging"
	"github.com/goliatone/go-checkout/pkg/payment"
)

// BasePlaceholder is replaced by the scheme and host of the incoming request
// in every served list result, so links point back at the server.
const BasePlaceholder = "{{base}}"

const contentTypeJSON = "application/json"

//go:embed fixtures
var fixtures embed.FS

// Fixtures exposes the embedded fixture tree rooted at fixtures/.
func Fixtures() fs.FS {
	sub, err := fs.Sub(fixtures, "fixtures")
	if err != nil {
		panic(err)
	}
	return sub
}

type override struct {
	status int
	body   []byte
}

// Option customises a Server.
type Option func(*Server)

// WithStatus makes requests to urlPath answer with status and an empty body.
func WithStatus(urlPath string, status int) Option {
	return WithResponse(urlPath, status, nil)
}

// WithResponse makes requests to urlPath answer with status and body.
func WithResponse(urlPath string, status int, body []byte) Option {
	return func(s *Server) {
		s.overrides[urlPath] = override{status: status, body: body}
	}
}

// WithGzip compresses responses for clients that accept gzip.
func WithGzip(enabled bool) Option {
	return func(s *Server) {
		s.gzip = enabled
	}
}

// WithFS replaces the fixture tree. The tree must follow the lists/, lang/
// and logos/ layout of the embedded one.
func WithFS(fsys fs.FS) Option {
	return func(s *Server) {
		if fsys != nil {
			s.fsys = fsys
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// Server serves list results, localization files and logos from fixtures.
type Server struct {
	router    *mux.Router
	fsys      fs.FS
	overrides map[string]override
	gzip      bool
	logger    *slog.Logger

	mu   sync.Mutex
	hits map[string]int
}

// New builds a server over the embedded fixtures.
func New(options ...Option) *Server {
	s := &Server{
		fsys:      Fixtures(),
		overrides: make(map[string]override),
		hits:      make(map[string]int),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	s.logger = logging.OrDiscard(s.logger)
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.count, s.inject)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("OK\n"))
	}).Methods(http.MethodGet)
	r.HandleFunc("/lists/{id}", s.listHandler).Methods(http.MethodGet)
	r.HandleFunc("/lang/{locale}/{file}", s.langHandler).Methods(http.MethodGet)
	r.HandleFunc("/logos/{file}", s.logoHandler).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		s.writeEnvelope(w, req, http.StatusNotFound, "ABORT", "NOT_FOUND", "no route for "+req.URL.Path)
	})
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Hits reports how many requests reached urlPath.
func (s *Server) Hits(urlPath string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[urlPath]
}

func (s *Server) count(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.hits[r.URL.Path]++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		o, ok := s.overrides[r.URL.Path]
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		s.logger.Debug("injected response", "path", r.URL.Path, "status", o.status)
		if len(o.body) > 0 {
			w.Header().Set("Content-Type", contentTypeJSON)
		}
		w.WriteHeader(o.status)
		_, _ = w.Write(o.body)
	})
}

func (s *Server) listHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	data, err := fs.ReadFile(s.fsys, path.Join("lists", id+".json"))
	if err != nil {
		s.writeEnvelope(w, r, http.StatusNotFound, "ABORT", "INVALID_REQUEST", "unknown list "+id)
		return
	}
	data = bytes.ReplaceAll(data, []byte(BasePlaceholder), []byte(baseURL(r)))
	s.write(w, r, http.StatusOK, contentTypeJSON, data)
}

func (s *Server) langHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	data, err := fs.ReadFile(s.fsys, path.Join("lang", vars["locale"], vars["file"]))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	s.write(w, r, http.StatusOK, contentTypeJSON, data)
}

func (s *Server) logoHandler(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	data, err := fs.ReadFile(s.fsys, path.Join("logos", file))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	contentType := "application/octet-stream"
	if strings.HasSuffix(file, ".svg") {
		contentType = "image/svg+xml"
	}
	s.write(w, r, http.StatusOK, contentType, data)
}

func (s *Server) writeEnvelope(w http.ResponseWriter, r *http.Request, status int, code, reason, info string) {
	body, err := json.Marshal(payment.ErrorInfo{
		ResultInfo:  info,
		Interaction: payment.Interaction{Code: code, Reason: reason},
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.write(w, r, status, contentTypeJSON, body)
}

func (s *Server) write(w http.ResponseWriter, r *http.Request, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	if s.gzip && strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
		w.Header().Set("Content-Encoding", "gzip")
		w.WriteHeader(status)
		gz := gzip.NewWriter(w)
		if _, err := gz.Write(body); err != nil {
			s.logger.Warn("gzip response", "path", r.URL.Path, "error", err)
		}
		if err := gz.Close(); err != nil {
			s.logger.Warn("gzip response", "path", r.URL.Path, "error", err)
		}
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
