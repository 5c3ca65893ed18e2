package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"facethewall/internal/app/page"
	"facethewall/internal/locale"
	"facethewall/internal/store"
)

// PageService captures the page assembly operations needed by the HTTP handlers.
type PageService interface {
	Render(ctx context.Context, requested string) (*page.Page, error)
	Catalog(ctx context.Context) (*page.CatalogView, error)
	Album(ctx context.Context, albumID string) (*page.AlbumCard, error)
}

// ImageService exposes the raw image rows and store health.
type ImageService interface {
	ListImages(ctx context.Context) ([]store.Image, error)
	Ping(ctx context.Context) error
}

// LocaleService describes the configured site languages.
type LocaleService interface {
	Supported() []locale.Code
	Default() locale.Code
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	pages   PageService
	images  ImageService
	locales LocaleService
}

// NewServer constructs a Server with the provided dependencies.
func NewServer(pages PageService, images ImageService, locales LocaleService) *Server {
	return &Server{
		pages:   pages,
		images:  images,
		locales: locales,
	}
}

// APIPrefix is the path every versioned API route lives under.
const APIPrefix = "/api/v1"

// Routes builds the HTTP router. apiMiddleware wraps the versioned API routes
// only; health checks and the root redirect are left untouched.
func (s *Server) Routes(apiMiddleware ...mux.MiddlewareFunc) *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", s.handleReady).Methods(http.MethodGet)

	router.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)

	// Registered on the root router so method mismatches reach the JSON 405
	// handler below.
	api := func(path string, h http.HandlerFunc) {
		var handler http.Handler = h
		for i := len(apiMiddleware) - 1; i >= 0; i-- {
			handler = apiMiddleware[i].Middleware(handler)
		}
		router.Handle(APIPrefix+path, handler).Methods(http.MethodGet)
	}
	api("/pages/{locale}", s.handlePage)
	api("/images", s.handleImages)
	api("/catalog", s.handleCatalog)
	api("/albums/{id}", s.handleAlbum)
	api("/locales", s.handleLocales)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	})

	return router
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
