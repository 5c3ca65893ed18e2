package httpapi

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"facethewall/internal/locale"
	"facethewall/internal/logging"
	"facethewall/internal/musicapi"
)

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.images.Ping(r.Context()); err != nil {
		logging.WithContext(r.Context()).Warn().Err(err).Msg("readiness check failed")
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "database unavailable"})
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/api/v1/pages/"+string(s.locales.Default()), http.StatusTemporaryRedirect)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	requested := mux.Vars(r)["locale"]

	p, err := s.pages.Render(r.Context(), requested)
	if err != nil {
		s.writeCatalogError(w, r, err, "failed to render page")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleImages(w http.ResponseWriter, r *http.Request) {
	images, err := s.images.ListImages(r.Context())
	if err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Msg("failed to fetch images")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Error while fetching images"})
		return
	}
	writeJSON(w, http.StatusOK, images)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	view, err := s.pages.Catalog(r.Context())
	if err != nil {
		s.writeCatalogError(w, r, err, "failed to fetch catalog")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleAlbum(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	card, err := s.pages.Album(r.Context(), id)
	if err != nil {
		if musicapi.IsNotFound(err) {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "album not found"})
			return
		}
		s.writeCatalogError(w, r, err, "failed to fetch album")
		return
	}
	writeJSON(w, http.StatusOK, card)
}

type localesResponse struct {
	Supported []locale.Code `json:"supported"`
	Default   locale.Code   `json:"default"`
}

func (s *Server) handleLocales(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, localesResponse{
		Supported: s.locales.Supported(),
		Default:   s.locales.Default(),
	})
}

// writeCatalogError logs the full error and answers with a generic message.
// Upstream and credential failures map to 502, everything else to 500.
func (s *Server) writeCatalogError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logging.WithContext(r.Context()).Error().Err(err).Msg(msg)

	var (
		authErr  *musicapi.AuthError
		upstream *musicapi.UpstreamError
	)
	switch {
	case errors.As(err, &authErr), errors.As(err, &upstream):
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: "music catalog unavailable"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
