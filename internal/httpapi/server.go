package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"gigbook/internal/store"
)

// VenueService captures the venue operations needed by the HTTP handlers.
type VenueService interface {
	Create(ctx context.Context, venue store.Venue) (store.Venue, error)
	ListByLocation(ctx context.Context) ([]store.VenueGroup, error)
	Search(ctx context.Context, term string) ([]store.VenueSummary, error)
	Get(ctx context.Context, id int64) (store.VenueDetail, error)
	Update(ctx context.Context, id int64, venue store.Venue) (store.Venue, error)
	Delete(ctx context.Context, id int64) error
}

// ArtistService captures the artist operations needed by the HTTP handlers.
type ArtistService interface {
	Create(ctx context.Context, artist store.Artist) (store.Artist, error)
	List(ctx context.Context) ([]store.ArtistSummary, error)
	Search(ctx context.Context, term string) ([]store.ArtistSummary, error)
	Get(ctx context.Context, id int64) (store.ArtistDetail, error)
	Update(ctx context.Context, id int64, artist store.Artist) (store.Artist, error)
	Delete(ctx context.Context, id int64) error
}

// ShowService captures the show booking operations needed by the HTTP handlers.
type ShowService interface {
	Create(ctx context.Context, input store.ShowInput) (store.Show, error)
	List(ctx context.Context) ([]store.ShowDetail, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	venues  VenueService
	artists ArtistService
	shows   ShowService
}

// New builds a Server from its service dependencies.
func New(venues VenueService, artists ArtistService, shows ShowService) *Server {
	return &Server{venues: venues, artists: artists, shows: shows}
}

// Routes exposes the HTTP handlers for the booking directory.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /api/v1/venues", s.handleListVenues)
	mux.HandleFunc("POST /api/v1/venues", s.handleCreateVenue)
	mux.HandleFunc("GET /api/v1/venues/search", s.handleSearchVenues)
	mux.HandleFunc("GET /api/v1/venues/{id}", s.handleGetVenue)
	mux.HandleFunc("PUT /api/v1/venues/{id}", s.handleUpdateVenue)
	mux.HandleFunc("DELETE /api/v1/venues/{id}", s.handleDeleteVenue)

	mux.HandleFunc("GET /api/v1/artists", s.handleListArtists)
	mux.HandleFunc("POST /api/v1/artists", s.handleCreateArtist)
	mux.HandleFunc("GET /api/v1/artists/search", s.handleSearchArtists)
	mux.HandleFunc("GET /api/v1/artists/{id}", s.handleGetArtist)
	mux.HandleFunc("PUT /api/v1/artists/{id}", s.handleUpdateArtist)
	mux.HandleFunc("DELETE /api/v1/artists/{id}", s.handleDeleteArtist)

	mux.HandleFunc("GET /api/v1/shows", s.handleListShows)
	mux.HandleFunc("POST /api/v1/shows", s.handleCreateShow)

	return mux
}

type errorResponse struct {
	Error string `json:"error"`
}

type searchResponse struct {
	Count int         `json:"count"`
	Data  interface{} `json:"data"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps the store's error taxonomy onto HTTP statuses. Validation
// and not-found outcomes carry their message to the caller; storage and
// integrity failures are logged and surfaced as a generic internal error.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *store.ValidationError
	var integrityErr *store.IntegrityError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Error()})
	case errors.Is(err, store.ErrVenueNotFound), errors.Is(err, store.ErrArtistNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.As(err, &integrityErr):
		log.Error().Err(err).Int64("show_id", integrityErr.ShowID).
			Str("missing", integrityErr.Missing).Msg("booking integrity violation")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	default:
		log.Error().Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
