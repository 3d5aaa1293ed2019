package httpapi

import (
	"encoding/json"
	"net/http"

	"gigbook/internal/store"
)

func (s *Server) handleListShows(w http.ResponseWriter, r *http.Request) {
	shows, err := s.shows.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if shows == nil {
		shows = []store.ShowDetail{}
	}
	writeJSON(w, http.StatusOK, shows)
}

func (s *Server) handleCreateShow(w http.ResponseWriter, r *http.Request) {
	var input store.ShowInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	show, err := s.shows.Create(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, show)
}
