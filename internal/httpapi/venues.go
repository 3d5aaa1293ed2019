package httpapi

import (
	"encoding/json"
	"net/http"

	"gigbook/internal/store"
)

func (s *Server) handleListVenues(w http.ResponseWriter, r *http.Request) {
	groups, err := s.venues.ListByLocation(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if groups == nil {
		groups = []store.VenueGroup{}
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) handleSearchVenues(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("term")

	venues, err := s.venues.Search(r.Context(), term)
	if err != nil {
		writeError(w, err)
		return
	}
	if venues == nil {
		venues = []store.VenueSummary{}
	}
	writeJSON(w, http.StatusOK, searchResponse{Count: len(venues), Data: venues})
}

func (s *Server) handleGetVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid venue ID"})
		return
	}

	detail, err := s.venues.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleCreateVenue(w http.ResponseWriter, r *http.Request) {
	var venue store.Venue
	if err := json.NewDecoder(r.Body).Decode(&venue); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	created, err := s.venues.Create(r.Context(), venue)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid venue ID"})
		return
	}

	var venue store.Venue
	if err := json.NewDecoder(r.Body).Decode(&venue); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	updated, err := s.venues.Update(r.Context(), id, venue)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid venue ID"})
		return
	}

	if err := s.venues.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
