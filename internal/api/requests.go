package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"shareit/internal/models"
)

func (s *HTTPServer) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := s.actingUser(w, r)
	if !ok {
		return
	}

	var body struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(body.Description) == "" {
		writeError(w, http.StatusBadRequest, "description is required")
		return
	}

	request, err := s.requests.Create(r.Context(), requesterID, strings.TrimSpace(body.Description))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, request)
}

func (s *HTTPServer) handleListOwnRequests(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := s.actingUser(w, r)
	if !ok {
		return
	}

	requests, err := s.requests.ListOwn(r.Context(), requesterID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if requests == nil {
		requests = []*models.ItemRequest{}
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *HTTPServer) handleListAllRequests(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := s.actingUser(w, r)
	if !ok {
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	requests, err := s.requests.ListAll(r.Context(), requesterID, page)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if requests == nil {
		requests = []*models.ItemRequest{}
	}
	writeJSON(w, http.StatusOK, requests)
}

func (s *HTTPServer) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := s.actingUser(w, r)
	if !ok {
		return
	}
	requestID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request id")
		return
	}

	request, err := s.requests.GetByID(r.Context(), requesterID, requestID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, request)
}
