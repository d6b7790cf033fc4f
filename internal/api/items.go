package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"shareit/internal/models"
)

func (s *HTTPServer) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.actingUser(w, r)
	if !ok {
		return
	}

	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Available   *bool  `json:"available"`
		RequestID   *int64 `json:"request_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(body.Name) == "" || strings.TrimSpace(body.Description) == "" {
		writeError(w, http.StatusBadRequest, "name and description are required")
		return
	}
	if body.Available == nil {
		writeError(w, http.StatusBadRequest, "available is required")
		return
	}

	item := &models.Item{
		Name:        strings.TrimSpace(body.Name),
		Description: strings.TrimSpace(body.Description),
		Available:   *body.Available,
		RequestID:   body.RequestID,
	}
	created, err := s.items.Create(r.Context(), ownerID, item)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *HTTPServer) handleGetItem(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := s.actingUser(w, r)
	if !ok {
		return
	}
	itemID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	// Views are cached per item and per role, never per user. A cached
	// entry carries the owner id, so the requester's role is resolved from
	// the entry itself without touching the database.
	if s.cache != nil {
		if cached := s.cachedItemView(r, itemID, requesterID); cached != nil {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	item, err := s.items.GetByID(r.Context(), requesterID, itemID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	if s.cache != nil {
		ownerView := item.OwnerID == requesterID
		ttl := time.Duration(s.cfg.Cache.ItemViewTTLSeconds) * time.Second
		if cacheErr := s.cache.SetItemView(r.Context(), item, ownerView, ttl); cacheErr != nil {
			s.logger.Error().Err(cacheErr).Int64("item_id", itemID).Msg("failed to cache item view")
		}
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) cachedItemView(r *http.Request, itemID, requesterID int64) *models.ItemDetail {
	if owner, err := s.cache.GetItemView(r.Context(), itemID, true); err == nil && owner != nil {
		if owner.OwnerID == requesterID {
			return owner
		}
	}
	if public, err := s.cache.GetItemView(r.Context(), itemID, false); err == nil && public != nil {
		if public.OwnerID != requesterID {
			return public
		}
	}
	return nil
}

func (s *HTTPServer) handleListOwnerItems(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.actingUser(w, r)
	if !ok {
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := s.items.ListByOwner(r.Context(), ownerID, page)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handleSearchItems(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.actingUser(w, r); !ok {
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	items, err := s.items.Search(r.Context(), r.URL.Query().Get("text"), page)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if items == nil {
		items = []*models.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *HTTPServer) handlePatchItem(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.actingUser(w, r)
	if !ok {
		return
	}
	itemID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var patch models.ItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	item, err := s.items.Update(r.Context(), ownerID, itemID, patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateItemView(r, itemID)
	writeJSON(w, http.StatusOK, item)
}

func (s *HTTPServer) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.actingUser(w, r)
	if !ok {
		return
	}
	itemID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := s.items.Delete(r.Context(), ownerID, itemID); err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateItemView(r, itemID)
	w.WriteHeader(http.StatusNoContent)
}

func (s *HTTPServer) handleAddComment(w http.ResponseWriter, r *http.Request) {
	authorID, ok := s.actingUser(w, r)
	if !ok {
		return
	}
	itemID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(body.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	comment, err := s.comments.Add(r.Context(), authorID, itemID, strings.TrimSpace(body.Text))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateItemView(r, itemID)
	writeJSON(w, http.StatusCreated, comment)
}

func (s *HTTPServer) invalidateItemView(r *http.Request, itemID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateItemView(r.Context(), itemID); err != nil {
		s.logger.Error().Err(err).Int64("item_id", itemID).Msg("failed to invalidate item view")
	}
}
