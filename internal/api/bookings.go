package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"shareit/internal/export"
	"shareit/internal/models"
)

func (s *HTTPServer) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	bookerID, ok := s.actingUser(w, r)
	if !ok {
		return
	}

	var body struct {
		ItemID int64     `json:"item_id"`
		Start  time.Time `json:"start"`
		End    time.Time `json:"end"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if body.ItemID <= 0 {
		writeError(w, http.StatusBadRequest, "item_id is required")
		return
	}
	if body.Start.IsZero() || body.End.IsZero() {
		writeError(w, http.StatusBadRequest, "start and end are required")
		return
	}

	booking, err := s.bookings.Create(r.Context(), bookerID, body.ItemID, body.Start, body.End)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateItemView(r, booking.ItemID)
	writeJSON(w, http.StatusCreated, booking)
}

func (s *HTTPServer) handleApproveBooking(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.actingUser(w, r)
	if !ok {
		return
	}
	bookingID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	var approved bool
	switch r.URL.Query().Get("approved") {
	case "true":
		approved = true
	case "false":
		approved = false
	default:
		writeError(w, http.StatusBadRequest, "approved must be true or false")
		return
	}

	booking, err := s.bookings.SetApproval(r.Context(), ownerID, bookingID, approved)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	s.invalidateItemView(r, booking.ItemID)
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	requesterID, ok := s.actingUser(w, r)
	if !ok {
		return
	}
	bookingID, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}

	booking, err := s.bookings.GetByID(r.Context(), requesterID, bookingID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (s *HTTPServer) handleListBookerBookings(w http.ResponseWriter, r *http.Request) {
	bookerID, ok := s.actingUser(w, r)
	if !ok {
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	state := models.ParseState(r.URL.Query().Get("state"))
	bookings, err := s.bookings.ListForBooker(r.Context(), bookerID, state, page)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if bookings == nil {
		bookings = []*models.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (s *HTTPServer) handleListOwnerBookings(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.actingUser(w, r)
	if !ok {
		return
	}
	page, err := pageFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	state := models.ParseState(r.URL.Query().Get("state"))
	bookings, err := s.bookings.ListForOwner(r.Context(), ownerID, state, page)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if bookings == nil {
		bookings = []*models.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

// handleExportOwnerBookings streams the owner's full booking history as an
// xlsx workbook.
func (s *HTTPServer) handleExportOwnerBookings(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := s.actingUser(w, r)
	if !ok {
		return
	}

	owner, err := s.users.GetByID(r.Context(), ownerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	bookings, err := s.bookings.ListForOwner(r.Context(), ownerID, models.StateAll, models.Page{})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	details, err := s.items.ListByOwner(r.Context(), ownerID, models.Page{})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	items := make(map[int64]*models.Item, len(details))
	for _, d := range details {
		item := d.Item
		items[item.ID] = &item
	}

	workbook, err := export.OwnerBookingsWorkbook(owner, bookings, items)
	if err != nil {
		s.logger.Error().Err(err).Int64("owner_id", ownerID).Msg("failed to build bookings workbook")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	defer workbook.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"bookings-%d.xlsx\"", ownerID))
	if err := workbook.Write(w); err != nil {
		s.logger.Error().Err(err).Int64("owner_id", ownerID).Msg("failed to stream bookings workbook")
	}
}
