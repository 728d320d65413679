package http

import (
	"net/http"
	"strconv"

	"key-control-backend/internal/domain"
	"key-control-backend/internal/service"
)

type HistoryHandler struct {
	history service.HistoryService
}

func NewHistoryHandler(history service.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// List serves the returned-checkout report, filterable by room,
// responsible id and responsible name substring.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.HistoryFilter{
		ResponsibleName: r.URL.Query().Get("responsavel_nome"),
	}
	if roomID, ok := queryInt32(r, "sala_id"); ok {
		filter.RoomID = &roomID
	}
	if respID, ok := queryInt32(r, "responsavel_id"); ok {
		filter.ResponsibleID = &respID
	}

	entries, err := h.history.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (h *HistoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	entry, err := h.history.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func queryInt32(r *http.Request, name string) (int32, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(value), true
}
