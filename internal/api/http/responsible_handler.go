package http

import (
	"net/http"
	"strconv"

	"key-control-backend/internal/service"
	"key-control-backend/internal/validation"
)

type ResponsibleHandler struct {
	responsibles service.ResponsibleService
}

func NewResponsibleHandler(responsibles service.ResponsibleService) *ResponsibleHandler {
	return &ResponsibleHandler{responsibles: responsibles}
}

// List serves one page; `q` switches to the full-text search mirror.
func (h *ResponsibleHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", 50)

	responsibles, err := h.responsibles.List(r.Context(), query, page, perPage)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, responsibles)
}

func (h *ResponsibleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.responsibles.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ResponsibleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in validation.ResponsibleInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.responsibles.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *ResponsibleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in validation.ResponsibleInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	resp, err := h.responsibles.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ResponsibleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.responsibles.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
