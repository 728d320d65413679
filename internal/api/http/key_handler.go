package http

import (
	"net/http"

	"key-control-backend/internal/service"
	"key-control-backend/internal/validation"
)

type KeyHandler struct {
	keys service.KeyService
}

func NewKeyHandler(keys service.KeyService) *KeyHandler {
	return &KeyHandler{keys: keys}
}

func (h *KeyHandler) List(w http.ResponseWriter, r *http.Request) {
	keys, err := h.keys.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, keys)
}

func (h *KeyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	key, err := h.keys.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, key)
}

func (h *KeyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in validation.KeyInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	key, err := h.keys.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, key)
}

func (h *KeyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in validation.KeyInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	key, err := h.keys.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, key)
}

func (h *KeyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.keys.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
