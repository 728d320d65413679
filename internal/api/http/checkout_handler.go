package http

import (
	"net/http"

	"key-control-backend/internal/service"
	"key-control-backend/internal/validation"
)

type CheckoutHandler struct {
	checkouts service.CheckoutService
}

func NewCheckoutHandler(checkouts service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkouts: checkouts}
}

func (h *CheckoutHandler) List(w http.ResponseWriter, r *http.Request) {
	checkouts, err := h.checkouts.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, checkouts)
}

func (h *CheckoutHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	checkout, err := h.checkouts.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, checkout)
}

func (h *CheckoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in validation.CheckoutInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	checkout, err := h.checkouts.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, checkout)
}

func (h *CheckoutHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in validation.CheckoutInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	checkout, err := h.checkouts.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, checkout)
}

func (h *CheckoutHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.checkouts.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}
