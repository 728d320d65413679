package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"key-control-backend/internal/domain"
	"key-control-backend/internal/logger"

	"github.com/gorilla/mux"
)

// writeJSON serializes payload with the given status. A nil payload
// writes only headers (used for 204).
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Encoding response failed", "error", err)
	}
}

// writeError maps the domain error taxonomy onto the HTTP status codes
// and the Portuguese error envelope.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *domain.ValidationError
		nf *domain.NotFoundError
		ce *domain.ConflictError
	)
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"erro":     "Dados inválidos.",
			"detalhes": ve.Fields,
		})
	case errors.As(err, &nf):
		writeJSON(w, http.StatusNotFound, map[string]string{"erro": nf.Message})
	case errors.As(err, &ce):
		body := map[string]string{"erro": ce.Message}
		if ce.Detail != "" {
			body["mensagem"] = ce.Detail
		}
		writeJSON(w, http.StatusConflict, body)
	default:
		logger.Error("Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestIDFrom(r.Context()),
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"erro": "Erro interno do servidor.",
		})
	}
}

// decodeBody reads the JSON request body into dst, reporting malformed
// payloads as a validation error.
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && err != io.EOF {
		return domain.NewValidationError("body", "JSON inválido.")
	}
	return nil
}

// pathID extracts the {id} route variable.
func pathID(r *http.Request) (int32, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", "O id informado na URL é inválido.")
	}
	return int32(id), nil
}
