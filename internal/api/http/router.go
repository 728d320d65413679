package http

import (
	"net/http"

	"key-control-backend/internal/service"

	"github.com/gorilla/mux"
)

// Services bundles everything the router needs.
type Services struct {
	Rooms        service.RoomService
	Keys         service.KeyService
	Responsibles service.ResponsibleService
	Reservations service.ReservationService
	Checkouts    service.CheckoutService
	History      service.HistoryService
}

// NewRouter wires every resource under its route and attaches the
// request-id and logging middleware.
func NewRouter(svcs Services) *mux.Router {
	r := mux.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)

	r.HandleFunc("/", index).Methods(http.MethodGet)

	rooms := NewRoomHandler(svcs.Rooms)
	r.HandleFunc("/salas", rooms.List).Methods(http.MethodGet)
	r.HandleFunc("/salas", rooms.Create).Methods(http.MethodPost)
	r.HandleFunc("/salas/{id}", rooms.Get).Methods(http.MethodGet)
	r.HandleFunc("/salas/{id}", rooms.Update).Methods(http.MethodPut, http.MethodPatch)
	r.HandleFunc("/salas/{id}", rooms.Delete).Methods(http.MethodDelete)

	keys := NewKeyHandler(svcs.Keys)
	r.HandleFunc("/chaves", keys.List).Methods(http.MethodGet)
	r.HandleFunc("/chaves", keys.Create).Methods(http.MethodPost)
	r.HandleFunc("/chaves/{id}", keys.Get).Methods(http.MethodGet)
	r.HandleFunc("/chaves/{id}", keys.Update).Methods(http.MethodPut, http.MethodPatch)
	r.HandleFunc("/chaves/{id}", keys.Delete).Methods(http.MethodDelete)

	responsibles := NewResponsibleHandler(svcs.Responsibles)
	r.HandleFunc("/responsavel", responsibles.List).Methods(http.MethodGet)
	r.HandleFunc("/responsavel", responsibles.Create).Methods(http.MethodPost)
	r.HandleFunc("/responsavel/{id}", responsibles.Get).Methods(http.MethodGet)
	r.HandleFunc("/responsavel/{id}", responsibles.Update).Methods(http.MethodPut, http.MethodPatch)
	r.HandleFunc("/responsavel/{id}", responsibles.Delete).Methods(http.MethodDelete)

	reservations := NewReservationHandler(svcs.Reservations)
	r.HandleFunc("/reservas", reservations.List).Methods(http.MethodGet)
	r.HandleFunc("/reservas", reservations.Create).Methods(http.MethodPost)
	r.HandleFunc("/reservas/{id}", reservations.Get).Methods(http.MethodGet)
	r.HandleFunc("/reservas/{id}", reservations.Update).Methods(http.MethodPut, http.MethodPatch)
	r.HandleFunc("/reservas/{id}", reservations.Delete).Methods(http.MethodDelete)

	checkouts := NewCheckoutHandler(svcs.Checkouts)
	r.HandleFunc("/retiradas", checkouts.List).Methods(http.MethodGet)
	r.HandleFunc("/retiradas", checkouts.Create).Methods(http.MethodPost)
	r.HandleFunc("/retiradas/{id}", checkouts.Get).Methods(http.MethodGet)
	r.HandleFunc("/retiradas/{id}", checkouts.Update).Methods(http.MethodPut, http.MethodPatch)
	r.HandleFunc("/retiradas/{id}", checkouts.Delete).Methods(http.MethodDelete)

	history := NewHistoryHandler(svcs.History)
	r.HandleFunc("/historico", history.List).Methods(http.MethodGet)
	r.HandleFunc("/historico/{id}", history.Get).Methods(http.MethodGet)

	return r
}

func index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"mensagem": "API de Controle de Chaves",
	})
}
