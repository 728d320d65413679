// Package service implements the business rules over the repositories.
// Services validate input, run the rule checks that do not need to hold a
// transaction, delegate the transactional writes to the repositories, and
// maintain the cache and search mirrors as best-effort side effects.
package service

import (
	"context"
	"encoding/json"

	"key-control-backend/internal/cache"
	"key-control-backend/internal/domain"
	"key-control-backend/internal/validation"
)

type RoomService interface {
	Create(ctx context.Context, in validation.RoomInput) (*domain.Room, error)
	GetByID(ctx context.Context, id int32) (*domain.Room, error)
	List(ctx context.Context) ([]domain.Room, error)
	Update(ctx context.Context, id int32, in validation.RoomInput) (*domain.Room, error)
	Delete(ctx context.Context, id int32) error
}

type KeyService interface {
	Create(ctx context.Context, in validation.KeyInput) (*domain.Key, error)
	GetByID(ctx context.Context, id int32) (*domain.Key, error)
	List(ctx context.Context) ([]domain.Key, error)
	Update(ctx context.Context, id int32, in validation.KeyInput) (*domain.Key, error)
	Delete(ctx context.Context, id int32) error
}

type ResponsibleService interface {
	Create(ctx context.Context, in validation.ResponsibleInput) (*domain.Responsible, error)
	GetByID(ctx context.Context, id int32) (*domain.Responsible, error)
	// List returns one page of responsibles. A non-empty query goes through
	// the search mirror instead of the database.
	List(ctx context.Context, query string, page, perPage int) ([]domain.Responsible, error)
	Update(ctx context.Context, id int32, in validation.ResponsibleInput) (*domain.Responsible, error)
	Delete(ctx context.Context, id int32) error
}

type ReservationService interface {
	Create(ctx context.Context, in validation.ReservationInput) (*domain.Reservation, error)
	GetByID(ctx context.Context, id int32) (*domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	Update(ctx context.Context, id int32, in validation.ReservationInput) (*domain.Reservation, error)
	Delete(ctx context.Context, id int32) error
}

type CheckoutService interface {
	Create(ctx context.Context, in validation.CheckoutInput) (*domain.Checkout, error)
	GetByID(ctx context.Context, id int32) (*domain.Checkout, error)
	List(ctx context.Context) ([]domain.Checkout, error)
	Update(ctx context.Context, id int32, in validation.CheckoutInput) (*domain.Checkout, error)
	Delete(ctx context.Context, id int32) error
}

type HistoryService interface {
	List(ctx context.Context, filter domain.HistoryFilter) ([]domain.CheckoutHistoryEntry, error)
	GetByID(ctx context.Context, checkoutID int32) (*domain.CheckoutHistoryEntry, error)
}

// cached decodes the cache entry under key into out and reports whether
// the caller can skip the database. A corrupt entry counts as a miss.
func cached(ctx context.Context, c cache.Cache, key string, out interface{}) bool {
	payload, ok := c.Get(ctx, key)
	if !ok {
		return false
	}
	return json.Unmarshal(payload, out) == nil
}
