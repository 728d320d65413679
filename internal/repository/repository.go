package repository

import (
	"context"
	"errors"

	"key-control-backend/internal/domain"
)

// Sentinel errors surfaced by repositories. Services translate them into
// the error taxonomy exposed to callers.
var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrReservationConflict is returned when the conflict scan inside a
	// reservation write transaction finds an overlapping active reservation.
	ErrReservationConflict = errors.New("reservation conflicts with an active reservation")
	// ErrKeyUnavailable is returned when a checkout insert finds the key no
	// longer available at commit time.
	ErrKeyUnavailable = errors.New("key is not available")
	// ErrOpenCheckout is returned when a checkout insert finds another open
	// checkout for the same room at commit time.
	ErrOpenCheckout = errors.New("room already has an open checkout")
)

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id int32) (*domain.Room, error)
	List(ctx context.Context) ([]domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	Delete(ctx context.Context, id int32) error
	// HasUnavailableKey reports whether any key of the room is currently
	// checked out. Guards room deletion.
	HasUnavailableKey(ctx context.Context, roomID int32) (bool, error)
}

type KeyRepository interface {
	Create(ctx context.Context, key *domain.Key) error
	GetByID(ctx context.Context, id int32) (*domain.Key, error)
	List(ctx context.Context) ([]domain.Key, error)
	Update(ctx context.Context, key *domain.Key) error
	Delete(ctx context.Context, id int32) error
}

type ResponsibleRepository interface {
	Create(ctx context.Context, r *domain.Responsible) error
	GetByID(ctx context.Context, id int32) (*domain.Responsible, error)
	List(ctx context.Context, page, perPage int) ([]domain.Responsible, error)
	Update(ctx context.Context, r *domain.Responsible) error
	Delete(ctx context.Context, id int32) error
}

// ConflictQuery carries the parameters of a conflict scan. ExcludeID, when
// non-nil, removes that reservation from the scan (used on update).
type ConflictQuery struct {
	RoomID    int32
	StartTime string
	EndTime   string
	StartDate string
	ExcludeID *int32
}

type ReservationRepository interface {
	// CreateWithDays inserts the reservation and its weekday rows as one
	// serializable transaction that first re-runs the conflict scan.
	// Returns ErrReservationConflict when the scan matches.
	CreateWithDays(ctx context.Context, res *domain.Reservation) error
	GetByID(ctx context.Context, id int32) (*domain.Reservation, error)
	List(ctx context.Context) ([]domain.Reservation, error)
	// UpdateWithDays applies the merged field values and replaces the whole
	// weekday set, atomically with a conflict re-scan excluding res.ID.
	UpdateWithDays(ctx context.Context, res *domain.Reservation) error
	Delete(ctx context.Context, id int32) error
	// HasConflict runs the conflict scan outside a write transaction, for
	// advisory checks.
	HasConflict(ctx context.Context, q ConflictQuery) (bool, error)
}

type CheckoutRepository interface {
	// Create inserts the checkout and flips the key's and room's
	// availability to false, all in one serializable transaction that
	// re-checks key availability (ErrKeyUnavailable) and the single open
	// checkout per room invariant (ErrOpenCheckout).
	Create(ctx context.Context, co *domain.Checkout) error
	GetByID(ctx context.Context, id int32) (*domain.Checkout, error)
	List(ctx context.Context) ([]domain.Checkout, error)
	// Update persists the checkout's status and return time. When
	// releaseIfLast is true (an open checkout transitioning to returned),
	// the same transaction restores key and room availability if no other
	// open checkout remains for the room.
	Update(ctx context.Context, co *domain.Checkout, releaseIfLast bool) error
	Delete(ctx context.Context, id int32) error
	// HasOpenCheckoutForRoom reports whether any key of the room has a
	// checkout with an open status.
	HasOpenCheckoutForRoom(ctx context.Context, roomID int32) (bool, error)
}

type HistoryRepository interface {
	List(ctx context.Context, filter domain.HistoryFilter) ([]domain.CheckoutHistoryEntry, error)
	GetByID(ctx context.Context, checkoutID int32) (*domain.CheckoutHistoryEntry, error)
}
