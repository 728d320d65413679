package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"key-control-backend/internal/repository"

	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.RoomRepository
	repository.KeyRepository
	repository.ResponsibleRepository
	repository.ReservationRepository
	repository.CheckoutRepository
	repository.HistoryRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		RoomRepository:        NewRoomRepository(db),
		KeyRepository:         NewKeyRepository(db),
		ResponsibleRepository: NewResponsibleRepository(db),
		ReservationRepository: NewReservationRepository(db),
		CheckoutRepository:    NewCheckoutRepository(db),
		HistoryRepository:     NewHistoryRepository(db),
	}
}

const (
	serializationFailureCode = "40001"
	maxTxRetries             = 5
)

// runSerializable executes fn inside a SERIALIZABLE transaction, retrying
// with backoff on serialization failures. The conflict and availability
// scans run inside the same transaction as the subsequent writes, so two
// concurrent writers against the same room cannot both pass the check.
func runSerializable(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var lastErr error
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		if attempt > 0 {
			base := time.Duration(attempt*attempt) * 20 * time.Millisecond
			jitter := time.Duration(rand.Intn(50)) * time.Millisecond
			select {
			case <-time.After(base + jitter):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
		if err != nil {
			lastErr = err
			continue
		}

		if err := fn(tx); err != nil {
			tx.Rollback()
			if isSerializationFailure(err) {
				lastErr = err
				continue
			}
			return err
		}

		if err := tx.Commit(); err != nil {
			if isSerializationFailure(err) {
				lastErr = err
				continue
			}
			return err
		}
		return nil
	}
	return fmt.Errorf("transaction retries exhausted: %w", lastErr)
}

func isSerializationFailure(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == serializationFailureCode
}
