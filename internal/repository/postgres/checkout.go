package postgres

import (
	"context"
	"database/sql"
	"errors"

	"key-control-backend/internal/domain"
	"key-control-backend/internal/repository"
)

type checkoutRepository struct {
	db *sql.DB
}

func NewCheckoutRepository(db *sql.DB) repository.CheckoutRepository {
	return &checkoutRepository{db: db}
}

// openCheckoutForRoomQuery finds open checkouts for any key of the room,
// optionally excluding one checkout id. The single-open-checkout-per-room
// invariant is enforced through the key→room join, not a room column.
const openCheckoutForRoomQuery = `
	SELECT EXISTS (
		SELECT 1
		FROM tb_retirada r
		JOIN tb_chave c ON c.chave_id = r.chave_id
		WHERE c.sala_id = $1
		  AND r.status IN ('retirada', 'atrasada')
		  AND ($2::int IS NULL OR r.retirada_id <> $2)
	)`

func hasOpenCheckoutForRoom(ctx context.Context, q queryer, roomID int32, excludeCheckoutID *int32) (bool, error) {
	var exclude sql.NullInt32
	if excludeCheckoutID != nil {
		exclude = sql.NullInt32{Int32: *excludeCheckoutID, Valid: true}
	}
	var exists bool
	if err := q.QueryRowContext(ctx, openCheckoutForRoomQuery, roomID, exclude).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *checkoutRepository) HasOpenCheckoutForRoom(ctx context.Context, roomID int32) (bool, error) {
	return hasOpenCheckoutForRoom(ctx, r.db, roomID, nil)
}

func (r *checkoutRepository) Create(ctx context.Context, co *domain.Checkout) error {
	return runSerializable(ctx, r.db, func(tx *sql.Tx) error {
		// Re-derive the key's room and availability inside the transaction;
		// the service's earlier reads carry no lock.
		var roomID int32
		var keyAvailable bool
		err := tx.QueryRowContext(ctx,
			`SELECT sala_id, disponivel FROM tb_chave WHERE chave_id = $1`, co.KeyID,
		).Scan(&roomID, &keyAvailable)
		if errors.Is(err, sql.ErrNoRows) {
			return repository.ErrNotFound
		}
		if err != nil {
			return err
		}
		if !keyAvailable {
			return repository.ErrKeyUnavailable
		}

		open, err := hasOpenCheckoutForRoom(ctx, tx, roomID, nil)
		if err != nil {
			return err
		}
		if open {
			return repository.ErrOpenCheckout
		}

		query := `INSERT INTO tb_retirada (chave_id, responsavel_id, reserva_id, data_retirada, hora_retirada, hora_prevista_devolucao, hora_devolucao, status)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING retirada_id`
		err = tx.QueryRowContext(ctx, query,
			co.KeyID, co.ResponsibleID, nullInt32(co.ReservationID),
			co.Date, co.Time, co.ExpectedReturnTime, nullString(co.ReturnTime), co.Status,
		).Scan(&co.ID)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `UPDATE tb_chave SET disponivel=false WHERE chave_id=$1`, co.KeyID); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `UPDATE tb_sala SET disponivel=false WHERE sala_id=$1`, roomID)
		return err
	})
}

func (r *checkoutRepository) Update(ctx context.Context, co *domain.Checkout, releaseIfLast bool) error {
	return runSerializable(ctx, r.db, func(tx *sql.Tx) error {
		query := `UPDATE tb_retirada SET status=$1, hora_devolucao=$2 WHERE retirada_id=$3`
		result, err := tx.ExecContext(ctx, query, co.Status, nullString(co.ReturnTime), co.ID)
		if err != nil {
			return err
		}
		if err := requireRowAffected(result); err != nil {
			return err
		}

		if !releaseIfLast {
			return nil
		}

		var roomID int32
		if err := tx.QueryRowContext(ctx,
			`SELECT sala_id FROM tb_chave WHERE chave_id = $1`, co.KeyID,
		).Scan(&roomID); err != nil {
			return err
		}

		// Another key of the same room may still be out; availability only
		// comes back when the last open checkout returns.
		stillOpen, err := hasOpenCheckoutForRoom(ctx, tx, roomID, &co.ID)
		if err != nil {
			return err
		}
		if stillOpen {
			return nil
		}

		if _, err := tx.ExecContext(ctx, `UPDATE tb_chave SET disponivel=true WHERE chave_id=$1`, co.KeyID); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `UPDATE tb_sala SET disponivel=true WHERE sala_id=$1`, roomID)
		return err
	})
}

const checkoutColumns = `retirada_id, chave_id, responsavel_id, reserva_id,
	to_char(data_retirada, 'YYYY-MM-DD'), to_char(hora_retirada, 'HH24:MI'),
	to_char(hora_prevista_devolucao, 'HH24:MI'), to_char(hora_devolucao, 'HH24:MI'), status`

func scanCheckout(scan func(...interface{}) error) (*domain.Checkout, error) {
	co := &domain.Checkout{}
	var reservationID sql.NullInt32
	var returnTime sql.NullString
	err := scan(
		&co.ID, &co.KeyID, &co.ResponsibleID, &reservationID,
		&co.Date, &co.Time, &co.ExpectedReturnTime, &returnTime, &co.Status,
	)
	if err != nil {
		return nil, err
	}
	if reservationID.Valid {
		co.ReservationID = &reservationID.Int32
	}
	if returnTime.Valid {
		co.ReturnTime = &returnTime.String
	}
	return co, nil
}

func (r *checkoutRepository) GetByID(ctx context.Context, id int32) (*domain.Checkout, error) {
	query := `SELECT ` + checkoutColumns + ` FROM tb_retirada WHERE retirada_id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	co, err := scanCheckout(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return co, nil
}

func (r *checkoutRepository) List(ctx context.Context) ([]domain.Checkout, error) {
	query := `SELECT ` + checkoutColumns + ` FROM tb_retirada ORDER BY retirada_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checkouts []domain.Checkout
	for rows.Next() {
		co, err := scanCheckout(rows.Scan)
		if err != nil {
			return nil, err
		}
		checkouts = append(checkouts, *co)
	}
	return checkouts, rows.Err()
}

func (r *checkoutRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tb_retirada WHERE retirada_id=$1`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func nullInt32(v *int32) sql.NullInt32 {
	if v == nil {
		return sql.NullInt32{}
	}
	return sql.NullInt32{Int32: *v, Valid: true}
}
