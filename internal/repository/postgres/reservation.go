package postgres

import (
	"context"
	"database/sql"
	"errors"

	"key-control-backend/internal/domain"
	"key-control-backend/internal/repository"
)

type reservationRepository struct {
	db *sql.DB
}

func NewReservationRepository(db *sql.DB) repository.ReservationRepository {
	return &reservationRepository{db: db}
}

// queryer is satisfied by both *sql.DB and *sql.Tx, so the conflict scan
// can run standalone or inside a write transaction.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// conflictQuery matches an active reservation for the same room whose time
// window overlaps half-open, whose date range covers the candidate's start
// date, and whose recurrence aligns with the candidate's evaluated day:
// weekly/biweekly on the weekday set, monthly on the day of month of its
// own start date, single on exact date equality.
const conflictQuery = `
	SELECT EXISTS (
		SELECT 1
		FROM tb_reserva r
		LEFT JOIN tb_reserva_dia d ON d.reserva_id = r.reserva_id
		WHERE r.status = 'ativa'
		  AND r.sala_id = $1
		  AND ($2::time < r.hora_fim AND $3::time > r.hora_inicio)
		  AND r.data_inicio <= $4
		  AND (r.data_fim IS NULL OR r.data_fim >= $4)
		  AND (
		        (r.frequencia IN ('semanal', 'quinzenal') AND d.dia_semana = $5)
		     OR (r.frequencia = 'mensal' AND EXTRACT(DAY FROM r.data_inicio) = $6)
		     OR (r.frequencia = 'unica' AND r.data_inicio = $4::date)
		  )
		  AND ($7::int IS NULL OR r.reserva_id <> $7)
	)`

func hasConflict(ctx context.Context, q queryer, cq repository.ConflictQuery) (bool, error) {
	startDate, err := domain.ParseDate(cq.StartDate)
	if err != nil {
		return false, err
	}
	weekday := domain.ISOWeekday(startDate)
	dayOfMonth := startDate.Day()

	var excludeID sql.NullInt32
	if cq.ExcludeID != nil {
		excludeID = sql.NullInt32{Int32: *cq.ExcludeID, Valid: true}
	}

	var exists bool
	err = q.QueryRowContext(ctx, conflictQuery,
		cq.RoomID, cq.StartTime, cq.EndTime, cq.StartDate, weekday, dayOfMonth, excludeID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *reservationRepository) HasConflict(ctx context.Context, cq repository.ConflictQuery) (bool, error) {
	return hasConflict(ctx, r.db, cq)
}

func (r *reservationRepository) CreateWithDays(ctx context.Context, res *domain.Reservation) error {
	return runSerializable(ctx, r.db, func(tx *sql.Tx) error {
		conflict, err := hasConflict(ctx, tx, repository.ConflictQuery{
			RoomID:    res.RoomID,
			StartTime: res.StartTime,
			EndTime:   res.EndTime,
			StartDate: res.StartDate,
		})
		if err != nil {
			return err
		}
		if conflict {
			return repository.ErrReservationConflict
		}

		query := `INSERT INTO tb_reserva (sala_id, responsavel_id, hora_inicio, hora_fim, data_inicio, data_fim, frequencia, status)
		          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING reserva_id`
		err = tx.QueryRowContext(ctx, query,
			res.RoomID, res.ResponsibleID, res.StartTime, res.EndTime,
			res.StartDate, res.EndDate, res.Recurrence, res.Status,
		).Scan(&res.ID)
		if err != nil {
			return err
		}

		return insertDays(ctx, tx, res.ID, res.Weekdays)
	})
}

func (r *reservationRepository) UpdateWithDays(ctx context.Context, res *domain.Reservation) error {
	return runSerializable(ctx, r.db, func(tx *sql.Tx) error {
		excludeID := res.ID
		conflict, err := hasConflict(ctx, tx, repository.ConflictQuery{
			RoomID:    res.RoomID,
			StartTime: res.StartTime,
			EndTime:   res.EndTime,
			StartDate: res.StartDate,
			ExcludeID: &excludeID,
		})
		if err != nil {
			return err
		}
		if conflict {
			return repository.ErrReservationConflict
		}

		query := `UPDATE tb_reserva SET sala_id=$1, responsavel_id=$2, hora_inicio=$3, hora_fim=$4,
		          data_inicio=$5, data_fim=$6, frequencia=$7, status=$8 WHERE reserva_id=$9`
		result, err := tx.ExecContext(ctx, query,
			res.RoomID, res.ResponsibleID, res.StartTime, res.EndTime,
			res.StartDate, res.EndDate, res.Recurrence, res.Status, res.ID,
		)
		if err != nil {
			return err
		}
		if err := requireRowAffected(result); err != nil {
			return err
		}

		// The weekday set is always replaced whole.
		if _, err := tx.ExecContext(ctx, `DELETE FROM tb_reserva_dia WHERE reserva_id=$1`, res.ID); err != nil {
			return err
		}
		return insertDays(ctx, tx, res.ID, res.Weekdays)
	})
}

func insertDays(ctx context.Context, tx *sql.Tx, reservationID int32, weekdays []int) error {
	for _, day := range weekdays {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO tb_reserva_dia (reserva_id, dia_semana) VALUES ($1, $2)`,
			reservationID, day,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

const reservationColumns = `reserva_id, sala_id, responsavel_id,
	to_char(hora_inicio, 'HH24:MI'), to_char(hora_fim, 'HH24:MI'),
	to_char(data_inicio, 'YYYY-MM-DD'), to_char(data_fim, 'YYYY-MM-DD'),
	frequencia, status`

func (r *reservationRepository) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	res := &domain.Reservation{}
	query := `SELECT ` + reservationColumns + ` FROM tb_reserva WHERE reserva_id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&res.ID, &res.RoomID, &res.ResponsibleID, &res.StartTime, &res.EndTime,
		&res.StartDate, &res.EndDate, &res.Recurrence, &res.Status,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	res.Weekdays, err = r.loadDays(ctx, id)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *reservationRepository) List(ctx context.Context) ([]domain.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM tb_reserva ORDER BY reserva_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reservations []domain.Reservation
	for rows.Next() {
		var res domain.Reservation
		err := rows.Scan(
			&res.ID, &res.RoomID, &res.ResponsibleID, &res.StartTime, &res.EndTime,
			&res.StartDate, &res.EndDate, &res.Recurrence, &res.Status,
		)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range reservations {
		reservations[i].Weekdays, err = r.loadDays(ctx, reservations[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return reservations, nil
}

func (r *reservationRepository) loadDays(ctx context.Context, reservationID int32) ([]int, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT dia_semana FROM tb_reserva_dia WHERE reserva_id = $1 ORDER BY dia_semana`,
		reservationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []int
	for rows.Next() {
		var day int
		if err := rows.Scan(&day); err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, rows.Err()
}

func (r *reservationRepository) Delete(ctx context.Context, id int32) error {
	// tb_reserva_dia rows cascade.
	res, err := r.db.ExecContext(ctx, `DELETE FROM tb_reserva WHERE reserva_id=$1`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
