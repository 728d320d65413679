package postgres

import (
	"context"
	"database/sql"
	"errors"

	"key-control-backend/internal/domain"
	"key-control-backend/internal/repository"
)

type roomRepository struct {
	db *sql.DB
}

func NewRoomRepository(db *sql.DB) repository.RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	query := `INSERT INTO tb_sala (sala_nome, disponivel) VALUES ($1, $2) RETURNING sala_id`
	return r.db.QueryRowContext(ctx, query, room.Name, room.Available).Scan(&room.ID)
}

func (r *roomRepository) GetByID(ctx context.Context, id int32) (*domain.Room, error) {
	room := &domain.Room{}
	query := `SELECT sala_id, sala_nome, disponivel FROM tb_sala WHERE sala_id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&room.ID, &room.Name, &room.Available)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return room, nil
}

func (r *roomRepository) List(ctx context.Context) ([]domain.Room, error) {
	query := `SELECT sala_id, sala_nome, disponivel FROM tb_sala ORDER BY sala_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var room domain.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Available); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *roomRepository) Update(ctx context.Context, room *domain.Room) error {
	query := `UPDATE tb_sala SET sala_nome=$1, disponivel=$2 WHERE sala_id=$3`
	res, err := r.db.ExecContext(ctx, query, room.Name, room.Available, room.ID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *roomRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tb_sala WHERE sala_id=$1`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *roomRepository) HasUnavailableKey(ctx context.Context, roomID int32) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM tb_chave WHERE sala_id = $1 AND disponivel = false)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, roomID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
