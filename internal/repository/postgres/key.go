package postgres

import (
	"context"
	"database/sql"
	"errors"

	"key-control-backend/internal/domain"
	"key-control-backend/internal/repository"
)

type keyRepository struct {
	db *sql.DB
}

func NewKeyRepository(db *sql.DB) repository.KeyRepository {
	return &keyRepository{db: db}
}

func (r *keyRepository) Create(ctx context.Context, key *domain.Key) error {
	query := `INSERT INTO tb_chave (chave_nome, sala_id, disponivel) VALUES ($1, $2, $3) RETURNING chave_id`
	return r.db.QueryRowContext(ctx, query, key.Name, key.RoomID, key.Available).Scan(&key.ID)
}

func (r *keyRepository) GetByID(ctx context.Context, id int32) (*domain.Key, error) {
	key := &domain.Key{}
	query := `SELECT chave_id, chave_nome, sala_id, disponivel FROM tb_chave WHERE chave_id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&key.ID, &key.Name, &key.RoomID, &key.Available)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return key, nil
}

func (r *keyRepository) List(ctx context.Context) ([]domain.Key, error) {
	query := `SELECT chave_id, chave_nome, sala_id, disponivel FROM tb_chave ORDER BY chave_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []domain.Key
	for rows.Next() {
		var key domain.Key
		if err := rows.Scan(&key.ID, &key.Name, &key.RoomID, &key.Available); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (r *keyRepository) Update(ctx context.Context, key *domain.Key) error {
	query := `UPDATE tb_chave SET chave_nome=$1, sala_id=$2, disponivel=$3 WHERE chave_id=$4`
	res, err := r.db.ExecContext(ctx, query, key.Name, key.RoomID, key.Available, key.ID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *keyRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tb_chave WHERE chave_id=$1`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}
