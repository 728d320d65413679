package postgres

import (
	"context"
	"database/sql"
	"errors"

	"key-control-backend/internal/domain"
	"key-control-backend/internal/repository"
)

type responsibleRepository struct {
	db *sql.DB
}

func NewResponsibleRepository(db *sql.DB) repository.ResponsibleRepository {
	return &responsibleRepository{db: db}
}

const responsibleColumns = `responsavel_id, responsavel_nome, responsavel_cpf, responsavel_siap,
	to_char(responsavel_data_nascimento, 'YYYY-MM-DD'), ativo`

func (r *responsibleRepository) Create(ctx context.Context, resp *domain.Responsible) error {
	query := `INSERT INTO tb_responsavel (responsavel_nome, responsavel_cpf, responsavel_siap, responsavel_data_nascimento, ativo)
	          VALUES ($1, $2, $3, $4, $5) RETURNING responsavel_id`
	return r.db.QueryRowContext(ctx, query,
		resp.Name, resp.CPF, resp.SIAPE, nullString(resp.BirthDate), resp.Active,
	).Scan(&resp.ID)
}

func (r *responsibleRepository) GetByID(ctx context.Context, id int32) (*domain.Responsible, error) {
	resp := &domain.Responsible{}
	query := `SELECT ` + responsibleColumns + ` FROM tb_responsavel WHERE responsavel_id = $1`
	var birthDate sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&resp.ID, &resp.Name, &resp.CPF, &resp.SIAPE, &birthDate, &resp.Active,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if birthDate.Valid {
		resp.BirthDate = &birthDate.String
	}
	return resp, nil
}

func (r *responsibleRepository) List(ctx context.Context, page, perPage int) ([]domain.Responsible, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 50
	}
	query := `SELECT ` + responsibleColumns + ` FROM tb_responsavel ORDER BY responsavel_id LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, perPage, (page-1)*perPage)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var responsibles []domain.Responsible
	for rows.Next() {
		var resp domain.Responsible
		var birthDate sql.NullString
		if err := rows.Scan(&resp.ID, &resp.Name, &resp.CPF, &resp.SIAPE, &birthDate, &resp.Active); err != nil {
			return nil, err
		}
		if birthDate.Valid {
			resp.BirthDate = &birthDate.String
		}
		responsibles = append(responsibles, resp)
	}
	return responsibles, rows.Err()
}

func (r *responsibleRepository) Update(ctx context.Context, resp *domain.Responsible) error {
	query := `UPDATE tb_responsavel SET responsavel_nome=$1, responsavel_cpf=$2, responsavel_siap=$3,
	          responsavel_data_nascimento=$4, ativo=$5 WHERE responsavel_id=$6`
	res, err := r.db.ExecContext(ctx, query,
		resp.Name, resp.CPF, resp.SIAPE, nullString(resp.BirthDate), resp.Active, resp.ID,
	)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *responsibleRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tb_responsavel WHERE responsavel_id=$1`, id)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
