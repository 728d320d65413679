package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"key-control-backend/internal/domain"
	"key-control-backend/internal/repository"
)

type historyRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) repository.HistoryRepository {
	return &historyRepository{db: db}
}

const historyColumns = `r.retirada_id,
	to_char(r.data_retirada, 'YYYY-MM-DD'), to_char(r.hora_retirada, 'HH24:MI'),
	to_char(r.hora_prevista_devolucao, 'HH24:MI'), to_char(r.hora_devolucao, 'HH24:MI'),
	r.status,
	s.sala_id, s.sala_nome,
	c.chave_id, c.chave_nome,
	resp.responsavel_id, resp.responsavel_nome`

const historyJoins = `
	FROM tb_retirada r
	JOIN tb_chave c ON c.chave_id = r.chave_id
	JOIN tb_sala s ON s.sala_id = c.sala_id
	JOIN tb_responsavel resp ON resp.responsavel_id = r.responsavel_id`

func scanHistoryEntry(scan func(...interface{}) error) (*domain.CheckoutHistoryEntry, error) {
	entry := &domain.CheckoutHistoryEntry{}
	var returnTime sql.NullString
	err := scan(
		&entry.CheckoutID, &entry.Date, &entry.Time,
		&entry.ExpectedReturnTime, &returnTime, &entry.Status,
		&entry.RoomID, &entry.RoomName,
		&entry.KeyID, &entry.KeyName,
		&entry.ResponsibleID, &entry.ResponsibleName,
	)
	if err != nil {
		return nil, err
	}
	if returnTime.Valid {
		entry.ReturnTime = &returnTime.String
	}
	return entry, nil
}

// List returns returned checkouts joined with key, room and responsible,
// newest first. Filters are appended as parameterized predicates.
func (r *historyRepository) List(ctx context.Context, filter domain.HistoryFilter) ([]domain.CheckoutHistoryEntry, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + historyColumns + historyJoins + ` WHERE r.status = 'devolvida'`)

	var args []interface{}
	if filter.RoomID != nil {
		args = append(args, *filter.RoomID)
		fmt.Fprintf(&sb, " AND s.sala_id = $%d", len(args))
	}
	if filter.ResponsibleID != nil {
		args = append(args, *filter.ResponsibleID)
		fmt.Fprintf(&sb, " AND resp.responsavel_id = $%d", len(args))
	}
	if filter.ResponsibleName != "" {
		args = append(args, "%"+strings.ToLower(filter.ResponsibleName)+"%")
		fmt.Fprintf(&sb, " AND LOWER(resp.responsavel_nome) LIKE $%d", len(args))
	}
	sb.WriteString(" ORDER BY r.data_retirada DESC, r.hora_retirada DESC")

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.CheckoutHistoryEntry
	for rows.Next() {
		entry, err := scanHistoryEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// GetByID looks up a single returned checkout. Open checkouts are not
// part of the history yet, so they come back as not found.
func (r *historyRepository) GetByID(ctx context.Context, checkoutID int32) (*domain.CheckoutHistoryEntry, error) {
	query := `SELECT ` + historyColumns + historyJoins + ` WHERE r.status = 'devolvida' AND r.retirada_id = $1`
	row := r.db.QueryRowContext(ctx, query, checkoutID)
	entry, err := scanHistoryEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}
