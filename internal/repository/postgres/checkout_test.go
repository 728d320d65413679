package postgres_test

import (
	"context"
	"testing"

	"key-control-backend/internal/domain"
	"key-control-backend/internal/repository"
	"key-control-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openCheckout() *domain.Checkout {
	return &domain.Checkout{
		KeyID:              3,
		ResponsibleID:      2,
		Date:               "2026-09-07",
		Time:               "14:00",
		ExpectedReturnTime: "16:00",
		Status:             domain.CheckoutStatusCheckedOut,
	}
}

func TestCheckoutRepository_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewCheckoutRepository(db)
		co := openCheckout()

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT sala_id, disponivel FROM tb_chave").
			WithArgs(int32(3)).
			WillReturnRows(sqlmock.NewRows([]string{"sala_id", "disponivel"}).AddRow(1, true))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(1), nil).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectQuery("INSERT INTO tb_retirada").
			WithArgs(int32(3), int32(2), nil, "2026-09-07", "14:00", "16:00", nil, domain.CheckoutStatusCheckedOut).
			WillReturnRows(sqlmock.NewRows([]string{"retirada_id"}).AddRow(5))
		mock.ExpectExec("UPDATE tb_chave SET disponivel=false").
			WithArgs(int32(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE tb_sala SET disponivel=false").
			WithArgs(int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.Create(context.Background(), co)
		assert.NoError(t, err)
		assert.Equal(t, int32(5), co.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("KeyUnavailable", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewCheckoutRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT sala_id, disponivel FROM tb_chave").
			WithArgs(int32(3)).
			WillReturnRows(sqlmock.NewRows([]string{"sala_id", "disponivel"}).AddRow(1, false))
		mock.ExpectRollback()

		err = repo.Create(context.Background(), openCheckout())
		assert.ErrorIs(t, err, repository.ErrKeyUnavailable)
	})

	t.Run("RoomAlreadyHasOpenCheckout", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewCheckoutRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT sala_id, disponivel FROM tb_chave").
			WithArgs(int32(3)).
			WillReturnRows(sqlmock.NewRows([]string{"sala_id", "disponivel"}).AddRow(1, true))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(1), nil).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		err = repo.Create(context.Background(), openCheckout())
		assert.ErrorIs(t, err, repository.ErrOpenCheckout)
	})
}

func TestCheckoutRepository_Update(t *testing.T) {
	returnTime := "15:30"

	t.Run("ReturnReleasesLastCheckout", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewCheckoutRepository(db)
		co := openCheckout()
		co.ID = 5
		co.Status = domain.CheckoutStatusReturned
		co.ReturnTime = &returnTime

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE tb_retirada SET").
			WithArgs(domain.CheckoutStatusReturned, returnTime, int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT sala_id FROM tb_chave").
			WithArgs(int32(3)).
			WillReturnRows(sqlmock.NewRows([]string{"sala_id"}).AddRow(1))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(1), int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec("UPDATE tb_chave SET disponivel=true").
			WithArgs(int32(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE tb_sala SET disponivel=true").
			WithArgs(int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.Update(context.Background(), co, true)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ReturnKeepsRoomBusyWhileAnotherCheckoutIsOpen", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewCheckoutRepository(db)
		co := openCheckout()
		co.ID = 5
		co.Status = domain.CheckoutStatusReturned
		co.ReturnTime = &returnTime

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE tb_retirada SET").
			WithArgs(domain.CheckoutStatusReturned, returnTime, int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("SELECT sala_id FROM tb_chave").
			WithArgs(int32(3)).
			WillReturnRows(sqlmock.NewRows([]string{"sala_id"}).AddRow(1))
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(int32(1), int32(5)).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectCommit()

		err = repo.Update(context.Background(), co, true)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("LateMarkDoesNotTouchAvailability", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := postgres.NewCheckoutRepository(db)
		co := openCheckout()
		co.ID = 5
		co.Status = domain.CheckoutStatusLate

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE tb_retirada SET").
			WithArgs(domain.CheckoutStatusLate, nil, int32(5)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = repo.Update(context.Background(), co, false)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCheckoutRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewCheckoutRepository(db)

	mock.ExpectQuery("SELECT retirada_id, chave_id, responsavel_id").
		WithArgs(int32(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"retirada_id", "chave_id", "responsavel_id", "reserva_id",
			"data_retirada", "hora_retirada", "hora_prevista_devolucao", "hora_devolucao", "status",
		}).AddRow(5, 3, 2, nil, "2026-09-07", "14:00", "16:00", nil, "retirada"))

	co, err := repo.GetByID(context.Background(), 5)
	assert.NoError(t, err)
	assert.Nil(t, co.ReservationID)
	assert.Nil(t, co.ReturnTime)
	assert.Equal(t, domain.CheckoutStatusCheckedOut, co.Status)
}

func TestCheckoutRepository_HasOpenCheckoutForRoom(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewCheckoutRepository(db)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int32(1), nil).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	open, err := repo.HasOpenCheckoutForRoom(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, open)
}
