package jobs

import (
	"context"
	"testing"
	"time"

	"key-control-backend/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingCache struct {
	invalidated []string
}

func (c *recordingCache) Get(ctx context.Context, key string) ([]byte, bool) { return nil, false }
func (c *recordingCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
}
func (c *recordingCache) Invalidate(ctx context.Context, patterns ...string) {
	c.invalidated = append(c.invalidated, patterns...)
}

func TestMarkOverdueCheckouts(t *testing.T) {
	t.Run("FlipsRowsAndInvalidatesCache", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		c := &recordingCache{}
		runner := NewJobRunner(db, c, &config.Config{})

		mock.ExpectExec("UPDATE tb_retirada").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 2))

		runner.MarkOverdueCheckouts()

		assert.NoError(t, mock.ExpectationsWereMet())
		assert.Contains(t, c.invalidated, "retiradas:*")
	})

	t.Run("NothingOverdueLeavesCacheAlone", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		c := &recordingCache{}
		runner := NewJobRunner(db, c, &config.Config{})

		mock.ExpectExec("UPDATE tb_retirada").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		runner.MarkOverdueCheckouts()

		assert.Empty(t, c.invalidated)
	})
}
