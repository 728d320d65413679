package jobs

import (
	"context"
	"time"
)

// MarkOverdueCheckouts flips today's open checkouts whose expected return
// time has passed from retirada to atrasada. The checkout stays open; the
// status only signals lateness.
func (jr *JobRunner) MarkOverdueCheckouts() {
	jr.runWithRecovery("MarkOverdueCheckouts", func() {
		ctx := context.Background()
		now := time.Now()

		query := `
			UPDATE tb_retirada
			SET status = 'atrasada'
			WHERE status = 'retirada'
			  AND data_retirada = $1
			  AND hora_prevista_devolucao < $2
		`

		result, err := jr.db.ExecContext(ctx, query,
			now.Format("2006-01-02"), now.Format("15:04"))
		if err != nil {
			jr.log.Error("Failed to mark overdue checkouts", "error", err)
			return
		}

		count, err := result.RowsAffected()
		if err != nil {
			jr.log.Error("Failed to count overdue checkouts", "error", err)
			return
		}
		if count > 0 {
			jr.cache.Invalidate(ctx, "retiradas:*", "retirada:*")
		}

		jr.log.Info("Marked checkouts as overdue", "count", count)
	})
}
