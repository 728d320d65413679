package validation

import (
	"testing"
	"time"

	"key-control-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func i32Ptr(v int32) *int32   { return &v }

// Monday 2026-09-07, 12:00.
var testNow = time.Date(2026, 9, 7, 12, 0, 0, 0, time.UTC)

func validWeeklyReservation() domain.Reservation {
	return domain.Reservation{
		RoomID:        1,
		ResponsibleID: 1,
		StartTime:     "14:00",
		EndTime:       "16:00",
		StartDate:     "2026-09-14",
		EndDate:       "2026-12-14",
		Recurrence:    domain.RecurrenceWeekly,
		Status:        domain.ReservationStatusActive,
		Weekdays:      []int{1, 3},
	}
}

func TestValidateReservationInput(t *testing.T) {
	t.Run("create requires the full field set", func(t *testing.T) {
		err := ValidateReservationInput(ReservationInput{}, false)
		require.Error(t, err)
		ve := err.(*domain.ValidationError)
		for _, field := range []string{"sala_id", "responsavel_id", "hora_inicio", "hora_fim", "data_inicio", "data_fim", "frequencia"} {
			assert.Contains(t, ve.Fields, field)
		}
	})

	t.Run("partial update accepts an empty payload", func(t *testing.T) {
		assert.NoError(t, ValidateReservationInput(ReservationInput{}, true))
	})

	t.Run("bad clock format is reported per field", func(t *testing.T) {
		err := ValidateReservationInput(ReservationInput{StartTime: strPtr("25h00")}, true)
		require.Error(t, err)
		ve := err.(*domain.ValidationError)
		assert.Equal(t, "Formato inválido. Use HH:MM.", ve.Fields["hora_inicio"])
	})

	t.Run("unknown recurrence is rejected", func(t *testing.T) {
		err := ValidateReservationInput(ReservationInput{Recurrence: strPtr("diaria")}, true)
		require.Error(t, err)
		ve := err.(*domain.ValidationError)
		assert.Contains(t, ve.Fields, "frequencia")
	})

	t.Run("weekday out of range is rejected", func(t *testing.T) {
		days := []int{1, 8}
		err := ValidateReservationInput(ReservationInput{Weekdays: &days}, true)
		require.Error(t, err)
	})
}

func TestValidateReservationRules(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*domain.Reservation)
		wantErr  bool
		errField string
	}{
		{
			name:   "valid weekly reservation",
			mutate: func(r *domain.Reservation) {},
		},
		{
			name: "single with mismatched end date",
			mutate: func(r *domain.Reservation) {
				r.Recurrence = domain.RecurrenceSingle
				r.Weekdays = nil
				r.StartDate = "2026-09-14"
				r.EndDate = "2026-09-15"
			},
			wantErr:  true,
			errField: "data_fim",
		},
		{
			name: "start date in the past",
			mutate: func(r *domain.Reservation) {
				r.StartDate = "2026-09-01"
			},
			wantErr:  true,
			errField: "data_inicio",
		},
		{
			name: "today with a start time already gone",
			mutate: func(r *domain.Reservation) {
				r.StartDate = "2026-09-07"
				r.StartTime = "11:00"
				r.EndTime = "13:00"
			},
			wantErr:  true,
			errField: "hora_inicio",
		},
		{
			name: "end time not after start time",
			mutate: func(r *domain.Reservation) {
				r.EndTime = "14:00"
			},
			wantErr:  true,
			errField: "hora_fim",
		},
		{
			name: "end date before start date",
			mutate: func(r *domain.Reservation) {
				r.EndDate = "2026-09-13"
			},
			wantErr:  true,
			errField: "data_fim",
		},
		{
			name: "weekly without a weekday set",
			mutate: func(r *domain.Reservation) {
				r.Weekdays = nil
			},
			wantErr:  true,
			errField: "dias_semana",
		},
		{
			name: "weekday set missing the start date's weekday",
			mutate: func(r *domain.Reservation) {
				// 2026-09-14 is a Monday (1).
				r.Weekdays = []int{3, 5}
			},
			wantErr:  true,
			errField: "dias_semana",
		},
		{
			name: "monthly needs no weekday set",
			mutate: func(r *domain.Reservation) {
				r.Recurrence = domain.RecurrenceMonthly
				r.Weekdays = nil
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := validWeeklyReservation()
			tc.mutate(&res)

			err := ValidateReservationRules(res, testNow)
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			ve := err.(*domain.ValidationError)
			assert.Contains(t, ve.Fields, tc.errField)
		})
	}
}
