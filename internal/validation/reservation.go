package validation

import (
	"fmt"
	"time"

	"key-control-backend/internal/domain"
)

// ReservationInput is the payload for reservation create and partial
// update.
type ReservationInput struct {
	RoomID        *int32  `json:"sala_id" validate:"omitempty,gt=0"`
	ResponsibleID *int32  `json:"responsavel_id" validate:"omitempty,gt=0"`
	StartTime     *string `json:"hora_inicio" validate:"omitempty,clock"`
	EndTime       *string `json:"hora_fim" validate:"omitempty,clock"`
	StartDate     *string `json:"data_inicio" validate:"omitempty,isodate"`
	EndDate       *string `json:"data_fim" validate:"omitempty,isodate"`
	Recurrence    *string `json:"frequencia" validate:"omitempty,oneof=unica semanal quinzenal mensal"`
	Status        *string `json:"status" validate:"omitempty,oneof=ativa cancelada finalizada"`
	Weekdays      *[]int  `json:"dias_semana" validate:"omitempty,dive,min=1,max=7"`
}

var reservationMessages = map[string]string{
	"sala_id.gt":          "O campo sala_id deve ser valido (maior que 0) e corresponder a uma sala existente.",
	"responsavel_id.gt":   "O campo responsavel_id deve ser valido (maior que 0) e corresponder a um responsavel existente.",
	"hora_inicio.clock":   "Formato inválido. Use HH:MM.",
	"hora_fim.clock":      "Formato inválido. Use HH:MM.",
	"data_inicio.isodate": "Formato inválido. Use YYYY-MM-DD.",
	"data_fim.isodate":    "Formato inválido. Use YYYY-MM-DD.",
	"frequencia.oneof":    "O campo frequencia aceita apenas uma dessas opções: unica, semanal, quinzenal e mensal.",
	"status.oneof":        "O campo status aceita apenas uma dessas opções: ativa, cancelada, finalizada.",
	"dias_semana.min":     "dia_semana deve ser um número entre 1 e 7.",
	"dias_semana.max":     "dia_semana deve ser um número entre 1 e 7.",
}

// Patch converts the payload into a domain patch for merging over an
// existing reservation.
func (in ReservationInput) Patch() domain.ReservationPatch {
	patch := domain.ReservationPatch{
		RoomID:        in.RoomID,
		ResponsibleID: in.ResponsibleID,
		StartTime:     in.StartTime,
		EndTime:       in.EndTime,
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
		Weekdays:      in.Weekdays,
	}
	if in.Recurrence != nil {
		rec := domain.Recurrence(*in.Recurrence)
		patch.Recurrence = &rec
	}
	if in.Status != nil {
		st := domain.ReservationStatus(*in.Status)
		patch.Status = &st
	}
	return patch
}

// ValidateReservationInput checks field shape; when partial is false the
// fields a new reservation needs are required (the weekday set is only
// conditionally required and is handled by the cross-field rules).
func ValidateReservationInput(in ReservationInput, partial bool) error {
	fields := map[string]string{}
	if err := validate.Struct(in); err != nil {
		fields = structErrors(err, reservationMessages)
	}
	if !partial {
		if in.RoomID == nil {
			fields["sala_id"] = requiredMsg("sala_id")
		}
		if in.ResponsibleID == nil {
			fields["responsavel_id"] = requiredMsg("responsavel_id")
		}
		if in.StartTime == nil {
			fields["hora_inicio"] = requiredMsg("hora_inicio")
		}
		if in.EndTime == nil {
			fields["hora_fim"] = requiredMsg("hora_fim")
		}
		if in.StartDate == nil {
			fields["data_inicio"] = requiredMsg("data_inicio")
		}
		if in.EndDate == nil {
			fields["data_fim"] = requiredMsg("data_fim")
		}
		if in.Recurrence == nil {
			fields["frequencia"] = requiredMsg("frequencia")
		}
	}
	return asError(fields)
}

// ValidateReservationRules applies the cross-field rules to the effective
// values of a reservation (the input on create, the merged result on
// update), relative to now.
func ValidateReservationRules(res domain.Reservation, now time.Time) error {
	fields := map[string]string{}

	today := now.Format(domain.DateLayout)
	currentClock := now.Format(domain.ClockLayout)

	if res.Recurrence == domain.RecurrenceSingle && res.EndDate != res.StartDate {
		fields["data_fim"] = "Em uma reserva única data_fim não pode ser diferente de data_inicio."
	}
	if domain.DateBefore(res.StartDate, today) {
		fields["data_inicio"] = "data_inicio não pode ser uma data passada."
	}
	if res.StartDate == today && res.StartTime <= currentClock {
		fields["hora_inicio"] = "hora_inicio não pode ser um horário passado."
	}
	if res.EndTime <= res.StartTime {
		fields["hora_fim"] = "hora_fim deve ser maior que hora_inicio."
	}
	if domain.DateBefore(res.EndDate, res.StartDate) {
		fields["data_fim"] = "data_fim deve ser maior ou igual a data_inicio."
	}

	if res.Recurrence.RequiresWeekdays() {
		if len(res.Weekdays) == 0 {
			fields["dias_semana"] = "Esta frequência exige a informação de dias_semana."
		} else if startDate, err := domain.ParseDate(res.StartDate); err == nil {
			weekday := domain.ISOWeekday(startDate)
			if !containsWeekday(res.Weekdays, weekday) {
				fields["dias_semana"] = fmt.Sprintf(
					"data_inicio (%s) corresponde ao dia %d, que não está em dias_semana.",
					res.StartDate, weekday,
				)
			}
		}
	}

	return asError(fields)
}

func containsWeekday(days []int, weekday int) bool {
	for _, d := range days {
		if d == weekday {
			return true
		}
	}
	return false
}
