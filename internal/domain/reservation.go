package domain

type Recurrence string

const (
	RecurrenceSingle   Recurrence = "unica"
	RecurrenceWeekly   Recurrence = "semanal"
	RecurrenceBiweekly Recurrence = "quinzenal"
	RecurrenceMonthly  Recurrence = "mensal"
)

// RequiresWeekdays reports whether the recurrence carries a weekday set.
// Single and monthly reservations derive their qualifying days from the
// start date alone.
func (r Recurrence) RequiresWeekdays() bool {
	return r == RecurrenceWeekly || r == RecurrenceBiweekly
}

type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "ativa"
	ReservationStatusCancelled ReservationStatus = "cancelada"
	ReservationStatusFinished  ReservationStatus = "finalizada"
)

// Reservation is a possibly recurring authorization for a responsible to
// use a room during a time window. Times are "HH:MM", dates "YYYY-MM-DD".
// Weekdays (1=Monday..7=Sunday) is the projection of the reservation's
// tb_reserva_dia child rows and is meaningful only for weekly/biweekly
// recurrence.
type Reservation struct {
	ID            int32             `json:"reserva_id"`
	RoomID        int32             `json:"sala_id"`
	ResponsibleID int32             `json:"responsavel_id"`
	StartTime     string            `json:"hora_inicio"`
	EndTime       string            `json:"hora_fim"`
	StartDate     string            `json:"data_inicio"`
	EndDate       string            `json:"data_fim"`
	Recurrence    Recurrence        `json:"frequencia"`
	Status        ReservationStatus `json:"status"`
	Weekdays      []int             `json:"dias_semana"`
}

// ReservationPatch carries the fields of a partial update. Nil means
// "keep the current value".
type ReservationPatch struct {
	RoomID        *int32
	ResponsibleID *int32
	StartTime     *string
	EndTime       *string
	StartDate     *string
	EndDate       *string
	Recurrence    *Recurrence
	Status        *ReservationStatus
	Weekdays      *[]int
}

// MergeReservation applies a partial update over an existing reservation
// and returns the effective values that validation and the conflict scan
// operate on. The weekday set follows the effective recurrence: it is
// cleared for single/monthly, kept when no explicit set was supplied, and
// replaced otherwise.
func MergeReservation(existing Reservation, patch ReservationPatch) Reservation {
	merged := existing
	if patch.RoomID != nil {
		merged.RoomID = *patch.RoomID
	}
	if patch.ResponsibleID != nil {
		merged.ResponsibleID = *patch.ResponsibleID
	}
	if patch.StartTime != nil {
		merged.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		merged.EndTime = *patch.EndTime
	}
	if patch.StartDate != nil {
		merged.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		merged.EndDate = *patch.EndDate
	}
	if patch.Recurrence != nil {
		merged.Recurrence = *patch.Recurrence
	}
	if patch.Status != nil {
		merged.Status = *patch.Status
	}

	switch {
	case !merged.Recurrence.RequiresWeekdays():
		merged.Weekdays = nil
	case patch.Weekdays != nil:
		merged.Weekdays = *patch.Weekdays
	default:
		merged.Weekdays = existing.Weekdays
	}
	return merged
}
