package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"key-control-backend/internal/cache"
	"key-control-backend/internal/domain"
	"key-control-backend/internal/repository"
	"key-control-backend/internal/validation"
)

type reservationService struct {
	resRepo  repository.ReservationRepository
	roomRepo repository.RoomRepository
	respRepo repository.ResponsibleRepository
	cache    cache.Cache
	now      func() time.Time
}

func NewReservationService(
	resRepo repository.ReservationRepository,
	roomRepo repository.RoomRepository,
	respRepo repository.ResponsibleRepository,
	c cache.Cache,
) ReservationService {
	return &reservationService{
		resRepo:  resRepo,
		roomRepo: roomRepo,
		respRepo: respRepo,
		cache:    c,
		now:      time.Now,
	}
}

func (s *reservationService) Create(ctx context.Context, in validation.ReservationInput) (*domain.Reservation, error) {
	if err := validation.ValidateReservationInput(in, false); err != nil {
		return nil, err
	}

	res := domain.Reservation{
		RoomID:        *in.RoomID,
		ResponsibleID: *in.ResponsibleID,
		StartTime:     *in.StartTime,
		EndTime:       *in.EndTime,
		StartDate:     *in.StartDate,
		EndDate:       *in.EndDate,
		Recurrence:    domain.Recurrence(*in.Recurrence),
		Status:        domain.ReservationStatusActive,
	}
	// A single reservation spans exactly its start date. Whatever end
	// date came in is overwritten, not rejected.
	if res.Recurrence == domain.RecurrenceSingle {
		res.EndDate = res.StartDate
	}
	if res.Recurrence.RequiresWeekdays() && in.Weekdays != nil {
		res.Weekdays = normalizeWeekdays(*in.Weekdays)
	}

	if err := validation.ValidateReservationRules(res, s.now()); err != nil {
		return nil, err
	}
	if err := s.requireParticipants(ctx, res.RoomID, res.ResponsibleID); err != nil {
		return nil, err
	}

	if err := s.resRepo.CreateWithDays(ctx, &res); err != nil {
		if errors.Is(err, repository.ErrReservationConflict) {
			return nil, reservationConflict()
		}
		return nil, fmt.Errorf("creating reservation: %w", err)
	}

	s.cache.Invalidate(ctx, "reservas:*", "reserva:*")
	return &res, nil
}

func (s *reservationService) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	cacheKey := fmt.Sprintf("reserva:%d", id)
	var res domain.Reservation
	if cached(ctx, s.cache, cacheKey, &res) {
		return &res, nil
	}

	found, err := s.resRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NewNotFound("Reserva não encontrada.")
	}
	if err != nil {
		return nil, fmt.Errorf("loading reservation %d: %w", id, err)
	}

	s.cache.Set(ctx, cacheKey, found, cache.CRUDTTL)
	return found, nil
}

func (s *reservationService) List(ctx context.Context) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	if cached(ctx, s.cache, "reservas:all", &reservations) {
		return reservations, nil
	}

	reservations, err := s.resRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing reservations: %w", err)
	}

	s.cache.Set(ctx, "reservas:all", reservations, cache.CRUDTTL)
	return reservations, nil
}

func (s *reservationService) Update(ctx context.Context, id int32, in validation.ReservationInput) (*domain.Reservation, error) {
	if err := validation.ValidateReservationInput(in, true); err != nil {
		return nil, err
	}

	existing, err := s.resRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NewNotFound("Reserva não encontrada.")
	}
	if err != nil {
		return nil, fmt.Errorf("loading reservation %d: %w", id, err)
	}

	merged := domain.MergeReservation(*existing, in.Patch())
	merged.Weekdays = normalizeWeekdays(merged.Weekdays)

	if err := validation.ValidateReservationRules(merged, s.now()); err != nil {
		return nil, err
	}
	if merged.RoomID != existing.RoomID || merged.ResponsibleID != existing.ResponsibleID {
		if err := s.requireParticipants(ctx, merged.RoomID, merged.ResponsibleID); err != nil {
			return nil, err
		}
	}

	if err := s.resRepo.UpdateWithDays(ctx, &merged); err != nil {
		if errors.Is(err, repository.ErrReservationConflict) {
			return nil, reservationConflict()
		}
		return nil, fmt.Errorf("updating reservation %d: %w", id, err)
	}

	s.cache.Invalidate(ctx, "reservas:*", "reserva:*")
	return &merged, nil
}

func (s *reservationService) Delete(ctx context.Context, id int32) error {
	existing, err := s.resRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewNotFound("Reserva não encontrada.")
	}
	if err != nil {
		return fmt.Errorf("loading reservation %d: %w", id, err)
	}

	if existing.Status == domain.ReservationStatusActive {
		return domain.NewConflict("Não é possível excluir uma reserva ativa. Cancele ou finalize a reserva primeiro.")
	}

	if err := s.resRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting reservation %d: %w", id, err)
	}

	s.cache.Invalidate(ctx, "reservas:*", "reserva:*")
	return nil
}

// requireParticipants checks the referenced room exists and the
// responsible exists and is active.
func (s *reservationService) requireParticipants(ctx context.Context, roomID, respID int32) error {
	if _, err := s.roomRepo.GetByID(ctx, roomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewNotFound("Sala não encontrada.")
		}
		return fmt.Errorf("loading room %d: %w", roomID, err)
	}

	resp, err := s.respRepo.GetByID(ctx, respID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewNotFound("Responsável não encontrado.")
	}
	if err != nil {
		return fmt.Errorf("loading responsible %d: %w", respID, err)
	}
	if !resp.Active {
		return domain.NewConflict("Responsável inválido ou inativo.")
	}
	return nil
}

func reservationConflict() error {
	return &domain.ConflictError{
		Message: "Conflito de reserva.",
		Detail:  "A sala já possui uma reserva ativa que conflita com o horário informado.",
	}
}

// normalizeWeekdays sorts the set and drops duplicates so the stored
// child rows are canonical.
func normalizeWeekdays(days []int) []int {
	if len(days) == 0 {
		return nil
	}
	seen := map[int]bool{}
	out := make([]int, 0, len(days))
	for _, d := range days {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Ints(out)
	return out
}
