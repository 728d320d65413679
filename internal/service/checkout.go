package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"key-control-backend/internal/cache"
	"key-control-backend/internal/domain"
	"key-control-backend/internal/repository"
	"key-control-backend/internal/validation"
)

// checkoutTolerance is how early a key may be taken out before the
// reservation's start time.
const checkoutTolerance = 10 * time.Minute

type checkoutService struct {
	checkoutRepo repository.CheckoutRepository
	keyRepo      repository.KeyRepository
	roomRepo     repository.RoomRepository
	respRepo     repository.ResponsibleRepository
	resRepo      repository.ReservationRepository
	cache        cache.Cache
	now          func() time.Time
}

func NewCheckoutService(
	checkoutRepo repository.CheckoutRepository,
	keyRepo repository.KeyRepository,
	roomRepo repository.RoomRepository,
	respRepo repository.ResponsibleRepository,
	resRepo repository.ReservationRepository,
	c cache.Cache,
) CheckoutService {
	return &checkoutService{
		checkoutRepo: checkoutRepo,
		keyRepo:      keyRepo,
		roomRepo:     roomRepo,
		respRepo:     respRepo,
		resRepo:      resRepo,
		cache:        c,
		now:          time.Now,
	}
}

// Create runs the full business check chain before handing the insert to
// the repository. The repository re-checks key availability and the
// one-open-checkout-per-room invariant inside the write transaction, so
// the checks here are advisory and only exist to produce precise errors.
func (s *checkoutService) Create(ctx context.Context, in validation.CheckoutInput) (*domain.Checkout, error) {
	if err := validation.ValidateCheckoutCreate(in); err != nil {
		return nil, err
	}

	today := s.now().Format(domain.DateLayout)
	if *in.Date != today {
		return nil, domain.NewValidationError("data_retirada", "data_retirada deve ser a data de hoje.")
	}

	// Some clients send reserva_id 0 for an unlinked checkout.
	reservationID := in.ReservationID
	if reservationID != nil && *reservationID == 0 {
		reservationID = nil
	}

	var res *domain.Reservation
	if reservationID != nil {
		var err error
		res, err = s.resRepo.GetByID(ctx, *reservationID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, domain.NewNotFound("Reserva não encontrada.")
		}
		if err != nil {
			return nil, fmt.Errorf("loading reservation %d: %w", *reservationID, err)
		}
		if err := s.checkReservationWindow(res, today, *in.Time); err != nil {
			return nil, err
		}
	}

	key, err := s.keyRepo.GetByID(ctx, *in.KeyID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NewNotFound("Chave não encontrada.")
	}
	if err != nil {
		return nil, fmt.Errorf("loading key %d: %w", *in.KeyID, err)
	}

	if res != nil && res.RoomID != key.RoomID {
		return nil, domain.NewConflict("Reserva não pertence à sala da chave informada.")
	}
	if !key.Available {
		return nil, domain.NewConflict("Chave e a Sala à qual ela pertence não estão disponíveis no momento.")
	}

	open, err := s.checkoutRepo.HasOpenCheckoutForRoom(ctx, key.RoomID)
	if err != nil {
		return nil, fmt.Errorf("checking open checkouts for room %d: %w", key.RoomID, err)
	}
	if open {
		return nil, domain.NewConflict("Já existe uma retirada ativa para esta sala.")
	}

	resp, err := s.respRepo.GetByID(ctx, *in.ResponsibleID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading responsible %d: %w", *in.ResponsibleID, err)
	}
	if resp == nil || !resp.Active {
		return nil, domain.NewValidationError("responsavel_id", "Responsável inválido ou inativo.")
	}

	checkout := &domain.Checkout{
		KeyID:              key.ID,
		ResponsibleID:      resp.ID,
		ReservationID:      reservationID,
		Date:               *in.Date,
		Time:               *in.Time,
		ExpectedReturnTime: *in.ExpectedReturnTime,
		Status:             domain.CheckoutStatusCheckedOut,
	}
	if err := s.checkoutRepo.Create(ctx, checkout); err != nil {
		switch {
		case errors.Is(err, repository.ErrKeyUnavailable):
			return nil, domain.NewConflict("Chave e a Sala à qual ela pertence não estão disponíveis no momento.")
		case errors.Is(err, repository.ErrOpenCheckout):
			return nil, domain.NewConflict("Já existe uma retirada ativa para esta sala.")
		}
		return nil, fmt.Errorf("creating checkout: %w", err)
	}

	s.invalidateCheckout(ctx, true)
	return checkout, nil
}

// checkReservationWindow enforces the reservation-linked rules: active
// status, date range, weekday and the time window with the early-pickup
// tolerance.
func (s *checkoutService) checkReservationWindow(res *domain.Reservation, today, checkoutTime string) error {
	if res.Status != domain.ReservationStatusActive {
		return domain.NewConflict("Reserva não está ativa.")
	}
	if domain.DateBefore(today, res.StartDate) || domain.DateBefore(res.EndDate, today) {
		return domain.NewConflict("Hoje não está dentro do período da reserva.")
	}

	if res.Recurrence.RequiresWeekdays() {
		todayDate, err := domain.ParseDate(today)
		if err != nil {
			return fmt.Errorf("parsing current date %q: %w", today, err)
		}
		if !containsWeekday(res.Weekdays, domain.ISOWeekday(todayDate)) {
			return domain.NewConflict("Hoje não é um dia permitido pela reserva.")
		}

		start, err := domain.ParseClock(res.StartTime)
		if err != nil {
			return fmt.Errorf("parsing reservation start time %q: %w", res.StartTime, err)
		}
		earliest := start.Add(-checkoutTolerance).Format(domain.ClockLayout)
		if checkoutTime < earliest || checkoutTime > res.EndTime {
			return domain.NewConflict("Retirada fora do intervalo permitido da reserva.")
		}
	}
	return nil
}

func (s *checkoutService) GetByID(ctx context.Context, id int32) (*domain.Checkout, error) {
	cacheKey := fmt.Sprintf("retirada:%d", id)
	var checkout domain.Checkout
	if cached(ctx, s.cache, cacheKey, &checkout) {
		return &checkout, nil
	}

	found, err := s.checkoutRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NewNotFound("Retirada não encontrada.")
	}
	if err != nil {
		return nil, fmt.Errorf("loading checkout %d: %w", id, err)
	}

	s.cache.Set(ctx, cacheKey, found, cache.CRUDTTL)
	return found, nil
}

func (s *checkoutService) List(ctx context.Context) ([]domain.Checkout, error) {
	var checkouts []domain.Checkout
	if cached(ctx, s.cache, "retiradas:all", &checkouts) {
		return checkouts, nil
	}

	checkouts, err := s.checkoutRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing checkouts: %w", err)
	}

	s.cache.Set(ctx, "retiradas:all", checkouts, cache.CRUDTTL)
	return checkouts, nil
}

// Update only ever touches status and hora_devolucao, whatever else the
// payload carries. The return transition releases key and room
// availability when it closes the room's last open checkout.
func (s *checkoutService) Update(ctx context.Context, id int32, in validation.CheckoutInput) (*domain.Checkout, error) {
	checkout, err := s.checkoutRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NewNotFound("Retirada não encontrada.")
	}
	if err != nil {
		return nil, fmt.Errorf("loading checkout %d: %w", id, err)
	}

	if err := validation.ValidateCheckoutUpdate(in, checkout); err != nil {
		return nil, err
	}

	wasOpen := checkout.Status.Open()
	merged := domain.MergeCheckout(*checkout, in.Patch())

	releasing := wasOpen && merged.Status == domain.CheckoutStatusReturned
	if err := s.checkoutRepo.Update(ctx, &merged, releasing); err != nil {
		return nil, fmt.Errorf("updating checkout %d: %w", id, err)
	}

	s.invalidateCheckout(ctx, releasing)
	return &merged, nil
}

func (s *checkoutService) Delete(ctx context.Context, id int32) error {
	checkout, err := s.checkoutRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewNotFound("Retirada não encontrada.")
	}
	if err != nil {
		return fmt.Errorf("loading checkout %d: %w", id, err)
	}

	if checkout.Status.Open() {
		return domain.NewConflict("Não é possível excluir uma retirada em aberto. Registre a devolução primeiro.")
	}

	if err := s.checkoutRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting checkout %d: %w", id, err)
	}

	s.invalidateCheckout(ctx, false)
	return nil
}

// invalidateCheckout drops the checkout and history caches; when the
// mutation flipped availability it drops the key and room caches too.
func (s *checkoutService) invalidateCheckout(ctx context.Context, availabilityChanged bool) {
	patterns := []string{"retiradas:*", "retirada:*", "historico:*"}
	if availabilityChanged {
		patterns = append(patterns, "chaves:*", "chave:*", "salas:*", "sala:*")
	}
	s.cache.Invalidate(ctx, patterns...)
}

func containsWeekday(days []int, weekday int) bool {
	for _, d := range days {
		if d == weekday {
			return true
		}
	}
	return false
}
