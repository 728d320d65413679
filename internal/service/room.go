package service

import (
	"context"
	"errors"
	"fmt"

	"key-control-backend/internal/cache"
	"key-control-backend/internal/domain"
	"key-control-backend/internal/repository"
	"key-control-backend/internal/validation"
)

type roomService struct {
	roomRepo repository.RoomRepository
	cache    cache.Cache
}

func NewRoomService(roomRepo repository.RoomRepository, c cache.Cache) RoomService {
	return &roomService{roomRepo: roomRepo, cache: c}
}

func (s *roomService) Create(ctx context.Context, in validation.RoomInput) (*domain.Room, error) {
	if err := validation.ValidateRoom(in, false); err != nil {
		return nil, err
	}

	room := &domain.Room{Name: *in.Name, Available: *in.Available}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("creating room: %w", err)
	}

	s.cache.Invalidate(ctx, "salas:*", "sala:*")
	return room, nil
}

func (s *roomService) GetByID(ctx context.Context, id int32) (*domain.Room, error) {
	cacheKey := fmt.Sprintf("sala:%d", id)
	var room domain.Room
	if cached(ctx, s.cache, cacheKey, &room) {
		return &room, nil
	}

	found, err := s.roomRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NewNotFound("Sala não encontrada.")
	}
	if err != nil {
		return nil, fmt.Errorf("loading room %d: %w", id, err)
	}

	s.cache.Set(ctx, cacheKey, found, cache.CRUDTTL)
	return found, nil
}

func (s *roomService) List(ctx context.Context) ([]domain.Room, error) {
	var rooms []domain.Room
	if cached(ctx, s.cache, "salas:all", &rooms) {
		return rooms, nil
	}

	rooms, err := s.roomRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}

	s.cache.Set(ctx, "salas:all", rooms, cache.CRUDTTL)
	return rooms, nil
}

func (s *roomService) Update(ctx context.Context, id int32, in validation.RoomInput) (*domain.Room, error) {
	if err := validation.ValidateRoom(in, true); err != nil {
		return nil, err
	}

	room, err := s.roomRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NewNotFound("Sala não encontrada.")
	}
	if err != nil {
		return nil, fmt.Errorf("loading room %d: %w", id, err)
	}

	if in.Name != nil {
		room.Name = *in.Name
	}
	if in.Available != nil {
		room.Available = *in.Available
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, fmt.Errorf("updating room %d: %w", id, err)
	}

	// Room names appear in history rows, so the report cache goes too.
	s.cache.Invalidate(ctx, "salas:*", "sala:*", "historico:*")
	return room, nil
}

func (s *roomService) Delete(ctx context.Context, id int32) error {
	if _, err := s.roomRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.NewNotFound("Sala não encontrada.")
		}
		return fmt.Errorf("loading room %d: %w", id, err)
	}

	inUse, err := s.roomRepo.HasUnavailableKey(ctx, id)
	if err != nil {
		return fmt.Errorf("checking keys of room %d: %w", id, err)
	}
	if inUse {
		return domain.NewConflict("Não é possível excluir a sala: há chaves desta sala em uso.")
	}

	if err := s.roomRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting room %d: %w", id, err)
	}

	s.cache.Invalidate(ctx, "salas:*", "sala:*")
	return nil
}
