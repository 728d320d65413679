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

type keyService struct {
	keyRepo  repository.KeyRepository
	roomRepo repository.RoomRepository
	cache    cache.Cache
}

func NewKeyService(keyRepo repository.KeyRepository, roomRepo repository.RoomRepository, c cache.Cache) KeyService {
	return &keyService{keyRepo: keyRepo, roomRepo: roomRepo, cache: c}
}

func (s *keyService) Create(ctx context.Context, in validation.KeyInput) (*domain.Key, error) {
	if err := validation.ValidateKey(in, false); err != nil {
		return nil, err
	}
	if err := s.requireRoom(ctx, *in.RoomID); err != nil {
		return nil, err
	}

	key := &domain.Key{Name: *in.Name, RoomID: *in.RoomID, Available: *in.Available}
	if err := s.keyRepo.Create(ctx, key); err != nil {
		return nil, fmt.Errorf("creating key: %w", err)
	}

	s.cache.Invalidate(ctx, "chaves:*", "chave:*")
	return key, nil
}

func (s *keyService) GetByID(ctx context.Context, id int32) (*domain.Key, error) {
	cacheKey := fmt.Sprintf("chave:%d", id)
	var key domain.Key
	if cached(ctx, s.cache, cacheKey, &key) {
		return &key, nil
	}

	found, err := s.keyRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NewNotFound("Chave não encontrada.")
	}
	if err != nil {
		return nil, fmt.Errorf("loading key %d: %w", id, err)
	}

	s.cache.Set(ctx, cacheKey, found, cache.CRUDTTL)
	return found, nil
}

func (s *keyService) List(ctx context.Context) ([]domain.Key, error) {
	var keys []domain.Key
	if cached(ctx, s.cache, "chaves:all", &keys) {
		return keys, nil
	}

	keys, err := s.keyRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}

	s.cache.Set(ctx, "chaves:all", keys, cache.CRUDTTL)
	return keys, nil
}

func (s *keyService) Update(ctx context.Context, id int32, in validation.KeyInput) (*domain.Key, error) {
	if err := validation.ValidateKey(in, true); err != nil {
		return nil, err
	}

	key, err := s.keyRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NewNotFound("Chave não encontrada.")
	}
	if err != nil {
		return nil, fmt.Errorf("loading key %d: %w", id, err)
	}

	if in.RoomID != nil && *in.RoomID != key.RoomID {
		if err := s.requireRoom(ctx, *in.RoomID); err != nil {
			return nil, err
		}
		key.RoomID = *in.RoomID
	}
	if in.Name != nil {
		key.Name = *in.Name
	}
	if in.Available != nil {
		key.Available = *in.Available
	}

	if err := s.keyRepo.Update(ctx, key); err != nil {
		return nil, fmt.Errorf("updating key %d: %w", id, err)
	}

	s.cache.Invalidate(ctx, "chaves:*", "chave:*", "historico:*")
	return key, nil
}

func (s *keyService) Delete(ctx context.Context, id int32) error {
	key, err := s.keyRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewNotFound("Chave não encontrada.")
	}
	if err != nil {
		return fmt.Errorf("loading key %d: %w", id, err)
	}

	if !key.Available {
		return domain.NewConflict("Não é possível excluir a chave: ela está em uso.")
	}

	if err := s.keyRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting key %d: %w", id, err)
	}

	s.cache.Invalidate(ctx, "chaves:*", "chave:*")
	return nil
}

func (s *keyService) requireRoom(ctx context.Context, roomID int32) error {
	_, err := s.roomRepo.GetByID(ctx, roomID)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewNotFound("Sala não encontrada.")
	}
	if err != nil {
		return fmt.Errorf("loading room %d: %w", roomID, err)
	}
	return nil
}
