package service

import (
	"context"
	"errors"
	"fmt"

	"key-control-backend/internal/cache"
	"key-control-backend/internal/domain"
	"key-control-backend/internal/repository"
)

type historyService struct {
	historyRepo repository.HistoryRepository
	cache       cache.Cache
}

func NewHistoryService(historyRepo repository.HistoryRepository, c cache.Cache) HistoryService {
	return &historyService{historyRepo: historyRepo, cache: c}
}

func (s *historyService) List(ctx context.Context, filter domain.HistoryFilter) ([]domain.CheckoutHistoryEntry, error) {
	cacheKey := historyCacheKey(filter)
	var entries []domain.CheckoutHistoryEntry
	if cached(ctx, s.cache, cacheKey, &entries) {
		return entries, nil
	}

	entries, err := s.historyRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing checkout history: %w", err)
	}

	s.cache.Set(ctx, cacheKey, entries, cache.HistoryTTL)
	return entries, nil
}

func (s *historyService) GetByID(ctx context.Context, checkoutID int32) (*domain.CheckoutHistoryEntry, error) {
	cacheKey := fmt.Sprintf("historico:id:%d", checkoutID)
	var entry domain.CheckoutHistoryEntry
	if cached(ctx, s.cache, cacheKey, &entry) {
		return &entry, nil
	}

	found, err := s.historyRepo.GetByID(ctx, checkoutID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NewNotFound("Retirada não encontrada.")
	}
	if err != nil {
		return nil, fmt.Errorf("loading history entry %d: %w", checkoutID, err)
	}

	s.cache.Set(ctx, cacheKey, found, cache.HistoryTTL)
	return found, nil
}

// historyCacheKey encodes the filter into the cache key so each filter
// combination caches independently.
func historyCacheKey(filter domain.HistoryFilter) string {
	roomID, respID := int32(0), int32(0)
	if filter.RoomID != nil {
		roomID = *filter.RoomID
	}
	if filter.ResponsibleID != nil {
		respID = *filter.ResponsibleID
	}
	return fmt.Sprintf("historico:%d:%d:%s", roomID, respID, filter.ResponsibleName)
}
