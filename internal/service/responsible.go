package service

import (
	"context"
	"errors"
	"fmt"

	"key-control-backend/internal/cache"
	"key-control-backend/internal/domain"
	"key-control-backend/internal/logger"
	"key-control-backend/internal/repository"
	"key-control-backend/internal/search"
	"key-control-backend/internal/validation"
)

type responsibleService struct {
	respRepo repository.ResponsibleRepository
	indexer  search.Indexer
	cache    cache.Cache
}

func NewResponsibleService(respRepo repository.ResponsibleRepository, indexer search.Indexer, c cache.Cache) ResponsibleService {
	return &responsibleService{respRepo: respRepo, indexer: indexer, cache: c}
}

func (s *responsibleService) Create(ctx context.Context, in validation.ResponsibleInput) (*domain.Responsible, error) {
	if err := validation.ValidateResponsible(in, false); err != nil {
		return nil, err
	}

	resp := &domain.Responsible{
		Name:      *in.Name,
		CPF:       *in.CPF,
		SIAPE:     *in.SIAPE,
		BirthDate: in.BirthDate,
		Active:    *in.Active,
	}
	if err := s.respRepo.Create(ctx, resp); err != nil {
		return nil, fmt.Errorf("creating responsible: %w", err)
	}

	s.feedIndex(ctx, resp)
	s.cache.Invalidate(ctx, "responsaveis:*", "responsavel:*")
	return resp, nil
}

func (s *responsibleService) GetByID(ctx context.Context, id int32) (*domain.Responsible, error) {
	cacheKey := fmt.Sprintf("responsavel:%d", id)
	var resp domain.Responsible
	if cached(ctx, s.cache, cacheKey, &resp) {
		return &resp, nil
	}

	found, err := s.respRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NewNotFound("Responsável não encontrado.")
	}
	if err != nil {
		return nil, fmt.Errorf("loading responsible %d: %w", id, err)
	}

	s.cache.Set(ctx, cacheKey, found, cache.CRUDTTL)
	return found, nil
}

func (s *responsibleService) List(ctx context.Context, query string, page, perPage int) ([]domain.Responsible, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 50
	}

	if query != "" {
		results, err := s.indexer.Search(ctx, query, page, perPage)
		if err == nil {
			return results, nil
		}
		// The index is a mirror; a broken index degrades search to a
		// plain listing rather than failing the request.
		logger.Warn("Responsible search failed, serving unfiltered page", "query", query, "error", err)
	}

	cacheKey := fmt.Sprintf("responsaveis:all:%d:%d", page, perPage)
	var responsibles []domain.Responsible
	if cached(ctx, s.cache, cacheKey, &responsibles) {
		return responsibles, nil
	}

	responsibles, err := s.respRepo.List(ctx, page, perPage)
	if err != nil {
		return nil, fmt.Errorf("listing responsibles: %w", err)
	}

	s.cache.Set(ctx, cacheKey, responsibles, cache.CRUDTTL)
	return responsibles, nil
}

func (s *responsibleService) Update(ctx context.Context, id int32, in validation.ResponsibleInput) (*domain.Responsible, error) {
	if err := validation.ValidateResponsible(in, true); err != nil {
		return nil, err
	}

	resp, err := s.respRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, domain.NewNotFound("Responsável não encontrado.")
	}
	if err != nil {
		return nil, fmt.Errorf("loading responsible %d: %w", id, err)
	}

	if in.Name != nil {
		resp.Name = *in.Name
	}
	if in.CPF != nil {
		resp.CPF = *in.CPF
	}
	if in.SIAPE != nil {
		resp.SIAPE = *in.SIAPE
	}
	if in.BirthDate != nil {
		resp.BirthDate = in.BirthDate
	}
	if in.Active != nil {
		resp.Active = *in.Active
	}

	if err := s.respRepo.Update(ctx, resp); err != nil {
		return nil, fmt.Errorf("updating responsible %d: %w", id, err)
	}

	s.feedIndex(ctx, resp)
	s.cache.Invalidate(ctx, "responsaveis:*", "responsavel:*", "historico:*")
	return resp, nil
}

func (s *responsibleService) Delete(ctx context.Context, id int32) error {
	resp, err := s.respRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NewNotFound("Responsável não encontrado.")
	}
	if err != nil {
		return fmt.Errorf("loading responsible %d: %w", id, err)
	}

	if resp.Active {
		return domain.NewConflict("Não é possível excluir um responsável ativo.")
	}

	if err := s.respRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting responsible %d: %w", id, err)
	}

	if err := s.indexer.Delete(ctx, id); err != nil {
		logger.Warn("Removing responsible from search index failed", "responsavel_id", id, "error", err)
	}
	s.cache.Invalidate(ctx, "responsaveis:*", "responsavel:*")
	return nil
}

func (s *responsibleService) feedIndex(ctx context.Context, resp *domain.Responsible) {
	if err := s.indexer.Index(ctx, resp); err != nil {
		logger.Warn("Indexing responsible failed", "responsavel_id", resp.ID, "error", err)
	}
}
