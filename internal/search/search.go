// Package search maintains the responsible-person document index. The
// index is a mirror fed on every responsible mutation; indexing failures
// are the caller's to log and swallow, never to propagate.
package search

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"key-control-backend/internal/domain"

	"github.com/blevesearch/bleve/v2"
)

// Indexer is the contract the responsible service feeds after each commit.
type Indexer interface {
	Index(ctx context.Context, resp *domain.Responsible) error
	Delete(ctx context.Context, id int32) error
	Search(ctx context.Context, text string, page, perPage int) ([]domain.Responsible, error)
	Close() error
}

type BleveIndexer struct {
	index bleve.Index
}

// NewBleveIndexer opens the index at path, creating it when absent. An
// empty path opens an in-memory index.
func NewBleveIndexer(path string) (*BleveIndexer, error) {
	mapping := bleve.NewIndexMapping()
	if path == "" {
		index, err := bleve.NewMemOnly(mapping)
		if err != nil {
			return nil, fmt.Errorf("creating in-memory search index: %w", err)
		}
		return &BleveIndexer{index: index}, nil
	}

	index, err := bleve.Open(path)
	if errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		index, err = bleve.New(path, mapping)
	}
	if err != nil {
		return nil, fmt.Errorf("opening search index %q: %w", path, err)
	}
	return &BleveIndexer{index: index}, nil
}

func (b *BleveIndexer) Index(_ context.Context, resp *domain.Responsible) error {
	doc := map[string]interface{}{
		"responsavel_id":   float64(resp.ID),
		"responsavel_nome": resp.Name,
		"responsavel_cpf":  resp.CPF,
		"responsavel_siap": resp.SIAPE,
		"ativo":            resp.Active,
	}
	if resp.BirthDate != nil {
		doc["responsavel_data_nascimento"] = *resp.BirthDate
	}
	return b.index.Index(strconv.FormatInt(int64(resp.ID), 10), doc)
}

func (b *BleveIndexer) Delete(_ context.Context, id int32) error {
	return b.index.Delete(strconv.FormatInt(int64(id), 10))
}

// Search matches the name fuzzily and CPF/SIAPE by substring, the same
// shape the source system queried its index with.
func (b *BleveIndexer) Search(ctx context.Context, text string, page, perPage int) ([]domain.Responsible, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 50
	}

	nameQuery := bleve.NewMatchQuery(text)
	nameQuery.SetField("responsavel_nome")
	nameQuery.Fuzziness = 2

	cpfQuery := bleve.NewWildcardQuery("*" + text + "*")
	cpfQuery.SetField("responsavel_cpf")

	siapeQuery := bleve.NewWildcardQuery("*" + text + "*")
	siapeQuery.SetField("responsavel_siap")

	req := bleve.NewSearchRequestOptions(
		bleve.NewDisjunctionQuery(nameQuery, cpfQuery, siapeQuery),
		perPage, (page-1)*perPage, false,
	)
	req.Fields = []string{"*"}

	result, err := b.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, err
	}

	responsibles := make([]domain.Responsible, 0, len(result.Hits))
	for _, hit := range result.Hits {
		responsibles = append(responsibles, docToResponsible(hit.Fields))
	}
	return responsibles, nil
}

func docToResponsible(fields map[string]interface{}) domain.Responsible {
	var resp domain.Responsible
	if v, ok := fields["responsavel_id"].(float64); ok {
		resp.ID = int32(v)
	}
	if v, ok := fields["responsavel_nome"].(string); ok {
		resp.Name = v
	}
	if v, ok := fields["responsavel_cpf"].(string); ok {
		resp.CPF = v
	}
	if v, ok := fields["responsavel_siap"].(string); ok {
		resp.SIAPE = v
	}
	if v, ok := fields["ativo"].(bool); ok {
		resp.Active = v
	}
	if v, ok := fields["responsavel_data_nascimento"].(string); ok {
		birthDate := v
		resp.BirthDate = &birthDate
	}
	return resp
}

func (b *BleveIndexer) Close() error {
	return b.index.Close()
}
