package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTaxonomyPredicates(t *testing.T) {
	ve := NewValidationError("sala_nome", "O campo sala_nome é obrigatório.")
	nf := NewNotFound("Sala não encontrada.")
	ce := NewConflict("Já existe uma retirada ativa para esta sala.")

	assert.True(t, IsValidation(ve))
	assert.False(t, IsValidation(nf))
	assert.True(t, IsNotFound(nf))
	assert.True(t, IsConflict(ce))
	assert.False(t, IsConflict(nf))

	// Predicates see through wrapping.
	wrapped := fmt.Errorf("handling request: %w", ce)
	assert.True(t, IsConflict(wrapped))
}

func TestValidationErrorMessageIsStable(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{
		"hora_fim":    "hora_fim deve ser maior que hora_inicio.",
		"data_inicio": "data_inicio não pode ser uma data passada.",
	}}
	// Fields are sorted, so the message does not depend on map order.
	assert.Equal(t,
		"dados inválidos: data_inicio: data_inicio não pode ser uma data passada.; hora_fim: hora_fim deve ser maior que hora_inicio.",
		err.Error(),
	)
}

func TestConflictErrorDetail(t *testing.T) {
	ce := &ConflictError{Message: "Conflito de reserva.", Detail: "A sala já possui uma reserva ativa que conflita com o horário informado."}
	assert.Contains(t, ce.Error(), "Conflito de reserva.")
	assert.Contains(t, ce.Error(), "conflita com o horário informado")
}
