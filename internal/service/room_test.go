package service

import (
	"context"
	"testing"

	"key-control-backend/internal/domain"
	"key-control-backend/internal/repository"
	"key-control-backend/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRoomService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		repo := new(MockRoomRepo)
		c := &fakeCache{}
		svc := NewRoomService(repo, c)

		repo.On("Create", ctx, mock.AnythingOfType("*domain.Room")).Return(nil)

		room, err := svc.Create(ctx, validation.RoomInput{Name: strPtr("Sala 101"), Available: boolPtr(true)})
		require.NoError(t, err)
		assert.Equal(t, "Sala 101", room.Name)
		assert.Contains(t, c.invalidated, "salas:*")
	})

	t.Run("InvalidPayload", func(t *testing.T) {
		repo := new(MockRoomRepo)
		svc := NewRoomService(repo, &fakeCache{})

		_, err := svc.Create(ctx, validation.RoomInput{})
		assert.True(t, domain.IsValidation(err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestRoomService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("RoomWithKeyInUseIsProtected", func(t *testing.T) {
		repo := new(MockRoomRepo)
		svc := NewRoomService(repo, &fakeCache{})

		repo.On("GetByID", ctx, int32(1)).Return(&domain.Room{ID: 1}, nil)
		repo.On("HasUnavailableKey", ctx, int32(1)).Return(true, nil)

		err := svc.Delete(ctx, 1)
		assert.True(t, domain.IsConflict(err))
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("IdleRoomIsDeleted", func(t *testing.T) {
		repo := new(MockRoomRepo)
		c := &fakeCache{}
		svc := NewRoomService(repo, c)

		repo.On("GetByID", ctx, int32(1)).Return(&domain.Room{ID: 1}, nil)
		repo.On("HasUnavailableKey", ctx, int32(1)).Return(false, nil)
		repo.On("Delete", ctx, int32(1)).Return(nil)

		assert.NoError(t, svc.Delete(ctx, 1))
		assert.Contains(t, c.invalidated, "sala:*")
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRoomRepo)
		svc := NewRoomService(repo, &fakeCache{})

		repo.On("GetByID", ctx, int32(9)).Return(nil, repository.ErrNotFound)

		assert.True(t, domain.IsNotFound(svc.Delete(ctx, 9)))
	})
}

func TestKeyService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("KeyInUseIsProtected", func(t *testing.T) {
		keyRepo := new(MockKeyRepo)
		svc := NewKeyService(keyRepo, new(MockRoomRepo), &fakeCache{})

		keyRepo.On("GetByID", ctx, int32(3)).Return(&domain.Key{ID: 3, Available: false}, nil)

		err := svc.Delete(ctx, 3)
		assert.True(t, domain.IsConflict(err))
		keyRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("AvailableKeyIsDeleted", func(t *testing.T) {
		keyRepo := new(MockKeyRepo)
		svc := NewKeyService(keyRepo, new(MockRoomRepo), &fakeCache{})

		keyRepo.On("GetByID", ctx, int32(3)).Return(&domain.Key{ID: 3, Available: true}, nil)
		keyRepo.On("Delete", ctx, int32(3)).Return(nil)

		assert.NoError(t, svc.Delete(ctx, 3))
	})
}

func TestKeyService_CreateChecksRoom(t *testing.T) {
	ctx := context.Background()

	keyRepo := new(MockKeyRepo)
	roomRepo := new(MockRoomRepo)
	svc := NewKeyService(keyRepo, roomRepo, &fakeCache{})

	roomRepo.On("GetByID", ctx, int32(9)).Return(nil, repository.ErrNotFound)

	_, err := svc.Create(ctx, validation.KeyInput{
		Name:      strPtr("Chave 101-A"),
		RoomID:    i32Ptr(9),
		Available: boolPtr(true),
	})
	assert.True(t, domain.IsNotFound(err))
	keyRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
