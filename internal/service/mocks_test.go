package service

import (
	"context"
	"time"

	"key-control-backend/internal/domain"
	"key-control-backend/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockRoomRepo
type MockRoomRepo struct {
	mock.Mock
}

func (m *MockRoomRepo) Create(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}
func (m *MockRoomRepo) GetByID(ctx context.Context, id int32) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}
func (m *MockRoomRepo) List(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Room), args.Error(1)
}
func (m *MockRoomRepo) Update(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}
func (m *MockRoomRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockRoomRepo) HasUnavailableKey(ctx context.Context, roomID int32) (bool, error) {
	args := m.Called(ctx, roomID)
	return args.Bool(0), args.Error(1)
}

// MockKeyRepo
type MockKeyRepo struct {
	mock.Mock
}

func (m *MockKeyRepo) Create(ctx context.Context, key *domain.Key) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
func (m *MockKeyRepo) GetByID(ctx context.Context, id int32) (*domain.Key, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Key), args.Error(1)
}
func (m *MockKeyRepo) List(ctx context.Context) ([]domain.Key, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Key), args.Error(1)
}
func (m *MockKeyRepo) Update(ctx context.Context, key *domain.Key) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
func (m *MockKeyRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockResponsibleRepo
type MockResponsibleRepo struct {
	mock.Mock
}

func (m *MockResponsibleRepo) Create(ctx context.Context, r *domain.Responsible) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockResponsibleRepo) GetByID(ctx context.Context, id int32) (*domain.Responsible, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Responsible), args.Error(1)
}
func (m *MockResponsibleRepo) List(ctx context.Context, page, perPage int) ([]domain.Responsible, error) {
	args := m.Called(ctx, page, perPage)
	return args.Get(0).([]domain.Responsible), args.Error(1)
}
func (m *MockResponsibleRepo) Update(ctx context.Context, r *domain.Responsible) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
func (m *MockResponsibleRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReservationRepo
type MockReservationRepo struct {
	mock.Mock
}

func (m *MockReservationRepo) CreateWithDays(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}
func (m *MockReservationRepo) GetByID(ctx context.Context, id int32) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) List(ctx context.Context) ([]domain.Reservation, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Reservation), args.Error(1)
}
func (m *MockReservationRepo) UpdateWithDays(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}
func (m *MockReservationRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockReservationRepo) HasConflict(ctx context.Context, q repository.ConflictQuery) (bool, error) {
	args := m.Called(ctx, q)
	return args.Bool(0), args.Error(1)
}

// MockCheckoutRepo
type MockCheckoutRepo struct {
	mock.Mock
}

func (m *MockCheckoutRepo) Create(ctx context.Context, co *domain.Checkout) error {
	args := m.Called(ctx, co)
	return args.Error(0)
}
func (m *MockCheckoutRepo) GetByID(ctx context.Context, id int32) (*domain.Checkout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Checkout), args.Error(1)
}
func (m *MockCheckoutRepo) List(ctx context.Context) ([]domain.Checkout, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Checkout), args.Error(1)
}
func (m *MockCheckoutRepo) Update(ctx context.Context, co *domain.Checkout, releaseIfLast bool) error {
	args := m.Called(ctx, co, releaseIfLast)
	return args.Error(0)
}
func (m *MockCheckoutRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockCheckoutRepo) HasOpenCheckoutForRoom(ctx context.Context, roomID int32) (bool, error) {
	args := m.Called(ctx, roomID)
	return args.Bool(0), args.Error(1)
}

// MockHistoryRepo
type MockHistoryRepo struct {
	mock.Mock
}

func (m *MockHistoryRepo) List(ctx context.Context, filter domain.HistoryFilter) ([]domain.CheckoutHistoryEntry, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.CheckoutHistoryEntry), args.Error(1)
}
func (m *MockHistoryRepo) GetByID(ctx context.Context, checkoutID int32) (*domain.CheckoutHistoryEntry, error) {
	args := m.Called(ctx, checkoutID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutHistoryEntry), args.Error(1)
}

// fakeCache always misses on Get and records writes and invalidations.
type fakeCache struct {
	sets        []string
	invalidated []string
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, bool) { return nil, false }
func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	c.sets = append(c.sets, key)
}
func (c *fakeCache) Invalidate(ctx context.Context, patterns ...string) {
	c.invalidated = append(c.invalidated, patterns...)
}

// fakeIndexer records the documents fed to the search mirror.
type fakeIndexer struct {
	indexed []int32
	deleted []int32
	results []domain.Responsible
	err     error
}

func (f *fakeIndexer) Index(ctx context.Context, resp *domain.Responsible) error {
	f.indexed = append(f.indexed, resp.ID)
	return f.err
}
func (f *fakeIndexer) Delete(ctx context.Context, id int32) error {
	f.deleted = append(f.deleted, id)
	return f.err
}
func (f *fakeIndexer) Search(ctx context.Context, text string, page, perPage int) ([]domain.Responsible, error) {
	return f.results, f.err
}
func (f *fakeIndexer) Close() error { return nil }
