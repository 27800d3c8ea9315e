package services

import (
	"context"
	"time"

	"palletdock/internal/models"
	"palletdock/internal/repositories"

	pgx "github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"
)

type MockPalletRepository struct {
	mock.Mock
}

func (m *MockPalletRepository) WithTx(tx pgx.Tx) repositories.PalletRepository {
	return m
}

func (m *MockPalletRepository) Create(ctx context.Context, pallet *models.Pallet) error {
	args := m.Called(ctx, pallet)
	return args.Error(0)
}

func (m *MockPalletRepository) GetByID(ctx context.Context, id int64) (*models.Pallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pallet), args.Error(1)
}

func (m *MockPalletRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Pallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Pallet), args.Error(1)
}

func (m *MockPalletRepository) List(ctx context.Context) ([]*models.Pallet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Pallet), args.Error(1)
}

func (m *MockPalletRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPalletRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockBoxRepository struct {
	mock.Mock
}

func (m *MockBoxRepository) WithTx(tx pgx.Tx) repositories.BoxRepository {
	return m
}

func (m *MockBoxRepository) Create(ctx context.Context, box *models.Box) error {
	args := m.Called(ctx, box)
	return args.Error(0)
}

func (m *MockBoxRepository) GetByID(ctx context.Context, id int64) (*models.Box, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Box), args.Error(1)
}

func (m *MockBoxRepository) ListByPallet(ctx context.Context, palletID int64) ([]*models.Box, error) {
	args := m.Called(ctx, palletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Box), args.Error(1)
}

func (m *MockBoxRepository) DeleteByID(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockBoxRepository) DeleteByPallet(ctx context.Context, palletID int64) (int64, error) {
	args := m.Called(ctx, palletID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBoxRepository) ExistsByPurchaseOrder(ctx context.Context, purchaseOrder string) (bool, error) {
	args := m.Called(ctx, purchaseOrder)
	return args.Bool(0), args.Error(1)
}

func (m *MockBoxRepository) FirstByPurchaseOrder(ctx context.Context, purchaseOrder string) (*models.Box, error) {
	args := m.Called(ctx, purchaseOrder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Box), args.Error(1)
}

func (m *MockBoxRepository) MaxAppointmentOrder(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockBoxRepository) LockAppointmentSequence(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBoxRepository) FindAppointmentConflicts(ctx context.Context) ([]models.AppointmentConflict, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AppointmentConflict), args.Error(1)
}

type MockContainerPoolRepository struct {
	mock.Mock
}

func (m *MockContainerPoolRepository) WithTx(tx pgx.Tx) repositories.ContainerPoolRepository {
	return m
}

func (m *MockContainerPoolRepository) AllocateNext(ctx context.Context) (*models.ContainerPoolEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ContainerPoolEntry), args.Error(1)
}

func (m *MockContainerPoolRepository) Release(ctx context.Context, containerID string) (bool, error) {
	args := m.Called(ctx, containerID)
	return args.Bool(0), args.Error(1)
}

func (m *MockContainerPoolRepository) Seed(ctx context.Context, containerIDs []string) error {
	args := m.Called(ctx, containerIDs)
	return args.Error(0)
}

func (m *MockContainerPoolRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContainerPoolRepository) List(ctx context.Context) ([]*models.ContainerPoolEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ContainerPoolEntry), args.Error(1)
}

func (m *MockContainerPoolRepository) ListOrphanedAssigned(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetPalletGroups(ctx context.Context) ([]*models.PalletGroup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.PalletGroup), args.Error(1)
}

func (m *MockCacheService) SetPalletGroups(ctx context.Context, groups []*models.PalletGroup, ttl time.Duration) error {
	args := m.Called(ctx, groups, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetAvailability(ctx context.Context, combo models.Combination) (*models.AvailabilityReport, error) {
	args := m.Called(ctx, combo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AvailabilityReport), args.Error(1)
}

func (m *MockCacheService) SetAvailability(ctx context.Context, combo models.Combination, report *models.AvailabilityReport, ttl time.Duration) error {
	args := m.Called(ctx, combo, report, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateAssignmentCache(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
