package processing

import (
	"context"

	"github.com/RMahshie/basscalc/internal/storage"
	"github.com/RMahshie/basscalc/pkg/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockPresetStore implements storage.PresetStore for testing
type MockPresetStore struct {
	mock.Mock
}

func (m *MockPresetStore) List(ctx context.Context) ([]storage.Object, error) {
	args := m.Called(ctx)
	return args.Get(0).([]storage.Object), args.Error(1)
}

func (m *MockPresetStore) Get(ctx context.Context, name string) ([]byte, error) {
	args := m.Called(ctx, name)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockPresetStore) Put(ctx context.Context, name string, data []byte) (storage.Object, error) {
	args := m.Called(ctx, name, data)
	return args.Get(0).(storage.Object), args.Error(1)
}

func (m *MockPresetStore) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockPresetStore) GenerateDownloadURL(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

// MockDesignRepository implements repository.DesignRepository for testing
type MockDesignRepository struct {
	mock.Mock
}

func (m *MockDesignRepository) Create(ctx context.Context, design *models.Design) error {
	args := m.Called(ctx, design)
	return args.Error(0)
}

func (m *MockDesignRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Design, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Design), args.Error(1)
}

func (m *MockDesignRepository) List(ctx context.Context) ([]*models.Design, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Design), args.Error(1)
}

func (m *MockDesignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
