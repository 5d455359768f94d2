package payment

import (
	"context"

	"eway-hosted/internal/address"
	"eway-hosted/internal/directory"
	"eway-hosted/internal/settings"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) RequestAccess(ctx context.Context, cfg settings.Settings, fields *RequestFields) (*Acknowledgment, error) {
	args := m.Called(ctx, cfg, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Acknowledgment), args.Error(1)
}

func (m *MockGateway) CheckAccessCode(ctx context.Context, cfg settings.Settings, accessCode string) (*TransactionOutcome, []byte) {
	args := m.Called(ctx, cfg, accessCode)
	var raw []byte
	if args.Get(1) != nil {
		raw = args.Get(1).([]byte)
	}
	return args.Get(0).(*TransactionOutcome), raw
}

type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) GetByID(ctx context.Context, id uuid.UUID) (*address.Address, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*address.Address), args.Error(1)
}

type MockDirectoryRepository struct {
	mock.Mock
}

func (m *MockDirectoryRepository) GetCurrencyByID(ctx context.Context, id uint) (*directory.Currency, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Currency), args.Error(1)
}

func (m *MockDirectoryRepository) GetCountryByID(ctx context.Context, id uint) (*directory.Country, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Country), args.Error(1)
}

func (m *MockDirectoryRepository) GetStateProvinceByID(ctx context.Context, id uint) (*directory.StateProvince, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.StateProvince), args.Error(1)
}

type MockLocaleRepository struct {
	mock.Mock
}

func (m *MockLocaleRepository) Get(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

func (m *MockLocaleRepository) AddOrUpdate(ctx context.Context, name, value string) error {
	return m.Called(ctx, name, value).Error(0)
}

func (m *MockLocaleRepository) Delete(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Load(ctx context.Context) (settings.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(settings.Settings), args.Error(1)
}

func (m *MockSettingsService) Save(ctx context.Context, s settings.Settings) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSettingsService) Delete(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) SaveResult(ctx context.Context, rec *ResultRecord) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *MockResultRepository) ListRecentResults(ctx context.Context, limit int) ([]ResultRecord, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ResultRecord), args.Error(1)
}
