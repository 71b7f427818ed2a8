package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/webemergencia/petty_cash_app/internal/core/domain"
	portssvc "github.com/webemergencia/petty_cash_app/internal/core/ports/services"
)

// MockSourceRepository is a mock type for the PettyCashSourceRepository interface
type MockSourceRepository struct {
	mock.Mock
}

func (m *MockSourceRepository) ListOpenings(ctx context.Context, filter domain.ReportFilter) ([]domain.CashSession, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CashSession), args.Error(1)
}

func (m *MockSourceRepository) ListExpenses(ctx context.Context, filter domain.ReportFilter) ([]domain.ExpenseEvent, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseEvent), args.Error(1)
}

func (m *MockSourceRepository) ListPurchases(ctx context.Context, filter domain.ReportFilter) ([]domain.PurchaseEvent, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseEvent), args.Error(1)
}

// MockReferenceRepository is a mock type for the ReferenceRepository interface
type MockReferenceRepository struct {
	mock.Mock
}

func (m *MockReferenceRepository) FindSessionsByIDs(ctx context.Context, ids []int64) (map[int64]domain.CashSession, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.CashSession), args.Error(1)
}

func (m *MockReferenceRepository) FindUsersByIDs(ctx context.Context, ids []string) (map[string]domain.UserRef, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.UserRef), args.Error(1)
}

func (m *MockReferenceRepository) FindProductsByIDs(ctx context.Context, ids []string) (map[string]domain.ProductRef, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.ProductRef), args.Error(1)
}

func (m *MockReferenceRepository) FindCashRegistersByIDs(ctx context.Context, ids []int64) (map[int64]domain.CashRegisterRef, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]domain.CashRegisterRef), args.Error(1)
}

func (m *MockReferenceRepository) GetFilterOptions(ctx context.Context) (*domain.ReportFilterOptions, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReportFilterOptions), args.Error(1)
}

// MockFilterOptionsCache is a mock type for the FilterOptionsCache interface
type MockFilterOptionsCache struct {
	mock.Mock
}

func (m *MockFilterOptionsCache) Get(ctx context.Context) (*domain.ReportFilterOptions, bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.ReportFilterOptions), args.Bool(1), args.Error(2)
}

func (m *MockFilterOptionsCache) Set(ctx context.Context, opts *domain.ReportFilterOptions, ttl time.Duration) error {
	args := m.Called(ctx, opts, ttl)
	return args.Error(0)
}

// MockExporter is a mock type for the ReportExporter interface
type MockExporter struct {
	mock.Mock
	format portssvc.ExportFormat
}

func (m *MockExporter) Format() portssvc.ExportFormat { return m.format }

func (m *MockExporter) ContentType() string { return "application/test" }

func (m *MockExporter) Render(view domain.ReportView, filter domain.ReportFilter) ([]byte, error) {
	args := m.Called(view, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
