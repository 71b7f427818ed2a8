package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/webemergencia/petty_cash_app/internal/apperrors"
	"github.com/webemergencia/petty_cash_app/internal/core/domain"
	"github.com/webemergencia/petty_cash_app/internal/core/ledger"
	portssvc "github.com/webemergencia/petty_cash_app/internal/core/ports/services"
	"github.com/webemergencia/petty_cash_app/internal/core/services"
)

var reportDay = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

type PettyCashReportServiceTestSuite struct {
	suite.Suite
	sources  *MockSourceRepository
	refs     *MockReferenceRepository
	cache    *MockFilterOptionsCache
	exporter *MockExporter
	service  portssvc.PettyCashReportService
	clock    time.Time
}

func (suite *PettyCashReportServiceTestSuite) SetupTest() {
	suite.sources = new(MockSourceRepository)
	suite.refs = new(MockReferenceRepository)
	suite.cache = new(MockFilterOptionsCache)
	suite.exporter = &MockExporter{format: portssvc.ExportFormatXLSX}
	suite.clock = time.Date(2025, time.April, 2, 12, 0, 0, 0, time.UTC)
	suite.service = services.NewPettyCashReportService(
		suite.sources,
		suite.refs,
		services.WithExporters(suite.exporter),
		services.WithFilterOptionsCache(suite.cache, time.Minute),
		services.WithReportTimeout(5*time.Second),
		services.WithClock(func() time.Time { return suite.clock }),
	)
}

// scenarioA: opening 100000, expense 30000, purchase of 2 x 10000 without total.
func (suite *PettyCashReportServiceTestSuite) expectScenarioA(filter domain.ReportFilter) {
	productID := "prod-1"
	suite.sources.On("ListOpenings", mock.Anything, filter).Return([]domain.CashSession{{
		ID: 1, OpeningAmount: dec("100000"), Status: domain.SessionOpen,
		UserID: "user-1", CashRegisterID: 3, OpenedAt: reportDay,
	}}, nil).Once()
	suite.sources.On("ListExpenses", mock.Anything, filter).Return([]domain.ExpenseEvent{{
		ID: 10, SessionID: 1, Amount: dec("30000"), Description: "Aseo", CreatedAt: reportDay.Add(time.Hour),
	}}, nil).Once()
	suite.sources.On("ListPurchases", mock.Anything, filter).Return([]domain.PurchaseEvent{{
		ID: 20, SessionID: 1, Quantity: decPtr("2"), UnitPrice: decPtr("10000"), ProductID: &productID,
		CreatedAt: reportDay.Add(2 * time.Hour),
	}}, nil).Once()
}

func (suite *PettyCashReportServiceTestSuite) TestGetTransactionsReport_ScenarioA() {
	ctx := context.Background()
	filter := domain.ReportFilter{}
	suite.expectScenarioA(filter)
	suite.refs.On("FindUsersByIDs", mock.Anything, []string{"user-1"}).
		Return(map[string]domain.UserRef{"user-1": {ID: "user-1", Name: "Ana"}}, nil).Once()
	suite.refs.On("FindProductsByIDs", mock.Anything, []string{"prod-1"}).
		Return(map[string]domain.ProductRef{"prod-1": {ID: "prod-1", Name: "Jabón", SKU: "JAB"}}, nil).Once()
	suite.refs.On("FindCashRegistersByIDs", mock.Anything, []int64{3}).
		Return(map[int64]domain.CashRegisterRef{3: {ID: 3, Name: "Caja Bar"}}, nil).Once()

	view, err := suite.service.GetTransactionsReport(ctx, filter)

	suite.Require().NoError(err)
	suite.Require().Len(view.Transactions, 3)
	for i, want := range []string{"100000", "70000", "50000"} {
		suite.True(dec(want).Equal(view.Transactions[i].RunningBalance), "entry %d", i)
	}
	suite.Equal("Ana", view.Transactions[0].UserName)
	suite.Equal("Caja Bar", view.Transactions[1].CashRegisterName)
	suite.Equal("Compra: Jabón (2 x $10,000)", view.Transactions[2].Description)
	suite.True(dec("30000").Equal(view.Summary.TotalExpenses))
	suite.True(dec("20000").Equal(view.Summary.TotalPurchases))
	suite.True(dec("100000").Equal(view.Summary.InitialBalance))
	suite.True(dec("50000").Equal(view.Summary.FinalBalance))

	suite.refs.AssertNotCalled(suite.T(), "FindSessionsByIDs", mock.Anything, mock.Anything)
	suite.sources.AssertExpectations(suite.T())
	suite.refs.AssertExpectations(suite.T())
}

func (suite *PettyCashReportServiceTestSuite) TestGetTransactionsReport_SourceFetchFailureIsFatal() {
	ctx := context.Background()
	filter := domain.ReportFilter{}
	suite.sources.On("ListOpenings", mock.Anything, filter).Return([]domain.CashSession{}, nil).Maybe()
	suite.sources.On("ListExpenses", mock.Anything, filter).Return(nil, errors.New("connection reset")).Once()
	suite.sources.On("ListPurchases", mock.Anything, filter).Return([]domain.PurchaseEvent{}, nil).Maybe()

	view, err := suite.service.GetTransactionsReport(ctx, filter)

	suite.Nil(view)
	suite.ErrorIs(err, apperrors.ErrSourceFetch)
	suite.Contains(err.Error(), "connection reset")
	suite.refs.AssertNotCalled(suite.T(), "FindUsersByIDs", mock.Anything, mock.Anything)
}

func (suite *PettyCashReportServiceTestSuite) TestGetTransactionsReport_FetchesSessionsOpenedBeforeWindow() {
	ctx := context.Background()
	windowStart := reportDay.Add(24 * time.Hour)
	filter := domain.ReportFilter{StartDate: &windowStart}

	suite.sources.On("ListOpenings", mock.Anything, filter).Return([]domain.CashSession{}, nil).Once()
	suite.sources.On("ListExpenses", mock.Anything, filter).Return([]domain.ExpenseEvent{{
		ID: 5, SessionID: 9, Amount: dec("1000"), CreatedAt: windowStart.Add(time.Hour),
	}}, nil).Once()
	suite.sources.On("ListPurchases", mock.Anything, filter).Return([]domain.PurchaseEvent{}, nil).Once()
	suite.refs.On("FindSessionsByIDs", mock.Anything, []int64{9}).Return(map[int64]domain.CashSession{
		9: {ID: 9, OpeningAmount: dec("50000"), Status: domain.SessionClosed, UserID: "user-2", OpenedAt: reportDay},
	}, nil).Once()
	suite.refs.On("FindUsersByIDs", mock.Anything, []string{"user-2"}).
		Return(map[string]domain.UserRef{"user-2": {ID: "user-2", Name: "Luis"}}, nil).Once()

	view, err := suite.service.GetTransactionsReport(ctx, filter)

	suite.Require().NoError(err)
	// The opening falls before the window, so only the expense and the
	// synthesized closing remain, labelled from the fetched session.
	suite.Require().Len(view.Transactions, 2)
	suite.Equal("expense-5", view.Transactions[0].ID)
	suite.Equal("Luis", view.Transactions[0].UserName)
	suite.Equal(ledger.DefaultCashRegisterName, view.Transactions[0].CashRegisterName)
	suite.Equal("closing-9", view.Transactions[1].ID)
	suite.True(view.Summary.InitialBalanceInexact)
	suite.refs.AssertExpectations(suite.T())
}

func (suite *PettyCashReportServiceTestSuite) TestGetTransactionsReport_SessionFetchFailureIsFatal() {
	ctx := context.Background()
	filter := domain.ReportFilter{}
	suite.sources.On("ListOpenings", mock.Anything, filter).Return([]domain.CashSession{}, nil).Once()
	suite.sources.On("ListExpenses", mock.Anything, filter).Return([]domain.ExpenseEvent{{
		ID: 5, SessionID: 9, Amount: dec("1000"), CreatedAt: reportDay,
	}}, nil).Once()
	suite.sources.On("ListPurchases", mock.Anything, filter).Return([]domain.PurchaseEvent{}, nil).Once()
	suite.refs.On("FindSessionsByIDs", mock.Anything, []int64{9}).Return(nil, errors.New("timeout")).Once()

	_, err := suite.service.GetTransactionsReport(ctx, filter)

	suite.ErrorIs(err, apperrors.ErrSourceFetch)
}

func (suite *PettyCashReportServiceTestSuite) TestGetTransactionsReport_ReferenceFailureUsesPlaceholders() {
	ctx := context.Background()
	filter := domain.ReportFilter{}
	suite.expectScenarioA(filter)
	suite.refs.On("FindUsersByIDs", mock.Anything, mock.Anything).Return(nil, errors.New("users down")).Once()
	suite.refs.On("FindProductsByIDs", mock.Anything, mock.Anything).Return(nil, errors.New("products down")).Once()
	suite.refs.On("FindCashRegistersByIDs", mock.Anything, mock.Anything).Return(nil, errors.New("registers down")).Once()

	view, err := suite.service.GetTransactionsReport(ctx, filter)

	suite.Require().NoError(err)
	suite.Require().Len(view.Transactions, 3)
	for _, tx := range view.Transactions {
		suite.Equal(ledger.UnknownUserName, tx.UserName)
		suite.Equal(ledger.UnknownCashRegisterName, tx.CashRegisterName)
	}
	suite.Equal("Compra: Producto (2 x $10,000)", view.Transactions[2].Description)
	suite.True(dec("50000").Equal(view.Summary.FinalBalance))
}

func (suite *PettyCashReportServiceTestSuite) TestGetTransactionsReport_InvalidFilter() {
	ctx := context.Background()
	start := reportDay.Add(48 * time.Hour)
	end := reportDay
	filter := domain.ReportFilter{StartDate: &start, EndDate: &end}

	view, err := suite.service.GetTransactionsReport(ctx, filter)

	suite.Nil(view)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.sources.AssertNotCalled(suite.T(), "ListOpenings", mock.Anything, mock.Anything)
}

func (suite *PettyCashReportServiceTestSuite) TestExportTransactionsReport_Success() {
	ctx := context.Background()
	start := reportDay
	filter := domain.ReportFilter{StartDate: &start}
	suite.expectScenarioA(filter)
	suite.refs.On("FindUsersByIDs", mock.Anything, mock.Anything).Return(map[string]domain.UserRef{}, nil)
	suite.refs.On("FindProductsByIDs", mock.Anything, mock.Anything).Return(map[string]domain.ProductRef{}, nil)
	suite.refs.On("FindCashRegistersByIDs", mock.Anything, mock.Anything).Return(map[int64]domain.CashRegisterRef{}, nil)
	suite.exporter.On("Render", mock.MatchedBy(func(v domain.ReportView) bool {
		return len(v.Transactions) == 3
	}), filter).Return([]byte("workbook"), nil).Once()

	export, err := suite.service.ExportTransactionsReport(ctx, filter, "")

	suite.Require().NoError(err)
	suite.Equal([]byte("workbook"), export.Data)
	suite.Equal("reporte_transacciones_2025-03-10_2025-04-02.xlsx", export.Filename)
	suite.Equal("application/test", export.ContentType)
	suite.exporter.AssertExpectations(suite.T())
}

func (suite *PettyCashReportServiceTestSuite) TestExportTransactionsReport_UnsupportedFormat() {
	_, err := suite.service.ExportTransactionsReport(context.Background(), domain.ReportFilter{}, portssvc.ExportFormatPDF)

	suite.ErrorIs(err, apperrors.ErrUnsupportedFormat)
	suite.sources.AssertNotCalled(suite.T(), "ListOpenings", mock.Anything, mock.Anything)
}

func (suite *PettyCashReportServiceTestSuite) TestExportTransactionsReport_RenderFailure() {
	ctx := context.Background()
	filter := domain.ReportFilter{}
	suite.expectScenarioA(filter)
	suite.refs.On("FindUsersByIDs", mock.Anything, mock.Anything).Return(map[string]domain.UserRef{}, nil)
	suite.refs.On("FindProductsByIDs", mock.Anything, mock.Anything).Return(map[string]domain.ProductRef{}, nil)
	suite.refs.On("FindCashRegistersByIDs", mock.Anything, mock.Anything).Return(map[int64]domain.CashRegisterRef{}, nil)
	suite.exporter.On("Render", mock.Anything, filter).Return(nil, errors.New("disk full")).Once()

	export, err := suite.service.ExportTransactionsReport(ctx, filter, portssvc.ExportFormatXLSX)

	suite.Nil(export)
	suite.ErrorContains(err, "disk full")
}

func (suite *PettyCashReportServiceTestSuite) TestGetReportFilterOptions_CacheHit() {
	ctx := context.Background()
	cached := &domain.ReportFilterOptions{Users: []domain.UserRef{{ID: "u", Name: "Ana"}}}
	suite.cache.On("Get", ctx).Return(cached, true, nil).Once()

	opts, err := suite.service.GetReportFilterOptions(ctx)

	suite.Require().NoError(err)
	suite.Same(cached, opts)
	suite.refs.AssertNotCalled(suite.T(), "GetFilterOptions", mock.Anything)
}

func (suite *PettyCashReportServiceTestSuite) TestGetReportFilterOptions_CacheMissPopulates() {
	ctx := context.Background()
	fresh := &domain.ReportFilterOptions{DateRange: &domain.DateRange{Earliest: "2025-01-01", Latest: "2025-03-10"}}
	suite.cache.On("Get", ctx).Return(nil, false, nil).Once()
	suite.refs.On("GetFilterOptions", ctx).Return(fresh, nil).Once()
	suite.cache.On("Set", ctx, fresh, time.Minute).Return(nil).Once()

	opts, err := suite.service.GetReportFilterOptions(ctx)

	suite.Require().NoError(err)
	suite.Same(fresh, opts)
	suite.cache.AssertExpectations(suite.T())
}

func (suite *PettyCashReportServiceTestSuite) TestGetReportFilterOptions_CacheErrorFallsBack() {
	ctx := context.Background()
	fresh := &domain.ReportFilterOptions{}
	suite.cache.On("Get", ctx).Return(nil, false, errors.New("redis down")).Once()
	suite.refs.On("GetFilterOptions", ctx).Return(fresh, nil).Once()
	suite.cache.On("Set", ctx, fresh, time.Minute).Return(errors.New("redis down")).Once()

	opts, err := suite.service.GetReportFilterOptions(ctx)

	suite.Require().NoError(err)
	suite.Same(fresh, opts)
}

func (suite *PettyCashReportServiceTestSuite) TestGetReportFilterOptions_RepositoryError() {
	ctx := context.Background()
	suite.cache.On("Get", ctx).Return(nil, false, nil).Once()
	suite.refs.On("GetFilterOptions", ctx).Return(nil, errors.New("boom")).Once()

	opts, err := suite.service.GetReportFilterOptions(ctx)

	suite.Nil(opts)
	suite.ErrorContains(err, "boom")
	suite.cache.AssertNotCalled(suite.T(), "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestPettyCashReportServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PettyCashReportServiceTestSuite))
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2025, time.April, 2, 23, 0, 0, 0, time.UTC)
	start := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter domain.ReportFilter
		format portssvc.ExportFormat
		want   string
	}{
		{"open range", domain.ReportFilter{}, portssvc.ExportFormatXLSX, "reporte_transacciones_inicio_2025-04-02.xlsx"},
		{"start only", domain.ReportFilter{StartDate: &start}, portssvc.ExportFormatPDF, "reporte_transacciones_2025-03-01_2025-04-02.pdf"},
		{"closed range", domain.ReportFilter{StartDate: &start, EndDate: &end}, portssvc.ExportFormatXLSX, "reporte_transacciones_2025-03-01_2025-03-31.xlsx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.ExportFilename(tt.filter, tt.format, now))
		})
	}
}
