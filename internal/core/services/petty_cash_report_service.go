package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/webemergencia/petty_cash_app/internal/apperrors"
	"github.com/webemergencia/petty_cash_app/internal/core/domain"
	"github.com/webemergencia/petty_cash_app/internal/core/ledger"
	portsrepo "github.com/webemergencia/petty_cash_app/internal/core/ports/repositories"
	portssvc "github.com/webemergencia/petty_cash_app/internal/core/ports/services"
	"github.com/webemergencia/petty_cash_app/internal/platform/metrics"
	"golang.org/x/sync/errgroup"
)

// pettyCashReportService implements the PettyCashReportService interface
type pettyCashReportService struct {
	BaseService
	sourceRepo    portsrepo.PettyCashSourceRepository
	referenceRepo portsrepo.ReferenceRepository

	exporters     map[portssvc.ExportFormat]portssvc.ReportExporter
	optionsCache  portssvc.FilterOptionsCache
	optionsTTL    time.Duration
	reportTimeout time.Duration
	policy        ledger.BalancePolicy
	now           func() time.Time
}

// PettyCashReportServiceOption is a functional option for configuring the report service
type PettyCashReportServiceOption func(*pettyCashReportService)

// WithExporters registers the renderers available to ExportTransactionsReport.
func WithExporters(exporters ...portssvc.ReportExporter) PettyCashReportServiceOption {
	return func(s *pettyCashReportService) {
		for _, e := range exporters {
			s.exporters[e.Format()] = e
		}
	}
}

// WithFilterOptionsCache caches filter options for ttl.
func WithFilterOptionsCache(cache portssvc.FilterOptionsCache, ttl time.Duration) PettyCashReportServiceOption {
	return func(s *pettyCashReportService) {
		s.optionsCache = cache
		s.optionsTTL = ttl
	}
}

// WithReportTimeout bounds every report build. Zero means no bound beyond the
// caller's context.
func WithReportTimeout(timeout time.Duration) PettyCashReportServiceOption {
	return func(s *pettyCashReportService) {
		s.reportTimeout = timeout
	}
}

// WithBalancePolicy sets how expenses and purchases move a session balance.
func WithBalancePolicy(policy ledger.BalancePolicy) PettyCashReportServiceOption {
	return func(s *pettyCashReportService) {
		s.policy = policy
	}
}

// WithClock overrides the clock used for export filenames.
func WithClock(now func() time.Time) PettyCashReportServiceOption {
	return func(s *pettyCashReportService) {
		s.now = now
	}
}

// NewPettyCashReportService creates a new report service with the provided options
func NewPettyCashReportService(
	sourceRepo portsrepo.PettyCashSourceRepository,
	referenceRepo portsrepo.ReferenceRepository,
	options ...PettyCashReportServiceOption,
) portssvc.PettyCashReportService {
	svc := &pettyCashReportService{
		sourceRepo:    sourceRepo,
		referenceRepo: referenceRepo,
		exporters:     make(map[portssvc.ExportFormat]portssvc.ReportExporter),
		now:           time.Now,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure pettyCashReportService implements the PettyCashReportService interface
var _ portssvc.PettyCashReportService = (*pettyCashReportService)(nil)

// GetTransactionsReport reconstructs the ledger from a fresh snapshot and
// projects the view selected by filter.
func (s *pettyCashReportService) GetTransactionsReport(ctx context.Context, filter domain.ReportFilter) (*domain.ReportView, error) {
	start := time.Now()
	view, err := s.buildReport(ctx, filter)
	if err != nil {
		metrics.ObserveReportGenerate(metrics.ResultError, time.Since(start))
		return nil, err
	}
	metrics.ObserveReportGenerate(metrics.ResultSuccess, time.Since(start))

	s.LogInfo(ctx, "Transactions report generated successfully",
		slog.Int("transaction_count", view.Summary.TotalTransactions),
		slog.String("final_balance", view.Summary.FinalBalance.String()),
		slog.Duration("duration", time.Since(start)))
	return view, nil
}

func (s *pettyCashReportService) buildReport(ctx context.Context, filter domain.ReportFilter) (*domain.ReportView, error) {
	if err := filter.Validate(); err != nil {
		s.LogWarn(ctx, "Rejected report filter", slog.String("error", err.Error()))
		return nil, err
	}

	if s.reportTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.reportTimeout)
		defer cancel()
	}

	src, err := s.fetchSources(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch ledger sources")
		return nil, err
	}

	refs := s.resolveReferences(ctx, src)

	l, warnings, err := ledger.Build(src, refs, filter, s.policy)
	s.logAssemblyWarnings(ctx, warnings)
	if err != nil {
		s.LogError(ctx, err, "Failed to build ledger")
		return nil, fmt.Errorf("failed to build ledger: %w", err)
	}
	metrics.ObserveLedgerSize(l.Len())

	view := ledger.Project(l, filter)
	return &view, nil
}

// fetchSources reads openings, expenses and purchases concurrently, then the
// sessions referenced by events but not opened within the window. Every
// failure here fails the whole report.
func (s *pettyCashReportService) fetchSources(ctx context.Context, filter domain.ReportFilter) (ledger.Sources, error) {
	var (
		openings  []domain.CashSession
		expenses  []domain.ExpenseEvent
		purchases []domain.PurchaseEvent
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if openings, err = s.sourceRepo.ListOpenings(gctx, filter); err != nil {
			return fmt.Errorf("%w: failed to list openings: %w", apperrors.ErrSourceFetch, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if expenses, err = s.sourceRepo.ListExpenses(gctx, filter); err != nil {
			return fmt.Errorf("%w: failed to list expenses: %w", apperrors.ErrSourceFetch, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if purchases, err = s.sourceRepo.ListPurchases(gctx, filter); err != nil {
			return fmt.Errorf("%w: failed to list purchases: %w", apperrors.ErrSourceFetch, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return ledger.Sources{}, err
	}

	sessions := make(map[int64]domain.CashSession, len(openings))
	for _, session := range openings {
		sessions[session.ID] = session
	}

	missing := missingSessionIDs(sessions, expenses, purchases)
	if len(missing) > 0 {
		found, err := s.referenceRepo.FindSessionsByIDs(ctx, missing)
		if err != nil {
			return ledger.Sources{}, fmt.Errorf("%w: failed to fetch sessions: %w", apperrors.ErrSourceFetch, err)
		}
		for id, session := range found {
			sessions[id] = session
		}
	}

	s.LogDebug(ctx, "Ledger sources fetched",
		slog.Int("sessions", len(sessions)),
		slog.Int("expenses", len(expenses)),
		slog.Int("purchases", len(purchases)))

	return ledger.Sources{Sessions: sessions, Expenses: expenses, Purchases: purchases}, nil
}

// resolveReferences looks up users, products and cash registers concurrently.
// A failed lookup is logged and leaves its map empty, so the affected rows are
// labelled with placeholders.
func (s *pettyCashReportService) resolveReferences(ctx context.Context, src ledger.Sources) ledger.References {
	userIDs, registerIDs := sessionReferenceIDs(src.Sessions)
	productIDs := productReferenceIDs(src.Purchases)

	var refs ledger.References
	var g errgroup.Group

	if len(userIDs) > 0 {
		g.Go(func() error {
			users, err := s.referenceRepo.FindUsersByIDs(ctx, userIDs)
			if err != nil {
				s.logReferenceFailure(ctx, "users", err)
				return nil
			}
			refs.Users = users
			return nil
		})
	}
	if len(productIDs) > 0 {
		g.Go(func() error {
			products, err := s.referenceRepo.FindProductsByIDs(ctx, productIDs)
			if err != nil {
				s.logReferenceFailure(ctx, "products", err)
				return nil
			}
			refs.Products = products
			return nil
		})
	}
	if len(registerIDs) > 0 {
		g.Go(func() error {
			registers, err := s.referenceRepo.FindCashRegistersByIDs(ctx, registerIDs)
			if err != nil {
				s.logReferenceFailure(ctx, "cash_registers", err)
				return nil
			}
			refs.CashRegisters = registers
			return nil
		})
	}
	_ = g.Wait()

	return refs
}

func (s *pettyCashReportService) logReferenceFailure(ctx context.Context, kind string, err error) {
	err = fmt.Errorf("%w: %s: %w", apperrors.ErrReferenceResolution, kind, err)
	s.LogWarn(ctx, "Reference lookup failed; using placeholder labels",
		slog.String("reference", kind),
		slog.String("error", err.Error()))
}

func (s *pettyCashReportService) logAssemblyWarnings(ctx context.Context, warnings []ledger.Warning) {
	for _, w := range warnings {
		metrics.IncAssemblyWarning(string(w.Kind))
		s.LogWarn(ctx, w.Message,
			slog.String("kind", string(w.Kind)),
			slog.String("transaction_id", w.TransactionID),
			slog.Int64("session_id", w.SessionID))
	}
}

// ExportTransactionsReport builds the report and renders it in format.
func (s *pettyCashReportService) ExportTransactionsReport(ctx context.Context, filter domain.ReportFilter, format portssvc.ExportFormat) (*domain.ReportExport, error) {
	start := time.Now()
	if format == "" {
		format = portssvc.ExportFormatXLSX
	}

	exporter, ok := s.exporters[format]
	if !ok {
		metrics.ObserveReportExport(string(format), metrics.ResultError, time.Since(start))
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedFormat, format)
	}

	view, err := s.GetTransactionsReport(ctx, filter)
	if err != nil {
		metrics.ObserveReportExport(string(format), metrics.ResultError, time.Since(start))
		return nil, err
	}

	data, err := exporter.Render(*view, filter)
	if err != nil {
		metrics.ObserveReportExport(string(format), metrics.ResultError, time.Since(start))
		s.LogError(ctx, err, "Failed to render report export", slog.String("format", string(format)))
		return nil, fmt.Errorf("failed to render %s export: %w", format, err)
	}
	metrics.ObserveReportExport(string(format), metrics.ResultSuccess, time.Since(start))

	export := &domain.ReportExport{
		Data:        data,
		Filename:    ExportFilename(filter, format, s.now()),
		ContentType: exporter.ContentType(),
	}

	s.LogInfo(ctx, "Transactions report exported",
		slog.String("format", string(format)),
		slog.String("filename", export.Filename),
		slog.Int("bytes", len(data)))
	return export, nil
}

// ExportFilename names an export after its date range. Open ends are written
// as "inicio" and today's date.
func ExportFilename(filter domain.ReportFilter, format portssvc.ExportFormat, now time.Time) string {
	start := "inicio"
	if filter.StartDate != nil {
		start = domain.DayKey(*filter.StartDate)
	}
	end := domain.DayKey(now)
	if filter.EndDate != nil {
		end = domain.DayKey(*filter.EndDate)
	}
	return fmt.Sprintf("reporte_transacciones_%s_%s.%s", start, end, format)
}

// GetReportFilterOptions returns the filter options, served from the cache
// when possible. Cache failures only cost a database round trip.
func (s *pettyCashReportService) GetReportFilterOptions(ctx context.Context) (*domain.ReportFilterOptions, error) {
	if s.optionsCache != nil {
		cached, found, err := s.optionsCache.Get(ctx)
		switch {
		case err != nil:
			metrics.IncFilterOptionsCache(metrics.CacheError)
			s.LogWarn(ctx, "Filter options cache read failed", slog.String("error", err.Error()))
		case found:
			metrics.IncFilterOptionsCache(metrics.CacheHit)
			return cached, nil
		default:
			metrics.IncFilterOptionsCache(metrics.CacheMiss)
		}
	}

	opts, err := s.referenceRepo.GetFilterOptions(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve report filter options")
		return nil, fmt.Errorf("failed to retrieve report filter options: %w", err)
	}

	if s.optionsCache != nil {
		if err := s.optionsCache.Set(ctx, opts, s.optionsTTL); err != nil && !errors.Is(err, context.Canceled) {
			s.LogWarn(ctx, "Filter options cache write failed", slog.String("error", err.Error()))
		}
	}

	return opts, nil
}

func missingSessionIDs(known map[int64]domain.CashSession, expenses []domain.ExpenseEvent, purchases []domain.PurchaseEvent) []int64 {
	seen := make(map[int64]struct{})
	var ids []int64
	add := func(id int64) {
		if _, ok := known[id]; ok {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, e := range expenses {
		add(e.SessionID)
	}
	for _, p := range purchases {
		add(p.SessionID)
	}
	slices.Sort(ids)
	return ids
}

func sessionReferenceIDs(sessions map[int64]domain.CashSession) (userIDs []string, registerIDs []int64) {
	users := make(map[string]struct{})
	registers := make(map[int64]struct{})
	for _, session := range sessions {
		if session.UserID != "" {
			users[session.UserID] = struct{}{}
		}
		if session.CashRegisterID != 0 {
			registers[session.CashRegisterID] = struct{}{}
		}
	}
	for id := range users {
		userIDs = append(userIDs, id)
	}
	for id := range registers {
		registerIDs = append(registerIDs, id)
	}
	slices.Sort(userIDs)
	slices.Sort(registerIDs)
	return userIDs, registerIDs
}

func productReferenceIDs(purchases []domain.PurchaseEvent) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, p := range purchases {
		if p.ProductID == nil || *p.ProductID == "" {
			continue
		}
		if _, ok := seen[*p.ProductID]; ok {
			continue
		}
		seen[*p.ProductID] = struct{}{}
		ids = append(ids, *p.ProductID)
	}
	slices.Sort(ids)
	return ids
}
