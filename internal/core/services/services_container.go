package services

import (
	"github.com/webemergencia/petty_cash_app/internal/core/ledger"
	portsrepo "github.com/webemergencia/petty_cash_app/internal/core/ports/repositories"
	portssvc "github.com/webemergencia/petty_cash_app/internal/core/ports/services"
	"github.com/webemergencia/petty_cash_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	cache portssvc.FilterOptionsCache,
	exporters ...portssvc.ReportExporter,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.PettyCashReport = NewPettyCashReportService(
		repos.SourceRepo,
		repos.ReferenceRepo,
		WithExporters(exporters...),
		WithFilterOptionsCache(cache, cfg.FilterOptionsCacheTTL),
		WithReportTimeout(cfg.ReportTimeout),
		WithBalancePolicy(ledger.BalancePolicy{AllowOverdraft: cfg.LedgerAllowOverdraft}),
	)

	return container
}
