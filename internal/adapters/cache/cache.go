// Package cache holds the filter options cache implementations.
package cache

import (
	"context"
	"time"

	"github.com/webemergencia/petty_cash_app/internal/core/domain"
	portssvc "github.com/webemergencia/petty_cash_app/internal/core/ports/services"
)

// NoopFilterOptionsCache never stores anything. It is used when no Redis
// address is configured.
type NoopFilterOptionsCache struct{}

var _ portssvc.FilterOptionsCache = NoopFilterOptionsCache{}

func (NoopFilterOptionsCache) Get(_ context.Context) (*domain.ReportFilterOptions, bool, error) {
	return nil, false, nil
}

func (NoopFilterOptionsCache) Set(_ context.Context, _ *domain.ReportFilterOptions, _ time.Duration) error {
	return nil
}
