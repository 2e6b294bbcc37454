package cache

import (
	"context"
	"time"

	"github.com/jhoicas/heleta-pos/internal/application/analytics"
	"github.com/jhoicas/heleta-pos/internal/application/dto"
)

var _ analytics.DashboardCache = NoopDashboardCache{}

// NoopDashboardCache se usa cuando REDIS_ADDR está vacío: siempre miss.
type NoopDashboardCache struct{}

func (NoopDashboardCache) Get(_ context.Context, _ string) (*dto.DashboardSummaryDTO, bool, error) {
	return nil, false, nil
}

func (NoopDashboardCache) Set(_ context.Context, _ string, _ *dto.DashboardSummaryDTO, _ time.Duration) error {
	return nil
}
