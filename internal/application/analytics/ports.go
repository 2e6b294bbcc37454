package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/heleta-pos/internal/application/dto"
)

// DashboardCache caché del resumen del dashboard. Un miss devuelve (nil, false, nil).
type DashboardCache interface {
	Get(ctx context.Context, key string) (*dto.DashboardSummaryDTO, bool, error)
	Set(ctx context.Context, key string, value *dto.DashboardSummaryDTO, ttl time.Duration) error
}
