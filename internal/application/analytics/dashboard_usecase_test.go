package analytics_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/heleta-pos/internal/application/analytics"
	"github.com/jhoicas/heleta-pos/internal/application/dto"
	"github.com/jhoicas/heleta-pos/internal/application/sales"
	"github.com/jhoicas/heleta-pos/internal/domain"
	"github.com/jhoicas/heleta-pos/internal/domain/entity"
	"github.com/jhoicas/heleta-pos/internal/domain/repository"
	"github.com/jhoicas/heleta-pos/internal/infrastructure/memory"
)

// mapCache caché en memoria para verificar hits.
type mapCache struct {
	mu    sync.Mutex
	items map[string]*dto.DashboardSummaryDTO
	sets  int
}

func (c *mapCache) Get(_ context.Context, key string) (*dto.DashboardSummaryDTO, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.items[key]
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, v *dto.DashboardSummaryDTO, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = v
	c.sets++
	return nil
}

func seeded(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.New(time.Second)
	s.Seed(
		entity.Product{ID: "p1", Name: "Helado de limón", Price: decimal.NewFromInt(10), Stock: 30},
		entity.Product{ID: "p2", Name: "Cono", Price: decimal.NewFromInt(2), Stock: 8},
		entity.Product{ID: "p3", Name: "Paleta", Price: decimal.NewFromInt(3), Stock: 0},
	)
	_, err := sales.NewRecordSaleUseCase(s).RecordSale(context.Background(),
		entity.Actor{UserID: "u1", Role: entity.RoleVendedor},
		dto.CreateSaleRequest{Lines: []dto.SaleLineRequest{{ProductID: "p1", Quantity: 2}, {ProductID: "p2", Quantity: 1}}},
	)
	require.NoError(t, err)
	return s
}

func TestDashboard_ResumenPorRol(t *testing.T) {
	s := seeded(t)
	uc := analytics.NewDashboardUseCase(s.Analytics(), nil, analytics.DashboardOptions{LowStockThreshold: 10})

	admin, err := uc.GetSummary(context.Background(), entity.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 3, admin.TotalProducts)
	assert.Equal(t, 1, admin.LowStock, "solo p2 (7 unidades) está en 0 < stock <= 10")
	assert.Equal(t, 1, admin.SalesToday.Count)
	assert.True(t, admin.SalesToday.Total.Equal(decimal.NewFromInt(22)))
	assert.Equal(t, 2, admin.MovementsToday)

	vend, err := uc.GetSummary(context.Background(), entity.RoleVendedor)
	require.NoError(t, err)
	assert.Equal(t, 2, vend.TotalProducts, "otros roles solo cuentan productos con stock")
}

func TestDashboard_UsaCache(t *testing.T) {
	s := seeded(t)
	cache := &mapCache{items: map[string]*dto.DashboardSummaryDTO{}}
	uc := analytics.NewDashboardUseCase(s.Analytics(), cache, analytics.DashboardOptions{CacheTTL: time.Minute})

	first, err := uc.GetSummary(context.Background(), entity.RoleAdmin)
	require.NoError(t, err)
	second, err := uc.GetSummary(context.Background(), entity.RoleAdmin)
	require.NoError(t, err)

	assert.Equal(t, 1, cache.sets)
	assert.Same(t, first, second)
}

func TestSalesReport_HoyPorDefecto(t *testing.T) {
	s := seeded(t)
	uc := analytics.NewSalesReportUseCase(s.Analytics(), time.UTC)

	rows, err := uc.GetReport(context.Background(), dto.SalesReportRequest{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, time.Now().UTC().Format(time.DateOnly), rows[0].Period)
	assert.Equal(t, 1, rows[0].SalesCount)
	assert.True(t, rows[0].SalesTotal.Equal(decimal.NewFromInt(22)))
}

func TestSalesReport_Validaciones(t *testing.T) {
	uc := analytics.NewSalesReportUseCase(memory.New(time.Second).Analytics(), time.UTC)
	cases := map[string]dto.SalesReportRequest{
		"período inválido": {Period: "year"},
		"fecha inválida":   {From: "01/02/2026"},
		"rango invertido":  {From: "2026-02-10", To: "2026-02-01"},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.GetReport(context.Background(), req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// blockingRepo retiene CountProducts hasta release y falla si su ctx se cancela.
type blockingRepo struct {
	*memory.Store
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (r *blockingRepo) CountProducts(ctx context.Context, onlyInStock bool) (int, error) {
	r.once.Do(func() { close(r.started) })
	select {
	case <-r.release:
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	return r.Store.Analytics().CountProducts(ctx, onlyInStock)
}

func (r *blockingRepo) CountLowStock(ctx context.Context, threshold int) (int, error) {
	return r.Store.Analytics().CountLowStock(ctx, threshold)
}

func (r *blockingRepo) GetSalesMetrics(ctx context.Context, from, to time.Time) (int, decimal.Decimal, error) {
	return r.Store.Analytics().GetSalesMetrics(ctx, from, to)
}

func (r *blockingRepo) CountMovements(ctx context.Context, from, to time.Time) (int, error) {
	return r.Store.Analytics().CountMovements(ctx, from, to)
}

func (r *blockingRepo) GetSalesByPeriod(ctx context.Context, period string, from, to *time.Time, loc *time.Location) ([]repository.SalesPeriodRow, error) {
	return r.Store.Analytics().GetSalesByPeriod(ctx, period, from, to, loc)
}

func TestDashboard_CancelarPrimerLlamadorNoAfectaALosDemas(t *testing.T) {
	repo := &blockingRepo{Store: seeded(t), started: make(chan struct{}), release: make(chan struct{})}
	uc := analytics.NewDashboardUseCase(repo, nil, analytics.DashboardOptions{})

	firstCtx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := uc.GetSummary(firstCtx, entity.RoleAdmin)
		firstErr <- err
	}()
	<-repo.started

	type result struct {
		summary *dto.DashboardSummaryDTO
		err     error
	}
	second := make(chan result, 1)
	go func() {
		summary, err := uc.GetSummary(context.Background(), entity.RoleAdmin)
		second <- result{summary, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(repo.release)
	res := <-second
	require.NoError(t, res.err)
	assert.Equal(t, 3, res.summary.TotalProducts)
}
