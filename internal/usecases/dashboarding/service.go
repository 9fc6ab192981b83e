package dashboarding

//go:generate mockgen -source=service.go -destination=mocks/dashboarder_mock.go -package=mocks

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/business-dashboard-api/internal/config"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/pkg/utils"
	"golang.org/x/sync/errgroup"
)

// Dashboarder define as operações do painel
type Dashboarder interface {
	// ComputeSnapshot calcula o snapshot a partir do banco. Retorna *DataSourceError se
	// qualquer consulta falhar; nunca retorna um snapshot parcial.
	ComputeSnapshot(ctx context.Context) (*domain.DashboardSnapshot, error)

	// FallbackSnapshot retorna o snapshot fixo usado quando o banco está indisponível
	FallbackSnapshot() *domain.DashboardSnapshot
}

type Service struct {
	saleRepo      repository.SaleRepository
	inventoryRepo repository.InventoryRepository
	customerRepo  repository.CustomerRepository
	config        config.Dashboard
	now           func() time.Time
}

func NewService(
	saleRepo repository.SaleRepository,
	inventoryRepo repository.InventoryRepository,
	customerRepo repository.CustomerRepository,
	cfg *config.Config,
) Dashboarder {
	logrus.WithFields(logrus.Fields{
		"trend_days":         cfg.Dashboard.TrendDays,
		"trend_bucket":       cfg.Dashboard.TrendBucket,
		"recent_sales_limit": cfg.Dashboard.RecentSalesLimit,
	}).Info("Configuração do painel carregada")

	return &Service{
		saleRepo:      saleRepo,
		inventoryRepo: inventoryRepo,
		customerRepo:  customerRepo,
		config:        cfg.Dashboard,
		now:           time.Now,
	}
}

func (s *Service) ComputeSnapshot(ctx context.Context) (*domain.DashboardSnapshot, error) {
	if s.config.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.QueryTimeout)
		defer cancel()
	}

	since := s.now().AddDate(0, 0, -s.config.TrendDays)

	var (
		recentSales     []domain.Sale
		totalSales      float64
		trend           []domain.TrendPoint
		items           []domain.InventoryItem
		totalCustomers  int
		activeCustomers int
		avgRetention    float64
	)

	// As consultas são independentes e somente leitura
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		recentSales, err = s.saleRepo.ListRecent(gctx, s.config.RecentSalesLimit)
		return newDataSourceError(StepRecentSales, err)
	})

	g.Go(func() error {
		var err error
		totalSales, err = s.saleRepo.TotalAmount(gctx)
		return newDataSourceError(StepTotalSales, err)
	})

	g.Go(func() error {
		var err error
		trend, err = s.saleRepo.TrendSince(gctx, since, s.config.TrendBucket)
		return newDataSourceError(StepSalesTrend, err)
	})

	g.Go(func() error {
		var err error
		items, err = s.inventoryRepo.ListAll(gctx)
		return newDataSourceError(StepInventory, err)
	})

	g.Go(func() error {
		var err error
		totalCustomers, err = s.customerRepo.Count(gctx)
		return newDataSourceError(StepTotalCustomers, err)
	})

	g.Go(func() error {
		var err error
		activeCustomers, err = s.customerRepo.CountActive(gctx)
		return newDataSourceError(StepActiveCustomers, err)
	})

	g.Go(func() error {
		var err error
		avgRetention, err = s.customerRepo.AverageActiveRetentionRate(gctx)
		return newDataSourceError(StepCustomerRetention, err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(recentSales) > s.config.RecentSalesLimit {
		recentSales = recentSales[:s.config.RecentSalesLimit]
	}
	if recentSales == nil {
		recentSales = []domain.Sale{}
	}

	retention := 0.0
	if activeCustomers > 0 {
		retention = utils.RoundWithTwoDecimalPlace(avgRetention)
	}

	return &domain.DashboardSnapshot{
		SalesData: domain.SalesData{
			TotalSales:  totalSales,
			Trend:       trendValues(trend),
			RecentSales: recentSales,
		},
		InventoryData: buildInventoryData(totalSales, items),
		CustomerData: domain.CustomerData{
			TotalCustomers:  totalCustomers,
			ActiveCustomers: activeCustomers,
			RetentionRate:   retention,
		},
	}, nil
}

func (s *Service) FallbackSnapshot() *domain.DashboardSnapshot {
	return FallbackSnapshot()
}
