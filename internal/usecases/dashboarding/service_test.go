package dashboarding

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/business-dashboard-api/internal/config"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"go.uber.org/mock/gomock"
)

var referenceNow = time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC)

type serviceMocks struct {
	sales     *mocks.MockSaleRepository
	inventory *mocks.MockInventoryRepository
	customers *mocks.MockCustomerRepository
}

func newTestService(t *testing.T) (*Service, serviceMocks) {
	ctrl := gomock.NewController(t)

	m := serviceMocks{
		sales:     mocks.NewMockSaleRepository(ctrl),
		inventory: mocks.NewMockInventoryRepository(ctrl),
		customers: mocks.NewMockCustomerRepository(ctrl),
	}

	service := &Service{
		saleRepo:      m.sales,
		inventoryRepo: m.inventory,
		customerRepo:  m.customers,
		config: config.Dashboard{
			TrendDays:        7,
			RecentSalesLimit: 10,
			TrendBucket:      config.TrendBucketTimestamp,
			QueryTimeout:     time.Second,
		},
		now: func() time.Time { return referenceNow },
	}

	return service, m
}

func saleAt(id int, day int, amount float64, product string) domain.Sale {
	return domain.Sale{
		ID:      id,
		Date:    time.Date(2024, 1, day, 9, 0, 0, 0, time.UTC),
		Amount:  amount,
		Product: product,
	}
}

func TestService_ComputeSnapshot(t *testing.T) {
	service, m := newTestService(t)

	recent := []domain.Sale{
		saleAt(2, 15, 850, "Phone"),
		saleAt(1, 14, 1250, "Laptop"),
	}
	trend := []domain.TrendPoint{
		{Bucket: recent[1].Date, Amount: 1250},
		{Bucket: recent[0].Date, Amount: 850},
	}
	items := []domain.InventoryItem{
		{ID: 1, Product: "Laptop", Quantity: 10},
		{ID: 2, Product: "Keyboard", Quantity: 0},
	}

	m.sales.EXPECT().ListRecent(gomock.Any(), 10).Return(recent, nil)
	m.sales.EXPECT().TotalAmount(gomock.Any()).Return(2100.0, nil)
	m.sales.EXPECT().
		TrendSince(gomock.Any(), referenceNow.AddDate(0, 0, -7), config.TrendBucketTimestamp).
		Return(trend, nil)
	m.inventory.EXPECT().ListAll(gomock.Any()).Return(items, nil)
	m.customers.EXPECT().Count(gomock.Any()).Return(3, nil)
	m.customers.EXPECT().CountActive(gomock.Any()).Return(2, nil)
	m.customers.EXPECT().AverageActiveRetentionRate(gomock.Any()).Return(84.456, nil)

	snapshot, err := service.ComputeSnapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2100.0, snapshot.SalesData.TotalSales)
	assert.Equal(t, []float64{1250, 850}, snapshot.SalesData.Trend)
	assert.Equal(t, recent, snapshot.SalesData.RecentSales)

	assert.Equal(t, 1, snapshot.InventoryData.OutOfStock)
	assert.Equal(t, 2, snapshot.InventoryData.TotalItems)
	assert.Equal(t, 210.0, snapshot.InventoryData.InventoryTurnover)
	assert.Equal(t, items, snapshot.InventoryData.Items)

	assert.Equal(t, 3, snapshot.CustomerData.TotalCustomers)
	assert.Equal(t, 2, snapshot.CustomerData.ActiveCustomers)
	assert.Equal(t, 84.46, snapshot.CustomerData.RetentionRate)
}

func TestService_ComputeSnapshot_EdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		total     float64
		items     []domain.InventoryItem
		active    int
		retention float64
		validate  func(t *testing.T, snapshot *domain.DashboardSnapshot)
	}{
		{
			name:  "Estoque zerado - giro deve ser 0 mesmo com vendas",
			total: 5000,
			items: []domain.InventoryItem{
				{ID: 1, Product: "Keyboard", Quantity: 0},
				{ID: 2, Product: "Webcam", Quantity: 0},
			},
			active:    1,
			retention: 50,
			validate: func(t *testing.T, snapshot *domain.DashboardSnapshot) {
				assert.Equal(t, 0.0, snapshot.InventoryData.InventoryTurnover)
				assert.Equal(t, 2, snapshot.InventoryData.OutOfStock)
				assert.Equal(t, 2, snapshot.InventoryData.TotalItems)
			},
		},
		{
			name:      "Banco vazio - listas vazias e nenhum valor nulo",
			total:     0,
			items:     nil,
			active:    0,
			retention: 0,
			validate: func(t *testing.T, snapshot *domain.DashboardSnapshot) {
				assert.NotNil(t, snapshot.SalesData.RecentSales)
				assert.NotNil(t, snapshot.SalesData.Trend)
				assert.NotNil(t, snapshot.InventoryData.Items)
				assert.Equal(t, 0.0, snapshot.InventoryData.InventoryTurnover)
				assert.Equal(t, 0, snapshot.InventoryData.TotalItems)
			},
		},
		{
			name:      "Nenhum cliente ativo - retenção deve ser 0",
			total:     100,
			items:     []domain.InventoryItem{{ID: 1, Product: "Mouse", Quantity: 3}},
			active:    0,
			retention: 73.2,
			validate: func(t *testing.T, snapshot *domain.DashboardSnapshot) {
				assert.Equal(t, 0.0, snapshot.CustomerData.RetentionRate)
				assert.Equal(t, 33.33, snapshot.InventoryData.InventoryTurnover)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newTestService(t)

			m.sales.EXPECT().ListRecent(gomock.Any(), 10).Return(nil, nil)
			m.sales.EXPECT().TotalAmount(gomock.Any()).Return(tt.total, nil)
			m.sales.EXPECT().TrendSince(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
			m.inventory.EXPECT().ListAll(gomock.Any()).Return(tt.items, nil)
			m.customers.EXPECT().Count(gomock.Any()).Return(10, nil)
			m.customers.EXPECT().CountActive(gomock.Any()).Return(tt.active, nil)
			m.customers.EXPECT().AverageActiveRetentionRate(gomock.Any()).Return(tt.retention, nil)

			snapshot, err := service.ComputeSnapshot(context.Background())
			require.NoError(t, err)

			assert.LessOrEqual(t, snapshot.InventoryData.OutOfStock, snapshot.InventoryData.TotalItems)
			assert.LessOrEqual(t, snapshot.CustomerData.ActiveCustomers, snapshot.CustomerData.TotalCustomers)
			tt.validate(t, snapshot)
		})
	}
}

func TestService_ComputeSnapshot_TruncatesRecentSales(t *testing.T) {
	service, m := newTestService(t)

	recent := make([]domain.Sale, 0, 12)
	for i := 12; i >= 1; i-- {
		recent = append(recent, saleAt(i, i, float64(i*100), "Mouse"))
	}

	m.sales.EXPECT().ListRecent(gomock.Any(), 10).Return(recent, nil)
	m.sales.EXPECT().TotalAmount(gomock.Any()).Return(7800.0, nil)
	m.sales.EXPECT().TrendSince(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	m.inventory.EXPECT().ListAll(gomock.Any()).Return(nil, nil)
	m.customers.EXPECT().Count(gomock.Any()).Return(0, nil)
	m.customers.EXPECT().CountActive(gomock.Any()).Return(0, nil)
	m.customers.EXPECT().AverageActiveRetentionRate(gomock.Any()).Return(0.0, nil)

	snapshot, err := service.ComputeSnapshot(context.Background())
	require.NoError(t, err)

	require.Len(t, snapshot.SalesData.RecentSales, 10)
	for i := 1; i < len(snapshot.SalesData.RecentSales); i++ {
		assert.True(t, !snapshot.SalesData.RecentSales[i].Date.After(snapshot.SalesData.RecentSales[i-1].Date))
	}
}

func TestService_ComputeSnapshot_DayBucket(t *testing.T) {
	service, m := newTestService(t)
	service.config.TrendBucket = config.TrendBucketDay

	m.sales.EXPECT().ListRecent(gomock.Any(), gomock.Any()).Return(nil, nil)
	m.sales.EXPECT().TotalAmount(gomock.Any()).Return(0.0, nil)
	m.sales.EXPECT().
		TrendSince(gomock.Any(), referenceNow.AddDate(0, 0, -7), config.TrendBucketDay).
		Return([]domain.TrendPoint{{Amount: 10}, {Amount: 20}}, nil)
	m.inventory.EXPECT().ListAll(gomock.Any()).Return(nil, nil)
	m.customers.EXPECT().Count(gomock.Any()).Return(0, nil)
	m.customers.EXPECT().CountActive(gomock.Any()).Return(0, nil)
	m.customers.EXPECT().AverageActiveRetentionRate(gomock.Any()).Return(0.0, nil)

	snapshot, err := service.ComputeSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20}, snapshot.SalesData.Trend)
}

func TestService_ComputeSnapshot_DataSourceError(t *testing.T) {
	service, m := newTestService(t)

	dbErr := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

	m.sales.EXPECT().ListRecent(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	m.sales.EXPECT().TotalAmount(gomock.Any()).Return(0.0, dbErr)
	m.sales.EXPECT().TrendSince(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	m.inventory.EXPECT().ListAll(gomock.Any()).Return(nil, nil).AnyTimes()
	m.customers.EXPECT().Count(gomock.Any()).Return(0, nil).AnyTimes()
	m.customers.EXPECT().CountActive(gomock.Any()).Return(0, nil).AnyTimes()
	m.customers.EXPECT().AverageActiveRetentionRate(gomock.Any()).Return(0.0, nil).AnyTimes()

	snapshot, err := service.ComputeSnapshot(context.Background())
	assert.Nil(t, snapshot)
	require.Error(t, err)

	assert.True(t, errors.Is(err, ErrDataSource))
	assert.True(t, errors.Is(err, dbErr))

	var dsErr *DataSourceError
	require.True(t, errors.As(err, &dsErr))
	assert.Equal(t, StepTotalSales, dsErr.Step)
	assert.Contains(t, err.Error(), "total_sales")
}

func TestService_ComputeSnapshot_Idempotent(t *testing.T) {
	service, m := newTestService(t)

	recent := []domain.Sale{saleAt(1, 15, 300, "Tablet")}
	items := []domain.InventoryItem{{ID: 1, Product: "Tablet", Quantity: 7}}

	m.sales.EXPECT().ListRecent(gomock.Any(), 10).Return(recent, nil).Times(2)
	m.sales.EXPECT().TotalAmount(gomock.Any()).Return(300.0, nil).Times(2)
	m.sales.EXPECT().TrendSince(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]domain.TrendPoint{{Bucket: recent[0].Date, Amount: 300}}, nil).Times(2)
	m.inventory.EXPECT().ListAll(gomock.Any()).Return(items, nil).Times(2)
	m.customers.EXPECT().Count(gomock.Any()).Return(4, nil).Times(2)
	m.customers.EXPECT().CountActive(gomock.Any()).Return(3, nil).Times(2)
	m.customers.EXPECT().AverageActiveRetentionRate(gomock.Any()).Return(61.237, nil).Times(2)

	first, err := service.ComputeSnapshot(context.Background())
	require.NoError(t, err)

	second, err := service.ComputeSnapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 42.86, first.InventoryData.InventoryTurnover)
	assert.Equal(t, 61.24, first.CustomerData.RetentionRate)
}
