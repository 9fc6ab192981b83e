package seeding

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/business-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/business-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
	"github.com/vfg2006/business-dashboard-api/pkg/log"
	"go.uber.org/mock/gomock"
)

type fakeTransactor struct {
	calls int
	err   error
}

func (f *fakeTransactor) RunInTransaction(_ context.Context, fn func(*sql.Tx) error) error {
	f.calls++
	if err := fn(nil); err != nil {
		f.err = err
		return err
	}
	return nil
}

type seederMocks struct {
	sales     *mocks.MockSaleRepository
	inventory *mocks.MockInventoryRepository
	customers *mocks.MockCustomerRepository
}

func newSeederMocks(t *testing.T) (*seederMocks, RepositoryFactory) {
	ctrl := gomock.NewController(t)
	m := &seederMocks{
		sales:     mocks.NewMockSaleRepository(ctrl),
		inventory: mocks.NewMockInventoryRepository(ctrl),
		customers: mocks.NewMockCustomerRepository(ctrl),
	}

	factory := func(_ postgres.Queryer) Repositories {
		return Repositories{
			Sales:     m.sales,
			Inventory: m.inventory,
			Customers: m.customers,
		}
	}

	return m, factory
}

func testDataset() Dataset {
	return Dataset{
		Sales: []domain.Sale{
			{Date: time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), Amount: 1250, Product: "Laptop"},
		},
		Inventory: FixedInventory(),
		Customers: []domain.Customer{
			{Name: "Customer 1", Email: "customer1@example.com", Active: true, RetentionRate: 80},
		},
	}
}

func TestSeeder_Seed(t *testing.T) {
	log.SetupTestLogger()
	m, factory := newSeederMocks(t)
	dataset := testDataset()

	gomock.InOrder(
		m.sales.EXPECT().DeleteAll(gomock.Any()).Return(nil),
		m.inventory.EXPECT().DeleteAll(gomock.Any()).Return(nil),
		m.customers.EXPECT().DeleteAll(gomock.Any()).Return(nil),
		m.sales.EXPECT().InsertMany(gomock.Any(), dataset.Sales).Return(nil),
		m.inventory.EXPECT().InsertMany(gomock.Any(), dataset.Inventory).Return(nil),
		m.customers.EXPECT().InsertMany(gomock.Any(), dataset.Customers).Return(nil),
	)

	transactor := &fakeTransactor{}
	seeder := NewSeeder(transactor, factory)

	require.NoError(t, seeder.Seed(context.Background(), dataset))
	assert.Equal(t, 1, transactor.calls)
}

func TestSeeder_SeedError(t *testing.T) {
	log.SetupTestLogger()

	t.Run("Erro ao limpar estoque", func(t *testing.T) {
		m, factory := newSeederMocks(t)

		m.sales.EXPECT().DeleteAll(gomock.Any()).Return(nil)
		m.inventory.EXPECT().DeleteAll(gomock.Any()).Return(errors.New("permission denied"))

		transactor := &fakeTransactor{}
		err := NewSeeder(transactor, factory).Seed(context.Background(), testDataset())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "erro ao limpar estoque")
		assert.Equal(t, err, transactor.err)
	})

	t.Run("Erro ao gravar clientes", func(t *testing.T) {
		m, factory := newSeederMocks(t)

		m.sales.EXPECT().DeleteAll(gomock.Any()).Return(nil)
		m.inventory.EXPECT().DeleteAll(gomock.Any()).Return(nil)
		m.customers.EXPECT().DeleteAll(gomock.Any()).Return(nil)
		m.sales.EXPECT().InsertMany(gomock.Any(), gomock.Any()).Return(nil)
		m.inventory.EXPECT().InsertMany(gomock.Any(), gomock.Any()).Return(nil)
		m.customers.EXPECT().InsertMany(gomock.Any(), gomock.Any()).Return(errors.New("duplicate key"))

		err := NewSeeder(&fakeTransactor{}, factory).Seed(context.Background(), testDataset())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "erro ao gravar clientes")
		assert.Contains(t, err.Error(), "duplicate key")
	})
}
