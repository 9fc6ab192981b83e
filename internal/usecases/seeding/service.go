package seeding

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/business-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/business-dashboard-api/infrastructure/repository"
)

// Transactor executa uma função dentro de uma transação
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(*sql.Tx) error) error
}

// Repositories agrupa os repositórios ligados a uma mesma transação
type Repositories struct {
	Sales     repository.SaleRepository
	Inventory repository.InventoryRepository
	Customers repository.CustomerRepository
}

// RepositoryFactory cria os repositórios sobre um Queryer (normalmente a transação corrente)
type RepositoryFactory func(q postgres.Queryer) Repositories

func NewRepositories(q postgres.Queryer) Repositories {
	return Repositories{
		Sales:     repository.NewSaleRepository(q),
		Inventory: repository.NewInventoryRepository(q),
		Customers: repository.NewCustomerRepository(q),
	}
}

type Seeder struct {
	transactor Transactor
	newRepos   RepositoryFactory
}

func NewSeeder(transactor Transactor, newRepos RepositoryFactory) *Seeder {
	return &Seeder{
		transactor: transactor,
		newRepos:   newRepos,
	}
}

// Seed apaga os dados existentes e grava o dataset numa única transação
func (s *Seeder) Seed(ctx context.Context, dataset Dataset) error {
	return s.transactor.RunInTransaction(ctx, func(tx *sql.Tx) error {
		repos := s.newRepos(tx)

		if err := repos.Sales.DeleteAll(ctx); err != nil {
			return errors.Wrap(err, "erro ao limpar vendas")
		}
		if err := repos.Inventory.DeleteAll(ctx); err != nil {
			return errors.Wrap(err, "erro ao limpar estoque")
		}
		if err := repos.Customers.DeleteAll(ctx); err != nil {
			return errors.Wrap(err, "erro ao limpar clientes")
		}

		if err := repos.Sales.InsertMany(ctx, dataset.Sales); err != nil {
			return errors.Wrap(err, "erro ao gravar vendas")
		}
		if err := repos.Inventory.InsertMany(ctx, dataset.Inventory); err != nil {
			return errors.Wrap(err, "erro ao gravar estoque")
		}
		if err := repos.Customers.InsertMany(ctx, dataset.Customers); err != nil {
			return errors.Wrap(err, "erro ao gravar clientes")
		}

		logrus.WithFields(logrus.Fields{
			"sales":     len(dataset.Sales),
			"inventory": len(dataset.Inventory),
			"customers": len(dataset.Customers),
		}).Info("Banco populado com sucesso")

		return nil
	})
}
