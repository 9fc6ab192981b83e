package repository

//go:generate mockgen -source=customer.go -destination=mocks/customer_mock.go -package=mocks

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/business-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
)

const (
	customersTable = "customers c"
)

type CustomerRepository interface {
	Count(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)
	AverageActiveRetentionRate(ctx context.Context) (float64, error)
	InsertMany(ctx context.Context, customers []domain.Customer) error
	DeleteAll(ctx context.Context) error
}

type customerRepository struct {
	conn postgres.Queryer
}

func NewCustomerRepository(conn postgres.Queryer) CustomerRepository {
	return &customerRepository{
		conn: conn,
	}
}

func countCustomersQuery(activeOnly bool) squirrel.SelectBuilder {
	query := squirrel.
		Select("COUNT(*)").
		From(customersTable).
		PlaceholderFormat(squirrel.Dollar)

	if activeOnly {
		query = query.Where(squirrel.Eq{"c.active": true})
	}

	return query
}

// averageRetentionQuery retorna 0 quando não há clientes ativos
func averageRetentionQuery() squirrel.SelectBuilder {
	return squirrel.
		Select("COALESCE(AVG(c.retention_rate), 0)").
		From(customersTable).
		Where(squirrel.Eq{"c.active": true}).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *customerRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, false)
}

func (r *customerRepository) CountActive(ctx context.Context) (int, error) {
	return r.count(ctx, true)
}

func (r *customerRepository) count(ctx context.Context, activeOnly bool) (int, error) {
	query, args, err := countCustomersQuery(activeOnly).ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir a query de contagem de clientes")
	}

	var total int
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, errors.Wrap(err, "erro ao contar clientes")
	}

	return total, nil
}

func (r *customerRepository) AverageActiveRetentionRate(ctx context.Context) (float64, error) {
	query, args, err := averageRetentionQuery().ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir a query de retenção")
	}

	var avg float64
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&avg); err != nil {
		return 0, errors.Wrap(err, "erro ao calcular retenção média")
	}

	return avg, nil
}

func (r *customerRepository) InsertMany(ctx context.Context, customers []domain.Customer) error {
	if len(customers) == 0 {
		return nil
	}

	query := squirrel.
		Insert("customers").
		Columns("name", "email", "active", "retention_rate").
		PlaceholderFormat(squirrel.Dollar)

	for _, customer := range customers {
		query = query.Values(customer.Name, customer.Email, customer.Active, customer.RetentionRate)
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir query de inserção de clientes")
	}

	if _, err := r.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return errors.Wrap(err, "erro ao inserir clientes")
	}

	return nil
}

func (r *customerRepository) DeleteAll(ctx context.Context) error {
	query, args, err := squirrel.Delete("customers").PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir query de remoção de clientes")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "erro ao remover clientes")
	}

	return nil
}
