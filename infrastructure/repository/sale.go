// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

//go:generate mockgen -source=sale.go -destination=mocks/sale_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/business-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/business-dashboard-api/internal/config"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
)

const (
	salesTable = "sales s"
)

type SaleRepository interface {
	ListRecent(ctx context.Context, limit int) ([]domain.Sale, error)
	TotalAmount(ctx context.Context) (float64, error)
	TrendSince(ctx context.Context, since time.Time, bucket string) ([]domain.TrendPoint, error)
	InsertMany(ctx context.Context, sales []domain.Sale) error
	DeleteAll(ctx context.Context) error
}

type saleRepository struct {
	conn postgres.Queryer
}

func NewSaleRepository(conn postgres.Queryer) SaleRepository {
	return &saleRepository{
		conn: conn,
	}
}

func recentSalesQuery(limit int) squirrel.SelectBuilder {
	return squirrel.
		Select("s.id", "s.date", "s.amount", "s.product").
		From(salesTable).
		OrderBy("s.date DESC", "s.id DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)
}

func totalAmountQuery() squirrel.SelectBuilder {
	return squirrel.
		Select("COALESCE(SUM(s.amount), 0)").
		From(salesTable).
		PlaceholderFormat(squirrel.Dollar)
}

// trendQuery soma as vendas por intervalo a partir de since. No modo timestamp o
// intervalo é o valor bruto da data, então só vendas com data idêntica se fundem.
func trendQuery(since time.Time, bucket string) squirrel.SelectBuilder {
	bucketExpr := "s.date"
	if bucket == config.TrendBucketDay {
		bucketExpr = "date_trunc('day', s.date)"
	}

	return squirrel.
		Select(bucketExpr+" AS bucket", "SUM(s.amount) AS amount").
		From(salesTable).
		Where(squirrel.GtOrEq{"s.date": since}).
		GroupBy("bucket").
		OrderBy("bucket ASC").
		PlaceholderFormat(squirrel.Dollar)
}

func (r *saleRepository) ListRecent(ctx context.Context, limit int) ([]domain.Sale, error) {
	query, args, err := recentSalesQuery(limit).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de vendas recentes")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar vendas recentes")
	}
	defer rows.Close()

	sales := make([]domain.Sale, 0, limit)
	for rows.Next() {
		var sale domain.Sale
		if err := rows.Scan(&sale.ID, &sale.Date, &sale.Amount, &sale.Product); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear venda")
		}
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de vendas")
	}

	return sales, nil
}

func (r *saleRepository) TotalAmount(ctx context.Context) (float64, error) {
	query, args, err := totalAmountQuery().ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir a query de total de vendas")
	}

	var total float64
	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, errors.Wrap(err, "erro ao somar vendas")
	}

	return total, nil
}

func (r *saleRepository) TrendSince(ctx context.Context, since time.Time, bucket string) ([]domain.TrendPoint, error) {
	query, args, err := trendQuery(since, bucket).ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de tendência")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar tendência de vendas")
	}
	defer rows.Close()

	points := make([]domain.TrendPoint, 0)
	for rows.Next() {
		var (
			point  domain.TrendPoint
			amount sql.NullFloat64
		)
		if err := rows.Scan(&point.Bucket, &amount); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear ponto da tendência")
		}
		point.Amount = amount.Float64
		points = append(points, point)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração da tendência")
	}

	return points, nil
}

func (r *saleRepository) InsertMany(ctx context.Context, sales []domain.Sale) error {
	if len(sales) == 0 {
		return nil
	}

	query := squirrel.
		Insert("sales").
		Columns("date", "amount", "product").
		PlaceholderFormat(squirrel.Dollar)

	for _, sale := range sales {
		query = query.Values(sale.Date, sale.Amount, sale.Product)
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir query de inserção de vendas")
	}

	if _, err := r.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return errors.Wrap(err, "erro ao inserir vendas")
	}

	return nil
}

func (r *saleRepository) DeleteAll(ctx context.Context) error {
	query, args, err := squirrel.Delete("sales").PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir query de remoção de vendas")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "erro ao remover vendas")
	}

	return nil
}
