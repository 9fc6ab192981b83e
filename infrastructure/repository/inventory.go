package repository

//go:generate mockgen -source=inventory.go -destination=mocks/inventory_mock.go -package=mocks

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/vfg2006/business-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/business-dashboard-api/internal/domain"
)

const (
	inventoryTable = "inventory i"
)

type InventoryRepository interface {
	ListAll(ctx context.Context) ([]domain.InventoryItem, error)
	InsertMany(ctx context.Context, items []domain.InventoryItem) error
	DeleteAll(ctx context.Context) error
}

type inventoryRepository struct {
	conn postgres.Queryer
}

func NewInventoryRepository(conn postgres.Queryer) InventoryRepository {
	return &inventoryRepository{
		conn: conn,
	}
}

func (r *inventoryRepository) ListAll(ctx context.Context) ([]domain.InventoryItem, error) {
	query, args, err := squirrel.
		Select("i.id", "i.product", "i.quantity").
		From(inventoryTable).
		OrderBy("i.id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query de estoque")
	}

	rows, err := r.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao buscar estoque")
	}
	defer rows.Close()

	items := make([]domain.InventoryItem, 0)
	for rows.Next() {
		var item domain.InventoryItem
		if err := rows.Scan(&item.ID, &item.Product, &item.Quantity); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear item de estoque")
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração do estoque")
	}

	return items, nil
}

func (r *inventoryRepository) InsertMany(ctx context.Context, items []domain.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}

	query := squirrel.
		Insert("inventory").
		Columns("product", "quantity").
		PlaceholderFormat(squirrel.Dollar)

	for _, item := range items {
		query = query.Values(item.Product, item.Quantity)
	}

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir query de inserção de estoque")
	}

	if _, err := r.conn.ExecContext(ctx, sqlQuery, args...); err != nil {
		return errors.Wrap(err, "erro ao inserir itens de estoque")
	}

	return nil
}

func (r *inventoryRepository) DeleteAll(ctx context.Context) error {
	query, args, err := squirrel.Delete("inventory").PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir query de remoção de estoque")
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return errors.Wrap(err, "erro ao remover itens de estoque")
	}

	return nil
}
