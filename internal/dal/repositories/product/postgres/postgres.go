package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/TaoufikZa/watami-mvp/internal/dal/postgres"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/product"
)

// ProductRepository implements the product repository for PostgreSQL.
type ProductRepository struct {
	client *postgres.Client
}

// NewProductRepository creates a new product repository.
func NewProductRepository(client *postgres.Client) *ProductRepository {
	return &ProductRepository{
		client: client,
	}
}

// ListByMerchant returns all products belonging to a merchant.
func (r *ProductRepository) ListByMerchant(ctx context.Context, merchantID string) ([]product.Product, error) {
	query, args, err := sq.Select(
		"id",
		"merchant_id",
		"name",
		"price",
		"category",
		"image",
		"is_available",
	).
		From("products").
		Where(sq.Eq{"merchant_id": merchantID}).
		OrderBy("name ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	result := []product.Product{}
	for rows.Next() {
		var p product.Product
		err := rows.Scan(
			&p.ID,
			&p.MerchantID,
			&p.Name,
			&p.Price,
			&p.Category,
			&p.Image,
			&p.IsAvailable,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Upsert inserts or updates products by id.
func (r *ProductRepository) Upsert(ctx context.Context, products []product.Product) error {
	for _, p := range products {
		query, args, err := sq.Insert("products").
			Columns("id", "merchant_id", "name", "price", "category", "image", "is_available").
			Values(p.ID, p.MerchantID, p.Name, p.Price, p.Category, p.Image, p.IsAvailable).
			Suffix(`ON CONFLICT (id) DO UPDATE SET
				merchant_id = EXCLUDED.merchant_id,
				name = EXCLUDED.name,
				price = EXCLUDED.price,
				category = EXCLUDED.category,
				image = EXCLUDED.image,
				is_available = EXCLUDED.is_available`).
			PlaceholderFormat(sq.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build upsert query: %w", err)
		}

		if _, err := r.client.Pool().Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to upsert product %s: %w", p.ID, err)
		}
	}

	return nil
}
