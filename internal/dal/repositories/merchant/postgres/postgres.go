package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/TaoufikZa/watami-mvp/internal/dal/postgres"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/merchant"
)

// MerchantRepository implements the merchant repository for PostgreSQL.
type MerchantRepository struct {
	client *postgres.Client
}

// NewMerchantRepository creates a new merchant repository.
func NewMerchantRepository(client *postgres.Client) *MerchantRepository {
	return &MerchantRepository{
		client: client,
	}
}

// List returns all merchants.
func (r *MerchantRepository) List(ctx context.Context) ([]merchant.Merchant, error) {
	query, args, err := sq.Select(
		"id",
		"name",
		"slug",
		"image",
		"lat",
		"lng",
		"address",
		"is_open",
	).
		From("merchants").
		OrderBy("name ASC").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.client.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query merchants: %w", err)
	}
	defer rows.Close()

	result := []merchant.Merchant{}
	for rows.Next() {
		var m merchant.Merchant
		err := rows.Scan(
			&m.ID,
			&m.Name,
			&m.Slug,
			&m.Image,
			&m.Lat,
			&m.Lng,
			&m.Address,
			&m.IsOpen,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan merchant: %w", err)
		}
		result = append(result, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Upsert inserts or updates merchants by id.
func (r *MerchantRepository) Upsert(ctx context.Context, merchants []merchant.Merchant) error {
	for _, m := range merchants {
		query, args, err := sq.Insert("merchants").
			Columns("id", "name", "slug", "image", "lat", "lng", "address", "is_open").
			Values(m.ID, m.Name, m.Slug, m.Image, m.Lat, m.Lng, m.Address, m.IsOpen).
			Suffix(`ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				slug = EXCLUDED.slug,
				image = EXCLUDED.image,
				lat = EXCLUDED.lat,
				lng = EXCLUDED.lng,
				address = EXCLUDED.address,
				is_open = EXCLUDED.is_open`).
			PlaceholderFormat(sq.Dollar).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build upsert query: %w", err)
		}

		if _, err := r.client.Pool().Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to upsert merchant %s: %w", m.ID, err)
		}
	}

	return nil
}
