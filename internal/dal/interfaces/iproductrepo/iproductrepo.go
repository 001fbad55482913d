package iproductrepo

import (
	"context"

	"github.com/TaoufikZa/watami-mvp/internal/service/models/product"
)

// IProductRepository is an interface for the product store.
type IProductRepository interface {
	ListByMerchant(ctx context.Context, merchantID string) ([]product.Product, error)
	Upsert(ctx context.Context, products []product.Product) error
}
