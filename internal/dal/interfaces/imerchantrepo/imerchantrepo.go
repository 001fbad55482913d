package imerchantrepo

import (
	"context"

	"github.com/TaoufikZa/watami-mvp/internal/service/models/merchant"
)

// IMerchantRepository is an interface for the merchant store.
type IMerchantRepository interface {
	List(ctx context.Context) ([]merchant.Merchant, error)
	Upsert(ctx context.Context, merchants []merchant.Merchant) error
}
