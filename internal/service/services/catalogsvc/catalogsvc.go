package catalogsvc

import (
	"context"

	"github.com/TaoufikZa/watami-mvp/internal/dal/interfaces/imerchantrepo"
	"github.com/TaoufikZa/watami-mvp/internal/dal/interfaces/iproductrepo"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/merchant"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/product"
)

// hardcodedDistanceKm stands in for real geolocation ranking, which is out
// of scope: every merchant is "nearby".
const hardcodedDistanceKm = 0.5

// CatalogService serves the merchant and product read paths.
type CatalogService struct {
	merchantRepo imerchantrepo.IMerchantRepository
	productRepo  iproductrepo.IProductRepository
}

// option is a function that configures the CatalogService.
type option func(*CatalogService)

// MustNewCatalogService creates a new CatalogService.
func MustNewCatalogService(opts ...option) *CatalogService {
	s := &CatalogService{}
	for _, opt := range opts {
		opt(s)
	}

	if s.merchantRepo == nil || s.productRepo == nil {
		panic("catalogsvc: merchant and product repositories are required")
	}

	return s
}

// WithMerchantRepository sets the merchant store.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithMerchantRepository(repo imerchantrepo.IMerchantRepository) option {
	return func(s *CatalogService) {
		s.merchantRepo = repo
	}
}

// WithProductRepository sets the product store.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProductRepository(repo iproductrepo.IProductRepository) option {
	return func(s *CatalogService) {
		s.productRepo = repo
	}
}

// GetMerchants returns all merchants.
func (s *CatalogService) GetMerchants(ctx context.Context) ([]merchant.Merchant, error) {
	return s.merchantRepo.List(ctx)
}

// GetNearbyMerchants returns all merchants annotated with a distance from
// the given location.
func (s *CatalogService) GetNearbyMerchants(ctx context.Context, lat, lng float64) ([]merchant.Merchant, error) {
	merchants, err := s.merchantRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	for i := range merchants {
		merchants[i].Distance = hardcodedDistanceKm
	}

	return merchants, nil
}

// GetProducts returns a merchant's products.
func (s *CatalogService) GetProducts(ctx context.Context, merchantID string) ([]product.Product, error) {
	return s.productRepo.ListByMerchant(ctx, merchantID)
}
