package main

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/TaoufikZa/watami-mvp/internal/config"
	"github.com/TaoufikZa/watami-mvp/internal/dal/postgres"
	merchantrepo "github.com/TaoufikZa/watami-mvp/internal/dal/repositories/merchant/postgres"
	productrepo "github.com/TaoufikZa/watami-mvp/internal/dal/repositories/product/postgres"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/merchant"
	"github.com/TaoufikZa/watami-mvp/internal/service/models/product"
)

var merchants = []merchant.Merchant{
	{
		ID:      "m1",
		Name:    "Demo Pizza",
		Slug:    "demo-pizza",
		Image:   "https://images.unsplash.com/photo-1513104890138-7c749659a591?auto=format&fit=crop&q=80&w=800",
		Lat:     33.5731,
		Lng:     -7.5898,
		Address: "Casablanca, Morocco",
		IsOpen:  true,
	},
	{
		ID:      "m2",
		Name:    "Sushi Place",
		Slug:    "sushi-place",
		Image:   "https://images.unsplash.com/photo-1579871494447-9811cf80d66c?auto=format&fit=crop&q=80&w=800",
		Lat:     33.5883,
		Lng:     -7.6114,
		Address: "Maarif, Casablanca",
		IsOpen:  true,
	},
}

var products = []product.Product{
	{ID: "p1", MerchantID: "m1", Name: "Margherita Pizza", Price: 65, Category: "Food", IsAvailable: true},
	{ID: "p2", MerchantID: "m1", Name: "Pepperoni Pizza", Price: 85, Category: "Food", IsAvailable: true},
	{ID: "p3", MerchantID: "m2", Name: "Salmon Nigiri", Price: 45, Category: "Food", IsAvailable: true},
	{ID: "p4", MerchantID: "m2", Name: "California Roll", Price: 55, Category: "Food", IsAvailable: true},
}

// Seeds the demo catalog. Safe to run repeatedly, rows are upserted by id.
func main() {
	config.MustInit()

	postgresClient := postgres.MustNewClient()
	defer func() {
		if err := postgresClient.Close(); err != nil {
			slog.Error("Database connection close error", "error", err)
		}
	}()

	merchantRepository := merchantrepo.NewMerchantRepository(postgresClient)
	productRepository := productrepo.NewProductRepository(postgresClient)

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		return merchantRepository.Upsert(ctx, merchants)
	})
	g.Go(func() error {
		return productRepository.Upsert(ctx, products)
	})
	if err := g.Wait(); err != nil {
		slog.Error("Failed to seed catalog", "error", err)

		return
	}

	slog.Info("Catalog seeded", "merchants", len(merchants), "products", len(products))
}
