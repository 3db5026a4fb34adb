package main

import (
	"fmt"
	"strings"

	"app/internal/domain/model"
	"app/internal/infra/db"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// 開発用の初期データ投入
func main() {
	_ = godotenv.Load()

	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}

	categories := []model.Category{
		{Name: "Electronics", Slug: "electronics"},
		{Name: "Clothing", Slug: "clothing"},
		{Name: "Books", Slug: "books"},
	}
	for i := range categories {
		if err := gormDB.Where(model.Category{Slug: categories[i].Slug}).
			FirstOrCreate(&categories[i]).Error; err != nil {
			panic(err)
		}
	}

	type seedVariant struct {
		name       string
		sku        string
		adjustment string
		stock      int64
	}
	type seedProduct struct {
		name      string
		category  int
		basePrice string
		rating    string
		featured  bool
		variants  []seedVariant
	}

	products := []seedProduct{
		{
			name: "Wireless Headphones", category: 0, basePrice: "59.99", rating: "4.5", featured: true,
			variants: []seedVariant{
				{name: "Black", sku: "WH-BLACK", adjustment: "0.00", stock: 25},
				{name: "White", sku: "WH-WHITE", adjustment: "5.00", stock: 10},
			},
		},
		{
			name: "Cotton T-Shirt", category: 1, basePrice: "12.50", rating: "4.0",
			variants: []seedVariant{
				{name: "Small", sku: "TS-S", adjustment: "0.00", stock: 40},
				{name: "Medium", sku: "TS-M", adjustment: "0.00", stock: 40},
				{name: "XL", sku: "TS-XL", adjustment: "2.00", stock: 15},
			},
		},
		{
			name: "Go Programming Handbook", category: 2, basePrice: "34.00", rating: "4.8", featured: true,
			variants: []seedVariant{
				{name: "Paperback", sku: "BOOK-GO", adjustment: "0.00", stock: 8},
			},
		},
	}

	for _, sp := range products {
		basePrice, err := decimal.NewFromString(sp.basePrice)
		if err != nil {
			panic(err)
		}
		rating, err := decimal.NewFromString(sp.rating)
		if err != nil {
			panic(err)
		}

		p := model.Product{
			UUID:       uuid.New(),
			CategoryID: categories[sp.category].ID,
			Name:       sp.name,
			Slug:       slugify(sp.name),
			BasePrice:  basePrice,
			Rating:     rating,
			IsActive:   true,
			IsFeatured: sp.featured,
		}
		if err := gormDB.Where(model.Product{Slug: p.Slug}).FirstOrCreate(&p).Error; err != nil {
			panic(err)
		}

		for _, sv := range sp.variants {
			adj, err := decimal.NewFromString(sv.adjustment)
			if err != nil {
				panic(err)
			}
			v := model.ProductVariant{
				ProductID:       p.ID,
				Name:            sv.name,
				SKU:             sv.sku,
				PriceAdjustment: adj,
				Stock:           sv.stock,
			}
			if err := gormDB.Where(model.ProductVariant{SKU: sv.sku}).
				FirstOrCreate(&v).Error; err != nil {
				panic(err)
			}
		}

		fmt.Printf("seeded: %s\n", p.Slug)
	}
}

func slugify(name string) string {
	s := strings.ToLower(name)
	s = strings.ReplaceAll(s, " ", "-")
	return s
}
