package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mserrat/tienda-api/internal/models"
	"github.com/mserrat/tienda-api/internal/repo"
)

// seedProduct mirrors the keys of the productos.json catalog file.
type seedProduct struct {
	Name        string  `json:"titulo"`
	Description string  `json:"descripcion"`
	Price       float64 `json:"precio"`
	Category    string  `json:"categoria"`
	Stock       uint    `json:"existencia"`
	Rating      float64 `json:"valoracion"`
	Image       string  `json:"imagen"`
}

// Products loads the catalog from path when the products table is empty.
// Returns the seeded products (nil when the table already had rows).
func Products(ctx context.Context, r *repo.GormRepo, path string) ([]models.Product, error) {
	total, err := r.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	if total > 0 {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed file: %w", err)
	}

	var raw []seedProduct
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	if len(raw) == 0 {
		return nil, nil
	}

	products := make([]models.Product, 0, len(raw))
	for _, p := range raw {
		products = append(products, models.Product{
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Category:    p.Category,
			Stock:       p.Stock,
			Rating:      p.Rating,
			Image:       p.Image,
		})
	}

	if err := r.CreateProducts(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}
