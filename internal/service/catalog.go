package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mserrat/tienda-api/internal/models"
	"github.com/mserrat/tienda-api/internal/repo"
	"github.com/mserrat/tienda-api/internal/search"
)

// CatalogService is read-only: the only stock mutation happens at checkout.
type CatalogService struct {
	Repo *repo.GormRepo

	// Search is optional. When present, free-text queries go through the
	// search index; the SQL LIKE filter remains the fallback.
	Search *search.Client
}

func (s *CatalogService) Product(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.Repo.Product(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product %d", ErrNotFound, id)
		}
		return nil, err
	}
	return product, nil
}

func (s *CatalogService) Products(ctx context.Context, category, query string) ([]models.Product, error) {
	if query != "" && category == "" && s.Search != nil {
		products, err := s.Search.Products(ctx, query)
		if err == nil {
			return products, nil
		}
		// fall through to the database on search failure
	}
	return s.Repo.Products(ctx, category, query)
}
