package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mserrat/tienda-api/internal/models"
	"github.com/mserrat/tienda-api/internal/repo"
)

type PurchaseService struct {
	Repo *repo.GormRepo
}

func (s *PurchaseService) Purchases(ctx context.Context, userID uint) ([]models.Purchase, error) {
	return s.Repo.Purchases(ctx, userID)
}

func (s *PurchaseService) Purchase(ctx context.Context, id, userID uint) (*models.Purchase, error) {
	purchase, err := s.Repo.Purchase(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: purchase %d", ErrNotFound, id)
		}
		return nil, err
	}
	return purchase, nil
}
