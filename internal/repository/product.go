package repository

import (
	"context"

	"github.com/lunorlabs/lunor/internal/domain"
)

// ListParams narrows and orders a catalog listing. Zero values mean
// "no filter"; Page is 1-based.
type ListParams struct {
	Query    string
	Brand    string
	Category string
	Sort     domain.Sort
	Page     int
	PageSize int
}

type ProductRepository interface {
	List(ctx context.Context, params ListParams) ([]domain.Product, error)
	// GetByID returns domain.ErrProductNotFound for unknown ids.
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// GetByIDs resolves all ids in one query; unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	TopRatedByBrand(ctx context.Context, brand string, limit int) ([]domain.Product, error)
}
