package usecase

import (
	"context"
	"fmt"

	"github.com/lunorlabs/lunor/internal/cart"
	"github.com/lunorlabs/lunor/internal/domain"
	"github.com/lunorlabs/lunor/internal/repository"
)

type CatalogUsecase struct {
	products repository.ProductRepository
}

func NewCatalogUsecase(products repository.ProductRepository) *CatalogUsecase {
	return &CatalogUsecase{products: products}
}

func (u *CatalogUsecase) ListProducts(ctx context.Context, params repository.ListParams) ([]domain.Product, error) {
	products, err := u.products.List(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (u *CatalogUsecase) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, err := u.products.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// CartLine is a cart entry joined with its catalog row.
type CartLine struct {
	Product  domain.Product
	Quantity int
}

// CartView resolves cookie cart entries against the catalog in a single
// multi-ID query. Entries whose product no longer exists are skipped; the
// cart order is preserved.
func (u *CatalogUsecase) CartView(ctx context.Context, entries []cart.Entry) ([]CartLine, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	products, err := u.products.GetByIDs(ctx, cart.IDs(entries))
	if err != nil {
		return nil, fmt.Errorf("resolve cart: %w", err)
	}

	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]CartLine, 0, len(entries))
	for _, e := range entries {
		if p, ok := byID[e.ProductID]; ok {
			lines = append(lines, CartLine{Product: p, Quantity: e.Quantity})
		}
	}
	return lines, nil
}

// Total sums the cart at sale prices where one is set.
func Total(lines []CartLine) float64 {
	var total float64
	for _, l := range lines {
		price := l.Product.PriceUSD
		if l.Product.SalePriceUSD != nil {
			price = *l.Product.SalePriceUSD
		}
		total += price * float64(l.Quantity)
	}
	return total
}
