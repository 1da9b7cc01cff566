package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lunorlabs/lunor/internal/domain"
	"github.com/lunorlabs/lunor/internal/repository"
)

const productColumns = `id, name, brand, rating, reviews, price_usd, sale_price_usd,
		limited_edition, new_arrival, online_only, out_of_stock,
		primary_category, secondary_category, tertiary_category, image_url`

const (
	defaultPageSize = 24
	maxPageSize     = 100
)

// Whitelist of ORDER BY clauses; sort input never reaches the SQL directly.
var sortClauses = map[domain.Sort]string{
	domain.SortRating:    "rating DESC NULLS LAST, reviews DESC NULLS LAST",
	domain.SortReviews:   "reviews DESC NULLS LAST",
	domain.SortPriceAsc:  "price_usd ASC",
	domain.SortPriceDesc: "price_usd DESC",
}

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) List(ctx context.Context, params repository.ListParams) ([]domain.Product, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if params.Query != "" {
		p := arg("%" + params.Query + "%")
		conds = append(conds, fmt.Sprintf("(name ILIKE %s OR brand ILIKE %s)", p, p))
	}
	if params.Brand != "" {
		conds = append(conds, "brand = "+arg(params.Brand))
	}
	if params.Category != "" {
		p := arg(params.Category)
		conds = append(conds, fmt.Sprintf(
			"(primary_category = %s OR secondary_category = %s OR tertiary_category = %s)", p, p, p))
	}

	query := "SELECT " + productColumns + " FROM products"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}

	order, ok := sortClauses[params.Sort]
	if !ok {
		order = sortClauses[domain.SortRating]
	}
	query += " ORDER BY " + order

	pageSize := params.PageSize
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	page := params.Page
	if page < 1 {
		page = 1
	}
	query += " LIMIT " + arg(pageSize) + " OFFSET " + arg((page-1)*pageSize)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	query := "SELECT " + productColumns + " FROM products WHERE id = $1"

	row := r.pool.QueryRow(ctx, query, id)
	p, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := "SELECT " + productColumns + " FROM products WHERE id = ANY($1)"

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get products by ids: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func (r *ProductRepository) TopRatedByBrand(ctx context.Context, brand string, limit int) ([]domain.Product, error) {
	query := "SELECT " + productColumns + ` FROM products
		WHERE brand = $1 AND rating IS NOT NULL
		ORDER BY rating DESC, reviews DESC NULLS LAST
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, brand, limit)
	if err != nil {
		return nil, fmt.Errorf("top rated by brand: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Brand, &p.Rating, &p.Reviews, &p.PriceUSD, &p.SalePriceUSD,
		&p.LimitedEdition, &p.NewArrival, &p.OnlineOnly, &p.OutOfStock,
		&p.PrimaryCategory, &p.SecondaryCategory, &p.TertiaryCategory, &p.ImageURL,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProducts(rows pgx.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}
	return products, nil
}
