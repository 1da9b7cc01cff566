package domain

import "errors"

var ErrProductNotFound = errors.New("product not found")

type Sort string

const (
	SortRating    Sort = "rating"
	SortReviews   Sort = "reviews"
	SortPriceAsc  Sort = "price_asc"
	SortPriceDesc Sort = "price_desc"
)

type Product struct {
	ID      string
	Name    string
	Brand   string
	Rating  *float64
	Reviews *int

	PriceUSD     float64
	SalePriceUSD *float64 // nil when not on sale

	LimitedEdition bool
	NewArrival     bool
	OnlineOnly     bool
	OutOfStock     bool

	PrimaryCategory   *string
	SecondaryCategory *string
	TertiaryCategory  *string

	ImageURL *string
}
