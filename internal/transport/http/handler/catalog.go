package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lunorlabs/lunor/internal/domain"
	"github.com/lunorlabs/lunor/internal/metrics"
	"github.com/lunorlabs/lunor/internal/repository"
	"github.com/lunorlabs/lunor/internal/transport/http/middleware"
	"github.com/lunorlabs/lunor/internal/usecase"
)

// featuredProvider is satisfied by *catalog.FeaturedCache.
type featuredProvider interface {
	Products() []domain.Product
}

type CatalogHandler struct {
	catalogUsecase *usecase.CatalogUsecase
	featured       featuredProvider
	logger         *slog.Logger
}

func NewCatalogHandler(catalogUsecase *usecase.CatalogUsecase, featured featuredProvider, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogUsecase: catalogUsecase,
		featured:       featured,
		logger:         logger.With("component", "catalog_handler"),
	}
}

type productResponse struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Brand             string   `json:"brand"`
	Rating            *float64 `json:"rating,omitempty"`
	Reviews           *int     `json:"reviews,omitempty"`
	PriceUSD          float64  `json:"price_usd"`
	SalePriceUSD      *float64 `json:"sale_price_usd,omitempty"`
	LimitedEdition    bool     `json:"limited_edition"`
	NewArrival        bool     `json:"new_arrival"`
	OnlineOnly        bool     `json:"online_only"`
	OutOfStock        bool     `json:"out_of_stock"`
	PrimaryCategory   *string  `json:"primary_category,omitempty"`
	SecondaryCategory *string  `json:"secondary_category,omitempty"`
	TertiaryCategory  *string  `json:"tertiary_category,omitempty"`
	ImageURL          *string  `json:"image_url,omitempty"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:                p.ID,
		Name:              p.Name,
		Brand:             p.Brand,
		Rating:            p.Rating,
		Reviews:           p.Reviews,
		PriceUSD:          p.PriceUSD,
		SalePriceUSD:      p.SalePriceUSD,
		LimitedEdition:    p.LimitedEdition,
		NewArrival:        p.NewArrival,
		OnlineOnly:        p.OnlineOnly,
		OutOfStock:        p.OutOfStock,
		PrimaryCategory:   p.PrimaryCategory,
		SecondaryCategory: p.SecondaryCategory,
		TertiaryCategory:  p.TertiaryCategory,
		ImageURL:          p.ImageURL,
	}
}

func toProductResponses(products []domain.Product) []productResponse {
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

// GET /
func (h *CatalogHandler) Home(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"username": middleware.Username(c),
		"featured": toProductResponses(h.featured.Products()),
	})
}

// GET /shop?q=&brand=&category=&sort=&page=&page_size=
// A failing catalog query degrades to an empty listing: the page must stay
// renderable.
func (h *CatalogHandler) List(c *gin.Context) {
	params := repository.ListParams{
		Query:    c.Query("q"),
		Brand:    c.Query("brand"),
		Category: c.Query("category"),
		Sort:     domain.Sort(c.Query("sort")),
		Page:     atoiOrZero(c.Query("page")),
		PageSize: atoiOrZero(c.Query("page_size")),
	}

	start := time.Now()
	products, err := h.catalogUsecase.ListProducts(c.Request.Context(), params)
	metrics.CatalogQueryDuration.WithLabelValues("list").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CatalogQueryErrors.WithLabelValues("list").Inc()
		h.logger.Error("list products", "error", err)
		products = nil
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	c.JSON(http.StatusOK, gin.H{
		"username": middleware.Username(c),
		"products": toProductResponses(products),
		"page":     page,
	})
}

// GET /products/:id
func (h *CatalogHandler) Detail(c *gin.Context) {
	productID := c.Param("id")

	start := time.Now()
	product, err := h.catalogUsecase.GetProduct(c.Request.Context(), productID)
	metrics.CatalogQueryDuration.WithLabelValues("detail").Observe(time.Since(start).Seconds())
	if err != nil {
		if !errors.Is(err, domain.ErrProductNotFound) {
			metrics.CatalogQueryErrors.WithLabelValues("detail").Inc()
			h.logger.Error("get product", "product_id", productID, "error", err)
		}
		c.JSON(http.StatusNotFound, gin.H{"error": errProductNotFound})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username": middleware.Username(c),
		"product":  toProductResponse(*product),
	})
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
