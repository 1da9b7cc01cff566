package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lunorlabs/lunor/internal/cart"
	"github.com/lunorlabs/lunor/internal/metrics"
	"github.com/lunorlabs/lunor/internal/transport/http/middleware"
	"github.com/lunorlabs/lunor/internal/usecase"
)

type CartHandler struct {
	catalogUsecase *usecase.CatalogUsecase
	orderUsecase   *usecase.OrderUsecase
	logger         *slog.Logger
	cookieMaxAge   int
}

func NewCartHandler(catalogUsecase *usecase.CatalogUsecase, orderUsecase *usecase.OrderUsecase, logger *slog.Logger, cookieMaxAge int) *CartHandler {
	return &CartHandler{
		catalogUsecase: catalogUsecase,
		orderUsecase:   orderUsecase,
		logger:         logger.With("component", "cart_handler"),
		cookieMaxAge:   cookieMaxAge,
	}
}

type cartItemResponse struct {
	ProductID    string   `json:"product_id"`
	Name         string   `json:"name"`
	Brand        string   `json:"brand"`
	PriceUSD     float64  `json:"price_usd"`
	SalePriceUSD *float64 `json:"sale_price_usd,omitempty"`
	ImageURL     *string  `json:"image_url,omitempty"`
	Quantity     int      `json:"quantity"`
}

type cartResponse struct {
	Username string             `json:"username,omitempty"`
	Items    []cartItemResponse `json:"items"`
	Total    float64            `json:"total"`
}

// GET /cart
// A failing product lookup degrades to an empty cart view; the cookie is
// left untouched so the cart comes back once the catalog does.
func (h *CartHandler) View(c *gin.Context) {
	entries := readCart(c)

	start := time.Now()
	lines, err := h.catalogUsecase.CartView(c.Request.Context(), entries)
	metrics.CatalogQueryDuration.WithLabelValues("cart").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.CatalogQueryErrors.WithLabelValues("cart").Inc()
		h.logger.Error("resolve cart", "error", err)
		lines = nil
	}

	resp := cartResponse{
		Username: middleware.Username(c),
		Items:    make([]cartItemResponse, 0, len(lines)),
		Total:    usecase.Total(lines),
	}
	for _, l := range lines {
		resp.Items = append(resp.Items, cartItemResponse{
			ProductID:    l.Product.ID,
			Name:         l.Product.Name,
			Brand:        l.Product.Brand,
			PriceUSD:     l.Product.PriceUSD,
			SalePriceUSD: l.Product.SalePriceUSD,
			ImageURL:     l.Product.ImageURL,
			Quantity:     l.Quantity,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// POST /cart/items/:id
// Adds one unit of the product and writes the cart cookie back. The product
// is not checked against the catalog here; unknown ids are simply dropped
// when the cart is viewed.
func (h *CartHandler) Add(c *gin.Context) {
	productID := c.Param("id")

	entries := cart.Add(readCart(c), productID)
	writeCart(c, entries, h.cookieMaxAge)
	metrics.CartAddsTotal.Inc()

	c.JSON(http.StatusOK, gin.H{"cart": entries})
}

// POST /checkout
// Clears the cart cookie. The order notification is best-effort: a failure
// is logged and must never block the checkout.
func (h *CartHandler) Checkout(c *gin.Context) {
	entries := readCart(c)

	if err := h.orderUsecase.Checkout(c.Request.Context(), middleware.Username(c), entries); err != nil {
		h.logger.Error("order notification", "error", err)
	}

	writeCart(c, cart.Clear(), h.cookieMaxAge)
	metrics.CheckoutsTotal.Inc()
	c.Status(http.StatusOK)
}
