package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/lunorlabs/lunor/internal/cart"
	"github.com/lunorlabs/lunor/internal/email"
)

// OrderUsecase turns a checkout into an order-notification email for the
// store. Orders are not persisted; the cart cookie is the only order state
// and the caller clears it regardless of what happens here.
type OrderUsecase struct {
	catalog  *CatalogUsecase
	email    email.Sender
	ordersTo string
}

func NewOrderUsecase(catalog *CatalogUsecase, sender email.Sender, ordersTo string) *OrderUsecase {
	return &OrderUsecase{catalog: catalog, email: sender, ordersTo: ordersTo}
}

// Checkout resolves the cart one last time and emails the summary to the
// store address. An empty cart is a no-op.
func (u *OrderUsecase) Checkout(ctx context.Context, username string, entries []cart.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	lines, err := u.catalog.CartView(ctx, entries)
	if err != nil {
		return fmt.Errorf("resolve cart for checkout: %w", err)
	}
	if len(lines) == 0 {
		return nil
	}

	if username == "" {
		username = "guest"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<p>New order from %s:</p><ul>", username)
	for _, l := range lines {
		price := l.Product.PriceUSD
		if l.Product.SalePriceUSD != nil {
			price = *l.Product.SalePriceUSD
		}
		fmt.Fprintf(&b, "<li>%d x %s (%s) at $%.2f</li>", l.Quantity, l.Product.Name, l.Product.Brand, price)
	}
	fmt.Fprintf(&b, "</ul><p>Total: $%.2f</p>", Total(lines))

	subject := fmt.Sprintf("New order from %s", username)
	if err := u.email.Send(ctx, u.ordersTo, subject, b.String()); err != nil {
		return fmt.Errorf("send order notification: %w", err)
	}
	return nil
}
