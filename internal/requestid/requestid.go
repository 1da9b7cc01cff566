// Package requestid carries a per-request correlation ID through contexts.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header the ID travels in, both directions.
const Header = "X-Request-ID"

type ctxKey struct{}

// New returns a fresh random ID.
func New() string {
	return uuid.NewString()
}

// Into attaches the request ID to ctx.
func Into(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// From returns the request ID stored in ctx, or "" when there is none.
func From(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
