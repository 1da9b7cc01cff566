// Package cart encodes the client-held shopping cart. The whole cart lives
// in a cookie as a JSON array of entries; the server decodes it per request
// and writes it back when it changes, but never stores it.
package cart

import (
	"encoding/json"
	"fmt"
)

// CookieName is the cookie the cart travels in.
const CookieName = "cart"

// Bounds on client-supplied carts. The cookie is unsigned, so anything
// outside these limits is treated as tampering and dropped.
const (
	maxEntries  = 100
	maxQuantity = 99
)

// Entry is one line of the cart: a product reference and how many of it.
type Entry struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Decode parses a raw cart cookie value. Absent, malformed or out-of-bound
// input degrades to an empty cart; browsing must keep working no matter
// what the client sends, so this never returns an error.
func Decode(raw string) []Entry {
	if raw == "" {
		return []Entry{}
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return []Entry{}
	}

	out := make([]Entry, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.ProductID == "" || seen[e.ProductID] || e.Quantity < 1 {
			continue
		}
		if e.Quantity > maxQuantity {
			e.Quantity = maxQuantity
		}
		seen[e.ProductID] = true
		out = append(out, e)
		if len(out) == maxEntries {
			break
		}
	}
	return out
}

// Encode serializes entries back to the cookie representation.
// Decode(Encode(x)) == x for any cart Decode could have produced.
func Encode(entries []Entry) (string, error) {
	if entries == nil {
		entries = []Entry{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("encode cart: %w", err)
	}
	return string(b), nil
}

// Add returns a copy of entries with one more unit of productID: an existing
// entry has its quantity incremented, otherwise a new entry is appended. The
// result always holds at most one entry per product.
func Add(entries []Entry, productID string) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)

	for i := range out {
		if out[i].ProductID == productID {
			if out[i].Quantity < maxQuantity {
				out[i].Quantity++
			}
			return out
		}
	}
	return append(out, Entry{ProductID: productID, Quantity: 1})
}

// Clear returns the empty cart written back at checkout.
func Clear() []Entry {
	return []Entry{}
}

// IDs returns the product references in cart order, for the multi-ID
// catalog lookup.
func IDs(entries []Entry) []string {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ProductID)
	}
	return ids
}
