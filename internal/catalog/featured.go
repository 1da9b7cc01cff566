// Package catalog holds the in-process featured-products snapshot.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lunorlabs/lunor/internal/domain"
	"github.com/lunorlabs/lunor/internal/metrics"
	"github.com/lunorlabs/lunor/internal/repository"
	"github.com/robfig/cron/v3"
)

// FeaturedCache keeps the home-page featured products in memory and
// refreshes them on a cron schedule, so the landing page never waits on a
// catalog query.
type FeaturedCache struct {
	products repository.ProductRepository
	logger   *slog.Logger
	brand    string
	limit    int
	schedule cron.Schedule

	snapshot atomic.Pointer[[]domain.Product]
}

func NewFeaturedCache(products repository.ProductRepository, logger *slog.Logger, brand string, limit int, cronExpr string) (*FeaturedCache, error) {
	sched, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, fmt.Errorf("parse refresh schedule %q: %w", cronExpr, err)
	}

	c := &FeaturedCache{
		products: products,
		logger:   logger.With("component", "featured_cache"),
		brand:    brand,
		limit:    limit,
		schedule: sched,
	}
	empty := []domain.Product{}
	c.snapshot.Store(&empty)
	return c, nil
}

// Products returns the current snapshot. Never blocks on the database.
func (c *FeaturedCache) Products() []domain.Product {
	return *c.snapshot.Load()
}

// Start refreshes once immediately, then on the cron schedule until ctx is
// cancelled.
func (c *FeaturedCache) Start(ctx context.Context) {
	c.logger.Info("featured cache started", "brand", c.brand, "limit", c.limit)
	c.Refresh(ctx)

	for {
		timer := time.NewTimer(time.Until(c.schedule.Next(time.Now())))
		select {
		case <-ctx.Done():
			timer.Stop()
			c.logger.Info("featured cache shut down")
			return
		case <-timer.C:
			c.Refresh(ctx)
		}
	}
}

// Refresh replaces the snapshot with the current top-rated products. On
// query failure the previous snapshot keeps serving.
func (c *FeaturedCache) Refresh(ctx context.Context) {
	start := time.Now()
	products, err := c.products.TopRatedByBrand(ctx, c.brand, c.limit)
	metrics.FeaturedRefreshDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.logger.Error("featured refresh", "error", err)
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	c.snapshot.Store(&products)
}
