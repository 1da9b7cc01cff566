package httptransport

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/lunorlabs/lunor/internal/session"
	"github.com/lunorlabs/lunor/internal/transport/http/handler"
	"github.com/lunorlabs/lunor/internal/transport/http/middleware"
	sloggin "github.com/samber/slog-gin"
)

func NewRouter(
	logger *slog.Logger,
	auth *session.Authenticator,
	authHandler *handler.AuthHandler,
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.Security())
	r.Use(middleware.Session(auth))

	// Storefront
	r.GET("/", catalogHandler.Home)
	r.GET("/shop", catalogHandler.List)
	r.GET("/products/:id", catalogHandler.Detail)

	// Cart
	r.GET("/cart", cartHandler.View)
	r.POST("/cart/items/:id", cartHandler.Add)
	r.POST("/checkout", cartHandler.Checkout)

	// Auth
	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/login", authHandler.Login)
	r.POST("/auth/logout", authHandler.Logout)

	// Account
	account := r.Group("/account", middleware.RequireUser())
	account.GET("", authHandler.Account)
	account.POST("/addresses", authHandler.AddAddress)

	return r
}
