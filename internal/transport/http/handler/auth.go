package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lunorlabs/lunor/internal/domain"
	"github.com/lunorlabs/lunor/internal/transport/http/middleware"
	"github.com/lunorlabs/lunor/internal/usecase"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, input usecase.RegisterInput) (string, error)
	Login(ctx context.Context, username, password string) (string, error)
	Account(ctx context.Context, username string) (*domain.User, []domain.Address, error)
	AddAddress(ctx context.Context, username string, input usecase.AddAddressInput) (*domain.Address, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6"`
	Country  string `json:"country"  binding:"required,min=2,max=50"`
}

// POST /auth/register
// Creates the account and logs it in by setting the session cookie.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authUsecase.Register(c.Request.Context(), usecase.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Country:  req.Country,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": errUserExists})
			return
		}
		h.logger.Error("register", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	setSessionCookie(c, token)
	c.JSON(http.StatusCreated, gin.H{"username": req.Username})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /auth/login
// Never reveals whether the username or the password was wrong.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.authUsecase.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": errInvalidCredentials})
			return
		}
		h.logger.Error("login", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	setSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"username": req.Username})
}

// POST /auth/logout
// Deletes the session cookie unconditionally; the token itself cannot be
// revoked and simply ages out.
func (h *AuthHandler) Logout(c *gin.Context) {
	clearSessionCookie(c)
	c.Status(http.StatusNoContent)
}

type addressResponse struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Street     string  `json:"street"`
	City       string  `json:"city"`
	PostalCode *string `json:"postal_code,omitempty"`
	Country    string  `json:"country"`
}

type accountResponse struct {
	Username  string            `json:"username"`
	Country   string            `json:"country"`
	CreatedAt time.Time         `json:"created_at"`
	Addresses []addressResponse `json:"addresses"`
}

// GET /account. Requires a session.
func (h *AuthHandler) Account(c *gin.Context) {
	username := middleware.Username(c)

	user, addrs, err := h.authUsecase.Account(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Valid token for an account that no longer exists.
			clearSessionCookie(c)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		h.logger.Error("account", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	resp := accountResponse{
		Username:  user.Username,
		Country:   user.Country,
		CreatedAt: user.CreatedAt,
		Addresses: make([]addressResponse, 0, len(addrs)),
	}
	for _, a := range addrs {
		resp.Addresses = append(resp.Addresses, addressResponse{
			ID:         a.ID,
			Title:      a.Title,
			Street:     a.Street,
			City:       a.City,
			PostalCode: a.PostalCode,
			Country:    a.Country,
		})
	}
	c.JSON(http.StatusOK, resp)
}

type addAddressRequest struct {
	Title      string  `json:"title"       binding:"required"`
	Street     string  `json:"street"      binding:"required"`
	City       string  `json:"city"        binding:"required"`
	PostalCode *string `json:"postal_code"`
	Country    string  `json:"country"     binding:"required,min=2,max=50"`
}

// POST /account/addresses. Requires a session.
func (h *AuthHandler) AddAddress(c *gin.Context) {
	var req addAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	addr, err := h.authUsecase.AddAddress(c.Request.Context(), middleware.Username(c), usecase.AddAddressInput{
		Title:      req.Title,
		Street:     req.Street,
		City:       req.City,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	})
	if err != nil {
		h.logger.Error("add address", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": errInternalServer})
		return
	}

	c.JSON(http.StatusCreated, addressResponse{
		ID:         addr.ID,
		Title:      addr.Title,
		Street:     addr.Street,
		City:       addr.City,
		PostalCode: addr.PostalCode,
		Country:    addr.Country,
	})
}
