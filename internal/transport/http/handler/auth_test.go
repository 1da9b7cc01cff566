package handler_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lunorlabs/lunor/internal/domain"
	"github.com/lunorlabs/lunor/internal/transport/http/handler"
	"github.com/lunorlabs/lunor/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeAuthUsecase implements the unexported authUsecaser interface via method matching.
type fakeAuthUsecase struct {
	register   func(ctx context.Context, input usecase.RegisterInput) (string, error)
	login      func(ctx context.Context, username, password string) (string, error)
	account    func(ctx context.Context, username string) (*domain.User, []domain.Address, error)
	addAddress func(ctx context.Context, username string, input usecase.AddAddressInput) (*domain.Address, error)
}

func (f *fakeAuthUsecase) Register(ctx context.Context, input usecase.RegisterInput) (string, error) {
	return f.register(ctx, input)
}

func (f *fakeAuthUsecase) Login(ctx context.Context, username, password string) (string, error) {
	return f.login(ctx, username, password)
}

func (f *fakeAuthUsecase) Account(ctx context.Context, username string) (*domain.User, []domain.Address, error) {
	return f.account(ctx, username)
}

func (f *fakeAuthUsecase) AddAddress(ctx context.Context, username string, input usecase.AddAddressInput) (*domain.Address, error) {
	return f.addAddress(ctx, username, input)
}

func newAuthEngine(uc *fakeAuthUsecase) *gin.Engine {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	h := handler.NewAuthHandler(uc, logger)

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func responseCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	resp := http.Response{Header: w.Header()}
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ---- Register ----

func TestRegister_InvalidJSON_Returns400(t *testing.T) {
	w := postJSON(newAuthEngine(&fakeAuthUsecase{}), "/auth/register", `{bad json}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegister_InputValidation(t *testing.T) {
	cases := map[string]string{
		"short username": `{"username":"al","password":"secret1","country":"US"}`,
		"short password": `{"username":"alice","password":"12345","country":"US"}`,
		"short country":  `{"username":"alice","password":"secret1","country":"U"}`,
		"missing fields": `{"username":"alice"}`,
	}
	for name, body := range cases {
		w := postJSON(newAuthEngine(&fakeAuthUsecase{}), "/auth/register", body)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, w.Code)
		}
	}
}

func TestRegister_DuplicateUsername_Returns409(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, _ usecase.RegisterInput) (string, error) {
			return "", domain.ErrUserExists
		},
	}
	w := postJSON(newAuthEngine(uc), "/auth/register", `{"username":"alice","password":"secret1","country":"US"}`)
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
	if responseCookie(w, "token") != nil {
		t.Error("session cookie set on failed registration")
	}
}

func TestRegister_Success_SetsSessionCookie(t *testing.T) {
	uc := &fakeAuthUsecase{
		register: func(_ context.Context, input usecase.RegisterInput) (string, error) {
			if input.Username != "alice" || input.Password != "secret1" || input.Country != "US" {
				t.Errorf("unexpected input: %+v", input)
			}
			return "signed-token", nil
		},
	}
	w := postJSON(newAuthEngine(uc), "/auth/register", `{"username":"alice","password":"secret1","country":"US"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}

	cookie := responseCookie(w, "token")
	if cookie == nil {
		t.Fatal("no session cookie set")
	}
	if cookie.Value != "signed-token" {
		t.Errorf("cookie value = %q", cookie.Value)
	}
	if !cookie.HttpOnly {
		t.Error("session cookie is not HttpOnly")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax", cookie.SameSite)
	}
}

// ---- Login ----

func TestLogin_BadCredentials_Returns401WithoutCookie(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, _, _ string) (string, error) {
			return "", domain.ErrInvalidCredentials
		},
	}
	w := postJSON(newAuthEngine(uc), "/auth/login", `{"username":"alice","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if responseCookie(w, "token") != nil {
		t.Error("session cookie set on failed login")
	}
}

func TestLogin_InternalError_Returns500(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, _, _ string) (string, error) {
			return "", errors.New("db down")
		},
	}
	w := postJSON(newAuthEngine(uc), "/auth/login", `{"username":"alice","password":"secret1"}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}

func TestLogin_Success_SetsSessionCookie(t *testing.T) {
	uc := &fakeAuthUsecase{
		login: func(_ context.Context, username, password string) (string, error) {
			if username != "alice" || password != "secret1" {
				t.Errorf("unexpected credentials: %s/%s", username, password)
			}
			return "signed-token", nil
		},
	}
	w := postJSON(newAuthEngine(uc), "/auth/login", `{"username":"alice","password":"secret1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if cookie := responseCookie(w, "token"); cookie == nil || cookie.Value != "signed-token" {
		t.Errorf("session cookie = %v", cookie)
	}
}

// ---- Logout ----

func TestLogout_DeletesSessionCookie(t *testing.T) {
	w := postJSON(newAuthEngine(&fakeAuthUsecase{}), "/auth/logout", ``)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}

	cookie := responseCookie(w, "token")
	if cookie == nil {
		t.Fatal("no session cookie in response")
	}
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Errorf("cookie not cleared: value=%q maxAge=%d", cookie.Value, cookie.MaxAge)
	}
}
