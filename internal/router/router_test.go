package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"reciclothes/internal/config"
	apperrors "reciclothes/internal/errors"
	"reciclothes/internal/handler"
	"reciclothes/internal/model"
	"reciclothes/internal/password"
	"reciclothes/internal/service"
)

type mockAuthService struct {
	mock.Mock
}

func (m *mockAuthService) Register(ctx context.Context, in service.RegisterInput) (*model.Account, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*model.Account, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

type mockProductService struct {
	mock.Mock
}

func (m *mockProductService) List(ctx context.Context) ([]model.ProductView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ProductView), args.Error(1)
}

// memoryAccounts backs the end-to-end scenario with the real auth service.
type memoryAccounts struct {
	byEmail map[string]model.Account
}

func (r *memoryAccounts) Create(_ context.Context, account *model.Account) error {
	account.ID = uint(len(r.byEmail) + 1)
	r.byEmail[account.Email] = *account
	return nil
}

func (r *memoryAccounts) FindByEmail(_ context.Context, email string) (*model.Account, error) {
	account, ok := r.byEmail[email]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return &account, nil
}

func newTestServer(t *testing.T, auth service.AuthService, products service.ProductService) *echo.Echo {
	t.Helper()

	publicDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "LogIn.html"), []byte("<h1>login</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "signup.html"), []byte("<h1>signup</h1>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(publicDir, "style.css"), []byte("body{}"), 0o644))

	cfg := &config.Config{PublicDir: publicDir, CORSAllowedOrigins: []string{"*"}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	e := echo.New()
	Register(e, cfg, logger,
		handler.NewAuthHandler(auth, logger),
		handler.NewProductHandler(products, logger),
		handler.NewPageHandler(publicDir),
	)
	return e
}

func doJSON(e *echo.Echo, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		payload, _ := json.Marshal(b)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) apperrors.Result {
	t.Helper()
	var res apperrors.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	return res
}

func TestSignup(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		setupMock  func(*mockAuthService)
		wantStatus int
		wantResult apperrors.Result
	}{
		{
			name: "success",
			body: map[string]string{"name": "A", "email": "a@x.com", "phone": "1", "address": "addr", "password": "secret"},
			setupMock: func(m *mockAuthService) {
				m.On("Register", mock.Anything, service.RegisterInput{
					Name: "A", Email: "a@x.com", Phone: "1", Address: "addr", Password: "secret",
				}).Return(&model.Account{ID: 1}, nil)
			},
			wantStatus: http.StatusOK,
			wantResult: apperrors.Result{Success: true, Message: "account registered successfully"},
		},
		{
			name:       "missing password",
			body:       map[string]string{"email": "a@x.com"},
			setupMock:  func(m *mockAuthService) {},
			wantStatus: http.StatusBadRequest,
			wantResult: apperrors.Result{Message: "password is required"},
		},
		{
			name:       "malformed body",
			body:       "{not json",
			setupMock:  func(m *mockAuthService) {},
			wantStatus: http.StatusBadRequest,
			wantResult: apperrors.Result{Message: "invalid request body"},
		},
		{
			name: "database failure is generic",
			body: map[string]string{"email": "a@x.com", "password": "secret"},
			setupMock: func(m *mockAuthService) {
				m.On("Register", mock.Anything, mock.Anything).Return(nil, errors.New("Error 1062: Duplicate entry 'a@x.com'"))
			},
			wantStatus: http.StatusInternalServerError,
			wantResult: apperrors.Result{Message: "server error"},
		},
		{
			name: "no row inserted",
			body: map[string]string{"email": "a@x.com", "password": "secret"},
			setupMock: func(m *mockAuthService) {
				m.On("Register", mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotInserted)
			},
			wantStatus: http.StatusInternalServerError,
			wantResult: apperrors.Result{Message: "server error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(mockAuthService)
			tt.setupMock(auth)
			e := newTestServer(t, auth, new(mockProductService))

			rec := doJSON(e, http.MethodPost, "/signup", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantResult, decodeResult(t, rec))
			auth.AssertExpectations(t)
		})
	}
}

func TestLogin(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantResult apperrors.Result
	}{
		{"success", nil, http.StatusOK, apperrors.Result{Success: true, Message: "login successful"}},
		{"not found", apperrors.ErrAccountNotFound, http.StatusBadRequest, apperrors.Result{Message: "user not found"}},
		{"wrong password", apperrors.ErrWrongPassword, http.StatusBadRequest, apperrors.Result{Message: "wrong password"}},
		{"uniform", apperrors.ErrInvalidCredentials, http.StatusBadRequest, apperrors.Result{Message: "invalid email or password"}},
		{"server error", errors.New("i/o timeout"), http.StatusInternalServerError, apperrors.Result{Message: "server error"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(mockAuthService)
			if tt.err != nil {
				auth.On("Login", mock.Anything, "a@x.com", "secret").Return(nil, tt.err)
			} else {
				auth.On("Login", mock.Anything, "a@x.com", "secret").Return(&model.Account{ID: 1}, nil)
			}
			e := newTestServer(t, auth, new(mockProductService))

			rec := doJSON(e, http.MethodPost, "/login", map[string]string{"email": "a@x.com", "password": "secret"})

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantResult, decodeResult(t, rec))
			auth.AssertExpectations(t)
		})
	}
}

func TestSignupLoginScenario(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	auth := service.NewAuthService(
		&memoryAccounts{byEmail: map[string]model.Account{}},
		password.NewBcryptHasher(bcrypt.MinCost),
		logger,
		service.AuthOptions{},
	)
	e := newTestServer(t, auth, new(mockProductService))

	rec := doJSON(e, http.MethodPost, "/signup", map[string]string{
		"name": "A", "email": "a@x.com", "phone": "1", "address": "addr", "password": "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeResult(t, rec).Success)

	rec = doJSON(e, http.MethodPost, "/login", map[string]string{"email": "a@x.com", "password": "secret"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeResult(t, rec).Success)

	rec = doJSON(e, http.MethodPost, "/login", map[string]string{"email": "a@x.com", "password": "wrong"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperrors.Result{Success: false, Message: "wrong password"}, decodeResult(t, rec))

	rec = doJSON(e, http.MethodPost, "/login", map[string]string{"email": "nobody@x.com", "password": "secret"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperrors.Result{Success: false, Message: "user not found"}, decodeResult(t, rec))
}

func TestListProducts(t *testing.T) {
	image := model.EncodeImage([]byte("png"))
	products := new(mockProductService)
	products.On("List", mock.Anything).Return([]model.ProductView{
		{ID: 1, Name: "Jacket", Price: model.Price{Decimal: decimal.RequireFromString("19.90")}, Category: "coats", Stock: 3, Image: image},
		{ID: 2, Name: "Scarf", Price: model.Price{Decimal: decimal.RequireFromString("5.00")}, Category: "accessories"},
	}, nil)
	e := newTestServer(t, new(mockAuthService), products)

	rec := doJSON(e, http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 2)
	assert.Equal(t, "cG5n", body[0]["image"])
	assert.Equal(t, "19.90", body[0]["price"])
	assert.Equal(t, "5.00", body[1]["price"])
	assert.Nil(t, body[1]["image"])
	assert.Contains(t, body[1], "image")
}

func TestListProducts_Error(t *testing.T) {
	products := new(mockProductService)
	products.On("List", mock.Anything).Return(nil, errors.New("Error 1146: Table 'Productos' doesn't exist"))
	e := newTestServer(t, new(mockAuthService), products)

	rec := doJSON(e, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apperrors.Result{Message: "server error"}, decodeResult(t, rec))
}

func TestPagesAndStatic(t *testing.T) {
	e := newTestServer(t, new(mockAuthService), new(mockProductService))

	rec := doJSON(e, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "login")

	rec = doJSON(e, http.MethodGet, "/signup", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "signup")

	rec = doJSON(e, http.MethodGet, "/style.css", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestRequestIDAndCORS(t *testing.T) {
	e := newTestServer(t, new(mockAuthService), new(mockProductService))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(echo.HeaderOrigin, "http://shop.test")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	assert.Equal(t, "*", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
}

func TestUnknownRouteRendersResult(t *testing.T) {
	e := newTestServer(t, new(mockAuthService), new(mockProductService))

	rec := doJSON(e, http.MethodDelete, "/login", nil)
	assert.Contains(t, []int{http.StatusNotFound, http.StatusMethodNotAllowed}, rec.Code)
	res := decodeResult(t, rec)
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Message)
}
