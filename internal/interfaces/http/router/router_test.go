package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appcart "github.com/solemart/backend/internal/application/cart"
	appcatalog "github.com/solemart/backend/internal/application/catalog"
	appcheckout "github.com/solemart/backend/internal/application/checkout"
	appidentity "github.com/solemart/backend/internal/application/identity"
	"github.com/solemart/backend/internal/domain/identity"
	"github.com/solemart/backend/internal/infrastructure/auth"
	"github.com/solemart/backend/internal/infrastructure/config"
	"github.com/solemart/backend/internal/infrastructure/persistence/memory"
	"github.com/solemart/backend/internal/interfaces/http/handler"
)

type testEnv struct {
	engine *gin.Engine
	store  *memory.Store
	hasher *auth.BcryptHasher
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.HTTP.CORSAllowOrigins = []string{}

	store := memory.NewStore()
	jwtService := auth.NewJWTService("router-test-secret", time.Hour, "solemart-backend")
	hasher := auth.NewBcryptHasher(4)
	locks := appcart.NewUserLocks()

	authService := appidentity.NewAuthService(store.Users(), jwtService, hasher)
	productService := appcatalog.NewProductService(store.Products())
	cartService := appcart.NewCartService(store.Carts(), store.Products(), locks)
	checkoutService := appcheckout.NewCheckoutService(store.Orders(), store.Carts(), store.Products(), locks)

	handlers := Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Product: handler.NewProductHandler(productService),
		Cart:    handler.NewCartHandler(cartService),
		Order:   handler.NewOrderHandler(checkoutService),
		System:  handler.NewSystemHandler(nil),
	}

	engine := New(cfg, zap.NewNop(), jwtService, handlers)
	return &testEnv{engine: engine, store: store, hasher: hasher}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	resp := decode(t, w)
	errInfo, ok := resp["error"].(map[string]any)
	require.True(t, ok, "response has no error object: %s", w.Body.String())
	code, _ := errInfo["code"].(string)
	return code
}

func (e *testEnv) registerUser(t *testing.T, username string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"username": username,
		"email":    username + "@example.com",
		"password": "s3cretpass",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	return data["token"].(string)
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	hash, err := e.hasher.Hash("adminpass1")
	require.NoError(t, err)
	admin, err := identity.NewUser("admin", "admin@example.com", hash)
	require.NoError(t, err)
	admin.IsAdmin = true
	require.NoError(t, e.store.Users().Save(context.Background(), admin))

	w := e.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"username": "admin",
		"password": "adminpass1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	return data["token"].(string)
}

func (e *testEnv) createProduct(t *testing.T, adminToken string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/products", adminToken, map[string]any{
		"name":     "Leather Boot",
		"price":    "50.00",
		"category": "men",
		"sizes":    []string{"41", "42"},
		"colors":   []string{"black"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	return data["id"].(string)
}

func TestAuthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	t.Run("register and me", func(t *testing.T) {
		token := env.registerUser(t, "alice")

		w := env.do(t, http.MethodGet, "/api/v1/auth/me", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w)["data"].(map[string]any)
		assert.Equal(t, "alice", data["username"])
		assert.Equal(t, false, data["is_admin"])
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
			"username": "alice", "email": "other@example.com", "password": "s3cretpass",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "ERR_ALREADY_EXISTS", errorCode(t, w))
	})

	t.Run("bad login", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
			"username": "alice", "password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("me without token", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestProductEndpoints(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminToken(t)
	user := env.registerUser(t, "bob")

	productID := env.createProduct(t, admin)

	t.Run("public listing", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/products?category=men", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode(t, w)
		items := resp["data"].([]any)
		require.Len(t, items, 1)
		meta := resp["meta"].(map[string]any)
		assert.Equal(t, float64(1), meta["total"])
	})

	t.Run("public get by id", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/products/"+productID, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w)["data"].(map[string]any)
		assert.Equal(t, "Leather Boot", data["name"])
		assert.Equal(t, "50.00", data["price"])
	})

	t.Run("create requires admin", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/products", user, map[string]any{
			"name": "X", "price": "1.00", "category": "men",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = env.do(t, http.MethodPost, "/api/v1/products", "", map[string]any{
			"name": "X", "price": "1.00", "category": "men",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("admin partial update", func(t *testing.T) {
		w := env.do(t, http.MethodPatch, "/api/v1/products/"+productID, admin, map[string]any{
			"discount_percentage": 20,
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		data := decode(t, w)["data"].(map[string]any)
		assert.Equal(t, "40.00", data["effective_price"])
		assert.Equal(t, "Leather Boot", data["name"])
	})

	t.Run("unknown category filter", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/products?category=hats", "", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCartEndpoints(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminToken(t)
	productID := env.createProduct(t, admin)
	alice := env.registerUser(t, "alice")
	mallory := env.registerUser(t, "mallory")

	addItem := func(token string, size string, qty int) *httptest.ResponseRecorder {
		return env.do(t, http.MethodPost, "/api/v1/cart/items", token, map[string]any{
			"product_id": productID, "size": size, "color": "black", "quantity": qty,
		})
	}

	t.Run("same variant merges into one line", func(t *testing.T) {
		w := addItem(alice, "42", 1)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		w = addItem(alice, "42", 2)
		require.Equal(t, http.StatusCreated, w.Code)

		w = env.do(t, http.MethodGet, "/api/v1/cart", alice, nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w)["data"].(map[string]any)
		items := data["items"].([]any)
		require.Len(t, items, 1)
		line := items[0].(map[string]any)
		assert.Equal(t, float64(3), line["quantity"])
		assert.Equal(t, "150.00", data["total"])
	})

	t.Run("different size is a separate line", func(t *testing.T) {
		w := addItem(alice, "41", 1)
		require.Equal(t, http.StatusCreated, w.Code)

		w = env.do(t, http.MethodGet, "/api/v1/cart", alice, nil)
		data := decode(t, w)["data"].(map[string]any)
		assert.Len(t, data["items"].([]any), 2)
	})

	t.Run("variant not offered", func(t *testing.T) {
		w := addItem(alice, "45", 1)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_INVALID_VARIANT", errorCode(t, w))
	})

	t.Run("foreign line is forbidden", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/cart", alice, nil)
		data := decode(t, w)["data"].(map[string]any)
		lineID := data["items"].([]any)[0].(map[string]any)["id"].(string)

		w = env.do(t, http.MethodPut, "/api/v1/cart/items/"+lineID, mallory, map[string]any{
			"quantity": 1,
		})
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = env.do(t, http.MethodDelete, "/api/v1/cart/items/"+lineID, mallory, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		w := env.do(t, http.MethodDelete, "/api/v1/cart", mallory, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		w = env.do(t, http.MethodDelete, "/api/v1/cart", mallory, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestOrderEndpoints(t *testing.T) {
	env := newTestEnv(t)
	admin := env.adminToken(t)
	productID := env.createProduct(t, admin)
	alice := env.registerUser(t, "alice")
	mallory := env.registerUser(t, "mallory")

	w := env.do(t, http.MethodPost, "/api/v1/cart/items", alice, map[string]any{
		"product_id": productID, "size": "42", "color": "black", "quantity": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var orderID string

	t.Run("place order freezes prices and clears cart", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/orders", alice, map[string]any{
			"shipping_address": "1 Main St, Springfield",
			"payment_details":  "tok_4242-opaque-blob",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		data := decode(t, w)["data"].(map[string]any)
		orderID = data["id"].(string)
		assert.Equal(t, "pending", data["status"])
		assert.Equal(t, "100.00", data["total_amount"])
		assert.NotContains(t, data, "payment_details")

		cartResp := env.do(t, http.MethodGet, "/api/v1/cart", alice, nil)
		cartData := decode(t, cartResp)["data"].(map[string]any)
		assert.Empty(t, cartData["items"])
	})

	t.Run("later price changes do not touch placed orders", func(t *testing.T) {
		w := env.do(t, http.MethodPatch, "/api/v1/products/"+productID, admin, map[string]any{
			"price": "80.00",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = env.do(t, http.MethodGet, "/api/v1/orders/"+orderID, alice, nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := decode(t, w)["data"].(map[string]any)
		assert.Equal(t, "100.00", data["total_amount"])
		items := data["items"].([]any)
		require.Len(t, items, 1)
		assert.Equal(t, "50.00", items[0].(map[string]any)["unit_price"])
	})

	t.Run("empty cart cannot be ordered", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/orders", alice, map[string]any{
			"shipping_address": "1 Main St",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "ERR_EMPTY_CART", errorCode(t, w))
	})

	t.Run("owner reads own order, stranger gets 404", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/orders/"+orderID, alice, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = env.do(t, http.MethodGet, "/api/v1/orders/"+orderID, mallory, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = env.do(t, http.MethodGet, "/api/v1/orders/"+orderID, admin, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("status transitions are admin-only and checked", func(t *testing.T) {
		w := env.do(t, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", alice, map[string]any{
			"status": "processing",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = env.do(t, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", admin, map[string]any{
			"status": "delivered",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		w = env.do(t, http.MethodPatch, "/api/v1/orders/"+orderID+"/status", admin, map[string]any{
			"status": "processing",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		data := decode(t, w)["data"].(map[string]any)
		assert.Equal(t, "processing", data["status"])
	})

	t.Run("listing is scoped to the caller", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/orders", mallory, nil)
		require.Equal(t, http.StatusOK, w.Code)
		meta := decode(t, w)["meta"].(map[string]any)
		assert.Equal(t, float64(0), meta["total"])

		w = env.do(t, http.MethodGet, "/api/v1/orders", admin, nil)
		require.Equal(t, http.StatusOK, w.Code)
		meta = decode(t, w)["meta"].(map[string]any)
		assert.Equal(t, float64(1), meta["total"])
	})
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
