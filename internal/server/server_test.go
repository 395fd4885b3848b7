package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pkrstore/storefront-backend/internal/service"
	"github.com/pkrstore/storefront-backend/internal/storage/memory"
	"github.com/pkrstore/storefront-backend/pkg/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupRouter builds a memory-only router with a throwaway frontend
// asset, the shape the process has when no database is configured.
func setupRouter(t *testing.T, seedDemo bool) *gin.Engine {
	t.Helper()

	webRoot := t.TempDir()
	index := []byte("<!DOCTYPE html><html><body>storefront</body></html>")
	if err := os.WriteFile(filepath.Join(webRoot, "index.html"), index, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 5000, WebRoot: webRoot},
		JWT: config.JWTConfig{
			Secret:      "test-secret",
			ExpiryHours: 1,
			Issuer:      "storefront-backend",
		},
		Admin: config.AdminConfig{
			Email:     "admin@pkrstore.com",
			Passwords: []string{"password123"},
		},
	}

	logger := zap.NewNop()
	session := memory.NewStore(seedDemo)
	services := service.NewServices(nil, session, cfg, logger)
	return NewRouter(cfg, services, logger)
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, router *gin.Engine) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/api/admin/login", "",
		map[string]string{"email": "admin@pkrstore.com", "password": "password123"})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	return resp["token"]
}

func TestProductLifecycle(t *testing.T) {
	router := setupRouter(t, false)
	token := login(t, router)

	// Create as admin.
	w := doJSON(t, router, http.MethodPost, "/api/products", token,
		map[string]any{"name": "Test Watch", "price": 45000, "image": "https://example.com/w.jpg"})
	if w.Code != http.StatusOK {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	var created map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	id, _ := created["_id"].(string)
	if id == "" {
		t.Fatal("create returned no id")
	}
	if created["inStock"] != true {
		t.Error("created product should be in stock")
	}

	// Public listing includes it.
	w = doJSON(t, router, http.MethodGet, "/api/products", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d", w.Code)
	}
	var products []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &products); err != nil {
		t.Fatal(err)
	}
	if len(products) != 1 || products[0]["_id"] != id {
		t.Fatalf("listing should include the created product, got %v", products)
	}

	// Toggle twice restores the original value.
	w = doJSON(t, router, http.MethodPatch, "/api/products/"+id+"/stock", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("toggle: %d %s", w.Code, w.Body.String())
	}
	var toggled map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &toggled)
	if toggled["inStock"] != false {
		t.Error("first toggle should take the product out of stock")
	}
	w = doJSON(t, router, http.MethodPatch, "/api/products/"+id+"/stock", token, nil)
	_ = json.Unmarshal(w.Body.Bytes(), &toggled)
	if toggled["inStock"] != true {
		t.Error("second toggle should restore stock")
	}

	// Delete, then the listing is empty, then deleting again is 404.
	w = doJSON(t, router, http.MethodDelete, "/api/products/"+id, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, router, http.MethodGet, "/api/products", "", nil)
	_ = json.Unmarshal(w.Body.Bytes(), &products)
	if len(products) != 0 {
		t.Errorf("listing should be empty after delete, got %d items", len(products))
	}
	w = doJSON(t, router, http.MethodDelete, "/api/products/"+id, token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("repeat delete = %d, want 404", w.Code)
	}
}

func TestOrderFlow(t *testing.T) {
	router := setupRouter(t, false)

	// Anonymous order intake applies the surcharge.
	w := doJSON(t, router, http.MethodPost, "/api/orders", "", map[string]any{
		"customerName": "Ali",
		"address":      "Street 1",
		"phone":        "0300",
		"city":         "Lahore",
		"productName":  "Test Watch",
		"productPrice": 5000,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create order: %d %s", w.Code, w.Body.String())
	}
	var order map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &order); err != nil {
		t.Fatal(err)
	}
	if order["totalPrice"] != float64(5300) {
		t.Errorf("totalPrice = %v, want 5300", order["totalPrice"])
	}

	// Listing requires the admin gate.
	w = doJSON(t, router, http.MethodGet, "/api/orders", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous order listing = %d, want 401", w.Code)
	}

	token := login(t, router)
	w = doJSON(t, router, http.MethodGet, "/api/orders", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin order listing: %d %s", w.Code, w.Body.String())
	}
	var orders []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &orders); err != nil {
		t.Fatal(err)
	}
	if len(orders) != 1 || orders[0]["customerName"] != "Ali" {
		t.Errorf("order listing should include the created order, got %v", orders)
	}
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	router := setupRouter(t, true)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/products"},
		{http.MethodPatch, "/api/products/m1/stock"},
		{http.MethodDelete, "/api/products/m1"},
		{http.MethodGet, "/api/orders"},
	}

	for _, p := range paths {
		w := doJSON(t, router, p.method, p.path, "", map[string]any{"name": "x"})
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s = %d, want 401", p.method, p.path, w.Code)
		}
	}

	// The failed mutations left no side effects.
	w := doJSON(t, router, http.MethodGet, "/api/products", "", nil)
	var products []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &products)
	if len(products) != 3 {
		t.Errorf("seed catalog changed by rejected requests: %d items", len(products))
	}
}

func TestLoginAliasPath(t *testing.T) {
	router := setupRouter(t, false)

	w := doJSON(t, router, http.MethodPost, "/admin/login", "",
		map[string]string{"email": "admin@pkrstore.com", "password": "password123"})
	if w.Code != http.StatusOK {
		t.Errorf("bare login path = %d, want 200", w.Code)
	}
}

func TestStatus(t *testing.T) {
	router := setupRouter(t, false)

	w := doJSON(t, router, http.MethodGet, "/api/status", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var status map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatal(err)
	}
	if status["db"] != false {
		t.Errorf("db = %v, want false without durable storage", status["db"])
	}
}

func TestFrontendCatchAll(t *testing.T) {
	router := setupRouter(t, false)

	w := doJSON(t, router, http.MethodGet, "/checkout", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("catch-all = %d, want 200", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("storefront")) {
		t.Error("catch-all should serve the frontend asset")
	}

	// Unmatched API paths stay JSON 404s.
	w = doJSON(t, router, http.MethodGet, "/api/nope", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown api path = %d, want 404", w.Code)
	}
}
