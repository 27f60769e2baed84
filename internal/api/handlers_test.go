package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"SmartWorth/internal/collector"
	"SmartWorth/internal/model"
	"SmartWorth/internal/recorder"
	"SmartWorth/internal/service"
	"SmartWorth/internal/similarity"
	"SmartWorth/internal/watchlist"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	rec, err := recorder.NewSQLiteRecorder(":memory:")
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	t.Cleanup(func() { rec.Close() })

	col := collector.NewCollector(nil, time.Second,
		&collector.MockFetcher{Source: "google", RawPrices: []string{"950 TL"}, Description: "iPhone 13 new model 2024"},
		&collector.MockFetcher{Source: "trendyol", RawPrices: []string{"1.050 TL", "1.000 TL"}},
	)
	wl, err := watchlist.NewManager(filepath.Join(t.TempDir(), "watchlist.json"), nil)
	if err != nil {
		t.Fatalf("watchlist: %v", err)
	}
	return NewRouter(service.New(col, rec), wl, Options{RateLimit: 1000})
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHealth(t *testing.T) {
	rr := do(t, newTestRouter(t), "GET", "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestAnalyzeAndLookup(t *testing.T) {
	h := newTestRouter(t)

	rr := do(t, h, "POST", "/api/v1/analyze", `{"name":"iPhone 13"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var res model.AnalysisResult
	if err := json.NewDecoder(rr.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.ID == "" || res.ValueScore != 65 || res.Product.Category != model.CategoryElectronics {
		t.Errorf("unexpected result %+v", res)
	}

	rr = do(t, h, "GET", "/api/v1/products/iphone%2013", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = do(t, h, "GET", "/api/v1/products", "")
	var list []model.ProductRecord
	json.NewDecoder(rr.Body).Decode(&list)
	if len(list) != 1 {
		t.Errorf("expected 1 product, got %d", len(list))
	}

	rr = do(t, h, "GET", "/api/v1/products/iPhone%2013/history?limit=2", "")
	var hist []model.HistoryEntry
	json.NewDecoder(rr.Body).Decode(&hist)
	if rr.Code != http.StatusOK || len(hist) != 2 {
		t.Errorf("expected 2 history rows, got %d (status %d)", len(hist), rr.Code)
	}

	rr = do(t, h, "GET", "/api/v1/products/iphone%2013/prices", "")
	var prices model.PricesBySource
	json.NewDecoder(rr.Body).Decode(&prices)
	if rr.Code != http.StatusOK || len(prices["google"]) != 1 || len(prices["trendyol"]) != 2 {
		t.Errorf("unexpected latest prices %v (status %d)", prices, rr.Code)
	}
}

func TestAnalyze_BadRequests(t *testing.T) {
	h := newTestRouter(t)
	if rr := do(t, h, "POST", "/api/v1/analyze", `not json`); rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad JSON, got %d", rr.Code)
	}
	if rr := do(t, h, "POST", "/api/v1/analyze", `{"name":"  "}`); rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty name, got %d", rr.Code)
	}
	if rr := do(t, h, "GET", "/api/v1/products/x/history?limit=abc", ""); rr.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for bad limit, got %d", rr.Code)
	}
}

func TestProductNotFound(t *testing.T) {
	h := newTestRouter(t)
	if rr := do(t, h, "GET", "/api/v1/products/nothing", ""); rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
	if rr := do(t, h, "GET", "/api/v1/products/nothing/prices", ""); rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 for prices, got %d", rr.Code)
	}
	if rr := do(t, h, "DELETE", "/api/v1/products/nothing", ""); rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}

func TestSimilarAndDelete(t *testing.T) {
	h := newTestRouter(t)
	do(t, h, "POST", "/api/v1/analyze", `{"name":"apple iphone 13"}`)
	do(t, h, "POST", "/api/v1/analyze", `{"name":"iphone 13 case"}`)

	rr := do(t, h, "GET", "/api/v1/similar?name=Apple+iPhone+13&limit=5", "")
	var matches []similarity.Match
	json.NewDecoder(rr.Body).Decode(&matches)
	if len(matches) != 1 || matches[0].Product.Name != "iphone 13 case" {
		t.Errorf("unexpected matches %+v", matches)
	}

	if rr := do(t, h, "DELETE", "/api/v1/products/iphone%2013%20case", ""); rr.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rr.Code)
	}
	rr = do(t, h, "GET", "/api/v1/similar?name=Apple+iPhone+13", "")
	if strings.TrimSpace(rr.Body.String()) != "[]" {
		t.Errorf("expected empty list, got %s", rr.Body.String())
	}
}

func TestWatchlistEndpoints(t *testing.T) {
	h := newTestRouter(t)
	if rr := do(t, h, "POST", "/api/v1/watchlist", `{"name":"Kindle"}`); rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	if rr := do(t, h, "POST", "/api/v1/watchlist", `{"name":"kindle"}`); rr.Code != http.StatusConflict {
		t.Errorf("expected 409, got %d", rr.Code)
	}
	rr := do(t, h, "GET", "/api/v1/watchlist", "")
	var items []model.TrackedProduct
	json.NewDecoder(rr.Body).Decode(&items)
	if len(items) != 1 || items[0].Name != "Kindle" {
		t.Errorf("unexpected watchlist %+v", items)
	}
	if rr := do(t, h, "DELETE", "/api/v1/watchlist/kindle", ""); rr.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rr.Code)
	}
	if rr := do(t, h, "DELETE", "/api/v1/watchlist/kindle", ""); rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := newTestRouter(t)
	req := httptest.NewRequest("OPTIONS", "/api/v1/products", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got == "" {
		t.Errorf("expected CORS header, got none (status %d)", rr.Code)
	}
}
