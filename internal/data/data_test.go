package data

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"str-underwriter/internal/model"
)

func TestExtractZPID(t *testing.T) {
	got, err := ExtractZPID("https://www.zillow.com/homedetails/123-Main-St-Austin-TX-78701/2077829465_zpid/")
	if err != nil {
		t.Fatalf("ExtractZPID: %v", err)
	}
	if got != "2077829465" {
		t.Errorf("ExtractZPID: got %q, want %q", got, "2077829465")
	}

	for _, bad := range []string{"", "https://www.zillow.com/homes/Austin", "https://example.com/abc_zpid"} {
		if _, err := ExtractZPID(bad); !errors.Is(err, ErrNoZPID) {
			t.Errorf("ExtractZPID(%q): got %v, want ErrNoZPID", bad, err)
		}
	}
}

const sampleListing = `{
	"zpid": 2077829465,
	"address": {"streetAddress": "123 Main St", "city": "Austin", "state": "TX", "zipcode": "78701"},
	"price": 500000,
	"bedrooms": 3,
	"bathrooms": 2,
	"livingArea": 1800,
	"propertyTaxRate": 1.8,
	"hoaFee": null,
	"taxAssessedValue": 420000
}`

func TestFetchProperty(t *testing.T) {
	var gotKey, gotHost, gotZPID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-RapidAPI-Key")
		gotHost = r.Header.Get("X-RapidAPI-Host")
		gotZPID = r.URL.Query().Get("zpid")
		if r.URL.Path != "/property" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleListing))
	}))
	defer srv.Close()

	c := NewZillowClient("test-key-123", srv.URL)
	p, err := c.FetchByURL(context.Background(), "https://www.zillow.com/homedetails/x/2077829465_zpid/")
	if err != nil {
		t.Fatalf("FetchByURL: %v", err)
	}
	if gotKey != "test-key-123" || gotHost != zillowRapidAPIHost || gotZPID != "2077829465" {
		t.Errorf("request headers/query: key %q host %q zpid %q", gotKey, gotHost, gotZPID)
	}
	if p.ZPID != "2077829465" {
		t.Errorf("ZPID: got %q", p.ZPID)
	}
	if p.Address != "123 Main St, Austin, TX 78701" {
		t.Errorf("Address: got %q", p.Address)
	}
	if p.Price != 500000 || p.TaxAssessedValue != 420000 || p.HOAFee != 0 {
		t.Errorf("Property: got %+v", p)
	}
	if tax := p.AnnualPropertyTax(model.DefaultTaxRate, model.DefaultAssessedValue); tax != 6300 {
		t.Errorf("AnnualPropertyTax: got %v, want 6300", tax)
	}
}

func TestFetchPropertyErrors(t *testing.T) {
	cases := []struct {
		status int
		code   string
	}{
		{http.StatusForbidden, "INVALID_API_KEY"},
		{http.StatusUnauthorized, "UNAUTHORIZED"},
		{http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED"},
		{http.StatusNotFound, "PROPERTY_NOT_FOUND"},
		{http.StatusInternalServerError, "API_ERROR"},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Retry-After", "30")
			w.WriteHeader(tc.status)
		}))
		c := NewZillowClient("test-key-123", srv.URL)
		_, err := c.FetchProperty(context.Background(), "1")
		srv.Close()

		var lerr *LookupError
		if !errors.As(err, &lerr) {
			t.Errorf("status %d: got %v, want *LookupError", tc.status, err)
			continue
		}
		if lerr.Code != tc.code || lerr.StatusCode != tc.status {
			t.Errorf("status %d: got code %q status %d, want %q", tc.status, lerr.Code, lerr.StatusCode, tc.code)
		}
		if tc.status == http.StatusTooManyRequests && lerr.RetryAfter != "30" {
			t.Errorf("RetryAfter: got %q, want 30", lerr.RetryAfter)
		}
	}
}

func TestFetchPropertyMissingKey(t *testing.T) {
	_, err := NewZillowClient("  ", "").FetchProperty(context.Background(), "1")
	var lerr *LookupError
	if !errors.As(err, &lerr) || lerr.Code != "MISSING_API_KEY" {
		t.Fatalf("got %v, want MISSING_API_KEY", err)
	}
}

func TestLoadPropertyJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listing.json")
	raw := `{"zpid": "42", "address": "1 Beach Rd, Destin, FL", "price": 750000, "hoaFee": 120}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := LoadPropertyJSON(path)
	if err != nil {
		t.Fatalf("LoadPropertyJSON: %v", err)
	}
	if p.ZPID != "42" || p.Address != "1 Beach Rd, Destin, FL" || p.Price != 750000 || p.HOAFee != 120 {
		t.Errorf("Property: got %+v", p)
	}
	if tax := p.AnnualPropertyTax(model.DefaultTaxRate, model.DefaultAssessedValue); tax != 90 {
		t.Errorf("AnnualPropertyTax fallback: got %v, want 90", tax)
	}
}

func TestResponseCache(t *testing.T) {
	c := NewResponseCache(time.Hour)
	if _, ok := c.Get("1"); ok {
		t.Fatal("empty cache returned a hit")
	}
	c.Set("1", &model.Property{ZPID: "1"})
	if p, ok := c.Get("1"); !ok || p.ZPID != "1" {
		t.Fatalf("Get after Set: got %v %v", p, ok)
	}
	c.purgeExpired(time.Now().Add(2 * time.Hour))
	if _, ok := c.Get("1"); ok {
		t.Error("expired entry survived purge")
	}

	c.Set("2", &model.Property{ZPID: "2"})
	c.Clear()
	if _, ok := c.Get("2"); ok {
		t.Error("entry survived Clear")
	}

	var nilCache *ResponseCache
	nilCache.Set("1", &model.Property{})
	if _, ok := nilCache.Get("1"); ok {
		t.Error("nil cache returned a hit")
	}
}

func TestFetchPropertyCacheScopedToKey(t *testing.T) {
	t.Setenv("ENABLE_PROPERTY_CACHE", "true")
	t.Setenv("API_ENV", "development")
	cache := GetCache()
	if cache == nil {
		t.Fatal("cache not enabled")
	}
	cache.Clear()
	t.Cleanup(cache.Clear)

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Header.Get("X-RapidAPI-Key") != "good" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"zpid": 555, "price": 300000}`))
	}))
	defer srv.Close()

	good := NewZillowClient("good", srv.URL)
	for i := 0; i < 2; i++ {
		p, err := good.FetchProperty(context.Background(), "555")
		if err != nil {
			t.Fatalf("FetchProperty #%d: %v", i, err)
		}
		if p.Price != 300000 {
			t.Errorf("price: got %v, want 300000", p.Price)
		}
	}
	if calls != 1 {
		t.Errorf("upstream calls after cached fetch: got %d, want 1", calls)
	}

	_, err := NewZillowClient("wrong", srv.URL).FetchProperty(context.Background(), "555")
	var lerr *LookupError
	if !errors.As(err, &lerr) || lerr.Code != "INVALID_API_KEY" {
		t.Fatalf("wrong key: got %v, want INVALID_API_KEY", err)
	}
	if calls != 2 {
		t.Errorf("upstream calls: got %d, want 2 (wrong key must not hit the cache)", calls)
	}
}
