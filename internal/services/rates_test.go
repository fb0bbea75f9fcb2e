package services

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"converter-backend/internal/models"
)

func fixedNow() time.Time {
	return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
}

func newTestRateService(t *testing.T, handler http.HandlerFunc) (*RateService, *int32) {
	t.Helper()

	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	s := NewRateService("test-key")
	s.baseURL = srv.URL
	s.now = fixedNow
	return s, &calls
}

func ratesJSON() string {
	return `{"disclaimer":"","license":"","timestamp":1770000000,"base":"USD","rates":{"EUR":0.9,"GBP":0.8,"JPY":150.0}}`
}

func staleTable(age time.Duration) *models.RateTable {
	return &models.RateTable{
		Base:      "USD",
		Rates:     map[string]float64{"EUR": 0.85, "GBP": 0.75},
		FetchedAt: fixedNow().Add(-age),
	}
}

func TestGetRatesCachesWithinWindow(t *testing.T) {
	s, calls := newTestRateService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(ratesJSON()))
	})

	first, err := s.GetRates(context.Background())
	if err != nil {
		t.Fatalf("first GetRates failed: %v", err)
	}
	second, err := s.GetRates(context.Background())
	if err != nil {
		t.Fatalf("second GetRates failed: %v", err)
	}

	if *calls != 1 {
		t.Errorf("expected exactly one upstream call, got %d", *calls)
	}
	if first != second {
		t.Error("expected the identical cached table on the second call")
	}
	if first.Base != "USD" || first.Rates["EUR"] != 0.9 {
		t.Errorf("unexpected table contents: %+v", first)
	}
}

func TestGetRatesRateLimitReturnsFreshCache(t *testing.T) {
	s, calls := newTestRateService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	s.cached = staleTable(30 * time.Minute)

	table, err := s.GetRates(context.Background())
	if err != nil {
		t.Fatalf("GetRates failed: %v", err)
	}
	if table.Rates["EUR"] != 0.85 {
		t.Errorf("expected cached rates, got %+v", table)
	}
	// 30 minutes old is still fresh, so no upstream call at all
	if *calls != 0 {
		t.Errorf("expected no upstream calls for a fresh cache, got %d", *calls)
	}
}

func TestGetRatesRateLimitReturnsExpiredCache(t *testing.T) {
	s, calls := newTestRateService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	s.cached = staleTable(90 * time.Minute)

	table, err := s.GetRates(context.Background())
	if err != nil {
		t.Fatalf("expected stale fallback, got error: %v", err)
	}
	if table.Rates["EUR"] != 0.85 {
		t.Errorf("expected the stale table, got %+v", table)
	}
	if *calls != 1 {
		t.Errorf("expected one upstream attempt, got %d", *calls)
	}
}

func TestGetRatesRateLimitWithoutCacheFails(t *testing.T) {
	s, _ := newTestRateService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	if _, err := s.GetRates(context.Background()); !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestGetRatesUnauthorizedNeverFallsBack(t *testing.T) {
	s, _ := newTestRateService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	s.cached = staleTable(90 * time.Minute)

	if _, err := s.GetRates(context.Background()); !errors.Is(err, ErrInvalidRatesAPIKey) {
		t.Fatalf("expected ErrInvalidRatesAPIKey, got %v", err)
	}
}

func TestGetRatesServerErrorFallsBackToCache(t *testing.T) {
	s, _ := newTestRateService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	s.cached = staleTable(90 * time.Minute)

	table, err := s.GetRates(context.Background())
	if err != nil {
		t.Fatalf("expected stale fallback, got error: %v", err)
	}
	if table.Rates["GBP"] != 0.75 {
		t.Errorf("expected the stale table, got %+v", table)
	}
}

func TestGetRatesMissingAPIKey(t *testing.T) {
	s := NewRateService("")
	s.now = fixedNow

	if _, err := s.GetRates(context.Background()); !errors.Is(err, ErrMissingRatesAPIKey) {
		t.Fatalf("expected ErrMissingRatesAPIKey, got %v", err)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	s := NewRateService("test-key")
	s.now = fixedNow
	s.cached = &models.RateTable{
		Base:      "USD",
		Rates:     map[string]float64{"EUR": 0.9, "GBP": 0.8},
		FetchedAt: fixedNow(),
	}

	amount := 123.45
	forward, err := s.Convert(context.Background(), amount, "EUR", "GBP")
	if err != nil {
		t.Fatalf("forward conversion failed: %v", err)
	}
	back, err := s.Convert(context.Background(), forward.ConvertedAmount, "GBP", "EUR")
	if err != nil {
		t.Fatalf("reverse conversion failed: %v", err)
	}

	if math.Abs(back.ConvertedAmount-amount) > 1e-9 {
		t.Errorf("round trip drifted: %v -> %v", amount, back.ConvertedAmount)
	}
}

func TestConvertUsesBaseImplicitly(t *testing.T) {
	s := NewRateService("test-key")
	s.now = fixedNow
	s.cached = &models.RateTable{
		Base:      "USD",
		Rates:     map[string]float64{"EUR": 0.9},
		FetchedAt: fixedNow(),
	}

	quote, err := s.Convert(context.Background(), 100, "USD", "EUR")
	if err != nil {
		t.Fatalf("Convert failed: %v", err)
	}
	if quote.Rate != 0.9 {
		t.Errorf("rate = %v, want 0.9", quote.Rate)
	}
	if math.Abs(quote.ConvertedAmount-90) > 1e-9 {
		t.Errorf("convertedAmount = %v, want 90", quote.ConvertedAmount)
	}
	if quote.Base != "USD" {
		t.Errorf("base = %q, want USD", quote.Base)
	}
}

func TestConvertUnknownCurrency(t *testing.T) {
	s := NewRateService("test-key")
	s.now = fixedNow
	s.cached = &models.RateTable{
		Base:      "USD",
		Rates:     map[string]float64{"EUR": 0.9},
		FetchedAt: fixedNow(),
	}

	if _, err := s.Convert(context.Background(), 1, "USD", "XXX"); !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("expected ErrUnknownCurrency, got %v", err)
	}
	if _, err := s.Convert(context.Background(), 1, "XXX", "EUR"); !errors.Is(err, ErrUnknownCurrency) {
		t.Fatalf("expected ErrUnknownCurrency, got %v", err)
	}
}

func TestFormatConvertedAmount(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{90, "90.00"},
		{1234.567, "1234.57"},
		{1, "1.00"},
		{0.5, "0.5000"},
		{0.01, "0.0100"},
		{0.0001234, "0.00012340"},
	}

	for _, tc := range tests {
		if got := FormatConvertedAmount(tc.value); got != tc.want {
			t.Errorf("FormatConvertedAmount(%v) = %q, want %q", tc.value, got, tc.want)
		}
	}
}

func TestCacheAge(t *testing.T) {
	s := NewRateService("test-key")
	s.now = fixedNow

	if got := s.CacheAge(); got != "" {
		t.Errorf("expected empty age before any fetch, got %q", got)
	}

	tests := []struct {
		age  time.Duration
		want string
	}{
		{30 * time.Second, "just now"},
		{1 * time.Minute, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{time.Hour, "1 hour ago"},
		{3 * time.Hour, "3 hours ago"},
	}

	for _, tc := range tests {
		s.cached = staleTable(tc.age)
		if got := s.CacheAge(); got != tc.want {
			t.Errorf("CacheAge at %v = %q, want %q", tc.age, got, tc.want)
		}
	}
}
