package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"converter-backend/internal/models"
)

// cacheDuration is how long one fetched rate table stays fresh.
const cacheDuration = time.Hour

const defaultRatesBaseURL = "https://openexchangerates.org/api"

var (
	// ErrMissingRatesAPIKey means no exchange-rate provider key is configured.
	ErrMissingRatesAPIKey = errors.New("OPEN_EXCHANGE_RATES_API_KEY is not set")
	// ErrInvalidRatesAPIKey means the provider rejected our credentials.
	ErrInvalidRatesAPIKey = errors.New("invalid Open Exchange Rates API key")
	// ErrRateLimited means the provider returned 429 and no cache exists.
	ErrRateLimited = errors.New("rate limit exceeded and no cached data available")
	// ErrUnknownCurrency means a code is neither the base nor in the table.
	ErrUnknownCurrency = errors.New("currency not found in exchange rates")
)

// RateService owns the process-wide single-slot exchange-rate cache and the
// cross-rate arithmetic on top of it. The slot is replaced wholesale on
// refresh; two concurrent misses may both fetch, which costs a redundant
// upstream call but never a correctness issue.
type RateService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time

	mu     sync.RWMutex // guards the slot pointer only
	cached *models.RateTable
}

func NewRateService(apiKey string) *RateService {
	return &RateService{
		apiKey:     apiKey,
		baseURL:    defaultRatesBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		now:        time.Now,
	}
}

type exchangeRatesResponse struct {
	Disclaimer string             `json:"disclaimer"`
	License    string             `json:"license"`
	Timestamp  int64              `json:"timestamp"`
	Base       string             `json:"base"`
	Rates      map[string]float64 `json:"rates"`
}

func (s *RateService) slot() *models.RateTable {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cached
}

func (s *RateService) swap(table *models.RateTable) {
	s.mu.Lock()
	s.cached = table
	s.mu.Unlock()
}

// GetRates returns the current rate table, fetching from the upstream
// provider when the cached one is older than an hour. A stale table is
// preferred over a failure whenever the upstream is unavailable; only bad
// credentials fail outright.
func (s *RateService) GetRates(ctx context.Context) (*models.RateTable, error) {
	if cached := s.slot(); cached != nil && s.now().Sub(cached.FetchedAt) < cacheDuration {
		return cached, nil
	}

	if s.apiKey == "" {
		return nil, ErrMissingRatesAPIKey
	}

	table, err := s.fetch(ctx)
	if err != nil {
		if errors.Is(err, ErrInvalidRatesAPIKey) {
			return nil, err
		}
		if cached := s.slot(); cached != nil {
			log.Printf("WARNING: exchange-rate fetch failed, returning cached rates: %v", err)
			return cached, nil
		}
		return nil, err
	}

	s.swap(table)
	return table, nil
}

func (s *RateService) fetch(ctx context.Context) (*models.RateTable, error) {
	url := fmt.Sprintf("%s/latest.json?app_id=%s", s.baseURL, s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create rates request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to decode
	case http.StatusUnauthorized:
		return nil, ErrInvalidRatesAPIKey
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Open Exchange Rates API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var data exchangeRatesResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode rates response: %w", err)
	}

	return &models.RateTable{
		Base:      data.Base,
		Rates:     data.Rates,
		FetchedAt: s.now(),
	}, nil
}

// Convert computes a quote between two codes via the table's base. Any two
// codes present in the table are convertible even if neither is the base.
func (s *RateService) Convert(ctx context.Context, amount float64, from, to string) (*models.ConversionQuote, error) {
	table, err := s.GetRates(ctx)
	if err != nil {
		return nil, err
	}

	fromRate, ok := rateOf(table, from)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCurrency, from)
	}
	toRate, ok := rateOf(table, to)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCurrency, to)
	}

	rate := toRate / fromRate
	return &models.ConversionQuote{
		Amount:          amount,
		ConvertedAmount: amount * rate,
		From:            from,
		To:              to,
		Rate:            rate,
		Timestamp:       table.FetchedAt,
		Base:            table.Base,
	}, nil
}

func rateOf(table *models.RateTable, code string) (float64, bool) {
	if code == table.Base {
		return 1, true
	}
	rate, ok := table.Rates[code]
	return rate, ok
}

// FormatConvertedAmount picks decimal precision by magnitude so sub-cent
// crypto-style conversions never display as "0.00".
func FormatConvertedAmount(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1:
		return fmt.Sprintf("%.2f", v)
	case abs >= 0.01:
		return fmt.Sprintf("%.4f", v)
	default:
		return fmt.Sprintf("%.8f", v)
	}
}

// CacheAge renders the cached table's age for display, or "" when nothing
// has been fetched yet.
func (s *RateService) CacheAge() string {
	cached := s.slot()
	if cached == nil {
		return ""
	}

	minutes := int(s.now().Sub(cached.FetchedAt).Minutes())
	switch {
	case minutes < 1:
		return "just now"
	case minutes == 1:
		return "1 minute ago"
	case minutes < 60:
		return fmt.Sprintf("%d minutes ago", minutes)
	}

	hours := minutes / 60
	if hours == 1 {
		return "1 hour ago"
	}
	return fmt.Sprintf("%d hours ago", hours)
}
