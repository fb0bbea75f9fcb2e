package models

import "time"

// RateTable holds one fetched exchange-rate table. All rates are expressed
// relative to Base; rates[Base] is implicitly 1 and never stored.
type RateTable struct {
	Base      string             `json:"base"`
	Rates     map[string]float64 `json:"rates"`
	FetchedAt time.Time          `json:"timestamp"`
}

// ConversionQuote is one computed conversion between two currency codes at a
// point in time. Derived from the current RateTable, never persisted.
type ConversionQuote struct {
	Amount          float64   `json:"amount"`
	ConvertedAmount float64   `json:"convertedAmount"`
	From            string    `json:"from"`
	To              string    `json:"to"`
	Rate            float64   `json:"rate"`
	Timestamp       time.Time `json:"timestamp"`
	Base            string    `json:"base"`
}

// CurrencyPair is a detected from/to currency conversion intent.
type CurrencyPair struct {
	From string `json:"from"`
	To   string `json:"to"`
}
