package stockfolio

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"

	"github.com/PaesslerAG/jsonpath"
)

// This file contains functions to access the Alpha Vantage API.
//
// The daily endpoint answers a JSON object keyed by trading date:
//
//	{
//	  "Meta Data": { "2. Symbol": "AAPL", ... },
//	  "Time Series (Daily)": {
//	    "2024-03-01": { "1. open": "179.55", "4. close": "179.66", ... },
//	    ...
//	  }
//	}
//
// An unknown symbol answers {"Error Message": ...} and a throttled call
// answers {"Information": ...} or {"Note": ...}, both with HTTP 200.

const alphaVantageBaseURL = "https://www.alphavantage.co"

// AlphaVantage fetches historical daily price series from alphavantage.co.
// Responses are disk-cached with a daily expiry, so repeated lookups in one
// session cost a single API call per symbol.
//
// It is safe for concurrent use by multiple goroutines.
type AlphaVantage struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewAlphaVantage returns a provider using the given API key.
func NewAlphaVantage(apiKey string) *AlphaVantage {
	return &AlphaVantage{apiKey: apiKey, baseURL: alphaVantageBaseURL, client: cachedClient()}
}

var _ PriceProvider = (*AlphaVantage)(nil)

// SetBaseURL overrides the API endpoint, mainly for proxies and tests.
func (a *AlphaVantage) SetBaseURL(baseURL string) { a.baseURL = baseURL }

// Fetch downloads the full daily series for the symbol, most recent first.
func (a *AlphaVantage) Fetch(symbol string) (PriceSeries, error) {
	addr := fmt.Sprintf("%s/query?function=TIME_SERIES_DAILY&outputsize=full&symbol=%s&apikey=%s",
		a.baseURL, url.QueryEscape(normalizeSymbol(symbol)), url.QueryEscape(a.apiKey))

	var jobj any
	if err := jwget(a.client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("error fetching %q: %w", symbol, err)
	}

	// The API reports failures in-band with HTTP 200, so inspect the payload
	// before reading the series.
	if msg, err := jsonpath.Get(`$["Error Message"]`, jobj); err == nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSymbolNotFound, symbol, msg)
	}
	for _, key := range []string{"Information", "Note"} {
		if msg, err := jsonpath.Get(fmt.Sprintf("$[%q]", key), jobj); err == nil {
			return nil, fmt.Errorf("%w: %v", ErrRateLimited, msg)
		}
	}

	jseries, err := jsonpath.Get(`$["Time Series (Daily)"]`, jobj)
	if err != nil {
		return nil, fmt.Errorf("unexpected response for %q: no daily series", symbol)
	}
	days, ok := jseries.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("unexpected response for %q: daily series is not an object", symbol)
	}

	series := make(PriceSeries, 0, len(days))
	for day, jfields := range days {
		on, err := ParseDate(day)
		if err != nil {
			return nil, fmt.Errorf("bad trading date for %q: %w", symbol, err)
		}
		open, err := avField(jfields, "1. open")
		if err != nil {
			return nil, fmt.Errorf("bad row %s for %q: %w", day, symbol, err)
		}
		close, err := avField(jfields, "4. close")
		if err != nil {
			return nil, fmt.Errorf("bad row %s for %q: %w", day, symbol, err)
		}
		series = append(series, PriceRow{Date: on, Open: open, Close: close})
	}

	// Lookups scan from "now" toward the past, so the series must be most
	// recent first.
	sort.Slice(series, func(i, j int) bool { return series[i].Date.After(series[j].Date) })
	return series, nil
}

// avField extracts one decimal field from a daily row object.
func avField(jrow any, field string) (Money, error) {
	jval, err := jsonpath.Get(fmt.Sprintf("$[%q]", field), jrow)
	if err != nil {
		return Money{}, fmt.Errorf("missing field %q", field)
	}
	str, ok := jval.(string)
	if !ok {
		return Money{}, fmt.Errorf("field %q is not a string", field)
	}
	return ParseMoney(str)
}
