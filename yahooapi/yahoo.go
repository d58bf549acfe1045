// Package yahooapi contains a minimal client for the Yahoo Finance quote
// endpoint (the same unauthenticated API the yfinance library wraps). It maps
// the provider's loosely-populated response into a Quote with one named
// optional field per price tier, so callers never poke at raw JSON keys.
package yahooapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Quote is the normalized price data for one symbol. Pointer fields are nil
// when the provider had no value for that tier.
type Quote struct {
	Company       string
	Symbol        string
	Currency      string
	Regular       *float64
	PreMarket     *float64
	PostMarket    *float64
	PreviousClose *float64
}

// Client fetches quotes. The zero value uses the public endpoint and
// http.DefaultClient.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func (c *Client) http() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

// Lookup fetches the current quote for symbol. An unknown symbol is an error;
// a known symbol with no prices in any tier returns a Quote with all price
// fields nil.
func (c *Client) Lookup(ctx context.Context, symbol string) (*Quote, error) {
	if symbol == "" {
		return nil, fmt.Errorf("symbol empty")
	}
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/v7/finance/quote", nil)
	if err != nil {
		return nil, err
	}
	q := req.URL.Query()
	q.Set("symbols", symbol)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("User-Agent", "cathybot/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http().Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close response body", slog.Any("err", err))
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote endpoint HTTP %d", resp.StatusCode)
	}

	var body struct {
		QuoteResponse struct {
			Result []struct {
				Symbol                     string   `json:"symbol"`
				LongName                   string   `json:"longName"`
				ShortName                  string   `json:"shortName"`
				Currency                   string   `json:"currency"`
				RegularMarketPrice         *float64 `json:"regularMarketPrice"`
				PreMarketPrice             *float64 `json:"preMarketPrice"`
				PostMarketPrice            *float64 `json:"postMarketPrice"`
				RegularMarketPreviousClose *float64 `json:"regularMarketPreviousClose"`
			} `json:"result"`
		} `json:"quoteResponse"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode quote response: %w", err)
	}
	if len(body.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("no quote for %s", symbol)
	}

	r := body.QuoteResponse.Result[0]
	quote := &Quote{
		Company:       r.LongName,
		Symbol:        r.Symbol,
		Currency:      r.Currency,
		Regular:       r.RegularMarketPrice,
		PreMarket:     r.PreMarketPrice,
		PostMarket:    r.PostMarketPrice,
		PreviousClose: r.RegularMarketPreviousClose,
	}
	if quote.Company == "" {
		quote.Company = r.ShortName
	}
	if quote.Symbol == "" {
		quote.Symbol = symbol
	}
	return quote, nil
}
