package yahooapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name        string
		response    interface{}
		statusCode  int
		symbol      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, q *Quote)
	}{
		{
			name:   "full quote",
			symbol: "AAPL",
			response: map[string]any{
				"quoteResponse": map[string]any{
					"result": []map[string]any{{
						"symbol":                     "AAPL",
						"longName":                   "Apple Inc.",
						"currency":                   "USD",
						"regularMarketPrice":         187.44,
						"regularMarketPreviousClose": 185.01,
					}},
				},
			},
			statusCode: http.StatusOK,
			check: func(t *testing.T, q *Quote) {
				if q.Company != "Apple Inc." || q.Currency != "USD" {
					t.Errorf("quote header = %q/%q, want Apple Inc./USD", q.Company, q.Currency)
				}
				if q.Regular == nil || *q.Regular != 187.44 {
					t.Errorf("Regular = %v, want 187.44", q.Regular)
				}
				if q.PreMarket != nil || q.PostMarket != nil {
					t.Errorf("unset tiers must stay nil")
				}
				if q.PreviousClose == nil || *q.PreviousClose != 185.01 {
					t.Errorf("PreviousClose = %v, want 185.01", q.PreviousClose)
				}
			},
		},
		{
			name:   "previous close only",
			symbol: "AAPL",
			response: map[string]any{
				"quoteResponse": map[string]any{
					"result": []map[string]any{{
						"symbol":                     "AAPL",
						"regularMarketPreviousClose": 185.01,
					}},
				},
			},
			statusCode: http.StatusOK,
			check: func(t *testing.T, q *Quote) {
				if q.Regular != nil || q.PreMarket != nil || q.PostMarket != nil {
					t.Errorf("only PreviousClose should be set, got %+v", q)
				}
				if q.PreviousClose == nil {
					t.Errorf("PreviousClose = nil, want value")
				}
			},
		},
		{
			name:   "short name fallback",
			symbol: "AAPL",
			response: map[string]any{
				"quoteResponse": map[string]any{
					"result": []map[string]any{{
						"symbol":    "AAPL",
						"shortName": "Apple",
					}},
				},
			},
			statusCode: http.StatusOK,
			check: func(t *testing.T, q *Quote) {
				if q.Company != "Apple" {
					t.Errorf("Company = %q, want shortName fallback", q.Company)
				}
			},
		},
		{
			name:   "unknown symbol",
			symbol: "ZZZZZZ",
			response: map[string]any{
				"quoteResponse": map[string]any{"result": []any{}},
			},
			statusCode:  http.StatusOK,
			wantErr:     true,
			errContains: "no quote",
		},
		{
			name:        "server error",
			symbol:      "AAPL",
			statusCode:  http.StatusInternalServerError,
			wantErr:     true,
			errContains: "HTTP 500",
		},
		{
			name:        "empty symbol",
			symbol:      "",
			wantErr:     true,
			errContains: "symbol empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := r.URL.Query().Get("symbols"); tt.symbol != "" && got != tt.symbol {
					t.Errorf("symbols query param = %q, want %q", got, tt.symbol)
				}
				w.WriteHeader(tt.statusCode)
				if tt.response != nil {
					_ = json.NewEncoder(w).Encode(tt.response)
				}
			}))
			defer server.Close()

			client := &Client{BaseURL: server.URL, HTTPClient: server.Client()}
			quote, err := client.Lookup(context.Background(), tt.symbol)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("Lookup() error = nil, want error containing %q", tt.errContains)
				}
				if tt.errContains != "" && !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("Lookup() error = %v, want error containing %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("Lookup() unexpected error: %v", err)
			}
			tt.check(t, quote)
		})
	}
}

func TestLookupMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	client := &Client{BaseURL: server.URL, HTTPClient: server.Client()}
	if _, err := client.Lookup(context.Background(), "AAPL"); err == nil {
		t.Errorf("expected decode error for malformed body")
	}
}
