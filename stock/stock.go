// Package stock implements the !stock channel command: argument parsing,
// price lookup with tiered fallback, and reply formatting. The handler always
// produces exactly one reply and never lets a provider error escape.
package stock

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/RUSTYJON/cathybot/telemetry"
	"github.com/RUSTYJON/cathybot/yahooapi"
)

const usageReply = "Usage: !stock TICKER"

// Provider resolves a ticker symbol to a quote.
type Provider interface {
	Lookup(ctx context.Context, symbol string) (*yahooapi.Quote, error)
}

type Handler struct {
	Provider Provider
}

// Handle produces the reply for a full !stock command line. Anything other
// than exactly two tokens yields the usage string without touching the
// provider.
func (h *Handler) Handle(ctx context.Context, line string) string {
	parts := strings.Fields(line)
	if len(parts) != 2 {
		return usageReply
	}
	symbol := strings.ToUpper(parts[1])

	telemetry.StockLookups.Inc()
	var quote *yahooapi.Quote
	var err error
	telemetry.TimeFunc(telemetry.StockLookupDuration, func() {
		quote, err = h.Provider.Lookup(ctx, symbol)
	})
	if err != nil {
		telemetry.StockLookupErrors.Inc()
		telemetry.LoggerWithCorr(ctx).Error("stock lookup failed",
			slog.String("symbol", symbol), slog.Any("err", err))
		return fmt.Sprintf("Error fetching data for ticker: %s. Please try again later.", symbol)
	}
	return formatQuote(symbol, quote)
}

// formatQuote picks the highest-priority tier with a price: live, pre-market,
// after-hours, then previous close.
func formatQuote(symbol string, q *yahooapi.Quote) string {
	company := q.Company
	if company == "" {
		company = symbol
	}
	currency := q.Currency
	if currency == "" {
		currency = "N/A"
	}
	switch {
	case q.Regular != nil:
		return fmt.Sprintf("%s (%s) is currently trading at %v %s", company, symbol, *q.Regular, currency)
	case q.PreMarket != nil:
		return fmt.Sprintf("%s (%s) is trading at %v %s in pre-market trading.", company, symbol, *q.PreMarket, currency)
	case q.PostMarket != nil:
		return fmt.Sprintf("%s (%s) is trading at %v %s in after-hours trading.", company, symbol, *q.PostMarket, currency)
	case q.PreviousClose != nil:
		return fmt.Sprintf("%s (%s) closed at %v %s on the last trading day.", company, symbol, *q.PreviousClose, currency)
	default:
		return fmt.Sprintf("No price data available for ticker: %s", symbol)
	}
}
