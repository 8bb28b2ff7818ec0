package entity

import (
	"fmt"
	"strings"
)

// maxSymbolLen bounds ticker symbols; the longest real-world tickers
// (class shares, foreign listings) stay under this.
const maxSymbolLen = 12

// NormalizeSymbol canonicalizes a ticker symbol to its uppercase form.
// Symbols are the unique identity of company news snapshots, so every entry
// point must normalize before lookup or storage.
func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidSymbol)
	}
	if len(s) > maxSymbolLen {
		return "", fmt.Errorf("%w: %q too long", ErrInvalidSymbol, symbol)
	}
	for _, r := range s {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '.' && r != '-' {
			return "", fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
		}
	}
	return s, nil
}
