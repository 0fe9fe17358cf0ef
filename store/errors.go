package store

import (
	"errors"
	"strings"
)

var (
	// ErrPortfolioNotFound reports a name with no saved portfolio.
	ErrPortfolioNotFound = errors.New("portfolio not found")
	// ErrStrategyNotFound reports a portfolio with no saved strategy.
	ErrStrategyNotFound = errors.New("strategy not found")
)

func joinStrings(list []string) string { return strings.Join(list, ",") }

func splitStrings(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
