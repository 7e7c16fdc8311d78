package validation

import (
	"math"
	"strings"

	"github.com/ndewijer/Portfolio-Tracker/internal/model"
)

// MaxTrendDays bounds the trend lookback window accepted from callers.
const MaxTrendDays = 3650

// ValidateHolding checks that a holding can be processed by a run.
func ValidateHolding(h model.Holding) error {
	errors := make(map[string]string)

	if strings.TrimSpace(h.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	} else if len(h.Symbol) > 12 {
		errors["symbol"] = "symbol must be 12 characters or less"
	}

	if math.IsNaN(h.Quantity) || math.IsInf(h.Quantity, 0) || h.Quantity <= 0 {
		errors["quantity"] = "quantity must be a positive number"
	}

	if h.PurchaseDate.IsZero() {
		errors["purchase_date"] = "purchase date is required"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateTrendDays checks a requested trend window.
func ValidateTrendDays(days int) error {
	if days <= 0 || days > MaxTrendDays {
		return &Error{Fields: map[string]string{
			"days": "days must be between 1 and 3650",
		}}
	}
	return nil
}
