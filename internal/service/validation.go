package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/vinayakfood/website/backend/internal/models"
	"github.com/vinayakfood/website/backend/internal/types"
)

const (
	maxDishNameLength        = 120
	maxDishDescriptionLength = 1000
)

// maxPrice fits numeric(10,2)
var maxPrice = decimal.New(1, 8)

// Bounds on a parsed price's exponent. Rounding rescales by 10^|exp|, so
// out-of-range exponents are rejected before any arithmetic.
const (
	minPriceExponent = -10
	maxPriceExponent = 8
)

var validate = validator.New()

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid("name", "name is required")
	}
	if utf8.RuneCountInString(name) > maxDishNameLength {
		return "", invalid("name", fmt.Sprintf("name must be at most %d characters", maxDishNameLength))
	}
	return name, nil
}

func validateDescription(description string) (string, error) {
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) > maxDishDescriptionLength {
		return "", invalid("description", fmt.Sprintf("description must be at most %d characters", maxDishDescriptionLength))
	}
	return description, nil
}

// parsePrice accepts a non-negative decimal and rounds it to cents
func parsePrice(raw types.Amount) (decimal.Decimal, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" {
		return decimal.Decimal{}, invalid("price", "price is required")
	}
	price, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, invalid("price", "price must be a number")
	}
	if price.IsNegative() {
		return decimal.Decimal{}, invalid("price", "price must not be negative")
	}
	if exp := price.Exponent(); exp < minPriceExponent || exp > maxPriceExponent {
		return decimal.Decimal{}, invalid("price", "price is out of range")
	}
	price = price.Round(2)
	if price.GreaterThanOrEqual(maxPrice) {
		return decimal.Decimal{}, invalid("price", "price is too large")
	}
	return price, nil
}

func parseCategory(raw string) (models.Category, error) {
	c, ok := models.ParseCategory(raw)
	if !ok {
		return "", invalid("category", fmt.Sprintf("category must be one of %s", joinValues(models.Categories)))
	}
	return c, nil
}

func parseSpiceLevel(raw string) (models.SpiceLevel, error) {
	if strings.TrimSpace(raw) == "" {
		return models.SpiceMedium, nil
	}
	l, ok := models.ParseSpiceLevel(raw)
	if !ok {
		return "", invalid("spice_level", fmt.Sprintf("spice level must be one of %s", joinValues(models.SpiceLevels)))
	}
	return l, nil
}

// validateImageURL allows an empty value or an absolute http(s) URL
func validateImageURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if err := validate.Var(raw, "http_url"); err != nil {
		return "", invalid("image_url", "image URL must be an absolute http(s) URL")
	}
	return raw, nil
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
