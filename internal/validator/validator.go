// Package validator provides custom validation functions for Gin's binding engine
// and the money-threshold reading shared with the search backend.
package validator

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// moneyPattern finds the first "<number> B|M" amount anywhere in the text, the
// same reading the search backend applies to valuation and total_funding.
var moneyPattern = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*([BM])`)

var thousand = decimal.NewFromInt(1000)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers all custom validators on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("filter_text", validateFilterText)
}

// MoneyThreshold reads a threshold such as "$500M", "over 1.2b" or ">$1B" in
// millions. ok is false when the text holds no amount; the backend then
// ignores that filter rather than rejecting it.
func MoneyThreshold(s string) (millions decimal.Decimal, ok bool) {
	m := moneyPattern.FindStringSubmatch(s)
	if m == nil {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(strings.TrimSuffix(m[1], "."))
	if err != nil {
		return decimal.Zero, false
	}
	if strings.EqualFold(m[2], "B") {
		amount = amount.Mul(thousand)
	}
	return amount, true
}

// validateFilterText admits any free-form sheet text but rejects control
// characters, which no stored cell carries.
func validateFilterText(fl validator.FieldLevel) bool {
	return strings.IndexFunc(fl.Field().String(), unicode.IsControl) < 0
}
