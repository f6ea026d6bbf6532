package money

import (
	"fmt"
	"slices"
	"strings"
)

// Currency describes a currency's minor-unit convention.
type Currency struct {
	Code   string
	Symbol string
	Scale  int32 // digits after the decimal point, 0 for yen
}

var currencies = []Currency{
	{Code: "JPY", Symbol: "¥", Scale: 0},
	{Code: "KRW", Symbol: "₩", Scale: 0},
	{Code: "MYR", Symbol: "RM", Scale: 2},
	{Code: "CNY", Symbol: "CN¥", Scale: 2},
	{Code: "USD", Symbol: "$", Scale: 2},
	{Code: "EUR", Symbol: "€", Scale: 2},
	{Code: "SGD", Symbol: "S$", Scale: 2},
}

// Lookup returns the currency for an ISO 4217 code (case-insensitive).
func Lookup(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	i := slices.IndexFunc(currencies, func(c Currency) bool { return c.Code == code })
	if i < 0 {
		return Currency{}, fmt.Errorf("unsupported currency %q", code)
	}
	return currencies[i], nil
}

// Codes lists the supported currency codes.
func Codes() []string {
	codes := make([]string, len(currencies))
	for i, c := range currencies {
		codes[i] = c.Code
	}
	return codes
}
