// Package currency formats monetary amounts for invoice output. Formatting is
// keyed by ISO 4217 code: known codes get their conventional symbol and the
// digit grouping of their home locale, everything else falls back to the ISO
// code followed by a space and the default locale rule. Unknown codes never
// error; a blank invoice is a worse outcome than a plainly formatted one.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"INR": "₹",
	"SGD": "S$",
	"AUD": "A$",
	"CAD": "C$",
}

var locales = map[string]language.Tag{
	"USD": language.AmericanEnglish,
	"EUR": language.German,
	"GBP": language.BritishEnglish,
	"INR": language.MustParse("en-IN"),
	"SGD": language.MustParse("en-SG"),
	"AUD": language.MustParse("en-AU"),
	"CAD": language.MustParse("en-CA"),
}

// Formatter renders decimal amounts as display strings for one currency.
type Formatter struct {
	code    string
	symbol  string
	printer *message.Printer
}

// NewFormatter builds a formatter for the given ISO code. It never fails:
// unlisted codes fall back to "CODE " prefixing and en-US grouping.
func NewFormatter(code string) *Formatter {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = "USD"
	}
	symbol, ok := symbols[code]
	if !ok {
		symbol = code + " "
	}
	tag, ok := locales[code]
	if !ok {
		tag = language.AmericanEnglish
	}
	return &Formatter{
		code:    code,
		symbol:  symbol,
		printer: message.NewPrinter(tag),
	}
}

// Code returns the ISO currency code the formatter was built for.
func (f *Formatter) Code() string { return f.code }

// Format renders an amount with the currency symbol, locale grouping and two
// fraction digits, e.g. "$59,000.00" or "JPY 1,200.00".
func (f *Formatter) Format(amount decimal.Decimal) string {
	return f.symbol + f.FormatNumber(amount)
}

// FormatNumber renders the bare amount without the symbol.
func (f *Formatter) FormatNumber(amount decimal.Decimal) string {
	value, _ := amount.Round(2).Float64()
	return f.printer.Sprintf("%v", number.Decimal(value,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}

// FormatFunc adapts the formatter to the plain function shape the row
// generator and resolver consume.
func (f *Formatter) FormatFunc() func(decimal.Decimal) string {
	return f.Format
}
