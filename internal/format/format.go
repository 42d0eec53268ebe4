// Package format renders prices, counts and dates for templates.
package format

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func printer(lang string) *message.Printer {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// FmtNumber groups thousands the way lang expects, e.g. 2840 => "2,840".
func FmtNumber(n int, lang string) string {
	return printer(lang).Sprintf("%d", n)
}

// FmtCurrency formats amount in minor units for basic currencies.
// Example: FmtCurrency(14900, "USD", "en") => "$149.00"
func FmtCurrency(minor int64, currency, lang string) string {
	p := printer(lang)
	currency = strings.ToUpper(currency)
	neg := minor < 0
	if neg {
		minor = -minor
	}
	var out string
	switch currency {
	case "USD":
		out = p.Sprintf("$%d.%02d", minor/100, minor%100)
	case "JPY":
		out = p.Sprintf("¥%d", minor)
	default:
		out = p.Sprintf("%s %d", currency, minor)
	}
	if neg {
		return "-" + out
	}
	return out
}

// FmtDollars formats whole dollars without cents, e.g. 1490 => "$1,490".
func FmtDollars(amount int, lang string) string {
	if amount < 0 {
		return "-" + FmtDollars(-amount, lang)
	}
	return printer(lang).Sprintf("$%d", amount)
}

// FmtDate formats time in a locale-friendly short form.
func FmtDate(t time.Time, lang string) string {
	if t.IsZero() {
		return ""
	}
	switch strings.ToLower(lang) {
	case "ja":
		return t.Format("2006-01-02")
	default:
		return t.Format("Jan 2, 2006")
	}
}

// FmtCompact shortens large counts, e.g. 2840 => "2.8k".
func FmtCompact(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	v := float64(n) / 1000
	if v >= 10 {
		return fmt.Sprintf("%.0fk", v)
	}
	return strings.Replace(fmt.Sprintf("%.1fk", v), ".0k", "k", 1)
}
