package printing

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var mxPrinter = message.NewPrinter(language.MustParse("es-MX"))

// shortMonths are the es-MX abbreviated month names
var shortMonths = [...]string{"ene", "feb", "mar", "abr", "may", "jun", "jul", "ago", "sept", "oct", "nov", "dic"}

// FormatMoney formats an amount as MXN with two decimals, e.g. $12,345.67
func FormatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	f, _ := d.Round(2).Float64()
	return sign + "$" + mxPrinter.Sprintf("%.2f", f)
}

// FormatShortDate formats t as "05 ene 2025"
func FormatShortDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf("%02d %s %d", t.Day(), shortMonths[t.Month()-1], t.Year())
}

// Truncate cuts s to max runes and appends "..." when anything was cut
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// splitLines splits notes on newlines so the template can join them with <br>
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}
