// Package display formats domain values for people: byte sizes, money,
// timestamps and decision labels. The CLI, TUI and MCP adapters share it.
package display

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/claims-cli/internal/core/domain"
)

// Bytes renders a byte count with a binary unit.
func Bytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

// Amount renders a claim amount, or "-" when there is none.
func Amount(amount *float64) string {
	if amount == nil {
		return "-"
	}
	return Money(*amount)
}

// Money renders dollars with thousands separators and two decimals.
func Money(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole, frac, _ := strings.Cut(strconv.FormatFloat(v, 'f', 2, 64), ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + "." + frac
}

// Time renders a timestamp in local time, or "-" when unset.
func Time(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// Decision renders a decision in upper case, e.g. "NO MATCH".
func Decision(d domain.Decision) string {
	if d == "" {
		return "-"
	}
	return strings.ToUpper(strings.ReplaceAll(string(d), "_", " "))
}

// Percent renders a ratio in [0,1] as a percentage.
func Percent(ratio float64) string {
	return fmt.Sprintf("%.1f%%", ratio*100)
}
