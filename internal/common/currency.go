package common

import (
	"fmt"
	"strings"
)

// PriceUnavailable is the display string used when no price could be resolved.
const PriceUnavailable = "Data unavailable"

// FormatINR renders a price as "₹1,234.50" with thousands separators
// and exactly two decimal places.
func FormatINR(price float64) string {
	return "₹" + groupThousands(fmt.Sprintf("%.2f", price))
}

// FormatPct renders a signed percentage, e.g. "+3.10%" or "-0.45%".
func FormatPct(pct float64) string {
	return fmt.Sprintf("%+.2f%%", pct)
}

// groupThousands inserts comma separators into the integer part of a
// fixed-point decimal string.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if idx := strings.Index(s, "."); idx >= 0 {
		intPart = s[:idx]
		fracPart = s[idx:]
	}

	if len(intPart) > 3 {
		var sb strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			sb.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if sb.Len() > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(intPart[i : i+3])
		}
		intPart = sb.String()
	}

	if neg {
		return "-" + intPart + fracPart
	}
	return intPart + fracPart
}
