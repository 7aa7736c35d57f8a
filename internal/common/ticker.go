package common

import "strings"

// DeriveTicker builds a placeholder symbol from a company name when no
// exchange symbol is available: uppercased, spaces stripped, capped at
// six characters.
func DeriveTicker(companyName string) string {
	upper := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(companyName), " ", ""))
	if len(upper) > 6 {
		upper = upper[:6]
	}
	return upper
}
