// Package strcase converts identifier casing. It is mostly used to turn Go
// struct field names into the snake_case keys clients see in JSON payloads.
package strcase

import (
	"strings"
	"unicode"
)

// Snake converts s to snake_case. Acronym boundaries are respected, so
// "UserID" becomes "user_id" and "HTTPStatus" becomes "http_status".
func Snake(s string) string {
	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s) + 4)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]

			lowerOrDigitBefore := unicode.IsLower(prev) || unicode.IsDigit(prev)
			acronymEnds := unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if lowerOrDigitBefore || acronymEnds {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
