// Package email provides normalization helpers for email addresses entered
// in forms.
package email

import "strings"

// Normalize trims surrounding whitespace and lowercases the domain part.
// The local part is left as typed since providers may treat it as case
// sensitive. Input without an '@' is only trimmed.
func Normalize(addr string) string {
	addr = strings.TrimSpace(addr)
	at := strings.LastIndexByte(addr, '@')
	if at < 0 {
		return addr
	}
	return addr[:at+1] + strings.ToLower(addr[at+1:])
}
