// Package attrs reads slog-style key/value lists ([k1, v1, k2, v2, ...]) as
// passed to the registration logging helpers.
package attrs

// Keys shared by registration log events.
const (
	KeyRegistrationID = "registration_id"
	KeyReason         = "reason"
	KeyRequestID      = "request_id"
)

// ExtractString returns the string stored under key. Non-string values, odd
// trailing elements and missing keys yield "".
func ExtractString(kv []any, key string) string {
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok && k == key {
			if v, ok := kv[i+1].(string); ok {
				return v
			}
			return ""
		}
	}
	return ""
}

// Reason returns the "reason" attribute; a non-empty reason marks an event
// that did not go as the user intended.
func Reason(kv []any) string {
	return ExtractString(kv, KeyReason)
}
