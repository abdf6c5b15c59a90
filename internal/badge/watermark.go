package badge

import "time"

// watermarkFor formats t as an RFC 3339 UTC watermark. The zero time maps
// to the empty watermark.
func watermarkFor(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// laterWatermark returns the later of two watermarks produced by
// watermarkFor. Fixed-width UTC timestamps order bytewise.
func laterWatermark(a, b string) string {
	if b > a {
		return b
	}
	return a
}
