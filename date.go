package md2epub

import (
	"time"

	"github.com/alnah/go-md2epub/internal/dateutil"
)

// ResolveDate expands the "auto" date syntax for Metadata.Date values:
// "auto" becomes the given date as YYYY-MM-DD, "auto:FORMAT" applies a
// custom token format or a named preset (iso, european, us, long), and
// anything else passes through unchanged. The clock is a parameter so
// callers can pin it in tests.
func ResolveDate(value string, t time.Time) (string, error) {
	return dateutil.ResolveDate(value, t)
}
