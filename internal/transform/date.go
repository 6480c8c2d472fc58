package transform

import (
	"fmt"
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// DefaultDateFormat is used when a chain sets a splitter but no format.
const DefaultDateFormat = "YYYY-MM-DD"

// FormatDate renders t using either a strftime format (anything containing
// '%', e.g. "%Y-%m-%d") or a token template built from YYYY, YY, MM, DD and
// {year}, {month}, {day}.
func FormatDate(t time.Time, format string) string {
	if format == "" {
		format = DefaultDateFormat
	}
	if strings.Contains(format, "%") {
		return strftime.Format(format, t)
	}

	year := fmt.Sprintf("%04d", t.Year())
	month := fmt.Sprintf("%02d", int(t.Month()))
	day := fmt.Sprintf("%02d", t.Day())

	// YYYY must precede YY.
	return strings.NewReplacer(
		"{year}", year,
		"{month}", month,
		"{day}", day,
		"YYYY", year,
		"YY", year[len(year)-2:],
		"MM", month,
		"DD", day,
	).Replace(format)
}
