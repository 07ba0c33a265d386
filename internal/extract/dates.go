package extract

import (
	"fmt"
	"time"
)

const (
	naturalDateLayout = "January 2, 2006"
	shortDateLayout   = "02-Jan-06"
)

// NormalizeDate parses a "<Month> <day>, <year>" date and reformats it as
// DD-Mon-YY, e.g. "March 15, 1989" -> "15-Mar-89". Anything else is an error.
func NormalizeDate(s string) (string, error) {
	t, err := time.Parse(naturalDateLayout, s)
	if err != nil {
		return "", fmt.Errorf("date %q: %w", s, err)
	}
	return t.Format(shortDateLayout), nil
}
