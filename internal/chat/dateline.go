package chat

import (
	"fmt"
	"time"
)

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatDateFR renders t as a French long date, e.g. "2 janvier 2026".
// Presentation logic only; kept out of the request builder so the builder
// stays pure conversation logic.
func FormatDateFR(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), frenchMonths[t.Month()-1], t.Year())
}
