package recommend

import (
	"strings"
	"time"
)

// Birth-date layouts accepted from the intake form, tried in order.
var birthDateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
}

const maxPlausibleAge = 120

// CalculateAge parses birthDate against the accepted layouts and returns the
// age in whole years relative to now. It returns nil (never an error) when
// the input is empty, no layout parses, or the result falls outside 0..120.
// A nil age disables the scorer's maturity defaulting and age adjustments.
func CalculateAge(birthDate string, now time.Time) *int {
	birthDate = strings.TrimSpace(birthDate)
	if birthDate == "" {
		return nil
	}

	for _, layout := range birthDateLayouts {
		birth, err := time.Parse(layout, birthDate)
		if err != nil {
			continue
		}

		age := now.Year() - birth.Year()
		if now.Month() < birth.Month() ||
			(now.Month() == birth.Month() && now.Day() < birth.Day()) {
			age--
		}

		if age < 0 || age > maxPlausibleAge {
			return nil
		}
		return &age
	}
	return nil
}
