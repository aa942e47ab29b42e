package shared

import "time"

// Payroll exports in Bolivia write dates day-first, API clients send ISO.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"02/01/2006",
}

// ParseDate accepts RFC3339, YYYY-MM-DD or DD/MM/YYYY.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	var err error
	for _, layout := range dateLayouts {
		var parsed time.Time
		if parsed, err = time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, err
}
