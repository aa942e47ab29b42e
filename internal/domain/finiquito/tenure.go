package finiquito

import "time"

// ComputeTenure measures elapsed service between start and end as calendar
// years, months and leftover days, then recomputes TotalDays under the
// 360-day-year / 30-day-month convention used for payment pro-ration.
//
// When subtractOneDay is set the measurement runs to the day before end: an
// employee dismissed for cause is paid through the day before last attendance.
func (c *Calculator) ComputeTenure(start, end time.Time, subtractOneDay bool) (Tenure, error) {
	start = dateOnly(start)
	end = dateOnly(end)
	if subtractOneDay {
		end = end.AddDate(0, 0, -1)
	}
	if end.Before(start) {
		return Tenure{}, ErrInvalidRange
	}

	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if end.Day() < start.Day() {
		months--
	}
	anchor := addMonthsClamped(start, months)
	days := int(end.Sub(anchor).Hours() / 24)

	t := Tenure{
		Years:  months / 12,
		Months: months % 12,
		Days:   days,
	}
	t.TotalDays = t.Years*c.constants.DaysInYear + t.Months*c.constants.DaysInMonth + t.Days
	return t, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// addMonthsClamped adds n months, clamping the day to the target month's
// length (Jan 31 + 1 month = Feb 28, not Mar 3). AddDate would normalize the
// overflow and skew the leftover-day count.
func addMonthsClamped(t time.Time, n int) time.Time {
	year := t.Year()
	month := int(t.Month()) + n
	year += (month - 1) / 12
	month = (month-1)%12 + 1
	if month <= 0 {
		month += 12
		year--
	}
	day := t.Day()
	if last := daysInMonth(year, time.Month(month)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
