package datemath

import "time"

// YearMonth identifies a calendar month. Month arithmetic on transaction
// windows wraps across year boundaries, so it lives here instead of being
// scattered through the handlers.
type YearMonth struct {
	Year  int
	Month int
}

func FromTime(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: int(t.Month())}
}

// AddMonths moves n months forward (or backward when n is negative),
// wrapping the year as needed.
func (ym YearMonth) AddMonths(n int) YearMonth {
	total := ym.Year*12 + ym.Month - 1 + n
	year := total / 12
	month := total % 12
	if month < 0 {
		month += 12
		year--
	}
	return YearMonth{Year: year, Month: month + 1}
}

// MonthsBetween returns the number of calendar months from ym to other
// inclusive of both endpoints. Returns 0 when other is before ym.
func (ym YearMonth) MonthsBetween(other YearMonth) int {
	diff := (other.Year-ym.Year)*12 + (other.Month - ym.Month)
	if diff < 0 {
		return 0
	}
	return diff + 1
}

func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

func (ym YearMonth) After(other YearMonth) bool {
	return other.Before(ym)
}

// StartOfMonth returns midnight UTC on the first day of the month.
func (ym YearMonth) StartOfMonth() time.Time {
	return time.Date(ym.Year, time.Month(ym.Month), 1, 0, 0, 0, 0, time.UTC)
}
