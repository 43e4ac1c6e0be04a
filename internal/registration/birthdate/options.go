package birthdate

import "time"

// Month is one entry of the month picker.
type Month struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
}

// Months returns January through December.
func Months() []Month {
	months := make([]Month, 0, 12)
	for m := time.January; m <= time.December; m++ {
		months = append(months, Month{Number: int(m), Name: m.String()})
	}
	return months
}

// YearRange is the inclusive span offered by the year picker, from the
// oldest to the youngest eligible birth year.
type YearRange struct {
	Oldest   int `json:"oldest"`
	Youngest int `json:"youngest"`
}

// Years lists the range newest first, as the picker shows it.
func (y YearRange) Years() []int {
	if y.Youngest < y.Oldest {
		return nil
	}
	years := make([]int, 0, y.Youngest-y.Oldest+1)
	for yr := y.Youngest; yr >= y.Oldest; yr-- {
		years = append(years, yr)
	}
	return years
}

// Years returns [today.Year-span, today.Year-minimumAge]. This restricts the
// picker only; Resolve accepts any year.
func (r Resolver) Years(today time.Time, span int) YearRange {
	if span <= 0 {
		span = DefaultYearSpan
	}
	return YearRange{
		Oldest:   today.Year() - span,
		Youngest: today.Year() - r.minimumAge,
	}
}
