// Package birthdate resolves a split day/month/year selection into a birth
// date and an age-eligibility verdict.
//
// Domain purity: "today" is always passed in by the caller.
package birthdate

import "time"

// DefaultMinimumAge is the youngest age allowed to register.
const DefaultMinimumAge = 12

// DefaultYearSpan is how many years back the year picker reaches.
const DefaultYearSpan = 100

// Status describes the outcome of resolving a selection.
type Status string

const (
	// StatusIncomplete means at least one part is not selected yet.
	StatusIncomplete Status = "incomplete"
	// StatusInvalid means the parts do not form a calendar date. Callers
	// treat it exactly like incomplete.
	StatusInvalid Status = "invalid"
	// StatusUnderage means the date is valid but younger than the minimum age.
	StatusUnderage Status = "underage"
	// StatusEligible means the date is valid and old enough.
	StatusEligible Status = "eligible"
)

// Selection is the transient picker state. A zero part is not selected.
type Selection struct {
	Day   int `json:"day,omitempty"`
	Month int `json:"month,omitempty"`
	Year  int `json:"year,omitempty"`
}

// IsComplete reports whether all three parts are selected.
func (s Selection) IsComplete() bool {
	return s.Day != 0 && s.Month != 0 && s.Year != 0
}

// FromDate splits a date into a Selection.
func FromDate(t time.Time) Selection {
	y, m, d := t.Date()
	return Selection{Day: d, Month: int(m), Year: y}
}

// WithDay returns s with the day replaced.
func (s Selection) WithDay(day int) Selection {
	s.Day = day
	return s
}

// WithMonth returns s with the month replaced, clearing the day when it no
// longer fits the month.
func (s Selection) WithMonth(month int) Selection {
	s.Month = month
	return s.clampDay()
}

// WithYear returns s with the year replaced, clearing the day when it no
// longer fits (29 February in a non-leap year).
func (s Selection) WithYear(year int) Selection {
	s.Year = year
	return s.clampDay()
}

func (s Selection) clampDay() Selection {
	if s.Day == 0 || s.Month < 1 || s.Month > 12 {
		return s
	}
	if s.Day > maxDay(s.Month, s.Year) {
		s.Day = 0
	}
	return s
}

// maxDay returns the number of days in month. With the year unknown,
// February is given 29 days so a leap-day selection survives until a year is
// picked.
func maxDay(month, year int) int {
	if year == 0 {
		year = 2000
	}
	return DaysIn(time.Month(month), year)
}

// DaysIn returns the number of days in month of year, accounting for leap years.
func DaysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Result is the outcome of Resolve.
type Result struct {
	// Date is set for eligible and underage selections.
	Date     *time.Time `json:"date,omitempty"`
	Eligible bool       `json:"eligible"`
	Age      int        `json:"age,omitempty"`
	Status   Status     `json:"status"`
}

// Resolver checks selections against a minimum age.
type Resolver struct {
	minimumAge int
}

// NewResolver returns a Resolver with the given minimum age. Non-positive
// values fall back to DefaultMinimumAge.
func NewResolver(minimumAge int) Resolver {
	if minimumAge <= 0 {
		minimumAge = DefaultMinimumAge
	}
	return Resolver{minimumAge: minimumAge}
}

// MinimumAge returns the configured threshold.
func (r Resolver) MinimumAge() int {
	return r.minimumAge
}

// Resolve converts sel into a date and eligibility verdict as of today.
// It never errors: missing parts yield StatusIncomplete and impossible dates
// StatusInvalid, both with a nil Date. The year is never clamped.
func (r Resolver) Resolve(sel Selection, today time.Time) Result {
	if !sel.IsComplete() {
		return Result{Status: StatusIncomplete}
	}
	if sel.Month < 1 || sel.Month > 12 || sel.Day < 1 || sel.Day > DaysIn(time.Month(sel.Month), sel.Year) {
		return Result{Status: StatusInvalid}
	}

	date := time.Date(sel.Year, time.Month(sel.Month), sel.Day, 0, 0, 0, 0, time.UTC)
	age := AgeOn(date, today)
	res := Result{Date: &date, Age: age, Status: StatusUnderage}
	if age >= r.minimumAge {
		res.Eligible = true
		res.Status = StatusEligible
	}
	return res
}

// AgeOn returns the age in whole years on today: the year difference, less
// one if this year's birthday has not happened yet.
func AgeOn(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() || (today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}
