// Package calendar generates the month grid used by the appointment
// booking flow. The grid is always 6 weeks of 7 days, Sunday first,
// padded with days from the adjacent months.
package calendar

import "time"

// GridSize is the fixed number of cells in a month grid (6 weeks x 7 days).
const GridSize = 42

// WeekdayLabels are the single-letter column headers, Sunday first.
var WeekdayLabels = []string{"S", "M", "T", "W", "T", "F", "S"}

// MonthNames indexes display names by time.Month - 1.
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// Day is a single grid cell. Number is the day-of-month shown in the
// cell; InMonth reports whether it belongs to the displayed month.
// Trailing cells after the displayed month carry a cosmetic 1..n
// sequence that is not validated against the following month.
type Day struct {
	Number  int  `json:"number"`
	InMonth bool `json:"in_month"`
}

// MonthGrid returns the 42 cells for the given year and month in
// calendar order. Cells before the 1st are the final days of the
// previous month in descending order; cells after the last day count
// up from 1. The function is total: any (year, month) accepted by
// time.Date produces a grid.
func MonthGrid(year int, month time.Month) []Day {
	first := int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
	inMonth := DaysInMonth(year, month)
	prev := DaysInMonth(year, month-1)

	grid := make([]Day, 0, GridSize)
	for i := first - 1; i >= 0; i-- {
		grid = append(grid, Day{Number: prev - i})
	}
	for d := 1; d <= inMonth; d++ {
		grid = append(grid, Day{Number: d, InMonth: true})
	}
	for d := 1; len(grid) < GridSize; d++ {
		grid = append(grid, Day{Number: d})
	}
	return grid
}

// DaysInMonth returns the day count of the given month. Out-of-range
// months normalize the way time.Date does, so month-1 of January is
// December of the prior year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// View is a displayed (year, month) pair with month-step navigation.
type View struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// ViewOf returns the view containing t.
func ViewOf(t time.Time) View {
	return View{Year: t.Year(), Month: t.Month()}
}

// Prev steps the view back one month, rolling the year when stepping
// past January.
func (v View) Prev() View {
	t := time.Date(v.Year, v.Month-1, 1, 0, 0, 0, 0, time.UTC)
	return View{Year: t.Year(), Month: t.Month()}
}

// Next steps the view forward one month, rolling the year when
// stepping past December.
func (v View) Next() View {
	t := time.Date(v.Year, v.Month+1, 1, 0, 0, 0, 0, time.UTC)
	return View{Year: t.Year(), Month: t.Month()}
}

// Contains reports whether the date falls inside the displayed month.
func (v View) Contains(t time.Time) bool {
	return t.Year() == v.Year && t.Month() == v.Month
}

// Name returns the display name of the viewed month.
func (v View) Name() string {
	return MonthNames[int(v.Month)-1]
}

// Grid returns the 42-cell grid for the viewed month.
func (v View) Grid() []Day {
	return MonthGrid(v.Year, v.Month)
}
