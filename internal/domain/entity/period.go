package entity

import (
	"fmt"
	"time"
)

// Period identifies a calendar month for VAT bookkeeping.
type Period struct {
	Year  int
	Month int // 1..12
}

// PeriodOf returns the period a date falls in.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// Valid reports whether the period is a usable calendar month.
func (p Period) Valid() bool {
	return p.Year >= 2000 && p.Year <= 2100 && p.Month >= 1 && p.Month <= 12
}

// Index orders periods chronologically.
func (p Period) Index() int {
	return p.Year*12 + (p.Month - 1)
}

// Before reports whether p is strictly earlier than q.
func (p Period) Before(q Period) bool {
	return p.Index() < q.Index()
}

// Prev returns the immediately preceding calendar month.
func (p Period) Prev() Period {
	if p.Month == 1 {
		return Period{Year: p.Year - 1, Month: 12}
	}
	return Period{Year: p.Year, Month: p.Month - 1}
}

// Bounds returns the half-open [from, to) time range of the period.
func (p Period) Bounds() (time.Time, time.Time) {
	from := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// String formats the period as YYYY-MM.
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}
