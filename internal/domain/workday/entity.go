package workday

import (
	"fmt"
	"strings"
	"time"

	"github.com/worktravel/worktravel-api/internal/pkg/validator"
	"golang.org/x/text/cases"
)

// DateLayout is the canonical wire form of a day.
const DateLayout = "2006-01-02"

// Status labels a non-work day.
type Status string

const (
	StatusRiposo     Status = "Riposo"     // rest
	StatusFestivo    Status = "Festivo"    // public holiday
	StatusCompleanno Status = "Compleanno" // birthday leave
	StatusRiunione   Status = "Riunione"   // meeting
	StatusFerie      Status = "Ferie"      // vacation
	StatusMalattia   Status = "Malattia"   // sick leave
)

// Statuses lists every status in display order.
func Statuses() []Status {
	return []Status{StatusRiposo, StatusFestivo, StatusCompleanno, StatusRiunione, StatusFerie, StatusMalattia}
}

// ParseStatus matches s against the known statuses ignoring case, spaces and dashes.
func ParseStatus(s string) (Status, error) {
	key := cases.Fold().String(strings.ReplaceAll(strings.TrimSpace(s), "-", ""))
	for _, st := range Statuses() {
		if cases.Fold().String(string(st)) == key {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// ClockTime is a time of day in seconds since midnight.
type ClockTime int

const secondsPerDay = 24 * 60 * 60

// ParseClockTime accepts "HH:MM" and "HH:MM:SS".
func ParseClockTime(s string) (ClockTime, error) {
	secs, err := validator.ParseClock(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q must be HH:MM or HH:MM:SS", ErrInvalidTime, s)
	}
	return ClockTime(secs), nil
}

// ClockFromMinutes wraps m around midnight, so -30 is 23:30.
func ClockFromMinutes(m int) ClockTime {
	secs := (m * 60) % secondsPerDay
	if secs < 0 {
		secs += secondsPerDay
	}
	return ClockTime(secs)
}

// AddMinutes returns the clock time m minutes later, wrapping around midnight.
func (c ClockTime) AddMinutes(m int) ClockTime {
	return ClockFromMinutes(int(c)/60 + m)
}

func (c ClockTime) Hour() int   { return int(c) / 3600 }
func (c ClockTime) Minute() int { return int(c) % 3600 / 60 }
func (c ClockTime) Second() int { return int(c) % 60 }

// String renders HH:MM, or HH:MM:SS when seconds are set.
func (c ClockTime) String() string {
	if c.Second() != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", c.Hour(), c.Minute(), c.Second())
	}
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// ParseDate accepts "DD/MM/YYYY" and "YYYY-MM-DD" and returns UTC midnight.
func ParseDate(s string) (time.Time, error) {
	d, err := validator.ParseCalendarDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return d, nil
}

// CivilDate drops the time of day and location from t.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CityRef points a work day at its destination.
type CityRef interface {
	CityName() string
	isCityRef()
}

// StandardCity resolves through the location registry.
type StandardCity struct {
	Name string
}

func (c StandardCity) CityName() string { return c.Name }
func (StandardCity) isCityRef()         {}

// CustomCity is an ad-hoc destination carrying its own distance and travel time.
type CustomCity struct {
	Name          string
	DistanceKm    float64
	TravelMinutes int
}

func (c CustomCity) CityName() string { return c.Name }
func (CustomCity) isCityRef()         {}

// MaxTravelMinutes caps a one-way trip at a full day.
const MaxTravelMinutes = 24 * 60

func (c CustomCity) Validate() error {
	if strings.TrimSpace(c.Name) == "" || !(c.DistanceKm >= 0) || c.TravelMinutes < 0 || c.TravelMinutes > MaxTravelMinutes {
		return fmt.Errorf("%w: %q (%.2f km, %d min)", ErrInvalidCustomCity, c.Name, c.DistanceKm, c.TravelMinutes)
	}
	return nil
}

// Variant is either Work or NonWork.
type Variant interface {
	isVariant()
}

// Work is a day spent travelling to a city. Actual clock events are informational.
type Work struct {
	City                 CityRef
	ActualArrivalAtStore *ClockTime
	ActualExitFromStore  *ClockTime
	ActualReturnHome     *ClockTime
}

func (Work) isVariant() {}

// NonWork is a rest, leave or holiday day.
type NonWork struct {
	Status Status
}

func (NonWork) isVariant() {}

// WorkDay is one calendar day of a user. (UserID, Date) is its identity.
type WorkDay struct {
	ID        string
	UserID    string
	Date      time.Time // UTC midnight
	Variant   Variant
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (w WorkDay) DateKey() string {
	return w.Date.Format(DateLayout)
}

// Period is a calendar month.
type Period struct {
	Year  int
	Month time.Month
}

func NewPeriod(month, year int) Period {
	return Period{Year: year, Month: time.Month(month)}
}

// Start is the first day of the month at UTC midnight.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End is the first day of the following month (exclusive).
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

func (p Period) Contains(date time.Time) bool {
	d := CivilDate(date)
	return !d.Before(p.Start()) && d.Before(p.End())
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}
