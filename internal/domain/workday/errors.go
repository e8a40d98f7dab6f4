package workday

import "errors"

var (
	ErrUnknownCity       = errors.New("city not found in location registry")
	ErrInvalidCustomCity = errors.New("custom city requires a name, a non-negative distance and travel minutes between 0 and 1440")
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidTime       = errors.New("invalid time")
	ErrInvalidStatus     = errors.New("invalid day status")
	ErrAmbiguousDay      = errors.New("a day is either a work day with a city or a non-work day with a status, not both")
	ErrEmptyDay          = errors.New("a day needs a city or a status")
	ErrWorkDayNotFound   = errors.New("work day not found")
)
