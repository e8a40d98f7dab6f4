package location

import "errors"

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrCityNameExists   = errors.New("location with this city name already exists")
	ErrRegistryNotEmpty = errors.New("location registry already has entries")
	ErrLocationInUse    = errors.New("location is referenced by recorded work days")
)
