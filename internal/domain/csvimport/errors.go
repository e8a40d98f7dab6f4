package csvimport

import "errors"

var (
	ErrEmptyFile         = errors.New("csv file is empty")
	ErrMissingDayColumn  = errors.New("csv header has no day column")
	ErrMissingCityColumn = errors.New("csv header needs a city or a status column")
	ErrFileTooLarge      = errors.New("csv file exceeds the upload limit")
	ErrInvalidFileType   = errors.New("only .csv files can be imported")
	ErrImportLogNotFound = errors.New("import log not found")
)
