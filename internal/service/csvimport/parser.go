package csvimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/worktravel/worktravel-api/internal/domain/csvimport"
	"github.com/worktravel/worktravel-api/internal/domain/location"
	"github.com/worktravel/worktravel-api/internal/domain/workday"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type column int

const (
	colDay column = iota
	colCity
	colStatus
	colArrival
	colExit
	colReturn
	colCustomKm
	colCustomMinutes
)

// headerAliases lists the accepted header names per column, already folded.
var headerAliases = map[column][]string{
	colDay:           {"giorno", "data", "day", "date"},
	colCity:          {"città", "citta", "city", "city_name", "destinazione", "destination"},
	colStatus:        {"stato giornata", "stato", "status"},
	colArrival:       {"arrivo vis", "arrivo", "actual_arrival_at_store", "arrival"},
	colExit:          {"uscita vis", "uscita", "actual_exit_from_store", "exit"},
	colReturn:        {"rientro a casa", "rientro", "actual_return_home", "return_home"},
	colCustomKm:      {"km", "distanza km", "custom_distance_km", "distance_km"},
	colCustomMinutes: {"minuti andata", "custom_travel_minutes", "travel_minutes"},
}

// ParsedRow is a data row that produced a valid day. Row is 1-based.
type ParsedRow struct {
	Row int
	Day workday.WorkDay
}

// ParseResult holds every row outcome in file order.
type ParseResult struct {
	Rows     []ParsedRow
	Errors   []csvimport.RowError
	RowsRead int
	Blank    int
}

// ParseRows reads a whole CSV file. Only unreadable input or a missing
// required header fails the call; bad rows end up in Errors.
func ParseRows(r io.Reader, registry location.Registry) (ParseResult, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	data, err := io.ReadAll(decoded)
	if err != nil {
		return ParseResult{}, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ParseResult{}, csvimport.ErrEmptyFile
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return ParseResult{}, fmt.Errorf("failed to read csv header: %w", err)
	}
	cols := mapHeader(header)
	if _, ok := cols[colDay]; !ok {
		return ParseResult{}, csvimport.ErrMissingDayColumn
	}
	_, hasCity := cols[colCity]
	_, hasStatus := cols[colStatus]
	if !hasCity && !hasStatus {
		return ParseResult{}, csvimport.ErrMissingCityColumn
	}

	var result ParseResult
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		result.RowsRead++
		rowNum := result.RowsRead

		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				result.Errors = append(result.Errors, csvimport.RowError{Row: rowNum, Reason: parseErr.Err.Error()})
				continue
			}
			return ParseResult{}, fmt.Errorf("failed to read csv row %d: %w", rowNum, err)
		}

		if isBlank(record) {
			result.Blank++
			continue
		}

		day, err := parseRow(row{cols: cols, record: record}, registry)
		if err != nil {
			result.Errors = append(result.Errors, csvimport.RowError{Row: rowNum, Reason: err.Error()})
			continue
		}
		result.Rows = append(result.Rows, ParsedRow{Row: rowNum, Day: day})
	}

	return result, nil
}

// detectDelimiter picks ';' when the header line contains one, ',' otherwise.
func detectDelimiter(data []byte) rune {
	first := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		first = data[:i]
	}
	if bytes.IndexByte(first, ';') >= 0 {
		return ';'
	}
	return ','
}

func foldHeader(s string) string {
	return cases.Fold().String(strings.Join(strings.Fields(s), " "))
}

func mapHeader(header []string) map[column]int {
	byName := make(map[string]column)
	for col, aliases := range headerAliases {
		for _, a := range aliases {
			byName[a] = col
		}
	}

	cols := make(map[column]int)
	for i, h := range header {
		col, ok := byName[foldHeader(h)]
		if !ok {
			continue
		}
		if _, seen := cols[col]; !seen {
			cols[col] = i
		}
	}
	return cols
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

type row struct {
	cols   map[column]int
	record []string
}

func (r row) get(c column) string {
	i, ok := r.cols[c]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

// parseRow applies, in order: status column, status keyword in the city
// column, registry city, custom city columns.
func parseRow(r row, registry location.Registry) (workday.WorkDay, error) {
	dayText := r.get(colDay)
	if dayText == "" {
		return workday.WorkDay{}, fmt.Errorf("%w: day is empty", workday.ErrInvalidDate)
	}
	date, err := workday.ParseDate(dayText)
	if err != nil {
		return workday.WorkDay{}, err
	}
	day := workday.WorkDay{Date: date}

	if statusText := r.get(colStatus); statusText != "" {
		status, err := workday.ParseStatus(statusText)
		if err != nil {
			return workday.WorkDay{}, err
		}
		day.Variant = workday.NonWork{Status: status}
		return day, nil
	}

	cityText := r.get(colCity)
	if cityText == "" {
		return workday.WorkDay{}, workday.ErrEmptyDay
	}
	if status, ok := statusInText(cityText); ok {
		day.Variant = workday.NonWork{Status: status}
		return day, nil
	}

	city, err := resolveCity(r, cityText, registry)
	if err != nil {
		return workday.WorkDay{}, err
	}

	w := workday.Work{City: city}
	if w.ActualArrivalAtStore, err = optionalClock(r.get(colArrival)); err != nil {
		return workday.WorkDay{}, err
	}
	if w.ActualExitFromStore, err = optionalClock(r.get(colExit)); err != nil {
		return workday.WorkDay{}, err
	}
	if w.ActualReturnHome, err = optionalClock(r.get(colReturn)); err != nil {
		return workday.WorkDay{}, err
	}

	day.Variant = w
	return day, nil
}

// statusInText finds a status keyword anywhere in s, e.g. "Ferie estive".
func statusInText(s string) (workday.Status, bool) {
	folded := cases.Fold().String(s)
	for _, st := range workday.Statuses() {
		if strings.Contains(folded, cases.Fold().String(string(st))) {
			return st, true
		}
	}
	return "", false
}

func resolveCity(r row, cityText string, registry location.Registry) (workday.CityRef, error) {
	if loc, ok := registry.Lookup(cityText); ok {
		return workday.StandardCity{Name: loc.CityName}, nil
	}

	kmText, minutesText := r.get(colCustomKm), r.get(colCustomMinutes)
	if kmText == "" || minutesText == "" {
		return nil, fmt.Errorf("%w: %q", workday.ErrUnknownCity, cityText)
	}

	km, err := strconv.ParseFloat(strings.ReplaceAll(kmText, ",", "."), 64)
	if err != nil {
		return nil, fmt.Errorf("%w: distance %q is not a number", workday.ErrInvalidCustomCity, kmText)
	}
	minutes, err := strconv.Atoi(minutesText)
	if err != nil {
		return nil, fmt.Errorf("%w: travel minutes %q is not a whole number", workday.ErrInvalidCustomCity, minutesText)
	}

	city := workday.CustomCity{Name: cityText, DistanceKm: km, TravelMinutes: minutes}
	if err := city.Validate(); err != nil {
		return nil, err
	}
	return city, nil
}

func optionalClock(s string) (*workday.ClockTime, error) {
	if s == "" {
		return nil, nil
	}
	c, err := workday.ParseClockTime(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
