package workday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"Riposo":     StatusRiposo,
		"riposo":     StatusRiposo,
		" FESTIVO ":  StatusFestivo,
		"Compleanno": StatusCompleanno,
		"Riu-nione":  StatusRiunione,
		"ferie":      StatusFerie,
		"Malattia":   StatusMalattia,
	}
	for in, want := range cases {
		got, err := ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseStatus("Vacanza")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestParseClockTime(t *testing.T) {
	c, err := ParseClockTime("08:15")
	require.NoError(t, err)
	assert.Equal(t, "08:15", c.String())

	c, err = ParseClockTime("18:05:30")
	require.NoError(t, err)
	assert.Equal(t, "18:05:30", c.String())

	_, err = ParseClockTime("25:00")
	assert.ErrorIs(t, err, ErrInvalidTime)
}

func TestClockFromMinutes_WrapsAroundMidnight(t *testing.T) {
	assert.Equal(t, "23:30", ClockFromMinutes(-30).String())
	assert.Equal(t, "00:15", ClockFromMinutes(24*60+15).String())

	ten := ClockFromMinutes(600)
	assert.Equal(t, "08:30", ten.AddMinutes(-90).String())
	assert.Equal(t, "17:15", ten.AddMinutes(435).String())
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC)

	d, err := ParseDate("07/03/2025")
	require.NoError(t, err)
	assert.True(t, d.Equal(want))

	d, err = ParseDate("2025-03-07")
	require.NoError(t, err)
	assert.True(t, d.Equal(want))

	_, err = ParseDate("32/01/2025")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestCustomCity_Validate(t *testing.T) {
	assert.NoError(t, CustomCity{Name: "Cremona", DistanceKm: 45, TravelMinutes: 50}.Validate())
	assert.NoError(t, CustomCity{Name: "Home office", DistanceKm: 0, TravelMinutes: 0}.Validate())
	assert.ErrorIs(t, CustomCity{Name: "", DistanceKm: 45, TravelMinutes: 50}.Validate(), ErrInvalidCustomCity)
	assert.ErrorIs(t, CustomCity{Name: "Cremona", DistanceKm: -1, TravelMinutes: 50}.Validate(), ErrInvalidCustomCity)
	assert.ErrorIs(t, CustomCity{Name: "Cremona", DistanceKm: 45, TravelMinutes: -5}.Validate(), ErrInvalidCustomCity)
	assert.NoError(t, CustomCity{Name: "Cremona", DistanceKm: 45, TravelMinutes: MaxTravelMinutes}.Validate())
	assert.ErrorIs(t, CustomCity{Name: "Cremona", DistanceKm: 45, TravelMinutes: MaxTravelMinutes + 1}.Validate(), ErrInvalidCustomCity)
}

func TestPeriod(t *testing.T) {
	p := NewPeriod(2, 2024)
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), p.Start())
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), p.End())
	assert.True(t, p.Contains(time.Date(2024, time.February, 29, 15, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-02", p.String())
}
