package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocalDateTime(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)

	got, err := ParseLocalDateTime("2025-03-01T10:00", ist)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 1, 4, 30, 0, 0, time.UTC), got.UTC())

	got, err = ParseLocalDateTime(" 2025-03-01T10:00:30 ", ist)
	require.NoError(t, err)
	assert.Equal(t, 30, got.Second())

	_, err = ParseLocalDateTime("01/03/2025 10:00", ist)
	assert.Error(t, err)
	_, err = ParseLocalDateTime("", ist)
	assert.Error(t, err)

	assert.Equal(t, "2025-03-01T10:00", FormatLocalDateTime(time.Date(2025, 3, 1, 4, 30, 0, 0, time.UTC), ist))
}

func TestIsVehicleType(t *testing.T) {
	for _, v := range []string{"car", "bike", "SUV", "truck"} {
		assert.True(t, IsVehicleType(v), v)
	}
	assert.False(t, IsVehicleType("tank"))
	assert.False(t, IsVehicleType(""))
}
