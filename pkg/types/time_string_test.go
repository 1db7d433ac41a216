package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	t.Run("valid time", func(t *testing.T) {
		ts, err := NewTimeStringFromString("10:30")
		require.NoError(t, err)
		assert.Equal(t, "10:30", ts.String())
	})

	t.Run("midnight", func(t *testing.T) {
		ts, err := NewTimeStringFromString("00:00")
		require.NoError(t, err)
		assert.Equal(t, "00:00", ts.String())
	})

	t.Run("invalid format", func(t *testing.T) {
		for _, input := range []string{"", "10", "10:3", "25:00", "10:60", "10-30", "aa:bb"} {
			_, err := NewTimeStringFromString(input)
			assert.Error(t, err, "input %q", input)
		}
	})
}

func TestTimeString_Minutes(t *testing.T) {
	ts := TimeString("09:30")
	min, err := ts.Minutes()
	require.NoError(t, err)
	assert.Equal(t, 570, min)
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("09:30")

	result, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, "10:15", result.String())
}

func TestTimeString_Comparison(t *testing.T) {
	earlier := TimeString("09:00")
	later := TimeString("18:00")

	assert.True(t, earlier.IsBefore(later))
	assert.False(t, later.IsBefore(earlier))
	assert.True(t, later.IsAfter(earlier))
	assert.False(t, earlier.IsAfter(earlier))
}

func TestTimeString_OnDate(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	ts := TimeString("10:30")

	result, err := ts.OnDate(date, loc)
	require.NoError(t, err)

	assert.Equal(t, 2026, result.Year())
	assert.Equal(t, time.September, result.Month())
	assert.Equal(t, 15, result.Day())
	assert.Equal(t, 10, result.Hour())
	assert.Equal(t, 30, result.Minute())
	assert.Equal(t, loc, result.Location())
}

func TestTimeString_JSON(t *testing.T) {
	t.Run("marshal", func(t *testing.T) {
		data, err := json.Marshal(TimeString("10:00"))
		require.NoError(t, err)
		assert.Equal(t, `"10:00"`, string(data))
	})

	t.Run("unmarshal", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, json.Unmarshal([]byte(`"18:45"`), &ts))
		assert.Equal(t, "18:45", ts.String())
	})

	t.Run("unmarshal invalid", func(t *testing.T) {
		var ts TimeString
		assert.Error(t, json.Unmarshal([]byte(`"25:99"`), &ts))
	})
}

func TestTimeString_Scan(t *testing.T) {
	t.Run("postgres time with seconds", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan("10:00:00"))
		assert.Equal(t, "10:00", ts.String())
	})

	t.Run("time.Time value", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan(time.Date(2026, 1, 1, 14, 30, 0, 0, time.UTC)))
		assert.Equal(t, "14:30", ts.String())
	})

	t.Run("bytes value", func(t *testing.T) {
		var ts TimeString
		require.NoError(t, ts.Scan([]byte("08:15:00")))
		assert.Equal(t, "08:15", ts.String())
	})
}
