package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrozenClock(t *testing.T) {
	start := time.Date(2024, 3, 10, 19, 0, 0, 0, time.UTC)
	clk := NewFrozenClock(start)

	assert.Equal(t, start, clk.Now())
	clk.Advance(90 * time.Minute)
	assert.Equal(t, start.Add(90*time.Minute), clk.Now())
	clk.Set(start)
	assert.Equal(t, start, clk.Now())
}

func TestSystemClockIsUTC(t *testing.T) {
	assert.Equal(t, time.UTC, SystemClock{}.Now().Location())
}

func TestLoadLocationFallback(t *testing.T) {
	loc := LoadLocation("Not/AZone")
	require.NotNil(t, loc)

	def := LoadLocation("")
	assert.Equal(t, def.String(), loc.String())
}

func TestEventStart(t *testing.T) {
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	got := EventStart(date, 19*time.Hour+30*time.Minute, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 10, 19, 30, 0, 0, time.UTC), got)
}

func TestTodParse(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"19:00", 19 * time.Hour, false},
		{"18:45:30", 18*time.Hour + 45*time.Minute + 30*time.Second, false},
		{" 07:05 ", 7*time.Hour + 5*time.Minute, false},
		{"25:00", 0, true},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			tod, err := Parse(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tod.SinceMidnight())
		})
	}
}
