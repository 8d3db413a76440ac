package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"zionhub_backend/internals/helpers/dbtime"
)

var t0 = time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC)

func TestTokenRoundTrip(t *testing.T) {
	codec := NewTokenCodec(dbtime.NewFrozenClock(t0))

	for _, id := range []string{"E1", "2f0c7c2e-4a0b-4b43-9d3a-1f0e2b7c9a11", "", "evt_with-chars.ok"} {
		t.Run(id, func(t *testing.T) {
			v := codec.Validate(codec.Mint(id))
			assert.True(t, v.Valid)
			assert.Equal(t, id, v.EventID)
		})
	}
}

func TestTokenFormat(t *testing.T) {
	codec := NewTokenCodec(dbtime.NewFrozenClock(t0))
	issued := codec.Issue("E1")

	assert.Equal(t, "ZIONHUB:EVENT:E1:1704132000000", issued.Token)
	assert.Equal(t, t0, issued.IssuedAt)
	assert.Equal(t, t0.Add(24*time.Hour), issued.ExpiresAt)
}

func TestTokenExpiryBoundary(t *testing.T) {
	clk := dbtime.NewFrozenClock(t0)
	codec := NewTokenCodec(clk)
	token := codec.Mint("E1")

	tests := []struct {
		name  string
		at    time.Time
		valid bool
	}{
		{"immediately", t0, true},
		{"one hour later", t0.Add(time.Hour), true},
		{"1ms before expiry", t0.Add(24*time.Hour - time.Millisecond), true},
		{"exactly at expiry", t0.Add(24 * time.Hour), true},
		{"1ms after expiry", t0.Add(24*time.Hour + time.Millisecond), false},
		{"a week later", t0.Add(7 * 24 * time.Hour), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk.Set(tt.at)
			v := codec.Validate(token)
			assert.Equal(t, tt.valid, v.Valid)
			if !tt.valid {
				assert.Empty(t, v.EventID)
			}
		})
	}
}

func TestTokenMalformed(t *testing.T) {
	codec := NewTokenCodec(dbtime.NewFrozenClock(t0))

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"three parts", "ZIONHUB:EVENT:1704132000000"},
		{"five parts", "ZIONHUB:EVENT:E1:extra:1704132000000"},
		{"wrong namespace", "ZIONHUBX:EVENT:E1:1704132000000"},
		{"lowercase namespace", "zionhub:EVENT:E1:1704132000000"},
		{"wrong kind", "ZIONHUB:USER:E1:1704132000000"},
		{"non numeric timestamp", "ZIONHUB:EVENT:E1:yesterday"},
		{"float timestamp", "ZIONHUB:EVENT:E1:1704132000000.5"},
		{"empty timestamp", "ZIONHUB:EVENT:E1:"},
		{"garbage", "::::"},
		{"min int64 timestamp", "ZIONHUB:EVENT:E1:-9223372036854775808"},
		{"large negative timestamp", "ZIONHUB:EVENT:E1:-9000000000000000000"},
		{"overflowing timestamp", "ZIONHUB:EVENT:E1:9223372036854775808"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				v := codec.Validate(tt.token)
				assert.False(t, v.Valid)
				assert.Empty(t, v.EventID)
			})
		})
	}
}
