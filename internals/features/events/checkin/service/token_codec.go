package service

import (
	"strconv"
	"strings"
	"time"

	"zionhub_backend/internals/helpers/dbtime"
)

// Token layout: ZIONHUB:EVENT:<event_id>:<epoch_ms>
const (
	TokenNamespace = "ZIONHUB"
	TokenKind      = "EVENT"
	TokenDelimiter = ":"

	TokenValidity = 24 * time.Hour
)

type IssuedToken struct {
	Token     string
	EventID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type TokenValidation struct {
	Valid    bool
	EventID  string
	IssuedAt time.Time
}

// TokenCodec mints and validates check-in tokens. Tokens carry no signature
// and are not bound to the person presenting them.
type TokenCodec struct {
	clock    dbtime.Clock
	validity time.Duration
}

func NewTokenCodec(clock dbtime.Clock) *TokenCodec {
	if clock == nil {
		clock = dbtime.SystemClock{}
	}
	return &TokenCodec{clock: clock, validity: TokenValidity}
}

func (tc *TokenCodec) Mint(eventID string) string {
	return tc.Issue(eventID).Token
}

func (tc *TokenCodec) Issue(eventID string) IssuedToken {
	now := tc.clock.Now()
	ms := now.UnixMilli()
	token := strings.Join([]string{
		TokenNamespace,
		TokenKind,
		eventID,
		strconv.FormatInt(ms, 10),
	}, TokenDelimiter)

	issued := time.UnixMilli(ms).UTC()
	return IssuedToken{
		Token:     token,
		EventID:   eventID,
		IssuedAt:  issued,
		ExpiresAt: issued.Add(tc.validity),
	}
}

// Validate never fails; anything unparsable is reported as Valid=false.
func (tc *TokenCodec) Validate(token string) TokenValidation {
	parts := strings.Split(token, TokenDelimiter)
	if len(parts) != 4 || parts[0] != TokenNamespace || parts[1] != TokenKind {
		return TokenValidation{}
	}

	ms, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil {
		return TokenValidation{}
	}

	// compare against the oldest accepted issue time; now-ms overflows for
	// timestamps near math.MinInt64
	if ms < tc.clock.Now().UnixMilli()-tc.validity.Milliseconds() {
		return TokenValidation{}
	}

	return TokenValidation{
		Valid:    true,
		EventID:  parts[2],
		IssuedAt: time.UnixMilli(ms).UTC(),
	}
}
