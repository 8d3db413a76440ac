package dbtime

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Clock is the single source of "now" for token minting and attendance timestamps.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// FrozenClock returns a fixed instant until moved with Set or Advance.
type FrozenClock struct {
	mu  sync.RWMutex
	now time.Time
}

func NewFrozenClock(t time.Time) *FrozenClock {
	return &FrozenClock{now: t}
}

func (f *FrozenClock) Now() time.Time {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.now
}

func (f *FrozenClock) Set(t time.Time) {
	f.mu.Lock()
	f.now = t
	f.mu.Unlock()
}

func (f *FrozenClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

// Locals key set by the router for the configured church timezone
const LocChurchLoc = "church_loc"

const DefaultTimezone = "America/Sao_Paulo"

var (
	locMu    sync.Mutex
	locCache = map[string]*time.Location{}
)

// LoadLocation resolves an IANA name, falling back to the default church zone and then UTC.
func LoadLocation(name string) *time.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTimezone
	}

	locMu.Lock()
	defer locMu.Unlock()
	if loc, ok := locCache[name]; ok {
		return loc
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		if loc, err = time.LoadLocation(DefaultTimezone); err != nil {
			loc = time.UTC
		}
	}
	locCache[name] = loc
	return loc
}

// GetChurchLocation reads the location stored in Locals, UTC when absent.
func GetChurchLocation(c *fiber.Ctx) *time.Location {
	if c == nil {
		return time.UTC
	}
	if v := c.Locals(LocChurchLoc); v != nil {
		if loc, ok := v.(*time.Location); ok && loc != nil {
			return loc
		}
	}
	return time.UTC
}

// ToChurchTimePtr converts a stored UTC instant for display.
func ToChurchTimePtr(c *fiber.Ctx, t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.In(GetChurchLocation(c))
	return &v
}

// EventStart combines a calendar date with a time of day in loc.
func EventStart(date time.Time, timeOfDay time.Duration, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc).Add(timeOfDay)
}
