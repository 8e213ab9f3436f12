package timezone

import (
	"sync"
	"time"
)

const DefaultTimezone = "America/Sao_Paulo"

// loaded caches resolved zones; availability resolves one per request.
var loaded sync.Map // string -> *time.Location

func load(tz string) (*time.Location, error) {
	if loc, ok := loaded.Load(tz); ok {
		return loc.(*time.Location), nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, err
	}
	loaded.Store(tz, loc)
	return loc, nil
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := load(tz)
	return err == nil
}

// Location resolves a shop timezone, falling back to DefaultTimezone and
// then to UTC when the zone database lacks it.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := load(tz); err == nil {
			return loc
		}
	}
	if loc, err := load(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}
