// Package biztime centralises clock access and the business timezone.
// Everything is stored in UTC; the business timezone is only used when a
// time is formatted for people (transcripts, CLI tables).
package biztime

import (
	"sync"
	"time"
)

const (
	// DefaultTimezone matches the pt-BR audience of the support desk.
	DefaultTimezone = "America/Sao_Paulo"

	// DisplayLayout is the dd/mm/yyyy hh:mm layout used in pt-BR UIs.
	DisplayLayout = "02/01/2006 15:04"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
// If tz is empty, defaults to DefaultTimezone.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// Location returns the business timezone, falling back to UTC when the
// configured zone cannot be loaded.
func Location() *time.Location {
	if err := Init(""); err != nil || bizLocation == nil {
		return time.UTC
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatDisplay renders t in the business timezone using DisplayLayout.
func FormatDisplay(t time.Time) string {
	return t.In(Location()).Format(DisplayLayout)
}
