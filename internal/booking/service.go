package booking

import (
	"time"
)

// Service coordinates the gym booking rules on top of a Store. It keeps no
// state between calls; every operation is a fresh read/write against the
// store, so concurrent callers are arbitrated by the store's constraints
// alone.
type Service struct {
	store          Store
	allowPastDates bool
	now            func() time.Time
}

func NewService(store Store, allowPastDates bool) *Service {
	return &Service{
		store:          store,
		allowPastDates: allowPastDates,
		now:            time.Now,
	}
}

// normalizeDate truncates a booking date to midnight UTC so slot comparisons
// ignore the time-of-day component.
func normalizeDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
