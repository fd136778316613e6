package domain

import (
	"time"
)

// Activity is a bookable class type (spinning, boxeo, ...). Names are unique
// across the catalog.
type Activity struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}

// Shift is a recurring time window of the gym day. Times use the "15:04:05"
// wall-clock format; StartTime must be strictly before EndTime.
type Shift struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
