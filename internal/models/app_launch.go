package models

import "time"

// AppLaunch records one client start, used for usage-pattern analysis
// and reminder-time suggestions.
type AppLaunch struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	LaunchTime time.Time `json:"launchTime"`
}
