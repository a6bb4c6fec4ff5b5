package models

import "time"

// Reminder is a notification to deliver to the user at a set time,
// optionally linked to a schedule entry. SentAt records delivery by the
// dispatcher so a reminder is sent at most once.
type Reminder struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"userId"`
	ScheduleID       *int64     `json:"scheduleId,omitempty"`
	Message          string     `json:"message"`
	NotificationTime time.Time  `json:"notificationTime"`
	SentAt           *time.Time `json:"sentAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// ReminderUpdate carries the patchable fields; nil means "leave as is".
type ReminderUpdate struct {
	Message          *string    `json:"message"`
	NotificationTime *time.Time `json:"notificationTime"`
}

// ApplyUpdate overwrites only the fields present in the patch.
func (r *Reminder) ApplyUpdate(patch ReminderUpdate) {
	if patch.Message != nil {
		r.Message = *patch.Message
	}
	if patch.NotificationTime != nil {
		r.NotificationTime = *patch.NotificationTime
	}
}
