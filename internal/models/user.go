package models

import "time"

// User is the root aggregate; every other entity holds a user_id back-reference.
type User struct {
	ID              int64      `json:"id"`
	Email           string     `json:"email"`
	PasswordHash    string     `json:"-"`
	Nickname        string     `json:"nickname"`
	ProfileImageURL *string    `json:"profileImageUrl,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// UserProfileUpdate carries the patchable profile fields; nil means "leave as is".
type UserProfileUpdate struct {
	Nickname        *string `json:"nickname"`
	ProfileImageURL *string `json:"profileImageUrl"`
}

// ApplyProfileUpdate overwrites only the fields present in the patch.
func (u *User) ApplyProfileUpdate(patch UserProfileUpdate) {
	if patch.Nickname != nil {
		u.Nickname = *patch.Nickname
	}
	if patch.ProfileImageURL != nil {
		u.ProfileImageURL = patch.ProfileImageURL
	}
}
