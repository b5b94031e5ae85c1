package model

import "time"

// Profile is the single user profile stored alongside the task list.
// It lives under its own storage key and is never touched by the task
// engine.
type Profile struct {
	// Username is required; the rest is optional.
	Username string `json:"username"`

	Age    string `json:"age,omitempty"`
	Gender string `json:"gender,omitempty"`
	Bio    string `json:"bio,omitempty"`

	// DateOfBirth is nil until the user sets it.
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`

	// AvatarURL points at the hosted profile photo, if one was uploaded.
	AvatarURL string `json:"avatar_url,omitempty"`
}
