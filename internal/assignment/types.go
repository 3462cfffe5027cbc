// Package assignment links users to devices. An assignment is keyed by
// the (user_id, device_id) pair, so a device is assigned to a user at
// most once.
package assignment

import "time"

// Assignment is a stored user-device link.
type Assignment struct {
	UserID     int64     `json:"user_id"`
	DeviceID   int64     `json:"device_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

// NewAssignment holds the fields for Create. A nil AssignedAt lets the
// store stamp the current time.
type NewAssignment struct {
	UserID     int64
	DeviceID   int64
	AssignedAt *time.Time
}

// DeviceLink is one device assigned to a given user.
type DeviceLink struct {
	DeviceID   int64     `json:"device_id"`
	AssignedAt time.Time `json:"assigned_at"`
}

// UserLink is one user a given device is assigned to.
type UserLink struct {
	UserID     int64     `json:"user_id"`
	AssignedAt time.Time `json:"assigned_at"`
}
