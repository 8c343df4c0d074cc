// Package model defines the core domain types for the activity sign-up service.
package model

import "slices"

// Activity is an extracurricular offering with a schedule, a capacity and a
// roster of participant emails in signup order.
type Activity struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// SpotsLeft returns the number of free places. It goes negative when the
// roster has been allowed to grow past capacity.
func (a *Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// IsFull returns true when no places remain.
func (a *Activity) IsFull() bool {
	return len(a.Participants) >= a.MaxParticipants
}

// HasParticipant reports whether email is on the roster.
func (a *Activity) HasParticipant(email string) bool {
	return slices.Contains(a.Participants, email)
}

// Clone returns a copy whose participant slice does not alias a's.
func (a *Activity) Clone() Activity {
	c := *a
	c.Participants = append([]string{}, a.Participants...)
	return c
}

// Catalog maps activity name to activity.
type Catalog map[string]Activity

// SignupRequest carries the inputs shared by signup and unregister.
type SignupRequest struct {
	ActivityName string
	Email        string
}

// MessageResponse is the success envelope for roster mutations.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the standard JSON error envelope.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
