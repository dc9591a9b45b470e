// Package event holds the message contracts exchanged between modules over
// the broker. Both the publishing and consuming side import these types, so
// field changes must stay backward compatible.
package event

import "time"

const (
	// TopicLoginChallengeIssued carries LoginChallengeIssued events.
	TopicLoginChallengeIssued = "auth.login_challenge_issued"

	// ChannelNotificationEmail is the consumer channel/group for the email
	// notification worker.
	ChannelNotificationEmail = "notification-email"
)

// LoginChallengeIssued is published when a login attempt passes the password
// check and a verification code is stored for the user.
type LoginChallengeIssued struct {
	// EventID uniquely identifies this event for consumer deduplication.
	EventID string `json:"event_id"`
	// UserID is the user the challenge belongs to.
	UserID int64 `json:"user_id,string"`
	// Email is the delivery address.
	Email string `json:"email"`
	// Name is the user's display name for the message body.
	Name string `json:"name"`
	// Code is the plaintext verification code to deliver.
	Code string `json:"code"`
	// ExpiresAt is when the code stops being accepted.
	ExpiresAt time.Time `json:"expires_at"`
	// IssuedAt is when the challenge was created.
	IssuedAt time.Time `json:"issued_at"`
}
