// Package entity holds the notification module's domain types.
package entity

import (
	"time"

	"github.com/firmanbudi/otpgate/internal/pkg/valueobject"
)

// DeliveryStatus tracks an email through its lifecycle.
type DeliveryStatus string

const (
	DeliveryStatusQueued DeliveryStatus = "queued"
	DeliveryStatusSent   DeliveryStatus = "sent"
	DeliveryStatusFailed DeliveryStatus = "failed"
)

func (s DeliveryStatus) String() string { return string(s) }

// CreateDeliveryLog records an email about to be sent.
type CreateDeliveryLog struct {
	ID         int64
	EventID    string
	UserID     int64
	Recipient  string
	TriggerKey string
	Status     DeliveryStatus
	Details    valueobject.JSONMap
}

// UpdateDeliveryLog records the outcome of a send attempt.
type UpdateDeliveryLog struct {
	ID               int64
	Status           DeliveryStatus
	ProviderResponse valueobject.JSONMap
	NextRetryAt      *time.Time
}

// TriggerKeyLoginChallenge marks delivery logs produced by login
// verification emails.
const TriggerKeyLoginChallenge = "login_challenge"
