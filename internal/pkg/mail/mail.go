// Package mail defines the outbound email contract.
//
// Use cases depend on the Mail interface and a provider-agnostic Message;
// the delivery transport (SMTP here, an API provider elsewhere) is an
// implementation detail.
package mail

import (
	"context"
	"io"
)

// Message is a provider-agnostic email payload.
type Message struct {
	// From overrides the configured default sender when set.
	From string
	// To lists the primary recipients.
	To []string
	// Cc lists carbon copy recipients.
	Cc []string
	// Bcc lists blind carbon copy recipients.
	Bcc []string
	// Subject is the subject line.
	Subject string
	// TextBody is the plain-text body.
	TextBody string
	// HTMLBody is the optional HTML body.
	HTMLBody string
}

// Mail sends email messages.
type Mail interface {
	io.Closer
	// Send delivers msg through the underlying provider.
	Send(ctx context.Context, msg Message) error
}
