// Package provider implements the mail transport capability behind the
// notification relay. Providers accept a structured message and either
// succeed with a delivery identifier or fail with a transport error.
package provider

import (
	"context"
	"time"
)

// Provider defines the interface for delivering an outbound message.
type Provider interface {
	// Send delivers a message and returns a delivery result.
	Send(ctx context.Context, msg *Message) (*DeliveryResult, error)
	// Verify checks that the transport is reachable and the credential is
	// accepted, without sending anything.
	Verify(ctx context.Context) error
	// Name returns the provider's identifier (e.g. "smtp", "ethereal").
	Name() string
}

// Message represents an outbound email message. From and the To entries are
// RFC 5322 addresses, possibly with display names. Built deterministically
// from a submission and never persisted.
type Message struct {
	From         string
	To           []string
	ReplyTo      string
	Subject      string
	TextBody     string
	HTMLBody     string
	HighPriority bool
}

// DeliveryResult contains the outcome of a successful delivery attempt.
type DeliveryResult struct {
	// MessageID is the Message-ID header assigned to the delivered message.
	MessageID string
	// PreviewURL is a human-viewable link to the message in sandbox mode;
	// empty for real deliveries.
	PreviewURL string
	Timestamp  time.Time
}
