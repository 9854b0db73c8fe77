package provider

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Stdout implements Provider by writing messages to standard output.
// Intended for offline development; messages are never delivered.
type Stdout struct {
	writer io.Writer
}

// NewStdout creates a Stdout provider that prints messages to os.Stdout.
func NewStdout() *Stdout {
	return &Stdout{writer: os.Stdout}
}

func (s *Stdout) Name() string { return "stdout" }

// Verify always succeeds since stdout is always available.
func (s *Stdout) Verify(_ context.Context) error {
	return nil
}

// Send prints the message details and returns a successful result.
func (s *Stdout) Send(_ context.Context, msg *Message) (*DeliveryResult, error) {
	id := "stdout-" + uuid.New().String()

	var b strings.Builder
	b.WriteString("--- stdout provider: message ---\n")
	fmt.Fprintf(&b, "ID:       %s\n", id)
	fmt.Fprintf(&b, "From:     %s\n", msg.From)
	fmt.Fprintf(&b, "To:       %s\n", strings.Join(msg.To, ", "))
	if msg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\n", msg.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject:  %s\n", msg.Subject)
	if msg.HighPriority {
		b.WriteString("Priority: high\n")
	}
	fmt.Fprintf(&b, "Text:     (%d bytes)\n", len(msg.TextBody))
	fmt.Fprintf(&b, "HTML:     (%d bytes)\n", len(msg.HTMLBody))
	b.WriteString("--- end ---\n")

	if _, err := io.WriteString(s.writer, b.String()); err != nil {
		return nil, fmt.Errorf("stdout: write: %w", err)
	}

	return &DeliveryResult{
		MessageID: id,
		Timestamp: time.Now(),
	}, nil
}
