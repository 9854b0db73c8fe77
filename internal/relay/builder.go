package relay

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/cresolva/notify-relay/internal/provider"
)

const contactHTML = `
        <h3>New message from your website</h3>
        <p><strong>Name:</strong> %s</p>
        <p><strong>Email:</strong> %s</p>
        <p><strong>Subject:</strong> %s</p>
        <p><strong>Message:</strong></p>
        <p>%s</p>
      `

const chatHTML = `
        <div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; border: 3px solid #ff0000; padding: 15px; border-radius: 8px;">
          <h2 style="color: #ff0000; text-align: center;">⚠️ URGENT: New Chat Message</h2>
          <div style="padding: 15px; background-color: #f8f8f8; border-radius: 8px; margin-bottom: 20px;">
            <p style="margin: 0; font-size: 18px;"><strong>From:</strong> %s</p>
            <p style="margin-top: 10px; font-size: 18px; color: #333;">%s</p>
            <p style="margin-top: 20px; font-size: 14px; color: #666;">Received: %s</p>
          </div>
          <p style="color: #333; font-size: 16px; font-weight: bold;">Reply to this email to respond to the customer in the chat.</p>
          <p style="color: #666; font-size: 14px;">This message was sent from the live chat on your website.</p>
        </div>
      `

// Builder turns validated submissions into outbound messages. Pure: the
// same submission and timestamp always produce the same messages.
type Builder struct {
	// Operator is the fixed operator mailbox. Every contact message and
	// chat notification is addressed to it regardless of submitted fields.
	Operator string
	// Phone and Gateways form the SMS broadcast list: one
	// phone@gateway recipient per carrier gateway domain.
	Phone    string
	Gateways []string
}

// Contact builds the single message for a contact-form submission. The
// submitter appears as the display-name/address pair in From and as
// Reply-To; delivery always targets the operator mailbox.
func (b *Builder) Contact(sub ContactSubmission) *provider.Message {
	from := (&mail.Address{Name: sub.Name, Address: sub.Email}).String()

	return &provider.Message{
		From:     from,
		To:       []string{b.Operator},
		ReplyTo:  sub.Email,
		Subject:  fmt.Sprintf("New message from %s: %s", sub.Name, sub.Subject),
		TextBody: fmt.Sprintf("Message from: %s (%s)\n\n%s", sub.Name, sub.Email, sub.Message),
		HTMLBody: fmt.Sprintf(contactHTML, sub.Name, sub.Email, sub.Subject, newlineToBreak(sub.Message)),
	}
}

// Chat builds the two messages for a chat forward: an urgent notification to
// the operator mailbox and an SMS-gateway broadcast. The timestamp is
// rendered into the notification body at build time and stored nowhere.
func (b *Builder) Chat(sub ChatSubmission, now time.Time) (urgent, sms *provider.Message) {
	urgent = &provider.Message{
		From:         b.Operator,
		To:           []string{b.Operator},
		Subject:      fmt.Sprintf("🔴 URGENT: Chat Message from %s", sub.Name),
		TextBody:     fmt.Sprintf("%s\n\nReply to this email to respond to the chat.", sub.Message),
		HTMLBody:     fmt.Sprintf(chatHTML, sub.Name, sub.Message, now.Format("1/2/2006, 3:04:05 PM")),
		HighPriority: true,
	}

	recipients := make([]string, 0, len(b.Gateways))
	for _, gw := range b.Gateways {
		recipients = append(recipients, fmt.Sprintf("%s@%s", b.Phone, gw))
	}

	// Same subject and text broadcast to every gateway; carriers deliver
	// independently and at least one should resolve to the right network.
	sms = &provider.Message{
		From:         b.Operator,
		To:           recipients,
		Subject:      "Website Chat",
		TextBody:     fmt.Sprintf("From %s: %s", sub.Name, sub.Message),
		HighPriority: true,
	}

	return urgent, sms
}

// newlineToBreak converts newlines in the free-text message to HTML line
// breaks. Applied to the HTML variant only; the text body keeps literal
// newlines.
func newlineToBreak(s string) string {
	return strings.ReplaceAll(s, "\n", "<br>")
}
