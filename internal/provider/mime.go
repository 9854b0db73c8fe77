package provider

import (
	"fmt"
	"mime"
	"mime/multipart"
	"net/mail"
	"net/textproto"
	"strings"
	"time"

	"github.com/google/uuid"
)

// buildMIME assembles an RFC 5322 message from msg and returns the raw bytes
// together with the generated Message-ID. Messages with both a text and an
// HTML body become multipart/alternative; text-only messages stay flat.
func buildMIME(msg *Message, now time.Time) ([]byte, string, error) {
	from, err := mail.ParseAddress(msg.From)
	if err != nil {
		return nil, "", fmt.Errorf("parse from address: %w", err)
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.New().String(), addressDomain(from.Address))

	var b strings.Builder
	writeHeader(&b, "From", msg.From)
	writeHeader(&b, "To", strings.Join(msg.To, ", "))
	if msg.ReplyTo != "" {
		writeHeader(&b, "Reply-To", msg.ReplyTo)
	}
	writeHeader(&b, "Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	writeHeader(&b, "Date", now.Format(time.RFC1123Z))
	writeHeader(&b, "Message-ID", messageID)
	if msg.HighPriority {
		writeHeader(&b, "X-Priority", "1")
		writeHeader(&b, "Importance", "high")
	}
	writeHeader(&b, "MIME-Version", "1.0")

	if msg.HTMLBody == "" {
		writeHeader(&b, "Content-Type", `text/plain; charset="utf-8"`)
		b.WriteString("\r\n")
		b.WriteString(toCRLF(msg.TextBody))
		return []byte(b.String()), messageID, nil
	}

	var body strings.Builder
	mw := multipart.NewWriter(&body)

	writeHeader(&b, "Content-Type", fmt.Sprintf(`multipart/alternative; boundary="%s"`, mw.Boundary()))
	b.WriteString("\r\n")

	// Plain text first so HTML-capable clients prefer the later part.
	if err := writePart(mw, "text/plain", msg.TextBody); err != nil {
		return nil, "", err
	}
	if err := writePart(mw, "text/html", msg.HTMLBody); err != nil {
		return nil, "", err
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	b.WriteString(body.String())
	return []byte(b.String()), messageID, nil
}

func writeHeader(b *strings.Builder, name, value string) {
	b.WriteString(name)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\r\n")
}

func writePart(mw *multipart.Writer, contentType, body string) error {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType+`; charset="utf-8"`)
	pw, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create %s part: %w", contentType, err)
	}
	if _, err := pw.Write([]byte(toCRLF(body))); err != nil {
		return fmt.Errorf("write %s part: %w", contentType, err)
	}
	return nil
}

// toCRLF normalizes bare LF line endings to CRLF for SMTP transmission.
func toCRLF(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}

// addressDomain returns the domain part of an email address, falling back
// to "localhost" when the address has no @.
func addressDomain(addr string) string {
	if i := strings.LastIndex(addr, "@"); i >= 0 && i < len(addr)-1 {
		return addr[i+1:]
	}
	return "localhost"
}

// envelopeAddress strips any display name, returning the bare address for
// the SMTP envelope.
func envelopeAddress(s string) (string, error) {
	a, err := mail.ParseAddress(s)
	if err != nil {
		return "", fmt.Errorf("parse address %q: %w", s, err)
	}
	return a.Address, nil
}
