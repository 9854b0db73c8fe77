package provider

import (
	"strings"
	"testing"
	"time"
)

func TestBuildMIME_Headers(t *testing.T) {
	msg := &Message{
		From:     `"Test User" <test@example.com>`,
		To:       []string{"owner@example.com"},
		ReplyTo:  "test@example.com",
		Subject:  "Hello",
		TextBody: "plain",
		HTMLBody: "<p>html</p>",
	}

	raw, messageID, err := buildMIME(msg, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	out := string(raw)
	if !strings.Contains(out, `From: "Test User" <test@example.com>`) {
		t.Error("missing From header")
	}
	if !strings.Contains(out, "To: owner@example.com\r\n") {
		t.Error("missing To header")
	}
	if !strings.Contains(out, "Reply-To: test@example.com\r\n") {
		t.Error("missing Reply-To header")
	}
	if !strings.Contains(out, "Subject: Hello\r\n") {
		t.Error("missing Subject header")
	}
	if !strings.Contains(out, "Message-ID: "+messageID) {
		t.Error("Message-ID header does not match returned ID")
	}
	if !strings.HasPrefix(messageID, "<") || !strings.HasSuffix(messageID, "@example.com>") {
		t.Errorf("unexpected message ID format: %s", messageID)
	}
	if strings.Contains(out, "X-Priority") {
		t.Error("normal priority message must not carry priority headers")
	}
}

func TestBuildMIME_MultipartAlternative(t *testing.T) {
	msg := &Message{
		From:     "owner@example.com",
		To:       []string{"owner@example.com"},
		Subject:  "s",
		TextBody: "line1\nline2",
		HTMLBody: "line1<br>line2",
	}

	raw, _, err := buildMIME(msg, time.Now())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	out := string(raw)
	if !strings.Contains(out, "multipart/alternative") {
		t.Error("expected multipart/alternative content type")
	}
	if !strings.Contains(out, "text/plain") || !strings.Contains(out, "text/html") {
		t.Error("expected both text and html parts")
	}
	if !strings.Contains(out, "line1\r\nline2") {
		t.Error("text part should carry CRLF-normalized newlines")
	}
	if !strings.Contains(out, "line1<br>line2") {
		t.Error("html part should carry the <br> conversion")
	}
}

func TestBuildMIME_TextOnly(t *testing.T) {
	msg := &Message{
		From:     "owner@example.com",
		To:       []string{"3135551234@txt.att.net", "3135551234@tmomail.net"},
		Subject:  "Website Chat",
		TextBody: "From Bob: help",
	}

	raw, _, err := buildMIME(msg, time.Now())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	out := string(raw)
	if strings.Contains(out, "multipart") {
		t.Error("text-only message must not be multipart")
	}
	if !strings.Contains(out, "To: 3135551234@txt.att.net, 3135551234@tmomail.net\r\n") {
		t.Error("expected comma-joined recipient list")
	}
	if !strings.Contains(out, "From Bob: help") {
		t.Error("missing body")
	}
}

func TestBuildMIME_HighPriority(t *testing.T) {
	msg := &Message{
		From:         "owner@example.com",
		To:           []string{"owner@example.com"},
		Subject:      "🔴 URGENT: Chat Message from Bob",
		TextBody:     "help",
		HighPriority: true,
	}

	raw, _, err := buildMIME(msg, time.Now())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	out := string(raw)
	if !strings.Contains(out, "X-Priority: 1\r\n") || !strings.Contains(out, "Importance: high\r\n") {
		t.Error("expected priority headers")
	}
	// Non-ASCII subjects must be encoded for transport.
	if !strings.Contains(out, "Subject: =?utf-8?q?") {
		t.Error("expected Q-encoded subject for non-ASCII input")
	}
}

func TestBuildMIME_InvalidFrom(t *testing.T) {
	msg := &Message{From: "not an address", To: []string{"a@b.c"}, Subject: "s", TextBody: "m"}
	if _, _, err := buildMIME(msg, time.Now()); err == nil {
		t.Fatal("expected error for unparsable From address")
	}
}

func TestEnvelopeAddress(t *testing.T) {
	addr, err := envelopeAddress(`"Test User" <test@example.com>`)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if addr != "test@example.com" {
		t.Errorf("expected bare address, got %s", addr)
	}

	if _, err := envelopeAddress(""); err == nil {
		t.Error("expected error for empty address")
	}
}
