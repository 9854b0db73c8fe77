package provider

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestStdout_Name(t *testing.T) {
	if NewStdout().Name() != "stdout" {
		t.Errorf("expected name stdout, got %s", NewStdout().Name())
	}
}

func TestStdout_Verify(t *testing.T) {
	if err := NewStdout().Verify(context.Background()); err != nil {
		t.Errorf("stdout verify must always succeed, got %v", err)
	}
}

func TestStdout_Send(t *testing.T) {
	var buf bytes.Buffer
	p := &Stdout{writer: &buf}

	msg := &Message{
		From:         "owner@example.com",
		To:           []string{"a@example.com", "b@example.com"},
		ReplyTo:      "visitor@example.com",
		Subject:      "Test Subject",
		TextBody:     "Hello, World!",
		HTMLBody:     "<p>Hello</p>",
		HighPriority: true,
	}

	result, err := p.Send(context.Background(), msg)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !strings.HasPrefix(result.MessageID, "stdout-") {
		t.Errorf("expected stdout-prefixed message ID, got %s", result.MessageID)
	}
	if result.PreviewURL != "" {
		t.Error("stdout deliveries have no preview URL")
	}

	output := buf.String()
	if !strings.Contains(output, "owner@example.com") {
		t.Error("expected output to contain sender address")
	}
	if !strings.Contains(output, "a@example.com, b@example.com") {
		t.Error("expected output to contain recipients")
	}
	if !strings.Contains(output, "Test Subject") {
		t.Error("expected output to contain subject")
	}
	if !strings.Contains(output, "Reply-To: visitor@example.com") {
		t.Error("expected output to contain reply-to")
	}
	if !strings.Contains(output, "Priority: high") {
		t.Error("expected output to note high priority")
	}
}
