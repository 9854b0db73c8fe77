package provider

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// fakeHTTPClient returns canned responses for the account provisioning API.
type fakeHTTPClient struct {
	resp  *HTTPResponse
	err   error
	calls int
	last  *HTTPRequest
}

func (f *fakeHTTPClient) Do(_ context.Context, req *HTTPRequest) (*HTTPResponse, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

const accountJSON = `{
	"status": "success",
	"user": "throwaway@ethereal.email",
	"pass": "secret",
	"smtp": {"host": "smtp.ethereal.email", "port": 587, "secure": false}
}`

func TestEthereal_Provision(t *testing.T) {
	client := &fakeHTTPClient{resp: &HTTPResponse{StatusCode: 200, Body: []byte(accountJSON)}}
	e := NewEthereal(client, zerolog.Nop())

	if err := e.provision(context.Background()); err != nil {
		t.Fatalf("expected provisioning to succeed, got %v", err)
	}

	if client.last.Method != "POST" {
		t.Errorf("expected POST, got %s", client.last.Method)
	}
	if !strings.Contains(string(client.last.Body), "requestor") {
		t.Error("expected requestor field in provisioning request")
	}

	if e.smtp == nil {
		t.Fatal("expected an SMTP transport to be configured")
	}
	if e.smtp.cfg.Host != "smtp.ethereal.email" || e.smtp.cfg.Port != 587 {
		t.Errorf("unexpected sandbox relay endpoint: %s:%d", e.smtp.cfg.Host, e.smtp.cfg.Port)
	}
	if e.smtp.cfg.TLS != TLSStartTLS {
		t.Errorf("non-secure sandbox endpoint must use STARTTLS, got %s", e.smtp.cfg.TLS)
	}
	if !strings.Contains(e.smtp.previewURL, "throwaway@ethereal.email") {
		t.Errorf("preview URL must identify the throwaway mailbox, got %s", e.smtp.previewURL)
	}
}

func TestEthereal_ProvisionOnce(t *testing.T) {
	client := &fakeHTTPClient{resp: &HTTPResponse{StatusCode: 200, Body: []byte(accountJSON)}}
	e := NewEthereal(client, zerolog.Nop())

	_ = e.provision(context.Background())
	_ = e.provision(context.Background())
	if client.calls != 1 {
		t.Errorf("expected a single provisioning call, got %d", client.calls)
	}
}

func TestEthereal_ProvisionAPIError(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeHTTPClient
	}{
		{"network error", &fakeHTTPClient{err: errors.New("unreachable")}},
		{"api status", &fakeHTTPClient{resp: &HTTPResponse{StatusCode: 503, Body: []byte("busy")}}},
		{"bad json", &fakeHTTPClient{resp: &HTTPResponse{StatusCode: 200, Body: []byte("{")}}},
		{"empty credentials", &fakeHTTPClient{resp: &HTTPResponse{StatusCode: 200, Body: []byte(`{"status":"ok"}`)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEthereal(tt.client, zerolog.Nop())
			err := e.provision(context.Background())
			if err == nil {
				t.Fatal("expected provisioning error")
			}
			if !IsConnectFailure(err) {
				t.Errorf("provisioning failures are connect-stage errors, got %v", err)
			}
		})
	}
}

func TestEthereal_SendFailsWithoutAccount(t *testing.T) {
	client := &fakeHTTPClient{err: errors.New("unreachable")}
	e := NewEthereal(client, zerolog.Nop())

	_, err := e.Send(context.Background(), &Message{
		From: "a@b.c", To: []string{"d@e.f"}, Subject: "s", TextBody: "m",
	})
	if err == nil {
		t.Fatal("expected send to fail when provisioning fails")
	}
}
