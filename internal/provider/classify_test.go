package provider

import (
	"errors"
	"testing"

	"github.com/emersion/go-smtp"
)

func TestClassify_SMTPCodes(t *testing.T) {
	tests := []struct {
		name      string
		code      int
		permanent bool
	}{
		{"transient 421", 421, false},
		{"transient 451", 451, false},
		{"permanent 550", 550, true},
		{"permanent 554", 554, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classify("smtp", StageSend, &smtp.SMTPError{Code: tt.code, Message: "nope"})
			if err.Permanent != tt.permanent {
				t.Errorf("code %d: expected permanent=%v, got %v", tt.code, tt.permanent, err.Permanent)
			}
		})
	}
}

func TestClassify_NetworkErrorIsTransient(t *testing.T) {
	err := classify("smtp", StageConnect, errors.New("dial tcp: connection refused"))
	if err.Permanent {
		t.Error("network errors are transient")
	}
	if err.Stage != StageConnect {
		t.Errorf("expected connect stage, got %s", err.Stage)
	}
}

func TestIsConnectFailure(t *testing.T) {
	connect := classify("smtp", StageConnect, errors.New("refused"))
	send := classify("smtp", StageSend, errors.New("rejected"))

	if !IsConnectFailure(connect) {
		t.Error("expected connect failure")
	}
	if IsConnectFailure(send) {
		t.Error("send failure misreported as connect failure")
	}
	if IsConnectFailure(errors.New("plain")) {
		t.Error("plain error misreported as connect failure")
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	inner := &smtp.SMTPError{Code: 550, Message: "mailbox unavailable"}
	wrapped := classify("smtp", StageSend, inner)

	var se *smtp.SMTPError
	if !errors.As(wrapped, &se) {
		t.Fatal("expected wrapped SMTPError to be reachable via errors.As")
	}
	if se.Code != 550 {
		t.Errorf("expected code 550, got %d", se.Code)
	}
}
