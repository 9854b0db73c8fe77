package provider

import (
	"errors"

	"github.com/emersion/go-smtp"
)

// Stage identifies which step of the transport conversation failed.
type Stage string

const (
	// StageConnect covers dialing, TLS negotiation, and authentication.
	StageConnect Stage = "connect"
	// StageSend covers the envelope and message transmission.
	StageSend Stage = "send"
)

// TransportError wraps an SMTP failure with the failing stage and
// permanence metadata.
type TransportError struct {
	Provider string
	Stage    Stage
	// Permanent indicates the error would not succeed on a resubmission.
	Permanent bool
	Err       error
}

func (e *TransportError) Error() string {
	return e.Provider + ": " + string(e.Stage) + " failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsConnectFailure reports whether err failed before any message was
// transmitted.
func IsConnectFailure(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Stage == StageConnect
}

// classify wraps err as a TransportError for the given provider and stage.
// SMTP 4xx replies are transient; 5xx replies are permanent. Network-level
// failures are treated as transient since the caller may simply resubmit.
func classify(providerName string, stage Stage, err error) *TransportError {
	te := &TransportError{
		Provider: providerName,
		Stage:    stage,
		Err:      err,
	}

	var se *smtp.SMTPError
	if errors.As(err, &se) {
		te.Permanent = se.Code >= 500
	}

	return te
}
