package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/cresolva/notify-relay/internal/config"
)

// ErrMissingCredential is returned when production mode is selected but no
// transport credential is configured. The relay fails closed rather than
// falling back to any compiled-in secret.
var ErrMissingCredential = errors.New("mail transport credential not configured")

// Selector resolves the transport provider for the configured deployment
// mode. Resolution happens per dispatch so the sandbox can hand out a fresh
// disposable account each time.
type Selector struct {
	cfg    *config.Config
	client HTTPClient
	log    zerolog.Logger
}

// NewSelector creates a Selector over the injected process configuration.
func NewSelector(cfg *config.Config, client HTTPClient, log zerolog.Logger) *Selector {
	if client == nil {
		client = NewHTTPClient(etherealTimeout)
	}
	return &Selector{cfg: cfg, client: client, log: log}
}

// Resolve returns the provider for the current deployment mode. In
// production it fails with ErrMissingCredential before any network call when
// the app password is absent.
func (s *Selector) Resolve(_ context.Context) (Provider, error) {
	if s.cfg.Mail.Provider == "stdout" {
		return NewStdout(), nil
	}

	if s.cfg.IsProduction() {
		if s.cfg.Mail.AppPassword == "" {
			return nil, ErrMissingCredential
		}
		return NewSMTP(SMTPConfig{
			Host:     s.cfg.Mail.SMTPHost,
			Port:     s.cfg.Mail.SMTPPort,
			TLS:      TLSImplicit,
			Username: s.cfg.Mail.User,
			Password: s.cfg.Mail.AppPassword,
			Timeout:  s.cfg.Mail.Timeout,
		}, s.log), nil
	}

	switch s.cfg.Mail.Provider {
	case "", "ethereal":
		return NewEthereal(s.client, s.log), nil
	case "smtp":
		return NewSMTP(SMTPConfig{
			Host:     s.cfg.Mail.SMTPHost,
			Port:     s.cfg.Mail.SMTPPort,
			TLS:      TLSImplicit,
			Username: s.cfg.Mail.User,
			Password: s.cfg.Mail.AppPassword,
			Timeout:  s.cfg.Mail.Timeout,
		}, s.log), nil
	default:
		return nil, fmt.Errorf("unknown mail provider: %q", s.cfg.Mail.Provider)
	}
}
