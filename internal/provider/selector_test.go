package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cresolva/notify-relay/internal/config"
)

func baseConfig(mode string) *config.Config {
	return &config.Config{
		Mode: mode,
		Mail: config.MailConfig{
			User:     "owner@example.com",
			SMTPHost: "smtp.gmail.com",
			SMTPPort: 465,
		},
		SMS: config.SMSConfig{
			PhoneNumber: "3135551234",
			Gateways:    []string{"txt.att.net"},
		},
	}
}

func TestSelector_ProductionMissingCredential(t *testing.T) {
	cfg := baseConfig(config.ModeProduction)
	s := NewSelector(cfg, nil, zerolog.Nop())

	_, err := s.Resolve(context.Background())
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

func TestSelector_Production(t *testing.T) {
	cfg := baseConfig(config.ModeProduction)
	cfg.Mail.AppPassword = "app-password"
	s := NewSelector(cfg, nil, zerolog.Nop())

	p, err := s.Resolve(context.Background())
	if err != nil {
		t.Fatalf("expected provider, got %v", err)
	}
	if p.Name() != "smtp" {
		t.Errorf("expected smtp provider in production, got %s", p.Name())
	}

	sp, ok := p.(*SMTP)
	if !ok {
		t.Fatalf("expected *SMTP, got %T", p)
	}
	if sp.cfg.TLS != TLSImplicit {
		t.Errorf("production transport must use implicit TLS, got %s", sp.cfg.TLS)
	}
	if sp.cfg.Port != 465 {
		t.Errorf("expected port 465, got %d", sp.cfg.Port)
	}
}

func TestSelector_DevelopmentUsesSandbox(t *testing.T) {
	s := NewSelector(baseConfig(config.ModeDevelopment), nil, zerolog.Nop())

	p, err := s.Resolve(context.Background())
	if err != nil {
		t.Fatalf("expected provider, got %v", err)
	}
	if p.Name() != "ethereal" {
		t.Errorf("expected sandbox provider in development, got %s", p.Name())
	}
}

func TestSelector_StdoutOverride(t *testing.T) {
	cfg := baseConfig(config.ModeDevelopment)
	cfg.Mail.Provider = "stdout"
	s := NewSelector(cfg, nil, zerolog.Nop())

	p, err := s.Resolve(context.Background())
	if err != nil {
		t.Fatalf("expected provider, got %v", err)
	}
	if p.Name() != "stdout" {
		t.Errorf("expected stdout provider, got %s", p.Name())
	}
}

func TestSelector_UnknownProvider(t *testing.T) {
	cfg := baseConfig(config.ModeDevelopment)
	cfg.Mail.Provider = "carrier-pigeon"
	s := NewSelector(cfg, nil, zerolog.Nop())

	if _, err := s.Resolve(context.Background()); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestSelector_FreshSandboxPerResolve(t *testing.T) {
	s := NewSelector(baseConfig(config.ModeDevelopment), nil, zerolog.Nop())

	p1, _ := s.Resolve(context.Background())
	p2, _ := s.Resolve(context.Background())
	if p1 == p2 {
		t.Error("each resolve must hand out a fresh sandbox provider")
	}
}
