package provider

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/rs/zerolog"
)

// TLSMode selects how the SMTP connection is secured.
type TLSMode string

const (
	// TLSImplicit dials a TLS socket directly (smtps, port 465).
	TLSImplicit TLSMode = "implicit"
	// TLSStartTLS upgrades a plain connection via STARTTLS (port 587).
	TLSStartTLS TLSMode = "starttls"
	// TLSNone dials without TLS. Only for local test servers.
	TLSNone TLSMode = "none"
)

// SMTPConfig holds the connection parameters for an SMTP provider.
type SMTPConfig struct {
	Host     string
	Port     int
	TLS      TLSMode
	Username string
	Password string
	Timeout  time.Duration
}

// SMTP delivers messages through an SMTP submission endpoint. The production
// transport uses implicit TLS on port 465 with the operator credential.
type SMTP struct {
	cfg SMTPConfig
	log zerolog.Logger

	// previewURL, if set, is attached to every delivery result. Used by the
	// sandbox transport; real deliveries have no preview.
	previewURL string
}

// NewSMTP creates an SMTP provider from the given config.
func NewSMTP(cfg SMTPConfig, log zerolog.Logger) *SMTP {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SMTP{cfg: cfg, log: log}
}

func (s *SMTP) Name() string { return "smtp" }

// Verify dials the server, authenticates, and issues a NOOP. Nothing is sent.
func (s *SMTP) Verify(ctx context.Context) error {
	c, err := s.connect(ctx)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Noop(); err != nil {
		return classify(s.Name(), StageConnect, err)
	}
	return c.Quit()
}

// Send assembles the MIME message and transmits it in one SMTP transaction.
func (s *SMTP) Send(ctx context.Context, msg *Message) (*DeliveryResult, error) {
	raw, messageID, err := buildMIME(msg, time.Now())
	if err != nil {
		return nil, classify(s.Name(), StageSend, err)
	}

	c, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	from, err := envelopeAddress(msg.From)
	if err != nil {
		return nil, classify(s.Name(), StageSend, err)
	}
	if err := c.Mail(from, nil); err != nil {
		return nil, classify(s.Name(), StageSend, err)
	}

	for _, to := range msg.To {
		rcpt, err := envelopeAddress(to)
		if err != nil {
			return nil, classify(s.Name(), StageSend, err)
		}
		if err := c.Rcpt(rcpt, nil); err != nil {
			return nil, classify(s.Name(), StageSend, err)
		}
	}

	w, err := c.Data()
	if err != nil {
		return nil, classify(s.Name(), StageSend, err)
	}
	if _, err := w.Write(raw); err != nil {
		w.Close()
		return nil, classify(s.Name(), StageSend, err)
	}
	if err := w.Close(); err != nil {
		return nil, classify(s.Name(), StageSend, err)
	}

	if err := c.Quit(); err != nil {
		// The server accepted the message; a failed QUIT is not a delivery
		// failure.
		s.log.Warn().Err(err).Str("host", s.cfg.Host).Msg("smtp quit failed after accepted delivery")
	}

	s.log.Info().
		Str("host", s.cfg.Host).
		Str("message_id", messageID).
		Int("recipients", len(msg.To)).
		Msg("message delivered")

	return &DeliveryResult{
		MessageID:  messageID,
		PreviewURL: s.previewURL,
		Timestamp:  time.Now(),
	}, nil
}

// connect dials and authenticates, honoring ctx cancellation between steps.
func (s *SMTP) connect(ctx context.Context) (*smtp.Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, classify(s.Name(), StageConnect, err)
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	tlsCfg := &tls.Config{ServerName: s.cfg.Host}

	var (
		c   *smtp.Client
		err error
	)
	switch s.cfg.TLS {
	case TLSImplicit:
		c, err = smtp.DialTLS(addr, tlsCfg)
	case TLSStartTLS:
		c, err = smtp.DialStartTLS(addr, tlsCfg)
	case TLSNone:
		c, err = smtp.Dial(addr)
	default:
		err = fmt.Errorf("unknown tls mode: %q", s.cfg.TLS)
	}
	if err != nil {
		return nil, classify(s.Name(), StageConnect, err)
	}

	c.CommandTimeout = s.cfg.Timeout
	c.SubmissionTimeout = s.cfg.Timeout

	if s.cfg.Username != "" {
		auth := sasl.NewPlainClient("", s.cfg.Username, s.cfg.Password)
		if err := c.Auth(auth); err != nil {
			c.Close()
			return nil, classify(s.Name(), StageConnect, err)
		}
	}

	return c, nil
}
