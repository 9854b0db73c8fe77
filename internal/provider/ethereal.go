package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Ethereal account provisioning endpoint and mailbox viewer. The sandbox
// never delivers for real; messages land in a throwaway web mailbox.
const (
	etherealAPIURL  = "https://api.nodemailer.com/user"
	etherealWebURL  = "https://ethereal.email/messages"
	etherealTimeout = 30 * time.Second
)

// Ethereal is the sandbox transport for non-production mode. It provisions a
// disposable account from the Ethereal API on first use, then delivers
// through the sandbox SMTP relay via STARTTLS. Delivery results carry a
// human-viewable preview link into the throwaway mailbox.
type Ethereal struct {
	client HTTPClient
	apiURL string
	log    zerolog.Logger

	once    sync.Once
	onceErr error
	smtp    *SMTP
	user    string
}

// NewEthereal creates a sandbox provider. A fresh instance provisions its
// own account, so resolving a new provider per request matches the
// disposable-credential behavior of the sandbox.
func NewEthereal(client HTTPClient, log zerolog.Logger) *Ethereal {
	return &Ethereal{client: client, apiURL: etherealAPIURL, log: log}
}

func (e *Ethereal) Name() string { return "ethereal" }

// Verify provisions the sandbox account if needed and checks the sandbox
// SMTP relay accepts the credential.
func (e *Ethereal) Verify(ctx context.Context) error {
	if err := e.provision(ctx); err != nil {
		return err
	}
	return e.smtp.Verify(ctx)
}

// Send delivers msg into the sandbox mailbox.
func (e *Ethereal) Send(ctx context.Context, msg *Message) (*DeliveryResult, error) {
	if err := e.provision(ctx); err != nil {
		return nil, err
	}
	return e.smtp.Send(ctx, msg)
}

// etherealAccount is the provisioning API response.
type etherealAccount struct {
	Status string `json:"status"`
	User   string `json:"user"`
	Pass   string `json:"pass"`
	SMTP   struct {
		Host   string `json:"host"`
		Port   int    `json:"port"`
		Secure bool   `json:"secure"`
	} `json:"smtp"`
}

func (e *Ethereal) provision(ctx context.Context) error {
	e.once.Do(func() {
		e.onceErr = e.createAccount(ctx)
	})
	return e.onceErr
}

func (e *Ethereal) createAccount(ctx context.Context) error {
	body, err := json.Marshal(map[string]string{
		"requestor": "notify-relay",
		"version":   "1.0.0",
	})
	if err != nil {
		return fmt.Errorf("marshal account request: %w", err)
	}

	resp, err := e.client.Do(ctx, &HTTPRequest{
		Method:  "POST",
		URL:     e.apiURL,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    body,
	})
	if err != nil {
		return classify(e.Name(), StageConnect, fmt.Errorf("request sandbox account: %w", err))
	}
	if resp.StatusCode != 200 {
		return classify(e.Name(), StageConnect,
			fmt.Errorf("sandbox account API returned status %d", resp.StatusCode))
	}

	var acct etherealAccount
	if err := json.Unmarshal(resp.Body, &acct); err != nil {
		return classify(e.Name(), StageConnect, fmt.Errorf("decode sandbox account: %w", err))
	}
	if acct.User == "" || acct.Pass == "" {
		return classify(e.Name(), StageConnect, fmt.Errorf("sandbox account response missing credentials"))
	}

	tlsMode := TLSStartTLS
	if acct.SMTP.Secure {
		tlsMode = TLSImplicit
	}

	e.user = acct.User
	e.smtp = NewSMTP(SMTPConfig{
		Host:     acct.SMTP.Host,
		Port:     acct.SMTP.Port,
		TLS:      tlsMode,
		Username: acct.User,
		Password: acct.Pass,
		Timeout:  etherealTimeout,
	}, e.log)
	e.smtp.previewURL = fmt.Sprintf("%s?account=%s", etherealWebURL, acct.User)

	e.log.Info().Str("sandbox_user", acct.User).Msg("provisioned sandbox transport account")
	return nil
}
