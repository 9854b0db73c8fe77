package relay

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cresolva/notify-relay/internal/metrics"
	"github.com/cresolva/notify-relay/internal/provider"
)

// TransportSelector resolves the mail transport for the current deployment
// mode. Resolution may fail before any network call when the production
// credential is absent.
type TransportSelector interface {
	Resolve(ctx context.Context) (provider.Provider, error)
}

// Relay is the consolidated notification relay. One instance serves both
// submission kinds; per-request state lives entirely on the stack.
type Relay struct {
	selector TransportSelector
	builder  *Builder
	log      zerolog.Logger
}

// New creates a Relay over the given transport selector and message builder.
func New(selector TransportSelector, builder *Builder, log zerolog.Logger) *Relay {
	return &Relay{selector: selector, builder: builder, log: log}
}

// ContactResult is the success payload for a contact-form dispatch.
// PreviewURL is set only for sandbox deliveries.
type ContactResult struct {
	MessageID  string
	PreviewURL string
}

// ForwardContact validates the submission, builds one message, verifies the
// transport connection, and attempts exactly one delivery to the operator
// mailbox. Every failure is terminal; nothing is retried or queued.
func (r *Relay) ForwardContact(ctx context.Context, sub ContactSubmission) (*ContactResult, error) {
	if err := sub.Validate(); err != nil {
		r.log.Warn().Str("stage", "validate").Msg("contact submission missing required fields")
		metrics.SubmissionsTotal.WithLabelValues("contact", "rejected").Inc()
		return nil, err
	}

	r.log.Info().
		Str("name", sub.Name).
		Str("email", sub.Email).
		Str("subject", sub.Subject).
		Msg("processing contact submission")

	msg := r.builder.Contact(sub)

	p, err := r.selector.Resolve(ctx)
	if err != nil {
		r.log.Error().Err(err).Str("stage", "configure").Msg("transport configuration failed")
		metrics.SubmissionsTotal.WithLabelValues("contact", "failed").Inc()
		return nil, &Error{Kind: KindConfiguration, Message: "Email server configuration error", Err: err}
	}

	if err := p.Verify(ctx); err != nil {
		r.log.Error().Err(err).Str("stage", "verify").Str("provider", p.Name()).Msg("transport verification failed")
		metrics.SubmissionsTotal.WithLabelValues("contact", "failed").Inc()
		return nil, &Error{Kind: KindTransport, Message: "Failed to connect to email server", Err: err}
	}

	res, err := r.send(ctx, p, msg, "contact")
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("contact", "failed").Inc()
		return nil, &Error{Kind: KindTransport, Message: "Failed to send email", Detail: err.Error(), Err: err}
	}

	r.log.Info().
		Str("provider", p.Name()).
		Str("message_id", res.MessageID).
		Msg("contact message delivered")
	metrics.SubmissionsTotal.WithLabelValues("contact", "delivered").Inc()

	return &ContactResult{MessageID: res.MessageID, PreviewURL: res.PreviewURL}, nil
}

// ForwardChat validates the submission, builds the urgent notification and
// the SMS-gateway broadcast, and dispatches both concurrently through one
// transport. The result is success only when both deliveries succeed; a
// single combined error reports any failure, and a delivery that did
// succeed is neither rolled back nor separately acknowledged.
func (r *Relay) ForwardChat(ctx context.Context, sub ChatSubmission) error {
	if err := sub.Validate(); err != nil {
		r.log.Warn().Str("stage", "validate").Msg("chat submission missing required fields")
		metrics.SubmissionsTotal.WithLabelValues("chat", "rejected").Inc()
		return err
	}

	r.log.Info().Str("name", sub.Name).Msg("processing chat forward")

	urgent, sms := r.builder.Chat(sub, time.Now())

	p, err := r.selector.Resolve(ctx)
	if err != nil {
		r.log.Error().Err(err).Str("stage", "configure").Msg("transport configuration failed")
		metrics.SubmissionsTotal.WithLabelValues("chat", "failed").Inc()
		return &Error{Kind: KindConfiguration, Message: "Email server configuration error", Err: err}
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	dispatch := []struct {
		msg     *provider.Message
		channel string
	}{
		{urgent, "chat_email"},
		{sms, "chat_sms"},
	}
	for i, d := range dispatch {
		wg.Add(1)
		go func(i int, msg *provider.Message, channel string) {
			defer wg.Done()
			_, errs[i] = r.send(ctx, p, msg, channel)
		}(i, d.msg, d.channel)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("chat", "failed").Inc()
		return &Error{Kind: KindTransport, Message: "Failed to forward message", Detail: err.Error(), Err: err}
	}

	r.log.Info().
		Str("provider", p.Name()).
		Int("sms_recipients", len(sms.To)).
		Msg("chat forwarded to email and SMS gateways")
	metrics.SubmissionsTotal.WithLabelValues("chat", "delivered").Inc()

	return nil
}

// send performs one delivery attempt and records per-channel metrics.
func (r *Relay) send(ctx context.Context, p provider.Provider, msg *provider.Message, channel string) (*provider.DeliveryResult, error) {
	start := time.Now()
	res, err := p.Send(ctx, msg)
	metrics.DeliveryDuration.WithLabelValues(channel).Observe(time.Since(start).Seconds())

	if err != nil {
		r.log.Error().Err(err).
			Str("provider", p.Name()).
			Str("channel", channel).
			Msg("transport send failed")
		metrics.DeliveriesTotal.WithLabelValues(channel, "failed").Inc()
		return nil, err
	}

	metrics.DeliveriesTotal.WithLabelValues(channel, "sent").Inc()
	return res, nil
}
