// Package smtp provides a mailer.Mailer implementation backed by an SMTP
// submission service.
package smtp

import (
	"context"

	"reporter/pkg/mailer"
	"reporter/pkg/serrors"

	mail "github.com/wneessen/go-mail"
)

// Options configure the SMTP submission session.
type Options struct {
	// Host is the SMTP server hostname.
	Host string
	// Port is the SMTP submission port.
	Port int
	// Username authenticates the submission session.
	Username string
	// Password authenticates the submission session.
	Password string
	// From is the envelope and header sender address. Empty means Username.
	From string
}

// Sender sends mail over SMTP. A fresh session is dialed per Send call and
// torn down afterwards; nothing is pooled across recipients.
type Sender struct {
	options Options
}

// New constructs a Sender with the given options.
func New(options Options) *Sender {
	if options.From == "" {
		options.From = options.Username
	}

	return &Sender{options: options}
}

// Send delivers one message. Authentication failures, recipient rejections
// and transport failures all surface as delivery errors; nothing is retried.
func (s *Sender) Send(ctx context.Context, msg mailer.Message) error {
	m := mail.NewMsg()
	if err := m.From(s.options.From); err != nil {
		return serrors.Wrap(serrors.ErrDelivery, err, "invalid sender address %q", s.options.From)
	}
	if err := m.To(msg.To); err != nil {
		return serrors.Wrap(serrors.ErrDelivery, err, "invalid recipient address %q", msg.To)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTMLBody)
	if msg.AttachmentPath != "" {
		m.AttachFile(msg.AttachmentPath)
	}

	client, err := mail.NewClient(s.options.Host,
		mail.WithPort(s.options.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.options.Username),
		mail.WithPassword(s.options.Password),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return serrors.Wrap(serrors.ErrDelivery, err, "could not create mail client")
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return serrors.Wrap(serrors.ErrDelivery, err, "could not send mail to %s", msg.To)
	}

	return nil
}

// Ensure Sender conforms to the mailer.Mailer interface at compile time.
var _ mailer.Mailer = (*Sender)(nil)
