// Package mailer defines the outbound mail transport used to deliver
// encrypted report documents to recipients.
package mailer

import "context"

// Message is one outbound email. The attachment is sent under its base file
// name.
type Message struct {
	// To is the single recipient address.
	To string
	// Subject is the message subject line.
	Subject string
	// HTMLBody is the rendered HTML body.
	HTMLBody string
	// AttachmentPath optionally points at a file to attach.
	AttachmentPath string
}

// Mailer sends one message per call over a fresh authenticated submission
// session. Implementations do not retry.
//
//go:generate mockgen -package mockmailer -source=interface.go -destination=mock/mockmailer.go *
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
