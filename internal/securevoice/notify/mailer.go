// Package notify delivers the transactional emails of the registration and
// admin approval flows. Delivery is synchronous and reports failure to the
// caller; whether a failure aborts the parent operation is the caller's call.
package notify

import "context"

// Message is a single HTML email to one recipient.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer sends a rendered message.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
