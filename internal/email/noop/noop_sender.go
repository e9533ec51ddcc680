// Package noop logs document emails instead of sending them.
package noop

import (
	"context"
	"log"

	"salesdocs/internal/email"
	"salesdocs/internal/port"
)

type noopSender struct{}

// NewNoopSender creates an EmailSender that only logs what it would have sent.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendDocumentEmail(_ context.Context, e port.DocumentEmail) error {
	log.Printf("[NOOP EMAIL] to %s <%s>: %s %s", e.ToName, e.ToEmail, email.Subject(e), e.DownloadURL)
	return nil
}
