package port

import "context"

// DocumentEmail is a notification that a document is available.
type DocumentEmail struct {
	ToEmail      string
	ToName       string
	CompanyName  string
	DocumentType string
	Number       string
	TotalAmount  string
	DownloadURL  string
	Message      string
}

// EmailSender delivers document notifications.
type EmailSender interface {
	SendDocumentEmail(ctx context.Context, email DocumentEmail) error
}
