package mailer

import "embed"

const (
	FromName                    = "Playmart"
	maxRetries                  = 3
	ContactNotificationTemplate = "contact_notification.tmpl"
)

//go:embed "templates"
var FS embed.FS

// Client sends a templated mail. The int return is the attempt on which the
// send succeeded.
type Client interface {
	Send(templateFile, username, email string, data any) (int, error)
}
