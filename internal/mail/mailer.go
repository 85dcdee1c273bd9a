package mail

import "context"

// Mailer delivers the account-activation email. link is the full confirmation
// URL the recipient must visit.
type Mailer interface {
	SendConfirmation(ctx context.Context, to, username, link string) error
}
