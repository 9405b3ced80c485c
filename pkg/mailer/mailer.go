package mailer

import "context"

// Mailer is the outbound email capability consumed by the registration
// workflow. Implementations report transport failures as plain errors;
// the caller decides what a failed delivery means.
type Mailer interface {
	// SendActivation delivers the account-activation email. The message
	// body carries both the recipient address and the activation token.
	SendActivation(ctx context.Context, to, token string) error
}
