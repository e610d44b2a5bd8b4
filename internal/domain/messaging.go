package domain

import "context"

// MessageGateway is the external messaging collaborator (WhatsApp gateway).
// The recipient phone must already be normalized to the 62XXXXXXXXXX form.
type MessageGateway interface {
	SendMessage(ctx context.Context, recipientPhone, text string) (messageID string, err error)
}
