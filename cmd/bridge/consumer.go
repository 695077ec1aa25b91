// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"

	"github.com/DeanCording/node-red-contrib-google-action/internal/dialog"
)

// Resolver delivers answers back into the session router.
type Resolver interface {
	Deliver(ctx context.Context, conversationID string, answer dialog.Answer) error
}

// EchoConsumer is the built-in demo consumer: it greets new
// conversations, repeats what the user said, and says goodbye on
// cancellation. It stands in for real dialog logic behind the webhook.
type EchoConsumer struct {
	Resolver Resolver
	Welcome  string
}

// HandleTurn resolves every turn synchronously.
func (c *EchoConsumer) HandleTurn(ctx context.Context, turn dialog.Turn) error {
	switch turn.Intent {
	case dialog.IntentMain:
		return c.Resolver.Deliver(ctx, turn.ConversationID, dialog.Answer{
			Payload: dialog.Speech{Text: c.Welcome},
		})

	case dialog.IntentCancel:
		return c.Resolver.Deliver(ctx, turn.ConversationID, dialog.Answer{
			Payload: dialog.Speech{Text: "Goodbye"},
			Close:   true,
		})

	case dialog.IntentConfirmation:
		text := "Okay, not doing that"
		if confirmed, ok := turn.Value.(bool); ok && confirmed {
			text = "Confirmed"
		}
		return c.Resolver.Deliver(ctx, turn.ConversationID, dialog.Answer{
			Payload: dialog.Speech{Text: text},
		})

	default:
		return c.Resolver.Deliver(ctx, turn.ConversationID, dialog.Answer{
			Payload:     dialog.Speech{Text: "You said " + turn.RawInput},
			DialogState: turn.DialogState,
		})
	}
}
