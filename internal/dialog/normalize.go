// SPDX-License-Identifier: Apache-2.0

package dialog

import (
	"encoding/json"
	"errors"
	"fmt"

	"golang.org/x/text/language"

	"github.com/DeanCording/node-red-contrib-google-action/internal/gaction"
)

// ErrMalformedPayload marks inbound payloads that cannot be normalized.
// The transport must reject the webhook call when it sees this error.
var ErrMalformedPayload = errors.New("malformed payload")

// Normalize parses an inbound webhook payload into a canonical Turn.
// It is pure: it never blocks and touches no shared state.
func Normalize(raw []byte) (Turn, error) {
	var req gaction.AppRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return Turn{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if req.Conversation == nil || req.Conversation.ConversationID == "" {
		return Turn{}, fmt.Errorf("%w: missing conversation id", ErrMalformedPayload)
	}
	if len(req.Inputs) == 0 {
		return Turn{}, fmt.Errorf("%w: no inputs", ErrMalformedPayload)
	}

	input := req.Inputs[0]
	turn := Turn{
		ConversationID:  req.Conversation.ConversationID,
		NewConversation: req.Conversation.Type == gaction.ConversationTypeNew,
		Intent:          intentFromWire(input.Intent),
		DialogState:     req.Conversation.ConversationToken,
		Locale:          language.Und,
	}
	if len(input.RawInputs) > 0 {
		turn.RawInput = input.RawInputs[0].Query
	}
	if req.User != nil {
		turn.UserID = req.User.UserID
		if req.User.Locale != "" {
			if tag, err := language.Parse(req.User.Locale); err == nil {
				turn.Locale = tag
			}
		}
	}
	turn.Value = argumentValue(turn.Intent, input.Arguments)
	return turn, nil
}

// argumentName maps an intent to the argument carrying its typed answer.
func argumentName(intent Intent) string {
	switch intent {
	case IntentDateTime:
		return gaction.ArgumentDateTime
	case IntentConfirmation:
		return gaction.ArgumentConfirmation
	case IntentOption:
		return gaction.ArgumentOption
	case IntentPermission:
		return gaction.ArgumentPermission
	case IntentPlace:
		return gaction.ArgumentPlace
	default:
		return gaction.ArgumentText
	}
}

// argumentValue extracts the typed value for the given intent: the
// matching argument's first non-empty field in the order integer,
// float, boolean, datetime, place, extension, structured, text. Unknown
// or default intents fall back to the free-text argument.
func argumentValue(intent Intent, args []gaction.Argument) any {
	if len(args) == 0 {
		return nil
	}
	name := argumentName(intent)
	arg := findArgument(args, name)
	if arg == nil {
		// Tolerate platforms that deliver the value on the sole
		// argument without the canonical name.
		arg = &args[0]
	}
	switch {
	case arg.IntValue != 0:
		return arg.IntValue
	case arg.FloatValue != 0:
		return arg.FloatValue
	case arg.BoolValue != nil:
		return *arg.BoolValue
	case arg.DatetimeValue != nil:
		return arg.DatetimeValue
	case arg.PlaceValue != nil:
		return arg.PlaceValue
	case len(arg.Extension) > 0:
		return arg.Extension
	case len(arg.StructuredValue) > 0:
		return arg.StructuredValue
	case arg.TextValue != "":
		return arg.TextValue
	case arg.RawText != "":
		return arg.RawText
	default:
		return nil
	}
}

func findArgument(args []gaction.Argument, name string) *gaction.Argument {
	for i := range args {
		if args[i].Name == name {
			return &args[i]
		}
	}
	return nil
}
