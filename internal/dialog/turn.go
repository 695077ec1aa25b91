// SPDX-License-Identifier: Apache-2.0

// Package dialog defines the canonical, platform-agnostic dialog model:
// the Turn a consumer receives and the Answer it hands back. The
// Normalize function is the only place that understands the inbound
// wire format.
package dialog

import (
	"golang.org/x/text/language"

	"github.com/DeanCording/node-red-contrib-google-action/internal/gaction"
)

// Intent classifies why a turn occurred.
type Intent string

// Canonical turn intents.
const (
	IntentMain         Intent = "main"
	IntentText         Intent = "text"
	IntentNoInput      Intent = "no_input"
	IntentCancel       Intent = "cancel"
	IntentDateTime     Intent = "datetime"
	IntentConfirmation Intent = "confirmation"
	IntentOption       Intent = "option"
	IntentPermission   Intent = "permission"
	IntentPlace        Intent = "place"
	IntentUnspecified  Intent = "unspecified"
)

// Turn is one normalized inbound dialog event. It is immutable once
// constructed; exactly one Turn is produced per webhook call.
type Turn struct {
	// ConversationID is the platform-supplied opaque conversation key.
	ConversationID string

	// NewConversation distinguishes conversation start from continuation.
	NewConversation bool

	// Intent classifies the turn.
	Intent Intent

	// RawInput is the user's utterance as heard by the platform.
	RawInput string

	// Value is the typed argument matching the intent: int64, float64,
	// bool, *gaction.DateTime, *gaction.Location, a map for extension or
	// structured values, or a string. Nil when the turn carried no
	// typed argument.
	Value any

	// DialogState is the opaque consumer state echoed from the previous
	// answer of this conversation.
	DialogState string

	// UserID identifies the speaker, when the platform shares it.
	UserID string

	// Locale is the user's locale; language.Und when absent or invalid.
	Locale language.Tag
}

func intentFromWire(wire string) Intent {
	switch wire {
	case gaction.IntentMain:
		return IntentMain
	case gaction.IntentText:
		return IntentText
	case gaction.IntentNoInput:
		return IntentNoInput
	case gaction.IntentCancel:
		return IntentCancel
	case gaction.IntentDateTime:
		return IntentDateTime
	case gaction.IntentConfirmation:
		return IntentConfirmation
	case gaction.IntentOption:
		return IntentOption
	case gaction.IntentPermission:
		return IntentPermission
	case gaction.IntentPlace:
		return IntentPlace
	default:
		return IntentUnspecified
	}
}
