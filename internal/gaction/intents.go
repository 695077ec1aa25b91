// SPDX-License-Identifier: Apache-2.0

// Package gaction defines the Google Actions conversation webhook wire
// format (conversation API v2). It carries no business logic; field
// names and JSON tags map 1:1 onto the platform schema.
package gaction

// Intents delivered by the platform on inbound turns.
const (
	IntentMain         = "actions.intent.MAIN"
	IntentText         = "actions.intent.TEXT"
	IntentNoInput      = "actions.intent.NO_INPUT"
	IntentCancel       = "actions.intent.CANCEL"
	IntentDateTime     = "actions.intent.DATETIME"
	IntentConfirmation = "actions.intent.CONFIRMATION"
	IntentOption       = "actions.intent.OPTION"
	IntentPermission   = "actions.intent.PERMISSION"
	IntentPlace        = "actions.intent.PLACE"
)

// Argument names the platform uses for typed answers.
const (
	ArgumentText         = "text"
	ArgumentDateTime     = "DATETIME"
	ArgumentConfirmation = "CONFIRMATION"
	ArgumentOption       = "OPTION"
	ArgumentPermission   = "PERMISSION"
	ArgumentPlace        = "PLACE"
)

// Value spec type URLs attached to system intents on outbound turns.
const (
	TypeOptionValueSpec       = "type.googleapis.com/google.actions.v2.OptionValueSpec"
	TypeDateTimeValueSpec     = "type.googleapis.com/google.actions.v2.DateTimeValueSpec"
	TypeConfirmationValueSpec = "type.googleapis.com/google.actions.v2.ConfirmationValueSpec"
	TypePermissionValueSpec   = "type.googleapis.com/google.actions.v2.PermissionValueSpec"
)

// Permissions that may be requested from the user.
const (
	PermissionName           = "NAME"
	PermissionDeviceLocation = "DEVICE_PRECISE_LOCATION"
	PermissionCoarseLocation = "DEVICE_COARSE_LOCATION"
	PermissionUpdate         = "UPDATE"
)

// Conversation types.
const (
	ConversationTypeNew    = "NEW"
	ConversationTypeActive = "ACTIVE"
)
