// SPDX-License-Identifier: Apache-2.0

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID      = "request_id"
	FieldConversationID = "conversation_id"
	FieldUserID         = "user_id"

	// Dialog fields
	FieldIntent = "intent"
	FieldLocale = "locale"
	FieldEvent  = "event"
	FieldReason = "reason"

	// Process fields
	FieldComponent = "component"
)
