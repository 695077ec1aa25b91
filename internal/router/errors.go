// SPDX-License-Identifier: Apache-2.0

package router

import "errors"

var (
	// ErrUnknownConversation marks an answer or continuation referencing
	// a conversation id with no live session. Delivery is skipped;
	// there is nothing to deliver to.
	ErrUnknownConversation = errors.New("unknown conversation")

	// ErrAnswerTimeout marks a turn whose answer did not arrive within
	// the configured wait window.
	ErrAnswerTimeout = errors.New("answer timeout")

	// ErrConsumerFailure marks consumer logic that failed while
	// producing an answer.
	ErrConsumerFailure = errors.New("consumer failure")
)
