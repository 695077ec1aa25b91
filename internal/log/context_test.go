// SPDX-License-Identifier: Apache-2.0

package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()

	ctx = ContextWithRequestID(ctx, "req-1")
	ctx = ContextWithConversationID(ctx, "conv-1")

	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
	assert.Equal(t, "conv-1", ConversationIDFromContext(ctx))
}

func TestContextMissingValues(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Empty(t, ConversationIDFromContext(context.Background()))
	assert.Empty(t, RequestIDFromContext(nil)) //nolint:staticcheck // nil context tolerated on purpose
}

func TestWithComponentFromContext(t *testing.T) {
	ctx := ContextWithConversationID(context.Background(), "conv-2")
	logger := WithComponentFromContext(ctx, "router")
	// Smoke check: the derived logger must be usable without panicking.
	logger.Debug().Msg("derived logger")
}
