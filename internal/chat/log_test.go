package chat_test

import (
	"context"
	"testing"

	"chatbackend/internal/chat"
	"chatbackend/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedContext(level zapcore.Level) (context.Context, *observer.ObservedLogs) {
	core, logs := observer.New(level)

	return logger.WithLogger(context.Background(), zap.New(core)), logs
}

func TestLogRequest(t *testing.T) {
	ctx, logs := observedContext(zapcore.DebugLevel)

	req := chat.Request{Messages: []chat.Message{
		{Role: chat.RoleSystem, Content: "be brief"},
		{Role: chat.RoleUser, Content: "hello"},
	}}
	req.ApplyDefaults()

	chat.LogRequest(ctx, req)

	entries := logs.FilterMessage("completion request").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	require.Equal(t, "google", fields["model_provider"])
	require.Equal(t, "gemini-2.0-flash", fields["model_name"])
	require.EqualValues(t, 2, fields["messages"])
	require.InDelta(t, 0.7, fields["temperature"], 1e-9)

	// one debug line per message
	require.Len(t, logs.FilterMessage("completion request message").All(), 2)
}

func TestLogRequestMessageContentsStayAtDebug(t *testing.T) {
	ctx, logs := observedContext(zapcore.InfoLevel)

	chat.LogRequest(ctx, chat.Request{Messages: []chat.Message{
		{Role: chat.RoleUser, Content: "secret"},
	}})

	require.Empty(t, logs.FilterMessage("completion request message").All(),
		"message contents must not be logged above debug level")
}

func TestLogCompletion(t *testing.T) {
	ctx, logs := observedContext(zapcore.DebugLevel)

	chat.LogCompletion(ctx, &chat.Completion{
		Content: "answer",
		Model:   "gemini-2.0-flash",
		Usage: chat.Usage{
			InputTokens:     10,
			OutputTokens:    30,
			ReasoningTokens: 10,
			TotalTokens:     40,
		},
	})

	entries := logs.FilterMessage("completion response").All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	require.EqualValues(t, 40, fields["total_tokens"])
	require.EqualValues(t, 10, fields["reasoning_tokens"])
	require.InDelta(t, 25.0, fields["reasoning_ratio_pct"], 1e-9)
}

func TestLogCompletionWithoutReasoningTokens(t *testing.T) {
	ctx, logs := observedContext(zapcore.DebugLevel)

	chat.LogCompletion(ctx, &chat.Completion{Content: "x", Model: "m"})

	entries := logs.FilterMessage("completion response").All()
	require.Len(t, entries, 1)
	require.NotContains(t, entries[0].ContextMap(), "reasoning_tokens")
}

func TestLogCompletionNil(t *testing.T) {
	ctx, _ := observedContext(zapcore.DebugLevel)

	require.NotPanics(t, func() {
		chat.LogCompletion(ctx, nil)
	})
}
