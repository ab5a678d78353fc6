package chat

import (
	"context"

	"chatbackend/pkg/logger"

	"go.uber.org/zap"
)

// LogRequest logs the sampling parameters and the shape of the conversation
// before it is handed to the completer. Message contents are logged at debug
// level only; they may contain anything the user typed.
func LogRequest(ctx context.Context, req Request) {
	fields := []zap.Field{
		zap.String("model_provider", req.ModelProvider),
		zap.String("model_name", req.ModelName),
		zap.Int("messages", len(req.Messages)),
	}
	if req.Temperature != nil {
		fields = append(fields, zap.Float64("temperature", *req.Temperature))
	}
	if req.TopP != nil {
		fields = append(fields, zap.Float64("top_p", *req.TopP))
	}

	logger.Info(ctx, "completion request", fields...)

	for i, msg := range req.Messages {
		logger.Debug(ctx, "completion request message",
			zap.Int("index", i),
			zap.String("role", msg.Role),
			zap.String("content", msg.Content),
		)
	}
}

// LogCompletion logs the completion outcome including token usage. When the
// backend reported reasoning tokens, their share of the total is included.
func LogCompletion(ctx context.Context, c *Completion) {
	if c == nil {
		return
	}

	fields := []zap.Field{
		zap.String("model", c.Model),
		zap.Int("content_length", len(c.Content)),
		zap.Int64("input_tokens", c.Usage.InputTokens),
		zap.Int64("output_tokens", c.Usage.OutputTokens),
		zap.Int64("total_tokens", c.Usage.TotalTokens),
	}
	if c.Usage.ReasoningTokens > 0 {
		fields = append(fields,
			zap.Int64("reasoning_tokens", c.Usage.ReasoningTokens),
			zap.Float64("reasoning_ratio_pct", c.Usage.ReasoningRatio()),
		)
	}

	logger.Info(ctx, "completion response", fields...)
}
