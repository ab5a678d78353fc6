// Package chat defines the seam between the HTTP surface and a chat
// completion backend. The server is constructed against the Completer
// interface; a concrete model provider plugs in behind it. The repository
// ships only a placeholder implementation.
package chat

import (
	"context"
	"fmt"
	"strings"

	"chatbackend/pkg/serrors"
)

// Message roles understood by the service. Unknown roles are passed through
// untouched; it is up to the completer what to do with them.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Sampling defaults applied to requests that do not set them.
const (
	DefaultTemperature   = 0.7
	DefaultTopP          = 1.0
	DefaultModelName     = "gemini-2.0-flash"
	DefaultModelProvider = "google"
)

// Message is a single conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request carries a conversation plus sampling parameters to a Completer.
type Request struct {
	Messages      []Message `json:"messages"`
	Temperature   *float64  `json:"temperature,omitempty"`
	TopP          *float64  `json:"top_p,omitempty"`
	ModelName     string    `json:"model_name,omitempty"`
	ModelProvider string    `json:"model_provider,omitempty"`
}

// ApplyDefaults fills unset sampling parameters in place.
func (r *Request) ApplyDefaults() {
	if r.Temperature == nil {
		t := DefaultTemperature
		r.Temperature = &t
	}
	if r.TopP == nil {
		p := DefaultTopP
		r.TopP = &p
	}
	if r.ModelName == "" {
		r.ModelName = DefaultModelName
	}
	if r.ModelProvider == "" {
		r.ModelProvider = DefaultModelProvider
	}
}

// Validate checks that the request can be handed to a completer.
func (r *Request) Validate() error {
	if len(r.Messages) == 0 {
		return serrors.With(serrors.ErrBadRequest, "no messages provided")
	}

	return nil
}

// LastUserMessage returns the content of the most recent user turn, or an
// empty string when the conversation has none.
func (r *Request) LastUserMessage() string {
	for i := len(r.Messages) - 1; i >= 0; i-- {
		if r.Messages[i].Role == RoleUser {
			return r.Messages[i].Content
		}
	}

	return ""
}

// Usage reports token consumption of a completion. Zero values mean the
// backend did not report that figure.
type Usage struct {
	InputTokens     int64 `json:"input_tokens"`
	OutputTokens    int64 `json:"output_tokens"`
	ReasoningTokens int64 `json:"reasoning_tokens"`
	TotalTokens     int64 `json:"total_tokens"`
}

// ReasoningRatio returns the share of total tokens spent on reasoning,
// in percent. Zero when no totals were reported.
func (u Usage) ReasoningRatio() float64 {
	if u.TotalTokens == 0 {
		return 0
	}

	return float64(u.ReasoningTokens) / float64(u.TotalTokens) * 100
}

// Completion is the completer's answer to a Request.
type Completion struct {
	Content string `json:"content"`
	Model   string `json:"model"`
	Usage   Usage  `json:"usage"`
}

// Completer produces a completion for a conversation. Implementations must
// honor ctx cancellation; a single call may take as long as a full model
// round trip.
type Completer interface {
	Complete(ctx context.Context, req Request) (*Completion, error)
}

// Placeholder is the Completer wired in until a real model provider is
// integrated. It never leaves the process: it acknowledges the last user
// message with a canned reply and synthesizes a word-count based usage.
type Placeholder struct{}

// NewPlaceholder returns the stand-in completer.
func NewPlaceholder() *Placeholder { return &Placeholder{} }

// Complete implements Completer.
func (p *Placeholder) Complete(ctx context.Context, req Request) (*Completion, error) {
	if err := ctx.Err(); err != nil {
		return nil, serrors.Wrap(serrors.ErrTimeout, err, "request context done")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	req.ApplyDefaults()

	last := req.LastUserMessage()
	content := fmt.Sprintf(
		"No model provider is configured yet. I received %d message(s); the last user message was: %s",
		len(req.Messages), last)

	var input int64
	for _, m := range req.Messages {
		input += int64(len(strings.Fields(m.Content)))
	}
	output := int64(len(strings.Fields(content)))

	return &Completion{
		Content: content,
		Model:   req.ModelName,
		Usage: Usage{
			InputTokens:  input,
			OutputTokens: output,
			TotalTokens:  input + output,
		},
	}, nil
}
