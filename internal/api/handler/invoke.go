package handler

import (
	"encoding/json"
	"net/http"

	"chatbackend/internal/chat"
	"chatbackend/pkg/serrors"
)

// invokeResponse is the body returned by Invoke.
type invokeResponse struct {
	Response string `json:"response"`
}

// Invoke runs one chat completion. The request body carries the conversation
// and optional sampling parameters; the response carries the completion
// content only. Blocking: the call returns when the completer does.
func (h *Handler) Invoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req chat.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, serrors.Wrap(serrors.ErrBadRequest, err, "could not decode request body"))

		return
	}

	if err := req.Validate(); err != nil {
		writeError(ctx, w, err)

		return
	}
	req.ApplyDefaults()

	chat.LogRequest(ctx, req)

	completion, err := h.deps.Completer.Complete(ctx, req)
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	chat.LogCompletion(ctx, completion)
	if h.deps.Metrics != nil {
		h.deps.Metrics.RecordTokens(ctx,
			completion.Usage.InputTokens,
			completion.Usage.OutputTokens,
			completion.Usage.ReasoningTokens)
	}

	writeJSON(ctx, w, http.StatusOK, invokeResponse{Response: completion.Content})
}
