package builtwith

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorKind classifies a failed call so the calling agent can narrate it.
type ErrorKind string

const (
	// KindAuthMissing means no API key was resolvable for the invocation.
	KindAuthMissing ErrorKind = "auth_missing"
	// KindNetworkError means the upstream API could not be reached.
	KindNetworkError ErrorKind = "network_error"
	// KindBadUpstreamResponse means the upstream body was not valid JSON.
	KindBadUpstreamResponse ErrorKind = "bad_upstream_response"
	// KindUpstreamError means the upstream returned a non-success status.
	KindUpstreamError ErrorKind = "upstream_error"
	// KindInvalidInput means tool arguments failed schema validation.
	KindInvalidInput ErrorKind = "invalid_input"
	// KindUnknownTool means the requested tool is not in the catalog.
	KindUnknownTool ErrorKind = "unknown_tool"
	// KindUnknownPrompt means the requested prompt is not in the catalog.
	KindUnknownPrompt ErrorKind = "unknown_prompt"
)

// CallError is the uniform failure shape for a tool invocation. Dispatch
// renders it as a JSON payload inside a normal MCP success envelope;
// the protocol layer never sees it as a fault.
type CallError struct {
	Kind    ErrorKind
	Message string
	Status  int             // HTTP status from upstream, when applicable
	Body    json.RawMessage // raw upstream body, retained for diagnostics
}

func (e *CallError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Kind, e.Message, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// JSON renders the error as the payload shape returned to the caller.
func (e *CallError) JSON() json.RawMessage {
	payload := struct {
		Error   string          `json:"error"`
		Message string          `json:"message"`
		Status  int             `json:"status,omitempty"`
		Body    json.RawMessage `json:"body,omitempty"`
	}{
		Error:   string(e.Kind),
		Message: e.Message,
		Status:  e.Status,
		Body:    e.Body,
	}
	out, err := json.Marshal(payload)
	if err != nil {
		return json.RawMessage(`{"error":"internal_error"}`)
	}
	return out
}

// ErrorPayload converts any error into the uniform JSON error payload.
func ErrorPayload(err error) json.RawMessage {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.JSON()
	}
	ce = &CallError{Kind: "internal_error", Message: err.Error()}
	return ce.JSON()
}
