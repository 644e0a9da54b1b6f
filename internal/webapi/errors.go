package webapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// StatusError reports a non-success HTTP status from a downstream API.
// Doc holds the normalized error JSON document for the caller.
type StatusError struct {
	StatusCode int
	Doc        string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("downstream API returned HTTP %d", e.StatusCode)
}

// errorEnvelope is the uniform error document shape.
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Details []string `json:"details"`
}

// NormalizeError turns a non-success response body into an error JSON
// document. Bodies that already are a JSON object with a top-level "error"
// key (the shape both Dataverse and the Flow API emit) pass through
// verbatim; everything else is wrapped in an {error:{code,message,details}}
// envelope.
func NormalizeError(status int, body []byte) string {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var doc map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &doc); err == nil {
			if _, ok := doc["error"]; ok {
				return string(trimmed)
			}
		}
	}

	message := string(trimmed)
	if message == "" {
		message = http.StatusText(status)
	}
	env := errorEnvelope{
		Error: errorBody{
			Code:    fmt.Sprintf("HTTP%d", status),
			Message: message,
			Details: []string{},
		},
	}
	out, err := json.Marshal(env)
	if err != nil {
		// Marshal of a plain struct of strings cannot fail; keep a fallback anyway.
		return fmt.Sprintf(`{"error":{"code":"HTTP%d","message":%q,"details":[]}}`, status, message)
	}
	return string(out)
}
