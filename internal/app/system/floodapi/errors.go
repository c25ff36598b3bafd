// internal/app/system/floodapi/errors.go
package floodapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind classifies a failed fetch.
type Kind int

const (
	// KindNetwork means the request never produced an HTTP response.
	KindNetwork Kind = iota + 1
	// KindStatus means the server answered with a non-2xx status.
	KindStatus
	// KindDecode means the response body was not a valid envelope.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	}
	return "unknown"
}

// Messages shown to users for failures that carry no server text.
const (
	msgNetwork = "Unable to reach the relief data service. Check your connection and try again."
	msgDecode  = "The relief data service returned a response that could not be read."
)

// Error is the single error type returned by the client. Message is the
// human-readable text shown in the dashboard's error banner.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// statusError builds the error for a non-2xx response, preferring the
// server's own "error" (or "message") text when the body carries one.
func statusError(status int, body []byte) *Error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := ""
	if json.Unmarshal(body, &payload) == nil {
		msg = strings.TrimSpace(payload.Error)
		if msg == "" {
			msg = strings.TrimSpace(payload.Message)
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("request failed with status %d", status)
	}
	return &Error{Kind: KindStatus, Status: status, Message: msg}
}
