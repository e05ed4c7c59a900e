package apiclient

import (
	"errors"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
)

type Kind string

const (
	KindNetwork    Kind = "network"
	KindTimeout    Kind = "timeout"
	KindValidation Kind = "validation"
	KindConflict   Kind = "conflict"
	KindServer     Kind = "server"
)

const (
	MessageTimeout = "Request timed out. The server may be starting up, please try again."
	MessageNetwork = "Unable to connect to server. Please check your connection and try again."
)

// Error is the only error type returned by the client. Message is always
// fit for display; Detail holds the server's own explanation when it sent
// one.
type Error struct {
	Kind       Kind
	StatusCode int
	Detail     string
	Message    string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether repeating the same call may succeed.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindNetwork, KindTimeout, KindServer:
		return true
	default:
		return false
	}
}

func kindForStatus(status int) Kind {
	switch {
	case status == http.StatusConflict:
		return KindConflict
	case status >= 400 && status < 500:
		return KindValidation
	default:
		return KindServer
	}
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type detailItem struct {
	Msg string `json:"msg"`
}

// parseDetail extracts `detail` from an error body. It accepts both a plain
// string and a list of {msg} objects, joining the latter with ", ".
func parseDetail(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		return s
	}

	var items []detailItem
	if err := json.Unmarshal(eb.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if it.Msg != "" {
				msgs = append(msgs, it.Msg)
			}
		}
		return strings.Join(msgs, ", ")
	}
	return ""
}

func statusError(status int, body []byte) *Error {
	detail := parseDetail(body)
	msg := detail
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &Error{
		Kind:       kindForStatus(status),
		StatusCode: status,
		Detail:     detail,
		Message:    msg,
	}
}

// Message turns err into display text. Transport failures keep their
// normalized message; HTTP failures show the server detail or, when the
// server gave none, fallback.
func Message(err error, fallback string) string {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		return fallback
	}
	switch apiErr.Kind {
	case KindNetwork, KindTimeout:
		return apiErr.Message
	}
	if apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

func IsKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

func IsConflict(err error) bool {
	return IsKind(err, KindConflict)
}

// StatusCode returns the HTTP status of err, or 0 for transport failures.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
