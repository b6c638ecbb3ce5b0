package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"resty.dev/v3"
)

var (
	ErrTransport = errors.New("request failed")
)

// Error is an HTTP error response. Message is the optional "message" field of
// the JSON body.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("api error: %d: %s", e.Status, e.Message)
}

func newError(res *resty.Response) *Error {
	body := struct {
		Message string `json:"message"`
	}{}
	// Not every error body is JSON, the status alone is still useful.
	_ = json.Unmarshal([]byte(res.String()), &body)

	return &Error{
		Status:  res.StatusCode(),
		Message: body.Message,
	}
}

// MessageOf returns the server provided message carried by err, or fallback.
func MessageOf(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
